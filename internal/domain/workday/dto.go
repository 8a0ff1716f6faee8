package workday

import (
	"github.com/fichador/fichador-backend/internal/pkg/validator"
)

// ========================================
// WORKDAY DTOs
// ========================================

// PunchRequest registers a punch at server time.
type PunchRequest struct {
	Type string `json:"type"`
}

func (r *PunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if !PunchType(r.Type).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: enter, lunch_out, lunch_back, exit",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ManualPunchRequest registers a punch for today at an explicit HH:MM.
type ManualPunchRequest struct {
	Type string `json:"type"`
	Time string `json:"time"` // HH:MM
}

func (r *ManualPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if !PunchType(r.Type).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: enter, lunch_out, lunch_back, exit",
		})
	}

	if validator.IsEmpty(r.Time) {
		errs = append(errs, validator.ValidationError{
			Field:   "time",
			Message: "time is required",
		})
	} else if _, valid := validator.IsValidClockTime(r.Time); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "time",
			Message: "time must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ConfirmOvertimeRequest commits a held out-of-window punch with its reason.
type ConfirmOvertimeRequest struct {
	PendingID   string `json:"pending_id"`
	Reason      string `json:"reason"`
	Description string `json:"description,omitempty"`
}

func (r *ConfirmOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PendingID) {
		errs = append(errs, validator.ValidationError{
			Field:   "pending_id",
			Message: "pending_id is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	} else if !Reason(r.Reason).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is not one of the accepted values",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CancelPendingRequest discards a held punch.
type CancelPendingRequest struct {
	PendingID string `json:"pending_id"`
}

func (r *CancelPendingRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PendingID) {
		errs = append(errs, validator.ValidationError{
			Field:   "pending_id",
			Message: "pending_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EditDayEntry is one row of a day edit: type plus HH:MM on that day.
// Edited entries lose any prior overtime metadata.
type EditDayEntry struct {
	Type string `json:"type"`
	Time string `json:"time"` // HH:MM
}

// EditDayRequest replaces a day's entries wholesale.
type EditDayRequest struct {
	Date    string         `json:"-"`
	Entries []EditDayEntry `json:"entries"`
}

func (r *EditDayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	for _, e := range r.Entries {
		if !PunchType(e.Type).IsValid() {
			errs = append(errs, validator.ValidationError{
				Field:   "entries",
				Message: "entry type must be one of: enter, lunch_out, lunch_back, exit",
			})
			break
		}
		if _, valid := validator.IsValidClockTime(e.Time); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "entries",
				Message: "entry time must be in HH:MM format",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// RESPONSES
// ========================================

type PunchEntryResponse struct {
	Type        string `json:"type"`
	Label       string `json:"label"`
	Time        string `json:"time"` // HH:MM
	IsOvertime  bool   `json:"is_overtime"`
	Reason      string `json:"reason,omitempty"`
	ReasonLabel string `json:"reason_label,omitempty"`
	Description string `json:"description,omitempty"`
}

// WindowResponse is a display range of clock times.
type WindowResponse struct {
	From string `json:"from"` // HH:MM
	To   string `json:"to"`   // HH:MM
}

type DayResponse struct {
	Date             string               `json:"date"`
	State            string               `json:"state"`
	Entries          []PunchEntryResponse `json:"entries"`
	WorkedMinutes    int                  `json:"worked_minutes"`
	WorkedDisplay    string               `json:"worked_display"` // HH:MM
	RequiredMinutes  int                  `json:"required_minutes"`
	RemainingMinutes int                  `json:"remaining_minutes"`
	OvertimeMinutes  int                  `json:"overtime_minutes"`
	HadLunchOut      bool                 `json:"had_lunch_out"`
	EstimatedExit    *string              `json:"estimated_exit,omitempty"` // HH:MM
	ExitWindow       *WindowResponse      `json:"exit_window,omitempty"`    // during lunch: exit range for a 40..100 min break
}

// PendingOvertimeResponse is returned instead of a committed punch when the
// action falls outside its schedule window and needs a reason.
type PendingOvertimeResponse struct {
	PendingID string            `json:"pending_id"`
	Type      string            `json:"type"`
	Time      string            `json:"time"` // RFC3339
	ExpiresAt string            `json:"expires_at"`
	Reasons   map[string]string `json:"reasons"`
}

// PunchOutcome carries either a committed day or a pending confirmation,
// never both.
type PunchOutcome struct {
	Day     *DayResponse             `json:"day,omitempty"`
	Pending *PendingOvertimeResponse `json:"pending,omitempty"`
}
