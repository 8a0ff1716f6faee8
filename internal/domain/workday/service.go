package workday

import (
	"context"
)

// WorkdayService covers the punch lifecycle of the authenticated user:
// live punches, manual entry, the overtime confirmation gate, and day edits.
// The username comes from the JWT claims in the context.
type WorkdayService interface {
	// Punch registers a punch at server time. Out-of-window punches are held
	// pending confirmation instead of being committed.
	Punch(ctx context.Context, req PunchRequest) (PunchOutcome, error)

	// PunchManual registers a punch for today at an explicit HH:MM, after
	// validating the chronological order of the resulting sequence.
	PunchManual(ctx context.Context, req ManualPunchRequest) (PunchOutcome, error)

	// ConfirmOvertime commits a held punch with its reason and description.
	ConfirmOvertime(ctx context.Context, req ConfirmOvertimeRequest) (DayResponse, error)

	// CancelPending discards a held punch.
	CancelPending(ctx context.Context, req CancelPendingRequest) error

	// GetToday returns today's ledger with live worked time.
	GetToday(ctx context.Context) (DayResponse, error)

	// GetDay returns the ledger for a past or present day.
	GetDay(ctx context.Context, date string) (DayResponse, error)

	// EditDay replaces a day's entries wholesale and recomputes its totals.
	EditDay(ctx context.Context, req EditDayRequest) (DayResponse, error)
}
