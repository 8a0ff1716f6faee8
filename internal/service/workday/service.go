package workday

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fichador/fichador-backend/internal/domain/schedule"
	"github.com/fichador/fichador-backend/internal/domain/workday"
	"github.com/fichador/fichador-backend/internal/pkg/jwt"
	"github.com/fichador/fichador-backend/internal/pkg/timeutil"
)

type WorkdayServiceImpl struct {
	workday.WorkdayRepository
	policy  schedule.Policy
	pending *pendingStore

	// now is swappable so tests can pin the clock.
	now func() time.Time
}

func NewWorkdayService(repo workday.WorkdayRepository, policy schedule.Policy, pendingTTL time.Duration) *WorkdayServiceImpl {
	return &WorkdayServiceImpl{
		WorkdayRepository: repo,
		policy:            policy,
		pending:           newPendingStore(pendingTTL, time.Now),
		now:               time.Now,
	}
}

// WithClock pins the service clock, for tests.
func (s *WorkdayServiceImpl) WithClock(now func() time.Time) *WorkdayServiceImpl {
	s.now = now
	s.pending.now = now
	return s
}

// Punch implements workday.WorkdayService.
func (s *WorkdayServiceImpl) Punch(ctx context.Context, req workday.PunchRequest) (workday.PunchOutcome, error) {
	username, err := jwt.UsernameFromContext(ctx)
	if err != nil {
		return workday.PunchOutcome{}, err
	}

	now := s.now()
	ledger, err := s.loadDay(ctx, username, timeutil.DateKey(now))
	if err != nil {
		return workday.PunchOutcome{}, err
	}

	punch := workday.NewPunch(workday.PunchType(req.Type), now)
	if err := s.validatePunch(ledger, punch); err != nil {
		return workday.PunchOutcome{}, err
	}

	if s.policy.IsOvertime(punch.Type, now) {
		punch.IsOvertime = true
		held := s.pending.Put(username, punch)
		return workday.PunchOutcome{Pending: pendingResponse(held)}, nil
	}

	day, err := s.commit(ctx, username, ledger, punch, now)
	if err != nil {
		return workday.PunchOutcome{}, err
	}
	return workday.PunchOutcome{Day: &day}, nil
}

// PunchManual implements workday.WorkdayService.
func (s *WorkdayServiceImpl) PunchManual(ctx context.Context, req workday.ManualPunchRequest) (workday.PunchOutcome, error) {
	username, err := jwt.UsernameFromContext(ctx)
	if err != nil {
		return workday.PunchOutcome{}, err
	}

	now := s.now()
	at, err := clockOnDay(now, req.Time)
	if err != nil {
		return workday.PunchOutcome{}, err
	}

	ledger, err := s.loadDay(ctx, username, timeutil.DateKey(now))
	if err != nil {
		return workday.PunchOutcome{}, err
	}

	punch := workday.NewPunch(workday.PunchType(req.Type), at)
	if err := s.validatePunch(ledger, punch); err != nil {
		return workday.PunchOutcome{}, err
	}

	if s.policy.IsOvertime(punch.Type, at) {
		punch.IsOvertime = true
		held := s.pending.Put(username, punch)
		return workday.PunchOutcome{Pending: pendingResponse(held)}, nil
	}

	day, err := s.commit(ctx, username, ledger, punch, now)
	if err != nil {
		return workday.PunchOutcome{}, err
	}
	return workday.PunchOutcome{Day: &day}, nil
}

// ConfirmOvertime implements workday.WorkdayService.
func (s *WorkdayServiceImpl) ConfirmOvertime(ctx context.Context, req workday.ConfirmOvertimeRequest) (workday.DayResponse, error) {
	username, err := jwt.UsernameFromContext(ctx)
	if err != nil {
		return workday.DayResponse{}, err
	}

	held, err := s.pending.Take(username, req.PendingID)
	if err != nil {
		return workday.DayResponse{}, err
	}

	punch := held.Punch
	punch.IsOvertime = true
	punch.Reason = workday.Reason(req.Reason)
	punch.Description = req.Description

	ledger, err := s.loadDay(ctx, username, timeutil.DateKey(punch.Time))
	if err != nil {
		return workday.DayResponse{}, err
	}
	// The ledger may have moved while the punch was held; re-validate before
	// committing.
	if err := s.validatePunch(ledger, punch); err != nil {
		return workday.DayResponse{}, err
	}

	return s.commit(ctx, username, ledger, punch, s.now())
}

// CancelPending implements workday.WorkdayService.
func (s *WorkdayServiceImpl) CancelPending(ctx context.Context, req workday.CancelPendingRequest) error {
	username, err := jwt.UsernameFromContext(ctx)
	if err != nil {
		return err
	}
	return s.pending.Drop(username, req.PendingID)
}

// GetToday implements workday.WorkdayService.
func (s *WorkdayServiceImpl) GetToday(ctx context.Context) (workday.DayResponse, error) {
	username, err := jwt.UsernameFromContext(ctx)
	if err != nil {
		return workday.DayResponse{}, err
	}

	now := s.now()
	ledger, err := s.loadDay(ctx, username, timeutil.DateKey(now))
	if err != nil {
		return workday.DayResponse{}, err
	}
	return s.dayResponse(ledger, now), nil
}

// GetDay implements workday.WorkdayService.
func (s *WorkdayServiceImpl) GetDay(ctx context.Context, date string) (workday.DayResponse, error) {
	username, err := jwt.UsernameFromContext(ctx)
	if err != nil {
		return workday.DayResponse{}, err
	}

	ledger, err := s.WorkdayRepository.GetDay(ctx, username, date)
	if err != nil {
		return workday.DayResponse{}, err
	}
	return s.dayResponse(ledger, time.Time{}), nil
}

// EditDay implements workday.WorkdayService.
func (s *WorkdayServiceImpl) EditDay(ctx context.Context, req workday.EditDayRequest) (workday.DayResponse, error) {
	username, err := jwt.UsernameFromContext(ctx)
	if err != nil {
		return workday.DayResponse{}, err
	}

	day, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		return workday.DayResponse{}, fmt.Errorf("failed to parse date: %w", err)
	}

	// Rebuild the ledger from scratch. Edited entries carry no overtime
	// metadata; a day correction is not an overtime claim.
	ledger := workday.NewDayLedger(req.Date)
	for _, e := range req.Entries {
		at, err := clockOnDay(day, e.Time)
		if err != nil {
			return workday.DayResponse{}, err
		}
		ledger.Apply(workday.NewPunch(workday.PunchType(e.Type), at))
	}

	if err := workday.ValidateOrder(ledger.Entries); err != nil {
		return workday.DayResponse{}, err
	}
	if err := checkLunchGap(&ledger); err != nil {
		return workday.DayResponse{}, err
	}

	ledger.Recompute()
	if err := s.WorkdayRepository.SaveDay(ctx, username, ledger); err != nil {
		return workday.DayResponse{}, err
	}
	return s.dayResponse(ledger, time.Time{}), nil
}

// loadDay fetches a ledger, treating a missing day as an empty one.
func (s *WorkdayServiceImpl) loadDay(ctx context.Context, username, date string) (workday.DayLedger, error) {
	ledger, err := s.WorkdayRepository.GetDay(ctx, username, date)
	if err != nil {
		if errors.Is(err, workday.ErrDayNotFound) {
			return workday.NewDayLedger(date), nil
		}
		return workday.DayLedger{}, err
	}
	return ledger, nil
}

// validatePunch checks what committing p onto the ledger would produce:
// chronological order of the whole sequence and the minimum lunch duration.
func (s *WorkdayServiceImpl) validatePunch(ledger workday.DayLedger, p workday.Punch) error {
	if !p.Type.IsValid() {
		return workday.ErrInvalidPunchType
	}

	trial := workday.DayLedger{Date: ledger.Date, Entries: make([]workday.Punch, len(ledger.Entries))}
	copy(trial.Entries, ledger.Entries)
	trial.Apply(p)

	if err := workday.ValidateOrder(trial.Entries); err != nil {
		return err
	}
	return checkLunchGap(&trial)
}

// checkLunchGap enforces the minimum lunch duration between lunch_out and
// lunch_back when both are present.
func checkLunchGap(ledger *workday.DayLedger) error {
	lunchOut := ledger.Find(workday.PunchLunchOut)
	lunchBack := ledger.Find(workday.PunchLunchBack)
	if lunchOut == nil || lunchBack == nil {
		return nil
	}
	earliest := lunchOut.Time.Add(workday.MinLunchMinutes * time.Minute)
	if lunchBack.Time.Before(earliest) {
		return &workday.LunchTooShortError{EarliestReturn: earliest}
	}
	return nil
}

// commit applies the punch, recomputes the stored totals and persists the day.
func (s *WorkdayServiceImpl) commit(ctx context.Context, username string, ledger workday.DayLedger, p workday.Punch, now time.Time) (workday.DayResponse, error) {
	ledger.Apply(p)
	ledger.Recompute()
	if err := s.WorkdayRepository.SaveDay(ctx, username, ledger); err != nil {
		return workday.DayResponse{}, fmt.Errorf("failed to save day: %w", err)
	}
	return s.dayResponse(ledger, now), nil
}

// dayResponse renders a ledger. A non-zero now adds live worked time and the
// exit estimates; a zero now renders stored totals only.
func (s *WorkdayServiceImpl) dayResponse(ledger workday.DayLedger, now time.Time) workday.DayResponse {
	anchor := now
	if anchor.IsZero() {
		if t, err := time.ParseInLocation("2006-01-02", ledger.Date, time.Local); err == nil {
			anchor = t
		} else {
			anchor = s.now()
		}
	}

	worked := ledger.WorkedMinutes
	if !now.IsZero() {
		worked = ledger.WorkedMinutesAt(now)
	}

	required := s.policy.RequiredMinutes(anchor)
	remaining := required - worked
	if remaining < 0 {
		remaining = 0
	}
	overtime := worked - required
	if overtime < 0 {
		overtime = 0
	}

	resp := workday.DayResponse{
		Date:             ledger.Date,
		State:            string(ledger.State()),
		Entries:          punchEntries(ledger.Entries),
		WorkedMinutes:    worked,
		WorkedDisplay:    timeutil.FormatMinutes(worked),
		RequiredMinutes:  required,
		RemainingMinutes: remaining,
		OvertimeMinutes:  overtime,
		HadLunchOut:      ledger.Find(workday.PunchLunchOut) != nil,
	}

	if !now.IsZero() {
		s.addExitEstimate(&resp, ledger, now, remaining)
	}
	return resp
}

// addExitEstimate fills EstimatedExit or ExitWindow for a live day.
// Working on a Friday projects the exit from the remaining minutes plus the
// short-break allowance; during lunch the exit range assumes a 40 to 100
// minute break; after lunch the projection is direct. A regular weekday
// before lunch gets no estimate.
func (s *WorkdayServiceImpl) addExitEstimate(resp *workday.DayResponse, ledger workday.DayLedger, now time.Time, remaining int) {
	switch ledger.State() {
	case workday.StateIn:
		if ledger.IsFriday() {
			est := timeutil.ClockHHMM(now.Add(time.Duration(remaining+workday.ShortBreakMinutes) * time.Minute))
			resp.EstimatedExit = &est
		}
	case workday.StateLunchOut:
		lunchOut := ledger.Find(workday.PunchLunchOut)
		if lunchOut == nil {
			return
		}
		rem := time.Duration(remaining) * time.Minute
		resp.ExitWindow = &workday.WindowResponse{
			From: timeutil.ClockHHMM(lunchOut.Time.Add(workday.MinLunchMinutes*time.Minute + rem)),
			To:   timeutil.ClockHHMM(lunchOut.Time.Add(100*time.Minute + rem)),
		}
	case workday.StateLunchBack:
		est := timeutil.ClockHHMM(now.Add(time.Duration(remaining) * time.Minute))
		resp.EstimatedExit = &est
	}
}

func punchEntries(entries []workday.Punch) []workday.PunchEntryResponse {
	out := make([]workday.PunchEntryResponse, 0, len(entries))
	for _, e := range entries {
		entry := workday.PunchEntryResponse{
			Type:       string(e.Type),
			Label:      workday.PunchLabels[e.Type],
			Time:       timeutil.ClockHHMM(e.Time),
			IsOvertime: e.IsOvertime,
		}
		if e.IsOvertime {
			entry.Reason = string(e.Reason)
			entry.ReasonLabel = e.Reason.Label()
			entry.Description = e.Description
		}
		out = append(out, entry)
	}
	return out
}

func pendingResponse(held pendingPunch) *workday.PendingOvertimeResponse {
	reasons := make(map[string]string, len(workday.ReasonLabels))
	for r, label := range workday.ReasonLabels {
		reasons[string(r)] = label
	}
	return &workday.PendingOvertimeResponse{
		PendingID: held.ID,
		Type:      string(held.Punch.Type),
		Time:      held.Punch.Time.Format(time.RFC3339),
		ExpiresAt: held.ExpiresAt.Format(time.RFC3339),
		Reasons:   reasons,
	}
}

// clockOnDay combines an HH:MM string with day's calendar date.
func clockOnDay(day time.Time, clock string) (time.Time, error) {
	t, err := time.ParseInLocation("15:04", clock, day.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse clock time: %w", err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}
