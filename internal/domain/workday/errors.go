package workday

import (
	"errors"
	"fmt"
	"time"
)

// Workday domain errors
var (
	ErrInvalidPunchType = errors.New("unknown punch type")
	ErrPunchOrder       = errors.New("punch sequence is out of chronological order")
	ErrDayNotFound      = errors.New("no record for the requested day")

	// Overtime confirmation errors
	ErrReasonRequired  = errors.New("an overtime reason is required")
	ErrUnknownReason   = errors.New("overtime reason is not one of the accepted values")
	ErrPendingNotFound = errors.New("no pending action with that id")
	ErrPendingExpired  = errors.New("pending action expired before confirmation")
)

// MinLunchMinutes is the minimum elapsed time between lunch_out and lunch_back.
const MinLunchMinutes = 40

// LunchTooShortError rejects a lunch_back before the minimum lunch duration,
// reporting the earliest valid return time.
type LunchTooShortError struct {
	EarliestReturn time.Time
}

func (e *LunchTooShortError) Error() string {
	return fmt.Sprintf("lunch break under %d minutes; earliest return at %s",
		MinLunchMinutes, e.EarliestReturn.Format("15:04"))
}
