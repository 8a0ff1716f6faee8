package workday

import (
	"context"
)

// WorkdayRepository persists day ledgers as key-value records keyed by
// (username, data_key). Saving a day also folds it into the owning month
// record; the month record is display-only and never authoritative.
type WorkdayRepository interface {
	// SaveDay upserts workday_<date> and folds the ledger into month_<YYYY-MM>.
	SaveDay(ctx context.Context, username string, ledger DayLedger) error

	// GetDay retrieves the ledger for a local calendar day.
	// Returns ErrDayNotFound when no record exists.
	GetDay(ctx context.Context, username string, date string) (DayLedger, error)

	// GetMonth retrieves the folded month history ("2006-01" key).
	// A missing month yields an empty history, not an error.
	GetMonth(ctx context.Context, username string, month string) (MonthHistory, error)

	// ListRecords returns every persisted record for a user, for remote sync.
	ListRecords(ctx context.Context, username string) ([]Record, error)
}
