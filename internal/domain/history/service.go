package history

import (
	"context"
)

// HistoryService serves the aggregated views and their tabular exports for
// the authenticated user.
type HistoryService interface {
	GetWeek(ctx context.Context, date string) (WeekSummary, error)
	GetMonth(ctx context.Context, month string) (MonthSummary, error)

	// ExportWeek returns CSV-ready rows: header, one row per working day,
	// with the week total on the Friday row.
	ExportWeek(ctx context.Context, date string) ([][]string, error)

	// ExportMonth returns CSV-ready rows: header, one row per saved day,
	// and a final totals row.
	ExportMonth(ctx context.Context, month string) ([][]string, error)
}
