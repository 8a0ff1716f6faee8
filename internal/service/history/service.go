package history

import (
	"context"
	"fmt"
	"time"

	"github.com/fichador/fichador-backend/internal/domain/history"
	"github.com/fichador/fichador-backend/internal/domain/schedule"
	"github.com/fichador/fichador-backend/internal/domain/workday"
	"github.com/fichador/fichador-backend/internal/pkg/jwt"
	"github.com/fichador/fichador-backend/internal/pkg/timeutil"
)

var exportHeader = []string{
	"Fecha",
	"Entrada",
	"Salida Comer",
	"Entrada Comer",
	"Salida",
	"Total",
	"Diferencia",
}

type HistoryServiceImpl struct {
	workday.WorkdayRepository
	policy schedule.Policy
}

func NewHistoryService(repo workday.WorkdayRepository, policy schedule.Policy) history.HistoryService {
	return &HistoryServiceImpl{
		WorkdayRepository: repo,
		policy:            policy,
	}
}

// GetWeek implements history.HistoryService.
func (h *HistoryServiceImpl) GetWeek(ctx context.Context, date string) (history.WeekSummary, error) {
	username, err := jwt.UsernameFromContext(ctx)
	if err != nil {
		return history.WeekSummary{}, err
	}

	monday, err := mondayOf(date)
	if err != nil {
		return history.WeekSummary{}, err
	}

	days, err := h.loadWeekDays(ctx, username, monday)
	if err != nil {
		return history.WeekSummary{}, err
	}
	return history.AggregateWeek(monday, days), nil
}

// GetMonth implements history.HistoryService.
func (h *HistoryServiceImpl) GetMonth(ctx context.Context, month string) (history.MonthSummary, error) {
	username, err := jwt.UsernameFromContext(ctx)
	if err != nil {
		return history.MonthSummary{}, err
	}

	days, err := h.WorkdayRepository.GetMonth(ctx, username, month)
	if err != nil {
		return history.MonthSummary{}, err
	}
	return history.AggregateMonth(month, days), nil
}

// ExportWeek implements history.HistoryService.
func (h *HistoryServiceImpl) ExportWeek(ctx context.Context, date string) ([][]string, error) {
	username, err := jwt.UsernameFromContext(ctx)
	if err != nil {
		return nil, err
	}

	monday, err := mondayOf(date)
	if err != nil {
		return nil, err
	}
	days, err := h.loadWeekDays(ctx, username, monday)
	if err != nil {
		return nil, err
	}

	rows := [][]string{append(append([]string{}, exportHeader...), "Total Semana")}
	totalMinutes := 0
	weekDays := timeutil.DaysOfWeek(monday)
	for i, dayKey := range weekDays {
		row := make([]string, len(exportHeader)+1)
		row[0] = dayKey

		if ledger, ok := days[dayKey]; ok && len(ledger.Entries) > 0 {
			fillExportRow(row, ledger, h.requiredFor(dayKey))
			totalMinutes += ledger.WorkedMinutes
		}
		if i == len(weekDays)-1 {
			row[7] = timeutil.FormatMinutes(totalMinutes)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ExportMonth implements history.HistoryService.
func (h *HistoryServiceImpl) ExportMonth(ctx context.Context, month string) ([][]string, error) {
	username, err := jwt.UsernameFromContext(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := h.GetMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	days, err := h.WorkdayRepository.GetMonth(ctx, username, month)
	if err != nil {
		return nil, err
	}

	rows := [][]string{append(append([]string{}, exportHeader...), "Total Mes")}
	for _, week := range summary.Weeks {
		for _, day := range week.Days {
			row := make([]string, len(exportHeader)+1)
			row[0] = day.Date
			if ledger, ok := days[day.Date]; ok && len(ledger.Entries) > 0 {
				fillExportRow(row, ledger, h.requiredFor(day.Date))
			}
			rows = append(rows, row)
		}
	}

	totals := make([]string, len(exportHeader)+1)
	totals[0] = "Total"
	totals[7] = timeutil.FormatMinutes(summary.TotalMinutes)
	rows = append(rows, totals)
	return rows, nil
}

// loadWeekDays merges the month records the Mon..Fri span touches. A week
// crossing a month boundary needs both.
func (h *HistoryServiceImpl) loadWeekDays(ctx context.Context, username string, monday time.Time) (workday.MonthHistory, error) {
	days, err := h.WorkdayRepository.GetMonth(ctx, username, timeutil.MonthKey(monday))
	if err != nil {
		return nil, err
	}

	friday := monday.AddDate(0, 0, 4)
	if timeutil.MonthKey(friday) != timeutil.MonthKey(monday) {
		next, err := h.WorkdayRepository.GetMonth(ctx, username, timeutil.MonthKey(friday))
		if err != nil {
			return nil, err
		}
		for date, ledger := range next {
			days[date] = ledger
		}
	}
	return days, nil
}

func (h *HistoryServiceImpl) requiredFor(date string) int {
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return h.policy.Weekday.RequiredMinutes
	}
	return h.policy.RequiredMinutes(t)
}

// fillExportRow renders one day into the fixed export columns. Overtime
// punches carry their reason label in parentheses.
func fillExportRow(row []string, ledger workday.DayLedger, requiredMinutes int) {
	columns := map[workday.PunchType]int{
		workday.PunchEnter:     1,
		workday.PunchLunchOut:  2,
		workday.PunchLunchBack: 3,
		workday.PunchExit:      4,
	}
	for _, e := range ledger.Entries {
		cell := fmt.Sprintf("%02d:%02d", e.Hour, e.Minute)
		if e.IsOvertime {
			cell += fmt.Sprintf(" (%s)", e.Reason.Label())
		}
		row[columns[e.Type]] = cell
	}
	row[5] = timeutil.FormatMinutes(ledger.WorkedMinutes)
	row[6] = timeutil.FormatSignedMinutes(ledger.WorkedMinutes - requiredMinutes)
}

func mondayOf(date string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
	}
	return timeutil.Monday(t), nil
}
