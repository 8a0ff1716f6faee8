// Package history rolls daily ledgers into weekly and monthly views.
// It is purely additive over worked minutes; a missing day counts as zero.
package history

import (
	"sort"
	"time"

	"github.com/fichador/fichador-backend/internal/domain/workday"
	"github.com/fichador/fichador-backend/internal/pkg/timeutil"
)

// DayRecord is one day in an aggregated view.
type DayRecord struct {
	Date          string                       `json:"date"`
	Entries       []workday.PunchEntryResponse `json:"entries"`
	WorkedMinutes int                          `json:"worked_minutes"`
	WorkedDisplay string                       `json:"worked_display"`
}

// WeekSummary is one Monday-start working week (Mon..Fri).
type WeekSummary struct {
	WeekStart    string      `json:"week_start"`
	Days         []DayRecord `json:"days"`
	TotalMinutes int         `json:"total_minutes"`
	TotalDisplay string      `json:"total_display"`
}

// WeekGroup is the slice of a month falling in one ISO week.
type WeekGroup struct {
	ISOWeek      string      `json:"iso_week"`
	Days         []DayRecord `json:"days"`
	TotalMinutes int         `json:"total_minutes"`
	TotalDisplay string      `json:"total_display"`
}

// MonthSummary is a month's saved days grouped by ISO week number.
type MonthSummary struct {
	Month        string      `json:"month"`
	Weeks        []WeekGroup `json:"weeks"`
	TotalMinutes int         `json:"total_minutes"`
	TotalDisplay string      `json:"total_display"`
}

func dayRecord(date string, ledger *workday.DayLedger) DayRecord {
	rec := DayRecord{Date: date, Entries: []workday.PunchEntryResponse{}}
	if ledger == nil {
		rec.WorkedDisplay = timeutil.FormatMinutes(0)
		return rec
	}
	rec.WorkedMinutes = ledger.WorkedMinutes
	rec.WorkedDisplay = timeutil.FormatMinutes(ledger.WorkedMinutes)
	for _, e := range ledger.Entries {
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
		rec.Entries = append(rec.Entries, entry)
	}
	return rec
}

// AggregateWeek builds the Mon..Fri view of the week starting at monday.
// Days absent from the map appear with zero worked minutes.
func AggregateWeek(monday time.Time, days workday.MonthHistory) WeekSummary {
	summary := WeekSummary{WeekStart: timeutil.DateKey(monday)}
	for _, date := range timeutil.DaysOfWeek(monday) {
		if ledger, ok := days[date]; ok {
			summary.Days = append(summary.Days, dayRecord(date, &ledger))
			summary.TotalMinutes += ledger.WorkedMinutes
		} else {
			summary.Days = append(summary.Days, dayRecord(date, nil))
		}
	}
	summary.TotalDisplay = timeutil.FormatMinutes(summary.TotalMinutes)
	return summary
}

// AggregateMonth groups a month's saved days by ISO week number, days and
// weeks in ascending date order.
func AggregateMonth(month string, days workday.MonthHistory) MonthSummary {
	summary := MonthSummary{Month: month, Weeks: []WeekGroup{}}

	dates := make([]string, 0, len(days))
	for date := range days {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	groups := make(map[string]*WeekGroup)
	var order []string
	for _, date := range dates {
		t, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			continue
		}
		label := timeutil.ISOWeekLabel(t)
		g, ok := groups[label]
		if !ok {
			g = &WeekGroup{ISOWeek: label}
			groups[label] = g
			order = append(order, label)
		}
		ledger := days[date]
		g.Days = append(g.Days, dayRecord(date, &ledger))
		g.TotalMinutes += ledger.WorkedMinutes
		summary.TotalMinutes += ledger.WorkedMinutes
	}

	for _, label := range order {
		g := groups[label]
		g.TotalDisplay = timeutil.FormatMinutes(g.TotalMinutes)
		summary.Weeks = append(summary.Weeks, *g)
	}
	summary.TotalDisplay = timeutil.FormatMinutes(summary.TotalMinutes)
	return summary
}
