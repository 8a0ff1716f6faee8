// Package timeutil holds the small calendar helpers the workday and history
// code share: Monday-start weeks, ISO week labels and HH:MM formatting.
package timeutil

import (
	"fmt"
	"time"
)

// DateKey formats a time as the local calendar day key ("2006-01-02").
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// MonthKey formats a time as the month key ("2006-01").
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// Monday returns 00:00 of the Monday of the week containing t, in t's
// location. Sunday counts as the last day of the previous week.
func Monday(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	monday := t.AddDate(0, 0, -(wd - 1))
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, t.Location())
}

// ISOWeekLabel returns a label like "2026-W09".
func ISOWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FormatMinutes formats a minute count as HH:MM ("07:30").
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FormatSignedMinutes formats a minute delta as +HH:MM / -HH:MM.
func FormatSignedMinutes(minutes int) string {
	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%02d:%02d", sign, minutes/60, minutes%60)
}

// ClockHHMM formats a timestamp's wall-clock time as HH:MM.
func ClockHHMM(t time.Time) string {
	return t.Format("15:04")
}

// DaysOfWeek returns the five working-day keys (Mon..Fri) of the week
// starting at monday.
func DaysOfWeek(monday time.Time) []string {
	days := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		days = append(days, DateKey(monday.AddDate(0, 0, i)))
	}
	return days
}
