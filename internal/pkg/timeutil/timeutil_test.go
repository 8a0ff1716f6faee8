package timeutil

import (
	"testing"
	"time"
)

func TestMonday(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want string
	}{
		{"wednesday", time.Date(2025, 9, 3, 15, 30, 0, 0, time.UTC), "2025-09-01"},
		{"monday itself", time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), "2025-09-01"},
		{"sunday belongs to prior week", time.Date(2025, 9, 7, 10, 0, 0, 0, time.UTC), "2025-09-01"},
		{"friday", time.Date(2025, 9, 5, 23, 59, 0, 0, time.UTC), "2025-09-01"},
	}
	for _, c := range cases {
		got := Monday(c.in)
		if DateKey(got) != c.want {
			t.Errorf("%s: Monday(%s) = %s, want %s", c.name, DateKey(c.in), DateKey(got), c.want)
		}
		if got.Hour() != 0 || got.Minute() != 0 {
			t.Errorf("%s: Monday must be midnight, got %s", c.name, got)
		}
	}
}

func TestISOWeekLabel(t *testing.T) {
	// 2026-01-01 falls in ISO week 2026-W01; 2027-01-01 in 2026-W53.
	if got := ISOWeekLabel(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)); got != "2026-W01" {
		t.Errorf("ISOWeekLabel(2026-01-01) = %s, want 2026-W01", got)
	}
	if got := ISOWeekLabel(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)); got != "2026-W53" {
		t.Errorf("ISOWeekLabel(2027-01-01) = %s, want 2026-W53", got)
	}
}

func TestFormatMinutes(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{450, "07:30"},
		{510, "08:30"},
		{61, "01:01"},
		{-5, "00:00"},
	}
	for _, c := range cases {
		if got := FormatMinutes(c.in); got != c.want {
			t.Errorf("FormatMinutes(%d) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestFormatSignedMinutes(t *testing.T) {
	if got := FormatSignedMinutes(75); got != "+01:15" {
		t.Errorf("FormatSignedMinutes(75) = %s, want +01:15", got)
	}
	if got := FormatSignedMinutes(-30); got != "-00:30" {
		t.Errorf("FormatSignedMinutes(-30) = %s, want -00:30", got)
	}
	if got := FormatSignedMinutes(0); got != "+00:00" {
		t.Errorf("FormatSignedMinutes(0) = %s, want +00:00", got)
	}
}

func TestDaysOfWeek(t *testing.T) {
	monday := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	days := DaysOfWeek(monday)
	want := []string{"2025-09-01", "2025-09-02", "2025-09-03", "2025-09-04", "2025-09-05"}
	if len(days) != len(want) {
		t.Fatalf("DaysOfWeek returned %d days, want %d", len(days), len(want))
	}
	for i := range want {
		if days[i] != want[i] {
			t.Errorf("DaysOfWeek[%d] = %s, want %s", i, days[i], want[i])
		}
	}
}
