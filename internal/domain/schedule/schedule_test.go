package schedule

import (
	"testing"
	"time"

	"github.com/fichador/fichador-backend/internal/domain/workday"
	"github.com/stretchr/testify/assert"
)

// 2026-09-02 is a Wednesday, 2026-09-04 a Friday, 2026-09-05 a Saturday.
func clock(date string, hour, minute int) time.Time {
	day, _ := time.ParseInLocation("2006-01-02", date, time.Local)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.Local)
}

func TestClassFor(t *testing.T) {
	assert.Equal(t, DayClassWeekday, ClassFor(clock("2026-09-02", 12, 0)))
	assert.Equal(t, DayClassFriday, ClassFor(clock("2026-09-04", 12, 0)))
	// Weekends use the weekday rules.
	assert.Equal(t, DayClassWeekday, ClassFor(clock("2026-09-05", 12, 0)))
}

func TestRequiredMinutes(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, 510, p.RequiredMinutes(clock("2026-09-02", 12, 0)))
	assert.Equal(t, 360, p.RequiredMinutes(clock("2026-09-04", 12, 0)))
}

func TestIsOvertimeWeekdayEntry(t *testing.T) {
	p := DefaultPolicy()

	assert.False(t, p.IsOvertime(workday.PunchEnter, clock("2026-09-02", 8, 55)))
	assert.True(t, p.IsOvertime(workday.PunchEnter, clock("2026-09-02", 6, 50)))
	assert.True(t, p.IsOvertime(workday.PunchEnter, clock("2026-09-02", 9, 1)))

	// Window bounds are inclusive.
	assert.False(t, p.IsOvertime(workday.PunchEnter, clock("2026-09-02", 7, 0)))
	assert.False(t, p.IsOvertime(workday.PunchEnter, clock("2026-09-02", 9, 0)))
}

func TestIsOvertimeWeekdayExit(t *testing.T) {
	p := DefaultPolicy()

	assert.False(t, p.IsOvertime(workday.PunchExit, clock("2026-09-02", 17, 30)))
	assert.True(t, p.IsOvertime(workday.PunchExit, clock("2026-09-02", 16, 59)))
	assert.True(t, p.IsOvertime(workday.PunchExit, clock("2026-09-02", 19, 1)))
}

func TestIsOvertimeWeekdayLunch(t *testing.T) {
	p := DefaultPolicy()

	assert.False(t, p.IsOvertime(workday.PunchLunchOut, clock("2026-09-02", 14, 0)))
	assert.True(t, p.IsOvertime(workday.PunchLunchOut, clock("2026-09-02", 13, 49)))
	assert.False(t, p.IsOvertime(workday.PunchLunchBack, clock("2026-09-02", 15, 30)))
	assert.True(t, p.IsOvertime(workday.PunchLunchBack, clock("2026-09-02", 15, 31)))
}

func TestIsOvertimeFriday(t *testing.T) {
	p := DefaultPolicy()

	assert.False(t, p.IsOvertime(workday.PunchEnter, clock("2026-09-04", 8, 0)))
	assert.True(t, p.IsOvertime(workday.PunchEnter, clock("2026-09-04", 8, 31)))
	assert.False(t, p.IsOvertime(workday.PunchExit, clock("2026-09-04", 14, 0)))
	assert.True(t, p.IsOvertime(workday.PunchExit, clock("2026-09-04", 15, 0)))

	// Friday has no lunch break; lunch punches are never flagged.
	assert.False(t, p.IsOvertime(workday.PunchLunchOut, clock("2026-09-04", 10, 0)))
	assert.False(t, p.IsOvertime(workday.PunchLunchBack, clock("2026-09-04", 10, 30)))
}

func TestClockTimeString(t *testing.T) {
	assert.Equal(t, "07:00", ClockTime{7, 0}.String())
	assert.Equal(t, "13:50", ClockTime{13, 50}.String())
	assert.Equal(t, 830, ClockTime{13, 50}.MinuteOfDay())
}
