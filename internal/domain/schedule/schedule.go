package schedule

import (
	"fmt"
	"time"

	"github.com/fichador/fichador-backend/internal/domain/workday"
)

// DayClass selects the schedule variant for a calendar day.
type DayClass string

const (
	DayClassWeekday DayClass = "weekday"
	DayClassFriday  DayClass = "friday"
)

// ClockTime is a wall-clock time of day.
type ClockTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// MinuteOfDay converts the clock time to minutes since midnight.
func (c ClockTime) MinuteOfDay() int {
	return c.Hour*60 + c.Minute
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// WeekdaySchedule is the immutable configuration for one day-class:
// allowed entry/exit windows, the mandatory-presence window, lunch windows
// (absent on Fridays) and the required total minutes for the day.
type WeekdaySchedule struct {
	MinEntry       ClockTime `json:"min_entry"`
	MaxEntry       ClockTime `json:"max_entry"`
	MinExit        ClockTime `json:"min_exit"`
	MaxExit        ClockTime `json:"max_exit"`
	MandatoryStart ClockTime `json:"mandatory_start"`
	MandatoryEnd   ClockTime `json:"mandatory_end"`

	HasLunchBreak bool      `json:"has_lunch_break"`
	LunchOutMin   ClockTime `json:"lunch_out_min,omitzero"`
	LunchOutMax   ClockTime `json:"lunch_out_max,omitzero"`
	LunchBackMin  ClockTime `json:"lunch_back_min,omitzero"`
	LunchBackMax  ClockTime `json:"lunch_back_max,omitzero"`

	RequiredMinutes int `json:"required_minutes"`
}

// Policy holds the schedule per day-class and classifies punches as
// in-window or overtime. Stateless; pure function of config and input.
type Policy struct {
	Weekday WeekdaySchedule `json:"weekday"`
	Friday  WeekdaySchedule `json:"friday"`
}

// DefaultPolicy is the shipped schedule: 8.5h regular weekdays with a lunch
// break, 6h Fridays without one.
func DefaultPolicy() Policy {
	return Policy{
		Weekday: WeekdaySchedule{
			MinEntry:        ClockTime{7, 0},
			MaxEntry:        ClockTime{9, 0},
			MinExit:         ClockTime{17, 0},
			MaxExit:         ClockTime{19, 0},
			MandatoryStart:  ClockTime{9, 0},
			MandatoryEnd:    ClockTime{17, 0},
			HasLunchBreak:   true,
			LunchOutMin:     ClockTime{13, 50},
			LunchOutMax:     ClockTime{14, 50},
			LunchBackMin:    ClockTime{14, 30},
			LunchBackMax:    ClockTime{15, 30},
			RequiredMinutes: 510,
		},
		Friday: WeekdaySchedule{
			MinEntry:        ClockTime{7, 30},
			MaxEntry:        ClockTime{8, 30},
			MinExit:         ClockTime{13, 50},
			MaxExit:         ClockTime{14, 50},
			MandatoryStart:  ClockTime{8, 30},
			MandatoryEnd:    ClockTime{13, 50},
			RequiredMinutes: 360,
		},
	}
}

// ClassFor returns the day-class for a timestamp's weekday. Weekends fall
// through to the weekday rules; see DESIGN.md.
func ClassFor(t time.Time) DayClass {
	if t.Weekday() == time.Friday {
		return DayClassFriday
	}
	return DayClassWeekday
}

// ForDate returns the schedule governing the given timestamp's day.
func (p Policy) ForDate(t time.Time) WeekdaySchedule {
	if ClassFor(t) == DayClassFriday {
		return p.Friday
	}
	return p.Weekday
}

// ForClass returns the schedule for an explicit day-class.
func (p Policy) ForClass(c DayClass) WeekdaySchedule {
	if c == DayClassFriday {
		return p.Friday
	}
	return p.Weekday
}

// RequiredMinutes returns the required total for the timestamp's day-class.
func (p Policy) RequiredMinutes(t time.Time) int {
	return p.ForDate(t).RequiredMinutes
}

// IsOvertime reports whether a punch of the given type at t falls outside
// the configured [min,max] window for that type. Lunch punches on Fridays
// are never flagged; Friday has no lunch break.
func (p Policy) IsOvertime(pt workday.PunchType, t time.Time) bool {
	sched := p.ForDate(t)
	minute := t.Hour()*60 + t.Minute()

	switch pt {
	case workday.PunchEnter:
		return minute < sched.MinEntry.MinuteOfDay() || minute > sched.MaxEntry.MinuteOfDay()
	case workday.PunchExit:
		return minute < sched.MinExit.MinuteOfDay() || minute > sched.MaxExit.MinuteOfDay()
	case workday.PunchLunchOut:
		if !sched.HasLunchBreak {
			return false
		}
		return minute < sched.LunchOutMin.MinuteOfDay() || minute > sched.LunchOutMax.MinuteOfDay()
	case workday.PunchLunchBack:
		if !sched.HasLunchBreak {
			return false
		}
		return minute < sched.LunchBackMin.MinuteOfDay() || minute > sched.LunchBackMax.MinuteOfDay()
	}
	return false
}
