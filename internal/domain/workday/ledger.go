package workday

import (
	"sort"
	"time"
)

// ShortBreakMinutes is the implicit short-break allowance deducted from a
// worked day once an entry exists and the day is a Friday or had a lunch-out.
const ShortBreakMinutes = 20

// NewDayLedger returns an empty ledger for the given local calendar day.
func NewDayLedger(date string) DayLedger {
	return DayLedger{Date: date, Entries: []Punch{}}
}

// sortEntries orders punches by timestamp ascending.
func sortEntries(entries []Punch) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Time.Before(entries[j].Time)
	})
}

// ValidateOrder checks that the punches, sorted by timestamp, have types
// non-decreasing in the fixed order enter < lunch_out < lunch_back < exit.
func ValidateOrder(entries []Punch) error {
	sorted := make([]Punch, len(entries))
	copy(sorted, entries)
	sortEntries(sorted)

	last := 0
	for _, e := range sorted {
		if !e.Type.IsValid() {
			return ErrInvalidPunchType
		}
		if e.Type.Order() < last {
			return ErrPunchOrder
		}
		last = e.Type.Order()
	}
	return nil
}

// Apply inserts a punch, replacing any prior punch of the same type
// (last write wins), and re-sorts the entries by timestamp.
func (d *DayLedger) Apply(p Punch) {
	for i, e := range d.Entries {
		if e.Type == p.Type {
			d.Entries = append(d.Entries[:i], d.Entries[i+1:]...)
			break
		}
	}
	d.Entries = append(d.Entries, p)
	sortEntries(d.Entries)
}

// Find returns the punch of the given type, or nil.
func (d *DayLedger) Find(pt PunchType) *Punch {
	for i := range d.Entries {
		if d.Entries[i].Type == pt {
			return &d.Entries[i]
		}
	}
	return nil
}

// State derives the session state from the last punch in sorted order.
// An empty day is out.
func (d *DayLedger) State() State {
	if len(d.Entries) == 0 {
		return StateOut
	}
	sortEntries(d.Entries)
	return NextState(StateOut, d.Entries[len(d.Entries)-1].Type)
}

// dayAnchor is the reference time used to decide the ledger's weekday:
// the first entry if any, otherwise the ledger date itself.
func (d *DayLedger) dayAnchor() time.Time {
	if len(d.Entries) > 0 {
		return d.Entries[0].Time
	}
	t, err := time.ParseInLocation("2006-01-02", d.Date, time.Local)
	if err != nil {
		return time.Now()
	}
	return t
}

// IsFriday reports whether the ledger's day is a Friday.
func (d *DayLedger) IsFriday() bool {
	return d.dayAnchor().Weekday() == time.Friday
}

// Recompute recalculates WorkedMinutes and HadLunchOut from the closed
// punch pairs only. This is the value persisted with the ledger; an open
// live session contributes nothing here.
func (d *DayLedger) Recompute() {
	d.WorkedMinutes = d.workedMinutes(time.Time{})
	d.HadLunchOut = d.Find(PunchLunchOut) != nil
}

// WorkedMinutesAt returns the worked minutes including the open live period
// up to now, when the day's state is in or lunch_back. Display only; it does
// not mutate the ledger.
func (d *DayLedger) WorkedMinutesAt(now time.Time) int {
	return d.workedMinutes(now)
}

// workedMinutes walks the sorted punches accumulating (close − open) over
// matched pairs. A non-zero now closes a dangling open period when the
// session state is live. The short-break allowance applies once the day had
// an enter punch and either is a Friday or had a lunch-out.
func (d *DayLedger) workedMinutes(now time.Time) int {
	sortEntries(d.Entries)

	var worked time.Duration
	var periodStart time.Time
	open := false

	for _, e := range d.Entries {
		switch e.Type {
		case PunchEnter, PunchLunchBack:
			periodStart = e.Time
			open = true
		case PunchLunchOut, PunchExit:
			if open {
				worked += e.Time.Sub(periodStart)
				open = false
			}
		}
	}

	if open && !now.IsZero() && d.State().Live() {
		worked += now.Sub(periodStart)
	}

	minutes := int(worked.Minutes())
	if minutes < 0 {
		minutes = 0
	}

	hadEnter := d.Find(PunchEnter) != nil
	hadLunchOut := d.Find(PunchLunchOut) != nil
	if hadEnter && (d.IsFriday() || hadLunchOut) {
		minutes -= ShortBreakMinutes
		if minutes < 0 {
			minutes = 0
		}
	}
	return minutes
}
