package workday

import (
	"time"
)

// PunchType identifies one of the four daily clock events.
type PunchType string

const (
	PunchEnter     PunchType = "enter"
	PunchLunchOut  PunchType = "lunch_out"
	PunchLunchBack PunchType = "lunch_back"
	PunchExit      PunchType = "exit"
)

// order positions punch types in their only legal chronological sequence.
var punchOrder = map[PunchType]int{
	PunchEnter:     1,
	PunchLunchOut:  2,
	PunchLunchBack: 3,
	PunchExit:      4,
}

func (p PunchType) IsValid() bool {
	_, ok := punchOrder[p]
	return ok
}

// Order returns the chronological rank of the punch type (enter=1 .. exit=4).
func (p PunchType) Order() int {
	return punchOrder[p]
}

// Labels used for history and export rendering.
var PunchLabels = map[PunchType]string{
	PunchEnter:     "Entrada",
	PunchLunchOut:  "Salida comida",
	PunchLunchBack: "Vuelta comida",
	PunchExit:      "Salida",
}

// State is the session state for a day, driven by the last punch in sorted order.
type State string

const (
	StateOut       State = "out"
	StateIn        State = "in"
	StateLunchOut  State = "lunch_out"
	StateLunchBack State = "lunch_back"
)

// NextState returns the state after applying a punch of type p.
// The transition ignores the current state: the last punch alone
// determines the session state.
func NextState(_ State, p PunchType) State {
	switch p {
	case PunchEnter:
		return StateIn
	case PunchLunchOut:
		return StateLunchOut
	case PunchLunchBack:
		return StateLunchBack
	case PunchExit:
		return StateOut
	}
	return StateOut
}

// Live reports whether the state accrues worked time against the open clock.
func (s State) Live() bool {
	return s == StateIn || s == StateLunchBack
}

// Reason is a closed enumeration of accepted overtime justifications.
// ReasonOther is the free-text escape hatch.
type Reason string

const (
	ReasonUrgentMeeting     Reason = "reunion_urgente"
	ReasonCriticalProject   Reason = "proyecto_critico"
	ReasonTechnicalProblem  Reason = "problema_tecnico"
	ReasonImportantCustomer Reason = "cliente_importante"
	ReasonTraining          Reason = "formacion"
	ReasonOther             Reason = "otro"
)

var ReasonLabels = map[Reason]string{
	ReasonUrgentMeeting:     "Reunión urgente",
	ReasonCriticalProject:   "Proyecto crítico",
	ReasonTechnicalProblem:  "Problema técnico",
	ReasonImportantCustomer: "Atención cliente importante",
	ReasonTraining:          "Formación",
	ReasonOther:             "Otro",
}

func (r Reason) IsValid() bool {
	_, ok := ReasonLabels[r]
	return ok
}

// Label returns the display text for a reason, falling back to the raw value
// for records persisted before the enumeration was closed.
func (r Reason) Label() string {
	if label, ok := ReasonLabels[r]; ok {
		return label
	}
	return string(r)
}

// Punch is a single clock event. JSON field names match the persisted record
// format (workday_<date> payloads).
type Punch struct {
	Type        PunchType `json:"type"`
	Time        time.Time `json:"time"`
	Hour        int       `json:"hour"`
	Minute      int       `json:"minute"`
	IsOvertime  bool      `json:"isOvertime"`
	Reason      Reason    `json:"reason,omitempty"`
	Description string    `json:"description,omitempty"`
}

// NewPunch builds a punch at t with the hour/minute snapshot the persisted
// format carries alongside the full timestamp.
func NewPunch(pt PunchType, t time.Time) Punch {
	return Punch{
		Type:   pt,
		Time:   t,
		Hour:   t.Hour(),
		Minute: t.Minute(),
	}
}

// DayLedger holds one calendar day's ordered punches and derived totals.
// Date uses the local calendar day ("2006-01-02").
type DayLedger struct {
	Date          string  `json:"date"`
	Entries       []Punch `json:"entries"`
	WorkedMinutes int     `json:"workedMinutes"`
	HadLunchOut   bool    `json:"hadLunchOut"`
}

// MonthHistory maps date ("2006-01-02") to that day's ledger. It is derived
// by folding daily saves and used only for display and export.
type MonthHistory map[string]DayLedger

// Record is one persisted key-value row, as stored locally and mirrored to
// the remote sheet: workday_<YYYY-MM-DD> or month_<YYYY-MM>.
type Record struct {
	DataKey string
	Data    []byte
}

const (
	WorkdayKeyPrefix = "workday_"
	MonthKeyPrefix   = "month_"
)

// WorkdayKey returns the record key for a day ledger.
func WorkdayKey(date string) string { return WorkdayKeyPrefix + date }

// MonthKey returns the record key for a month ("2006-01").
func MonthKey(month string) string { return MonthKeyPrefix + month }
