// Package memory provides mutex-guarded in-memory repositories, used by
// tests and by test-mode runs without a database.
package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/fichador/fichador-backend/internal/domain/workday"
)

type workdayRepository struct {
	mu sync.RWMutex
	// records[username][dataKey] = raw payload
	records map[string]map[string][]byte
}

func NewWorkdayRepository() workday.WorkdayRepository {
	return &workdayRepository{records: make(map[string]map[string][]byte)}
}

func (r *workdayRepository) bucket(username string) map[string][]byte {
	b, ok := r.records[username]
	if !ok {
		b = make(map[string][]byte)
		r.records[username] = b
	}
	return b
}

// SaveDay implements workday.WorkdayRepository.
func (r *workdayRepository) SaveDay(_ context.Context, username string, ledger workday.DayLedger) error {
	dayData, err := json.Marshal(ledger)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	b := r.bucket(username)
	b[workday.WorkdayKey(ledger.Date)] = dayData

	monthKey := workday.MonthKey(monthOf(ledger.Date))
	month := workday.MonthHistory{}
	if raw, ok := b[monthKey]; ok {
		_ = json.Unmarshal(raw, &month)
	}
	month[ledger.Date] = ledger
	monthData, err := json.Marshal(month)
	if err != nil {
		return err
	}
	b[monthKey] = monthData
	return nil
}

// GetDay implements workday.WorkdayRepository.
func (r *workdayRepository) GetDay(_ context.Context, username string, date string) (workday.DayLedger, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	raw, ok := r.records[username][workday.WorkdayKey(date)]
	if !ok {
		return workday.DayLedger{}, workday.ErrDayNotFound
	}

	var ledger workday.DayLedger
	if err := json.Unmarshal(raw, &ledger); err != nil {
		return workday.NewDayLedger(date), nil
	}
	if ledger.Date == "" {
		ledger.Date = date
	}
	if ledger.Entries == nil {
		ledger.Entries = []workday.Punch{}
	}
	return ledger, nil
}

// GetMonth implements workday.WorkdayRepository.
func (r *workdayRepository) GetMonth(_ context.Context, username string, month string) (workday.MonthHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	raw, ok := r.records[username][workday.MonthKey(month)]
	if !ok {
		return workday.MonthHistory{}, nil
	}

	history := workday.MonthHistory{}
	if err := json.Unmarshal(raw, &history); err != nil {
		return workday.MonthHistory{}, nil
	}
	return history, nil
}

// ListRecords implements workday.WorkdayRepository.
func (r *workdayRepository) ListRecords(_ context.Context, username string) ([]workday.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b := r.records[username]
	records := make([]workday.Record, 0, len(b))
	for key, raw := range b {
		data := make([]byte, len(raw))
		copy(data, raw)
		records = append(records, workday.Record{DataKey: key, Data: data})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].DataKey < records[j].DataKey })
	return records, nil
}

func monthOf(date string) string {
	if i := strings.LastIndex(date, "-"); i > 0 {
		return date[:i]
	}
	return date
}
