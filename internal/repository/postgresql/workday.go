package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fichador/fichador-backend/internal/domain/workday"
	"github.com/fichador/fichador-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// workdayRepository stores ledgers in the records(username, data_key, data)
// key-value table, the same shape the remote sheet uses, so sync is a plain
// row copy.
type workdayRepository struct {
	db *database.DB
}

func NewWorkdayRepository(db *database.DB) workday.WorkdayRepository {
	return &workdayRepository{db: db}
}

const upsertRecordSQL = `
	INSERT INTO records (username, data_key, data, updated_at)
	VALUES ($1, $2, $3, NOW())
	ON CONFLICT (username, data_key)
	DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
`

// SaveDay implements workday.WorkdayRepository.
func (r *workdayRepository) SaveDay(ctx context.Context, username string, ledger workday.DayLedger) error {
	dayData, err := json.Marshal(ledger)
	if err != nil {
		return fmt.Errorf("failed to marshal day ledger: %w", err)
	}

	monthKey := workday.MonthKey(monthOf(ledger.Date))

	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, upsertRecordSQL, username, workday.WorkdayKey(ledger.Date), dayData); err != nil {
			return fmt.Errorf("failed to upsert workday record: %w", err)
		}

		// Fold the day into its month record. The month record is display
		// only; a corrupt payload is replaced rather than surfaced.
		var raw []byte
		err := tx.QueryRow(ctx,
			`SELECT data FROM records WHERE username = $1 AND data_key = $2 FOR UPDATE`,
			username, monthKey,
		).Scan(&raw)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("failed to read month record: %w", err)
		}

		month := workday.MonthHistory{}
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &month)
		}
		month[ledger.Date] = ledger

		monthData, err := json.Marshal(month)
		if err != nil {
			return fmt.Errorf("failed to marshal month history: %w", err)
		}
		if _, err := tx.Exec(ctx, upsertRecordSQL, username, monthKey, monthData); err != nil {
			return fmt.Errorf("failed to upsert month record: %w", err)
		}
		return nil
	})
}

// GetDay implements workday.WorkdayRepository.
func (r *workdayRepository) GetDay(ctx context.Context, username string, date string) (workday.DayLedger, error) {
	var raw []byte
	err := r.db.QueryRow(ctx,
		`SELECT data FROM records WHERE username = $1 AND data_key = $2`,
		username, workday.WorkdayKey(date),
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return workday.DayLedger{}, workday.ErrDayNotFound
		}
		return workday.DayLedger{}, fmt.Errorf("failed to get workday record: %w", err)
	}

	return decodeLedger(date, raw), nil
}

// GetMonth implements workday.WorkdayRepository.
func (r *workdayRepository) GetMonth(ctx context.Context, username string, month string) (workday.MonthHistory, error) {
	var raw []byte
	err := r.db.QueryRow(ctx,
		`SELECT data FROM records WHERE username = $1 AND data_key = $2`,
		username, workday.MonthKey(month),
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return workday.MonthHistory{}, nil
		}
		return nil, fmt.Errorf("failed to get month record: %w", err)
	}

	history := workday.MonthHistory{}
	if err := json.Unmarshal(raw, &history); err != nil {
		// Malformed persisted data is tolerated, never fatal.
		return workday.MonthHistory{}, nil
	}
	for date, ledger := range history {
		history[date] = normalizeLedger(date, ledger)
	}
	return history, nil
}

// ListRecords implements workday.WorkdayRepository.
func (r *workdayRepository) ListRecords(ctx context.Context, username string) ([]workday.Record, error) {
	rows, err := r.db.Query(ctx,
		`SELECT data_key, data FROM records WHERE username = $1 ORDER BY data_key`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []workday.Record
	for rows.Next() {
		var rec workday.Record
		if err := rows.Scan(&rec.DataKey, &rec.Data); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// decodeLedger unmarshals a stored day payload, defaulting missing fields
// rather than failing: a record without entries is an empty day.
func decodeLedger(date string, raw []byte) workday.DayLedger {
	var ledger workday.DayLedger
	if err := json.Unmarshal(raw, &ledger); err != nil {
		return workday.NewDayLedger(date)
	}
	return normalizeLedger(date, ledger)
}

func normalizeLedger(date string, ledger workday.DayLedger) workday.DayLedger {
	if ledger.Date == "" {
		ledger.Date = date
	}
	if ledger.Entries == nil {
		ledger.Entries = []workday.Punch{}
	}
	return ledger
}

func monthOf(date string) string {
	if i := strings.LastIndex(date, "-"); i > 0 {
		return date[:i]
	}
	return date
}
