package history

import (
	"context"
	"testing"
	"time"

	"github.com/fichador/fichador-backend/internal/domain/schedule"
	"github.com/fichador/fichador-backend/internal/domain/workday"
	"github.com/fichador/fichador-backend/internal/repository/memory"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedContext(t *testing.T, username string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{"user_id": "u1", "username": username})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

// saveDay persists a simple worked day: enter/exit with precomputed totals.
func saveDay(t *testing.T, repo workday.WorkdayRepository, username, date string, punches ...workday.Punch) workday.DayLedger {
	t.Helper()
	ledger := workday.NewDayLedger(date)
	for _, p := range punches {
		ledger.Apply(p)
	}
	ledger.Recompute()
	require.NoError(t, repo.SaveDay(context.Background(), username, ledger))
	return ledger
}

func punchAt(pt workday.PunchType, date string, hour, minute int) workday.Punch {
	day, _ := time.ParseInLocation("2006-01-02", date, time.Local)
	return workday.NewPunch(pt, time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.Local))
}

func TestGetWeekIncludesEmptyDays(t *testing.T) {
	repo := memory.NewWorkdayRepository()
	svc := NewHistoryService(repo, schedule.DefaultPolicy())
	ctx := authedContext(t, "maria")

	// Monday 2026-08-31 and Wednesday 2026-09-02: the week spans two months.
	saveDay(t, repo, "maria", "2026-08-31",
		punchAt(workday.PunchEnter, "2026-08-31", 8, 0),
		punchAt(workday.PunchExit, "2026-08-31", 17, 0))
	saveDay(t, repo, "maria", "2026-09-02",
		punchAt(workday.PunchEnter, "2026-09-02", 8, 0),
		punchAt(workday.PunchExit, "2026-09-02", 17, 30))

	week, err := svc.GetWeek(ctx, "2026-09-03")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-31", week.WeekStart)
	require.Len(t, week.Days, 5)

	assert.Equal(t, 540, week.Days[0].WorkedMinutes)
	assert.Equal(t, 0, week.Days[1].WorkedMinutes)
	assert.Equal(t, 570, week.Days[2].WorkedMinutes)
	assert.Equal(t, 1110, week.TotalMinutes)
	assert.Equal(t, "18:30", week.TotalDisplay)
}

func TestGetMonthGroupsByISOWeek(t *testing.T) {
	repo := memory.NewWorkdayRepository()
	svc := NewHistoryService(repo, schedule.DefaultPolicy())
	ctx := authedContext(t, "maria")

	// 2026-09-02 falls in W36, 2026-09-08 in W37.
	saveDay(t, repo, "maria", "2026-09-02",
		punchAt(workday.PunchEnter, "2026-09-02", 8, 0),
		punchAt(workday.PunchExit, "2026-09-02", 17, 0))
	saveDay(t, repo, "maria", "2026-09-08",
		punchAt(workday.PunchEnter, "2026-09-08", 9, 0),
		punchAt(workday.PunchExit, "2026-09-08", 18, 0))

	month, err := svc.GetMonth(ctx, "2026-09")
	require.NoError(t, err)
	assert.Equal(t, "2026-09", month.Month)
	require.Len(t, month.Weeks, 2)
	assert.Equal(t, "2026-W36", month.Weeks[0].ISOWeek)
	assert.Equal(t, "2026-W37", month.Weeks[1].ISOWeek)
	assert.Equal(t, 1080, month.TotalMinutes)
}

func TestGetMonthEmpty(t *testing.T) {
	svc := NewHistoryService(memory.NewWorkdayRepository(), schedule.DefaultPolicy())

	month, err := svc.GetMonth(authedContext(t, "maria"), "2026-07")
	require.NoError(t, err)
	assert.Empty(t, month.Weeks)
	assert.Equal(t, 0, month.TotalMinutes)
}

func TestExportWeekRows(t *testing.T) {
	repo := memory.NewWorkdayRepository()
	svc := NewHistoryService(repo, schedule.DefaultPolicy())
	ctx := authedContext(t, "maria")

	overtimeEnter := punchAt(workday.PunchEnter, "2026-08-31", 6, 45)
	overtimeEnter.IsOvertime = true
	overtimeEnter.Reason = workday.ReasonCriticalProject
	saveDay(t, repo, "maria", "2026-08-31",
		overtimeEnter,
		punchAt(workday.PunchExit, "2026-08-31", 17, 0))

	rows, err := svc.ExportWeek(ctx, "2026-08-31")
	require.NoError(t, err)
	require.Len(t, rows, 6)

	assert.Equal(t, []string{
		"Fecha", "Entrada", "Salida Comer", "Entrada Comer", "Salida",
		"Total", "Diferencia", "Total Semana",
	}, rows[0])

	monday := rows[1]
	assert.Equal(t, "2026-08-31", monday[0])
	assert.Equal(t, "06:45 (Proyecto crítico)", monday[1])
	assert.Equal(t, "17:00", monday[4])
	// 615 worked, 510 required.
	assert.Equal(t, "10:15", monday[5])
	assert.Equal(t, "+01:45", monday[6])
	assert.Equal(t, "", monday[7])

	// Empty days keep their date but no times; week total sits on Friday.
	tuesday := rows[2]
	assert.Equal(t, "2026-09-01", tuesday[0])
	assert.Equal(t, "", tuesday[1])
	fridayRow := rows[5]
	assert.Equal(t, "2026-09-04", fridayRow[0])
	assert.Equal(t, "10:15", fridayRow[7])
}

func TestExportMonthRows(t *testing.T) {
	repo := memory.NewWorkdayRepository()
	svc := NewHistoryService(repo, schedule.DefaultPolicy())
	ctx := authedContext(t, "maria")

	saveDay(t, repo, "maria", "2026-09-02",
		punchAt(workday.PunchEnter, "2026-09-02", 8, 0),
		punchAt(workday.PunchExit, "2026-09-02", 16, 30))

	rows, err := svc.ExportMonth(ctx, "2026-09")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Total Mes", rows[0][7])
	assert.Equal(t, "2026-09-02", rows[1][0])
	assert.Equal(t, "08:30", rows[1][5])
	assert.Equal(t, "+00:00", rows[1][6])
	assert.Equal(t, "Total", rows[2][0])
	assert.Equal(t, "08:30", rows[2][7])
}
