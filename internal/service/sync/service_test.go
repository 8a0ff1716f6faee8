package sync

import (
	"context"
	"errors"
	"testing"

	domainsync "github.com/fichador/fichador-backend/internal/domain/sync"
	"github.com/fichador/fichador-backend/internal/domain/user"
	"github.com/fichador/fichador-backend/internal/domain/workday"
	"github.com/fichador/fichador-backend/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSheets struct {
	replaced map[string][][]string
	fail     map[string]bool
}

func newFakeSheets() *fakeSheets {
	return &fakeSheets{replaced: make(map[string][][]string), fail: make(map[string]bool)}
}

func (f *fakeSheets) ReadRows(context.Context) ([][]string, error) { return nil, nil }

func (f *fakeSheets) ReplaceUserRows(_ context.Context, username string, rows [][]string) error {
	if f.fail[username] {
		return errors.New("boom")
	}
	f.replaced[username] = rows
	return nil
}

func seedUser(t *testing.T, users user.UserRepository, workdays workday.WorkdayRepository, username string) {
	t.Helper()
	require.NoError(t, users.Create(context.Background(), &user.User{ID: username, Username: username}))

	ledger := workday.NewDayLedger("2026-09-02")
	require.NoError(t, workdays.SaveDay(context.Background(), username, ledger))
}

func TestSyncAllMirrorsRecords(t *testing.T) {
	users := memory.NewUserRepository()
	workdays := memory.NewWorkdayRepository()
	sheets := newFakeSheets()
	seedUser(t, users, workdays, "maria")

	svc := NewSyncService(workdays, users, sheets)
	require.NoError(t, svc.SyncAll(context.Background()))

	rows := sheets.replaced["maria"]
	// A day save produces the workday row plus its month row.
	require.Len(t, rows, 2)
	assert.Equal(t, "maria", rows[0][0])
	assert.Equal(t, "month_2026-09", rows[0][1])
	assert.Equal(t, "workday_2026-09-02", rows[1][1])

	status := svc.Status()
	assert.True(t, status.Enabled)
	assert.False(t, status.Running)
	assert.Equal(t, 1, status.UsersSynced)
	assert.Empty(t, status.LastError)
	assert.NotEmpty(t, status.LastRun)
}

func TestSyncAllContinuesPastFailingUser(t *testing.T) {
	users := memory.NewUserRepository()
	workdays := memory.NewWorkdayRepository()
	sheets := newFakeSheets()
	seedUser(t, users, workdays, "ana")
	seedUser(t, users, workdays, "maria")
	sheets.fail["ana"] = true

	svc := NewSyncService(workdays, users, sheets)
	err := svc.SyncAll(context.Background())
	require.Error(t, err)

	assert.Contains(t, sheets.replaced, "maria")
	assert.NotContains(t, sheets.replaced, "ana")

	status := svc.Status()
	assert.Equal(t, 1, status.UsersSynced)
	assert.NotEmpty(t, status.LastError)
}

func TestSyncDisabledWithoutClient(t *testing.T) {
	svc := NewSyncService(memory.NewWorkdayRepository(), memory.NewUserRepository(), nil)

	err := svc.SyncAll(context.Background())
	assert.ErrorIs(t, err, domainsync.ErrSyncDisabled)
	assert.False(t, svc.Status().Enabled)
}
