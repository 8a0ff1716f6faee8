package sync

import (
	"context"
	"fmt"
	"log/slog"
	stdsync "sync"
	"time"

	domainsync "github.com/fichador/fichador-backend/internal/domain/sync"
	"github.com/fichador/fichador-backend/internal/domain/user"
	"github.com/fichador/fichador-backend/internal/domain/workday"
	"github.com/fichador/fichador-backend/internal/pkg/sheets"
)

type SyncServiceImpl struct {
	workdayRepo workday.WorkdayRepository
	userRepo    user.UserRepository
	sheets      sheets.Service

	mu      stdsync.Mutex
	running bool
	status  domainsync.Status
}

// NewSyncService wires the mirror. A nil sheets client disables sync; every
// call then reports ErrSyncDisabled and Status shows it.
func NewSyncService(workdayRepo workday.WorkdayRepository, userRepo user.UserRepository, sheetsClient sheets.Service) domainsync.SyncService {
	return &SyncServiceImpl{
		workdayRepo: workdayRepo,
		userRepo:    userRepo,
		sheets:      sheetsClient,
		status:      domainsync.Status{Enabled: sheetsClient != nil},
	}
}

// SyncAll implements sync.SyncService.
func (s *SyncServiceImpl) SyncAll(ctx context.Context) error {
	if s.sheets == nil {
		return domainsync.ErrSyncDisabled
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return domainsync.ErrSyncInProgress
	}
	s.running = true
	s.status.Running = true
	s.mu.Unlock()

	start := time.Now()
	synced, err := s.syncAllUsers(ctx)

	s.mu.Lock()
	s.running = false
	s.status.Running = false
	s.status.LastRun = start.Format(time.RFC3339)
	s.status.LastDuration = time.Since(start).Round(time.Millisecond).String()
	s.status.UsersSynced = synced
	if err != nil {
		s.status.LastError = err.Error()
	} else {
		s.status.LastError = ""
	}
	s.mu.Unlock()

	return err
}

// Trigger implements sync.SyncService.
func (s *SyncServiceImpl) Trigger(ctx context.Context) error {
	return s.SyncAll(ctx)
}

// Status implements sync.SyncService.
func (s *SyncServiceImpl) Status() domainsync.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *SyncServiceImpl) syncAllUsers(ctx context.Context) (int, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}

	synced := 0
	for _, u := range users {
		if err := s.syncUser(ctx, u.Username); err != nil {
			// One user failing must not block the rest.
			slog.Error("Sync: user failed", "username", u.Username, "error", err)
			continue
		}
		synced++
	}

	if synced < len(users) {
		return synced, fmt.Errorf("synced %d of %d users", synced, len(users))
	}
	slog.Info("Sync: completed", "users", synced)
	return synced, nil
}

func (s *SyncServiceImpl) syncUser(ctx context.Context, username string) error {
	records, err := s.workdayRepo.ListRecords(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{username, rec.DataKey, string(rec.Data)})
	}
	return s.sheets.ReplaceUserRows(ctx, username, rows)
}
