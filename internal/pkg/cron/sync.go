package cron

import (
	"context"
	"errors"
	"time"

	"github.com/fichador/fichador-backend/internal/domain/sync"
)

// DefaultSyncInterval matches the widget's background save cadence.
const DefaultSyncInterval = 5 * time.Minute

type SyncJobs struct {
	syncService sync.SyncService
	interval    time.Duration
}

func NewSyncJobs(syncService sync.SyncService, interval time.Duration) *SyncJobs {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}
	return &SyncJobs{
		syncService: syncService,
		interval:    interval,
	}
}

func (j *SyncJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("spreadsheet_sync", j.interval, j.RunSync)
}

func (j *SyncJobs) RunSync(ctx context.Context) error {
	err := j.syncService.SyncAll(ctx)
	// An overlapping run is not a failure; the running one covers it.
	if errors.Is(err, sync.ErrSyncInProgress) {
		return nil
	}
	return err
}
