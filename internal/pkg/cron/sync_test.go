package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/fichador/fichador-backend/internal/domain/sync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSyncService struct {
	calls int
	err   error
}

func (f *fakeSyncService) SyncAll(context.Context) error {
	f.calls++
	return f.err
}
func (f *fakeSyncService) Trigger(ctx context.Context) error { return f.SyncAll(ctx) }
func (f *fakeSyncService) Status() sync.Status               { return sync.Status{} }

func TestRunSyncJob(t *testing.T) {
	svc := &fakeSyncService{}
	jobs := NewSyncJobs(svc, 0)
	assert.Equal(t, DefaultSyncInterval, jobs.interval)

	scheduler := NewScheduler()
	jobs.RegisterJobs(scheduler)
	scheduler.RunOnce(context.Background())

	assert.Equal(t, 1, svc.calls)
}

func TestRunSyncSwallowsOverlap(t *testing.T) {
	svc := &fakeSyncService{err: sync.ErrSyncInProgress}
	jobs := NewSyncJobs(svc, DefaultSyncInterval)

	require.NoError(t, jobs.RunSync(context.Background()))
}

func TestRunSyncPropagatesFailures(t *testing.T) {
	svc := &fakeSyncService{err: errors.New("sheet unreachable")}
	jobs := NewSyncJobs(svc, DefaultSyncInterval)

	assert.Error(t, jobs.RunSync(context.Background()))
}
