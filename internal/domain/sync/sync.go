// Package sync defines the remote spreadsheet mirroring contract. The
// spreadsheet is a convenience mirror of the records table; the database
// stays the source of truth and sync failures are never fatal.
package sync

import (
	"context"
	"errors"
)

var (
	ErrSyncDisabled   = errors.New("spreadsheet sync is not configured")
	ErrSyncInProgress = errors.New("a sync run is already in progress")
)

// Status is a snapshot of the last sync run.
type Status struct {
	Enabled      bool   `json:"enabled"`
	Running      bool   `json:"running"`
	LastRun      string `json:"last_run,omitempty"` // RFC3339
	LastError    string `json:"last_error,omitempty"`
	LastDuration string `json:"last_duration,omitempty"`
	UsersSynced  int    `json:"users_synced"`
}

type SyncService interface {
	// SyncAll mirrors every user's records to the spreadsheet.
	SyncAll(ctx context.Context) error
	// Trigger runs a sync immediately, rejecting overlap with a running one.
	Trigger(ctx context.Context) error
	// Status reports the outcome of the last run.
	Status() Status
}
