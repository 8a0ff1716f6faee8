package http

import (
	"log/slog"
	"net/http"

	"github.com/fichador/fichador-backend/internal/domain/sync"
	"github.com/fichador/fichador-backend/internal/handler/http/response"
)

type SyncHandler interface {
	Trigger(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
}

type SyncHandlerImpl struct {
	syncService sync.SyncService
}

func NewSyncHandler(syncService sync.SyncService) SyncHandler {
	return &SyncHandlerImpl{syncService: syncService}
}

// Trigger implements SyncHandler.
func (h *SyncHandlerImpl) Trigger(w http.ResponseWriter, r *http.Request) {
	if err := h.syncService.Trigger(r.Context()); err != nil {
		slog.Error("Sync trigger error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Sync completed", h.syncService.Status())
}

// Status implements SyncHandler.
func (h *SyncHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.syncService.Status())
}
