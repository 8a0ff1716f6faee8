package http

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/fichador/fichador-backend/internal/domain/history"
	"github.com/fichador/fichador-backend/internal/handler/http/response"
	"github.com/fichador/fichador-backend/internal/pkg/timeutil"
	"github.com/fichador/fichador-backend/internal/pkg/validator"
)

// timeNow is swappable so handler tests can pin the default date and month.
var timeNow = time.Now

type HistoryHandler interface {
	GetWeek(w http.ResponseWriter, r *http.Request)
	GetMonth(w http.ResponseWriter, r *http.Request)
	ExportWeek(w http.ResponseWriter, r *http.Request)
	ExportMonth(w http.ResponseWriter, r *http.Request)
}

type HistoryHandlerImpl struct {
	historyService history.HistoryService
}

func NewHistoryHandler(historyService history.HistoryService) HistoryHandler {
	return &HistoryHandlerImpl{historyService: historyService}
}

// weekDate reads the ?date= query, defaulting to today.
func weekDate(r *http.Request) (string, bool) {
	date := r.URL.Query().Get("date")
	if date == "" {
		return timeutil.DateKey(timeNow()), true
	}
	if _, valid := validator.IsValidDate(date); !valid {
		return "", false
	}
	return date, true
}

// monthParam reads the ?month= query, defaulting to the current month.
func monthParam(r *http.Request) (string, bool) {
	month := r.URL.Query().Get("month")
	if month == "" {
		return timeutil.MonthKey(timeNow()), true
	}
	if _, valid := validator.IsValidMonth(month); !valid {
		return "", false
	}
	return month, true
}

// GetWeek implements HistoryHandler.
func (h *HistoryHandlerImpl) GetWeek(w http.ResponseWriter, r *http.Request) {
	date, ok := weekDate(r)
	if !ok {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}

	week, err := h.historyService.GetWeek(r.Context(), date)
	if err != nil {
		slog.Error("GetWeek service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, week)
}

// GetMonth implements HistoryHandler.
func (h *HistoryHandlerImpl) GetMonth(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(r)
	if !ok {
		response.BadRequest(w, "month must be in YYYY-MM format", nil)
		return
	}

	summary, err := h.historyService.GetMonth(r.Context(), month)
	if err != nil {
		slog.Error("GetMonth service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

// ExportWeek implements HistoryHandler.
func (h *HistoryHandlerImpl) ExportWeek(w http.ResponseWriter, r *http.Request) {
	date, ok := weekDate(r)
	if !ok {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}

	rows, err := h.historyService.ExportWeek(r.Context(), date)
	if err != nil {
		slog.Error("ExportWeek service error", "error", err)
		response.HandleError(w, err)
		return
	}
	writeCSV(w, fmt.Sprintf("jornada_semanal_%s.csv", date), rows)
}

// ExportMonth implements HistoryHandler.
func (h *HistoryHandlerImpl) ExportMonth(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(r)
	if !ok {
		response.BadRequest(w, "month must be in YYYY-MM format", nil)
		return
	}

	rows, err := h.historyService.ExportMonth(r.Context(), month)
	if err != nil {
		slog.Error("ExportMonth service error", "error", err)
		response.HandleError(w, err)
		return
	}
	writeCSV(w, fmt.Sprintf("jornada_mensual_%s.csv", month), rows)
}

func writeCSV(w http.ResponseWriter, filename string, rows [][]string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		slog.Error("CSV write error", "error", err)
	}
}
