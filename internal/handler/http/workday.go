package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fichador/fichador-backend/internal/domain/workday"
	"github.com/fichador/fichador-backend/internal/handler/http/response"
	"github.com/fichador/fichador-backend/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type WorkdayHandler interface {
	GetToday(w http.ResponseWriter, r *http.Request)
	GetDay(w http.ResponseWriter, r *http.Request)
	EditDay(w http.ResponseWriter, r *http.Request)
	Punch(w http.ResponseWriter, r *http.Request)
	PunchManual(w http.ResponseWriter, r *http.Request)
	ConfirmOvertime(w http.ResponseWriter, r *http.Request)
	CancelPending(w http.ResponseWriter, r *http.Request)
}

type WorkdayHandlerImpl struct {
	workdayService workday.WorkdayService
}

func NewWorkdayHandler(workdayService workday.WorkdayService) WorkdayHandler {
	return &WorkdayHandlerImpl{workdayService: workdayService}
}

// GetToday implements WorkdayHandler.
func (h *WorkdayHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	day, err := h.workdayService.GetToday(r.Context())
	if err != nil {
		slog.Error("GetToday service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, day)
}

// GetDay implements WorkdayHandler.
func (h *WorkdayHandlerImpl) GetDay(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if _, valid := validator.IsValidDate(date); !valid {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}

	day, err := h.workdayService.GetDay(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, day)
}

// EditDay implements WorkdayHandler.
func (h *WorkdayHandlerImpl) EditDay(w http.ResponseWriter, r *http.Request) {
	var editReq workday.EditDayRequest

	if err := json.NewDecoder(r.Body).Decode(&editReq); err != nil {
		slog.Error("EditDay decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	editReq.Date = chi.URLParam(r, "date")

	if err := editReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	day, err := h.workdayService.EditDay(r.Context(), editReq)
	if err != nil {
		slog.Error("EditDay service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Day updated", day)
}

// Punch implements WorkdayHandler.
func (h *WorkdayHandlerImpl) Punch(w http.ResponseWriter, r *http.Request) {
	var punchReq workday.PunchRequest

	if err := json.NewDecoder(r.Body).Decode(&punchReq); err != nil {
		slog.Error("Punch decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := punchReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	outcome, err := h.workdayService.Punch(r.Context(), punchReq)
	if err != nil {
		slog.Error("Punch service error", "error", err)
		response.HandleError(w, err)
		return
	}
	writeOutcome(w, outcome)
}

// PunchManual implements WorkdayHandler.
func (h *WorkdayHandlerImpl) PunchManual(w http.ResponseWriter, r *http.Request) {
	var manualReq workday.ManualPunchRequest

	if err := json.NewDecoder(r.Body).Decode(&manualReq); err != nil {
		slog.Error("PunchManual decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := manualReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	outcome, err := h.workdayService.PunchManual(r.Context(), manualReq)
	if err != nil {
		slog.Error("PunchManual service error", "error", err)
		response.HandleError(w, err)
		return
	}
	writeOutcome(w, outcome)
}

// ConfirmOvertime implements WorkdayHandler.
func (h *WorkdayHandlerImpl) ConfirmOvertime(w http.ResponseWriter, r *http.Request) {
	var confirmReq workday.ConfirmOvertimeRequest

	if err := json.NewDecoder(r.Body).Decode(&confirmReq); err != nil {
		slog.Error("ConfirmOvertime decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := confirmReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	day, err := h.workdayService.ConfirmOvertime(r.Context(), confirmReq)
	if err != nil {
		slog.Error("ConfirmOvertime service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Overtime punch confirmed", day)
}

// CancelPending implements WorkdayHandler.
func (h *WorkdayHandlerImpl) CancelPending(w http.ResponseWriter, r *http.Request) {
	var cancelReq workday.CancelPendingRequest

	if err := json.NewDecoder(r.Body).Decode(&cancelReq); err != nil {
		slog.Error("CancelPending decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := cancelReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.workdayService.CancelPending(r.Context(), cancelReq); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Pending punch discarded", nil)
}

// writeOutcome renders a punch result: 200 with the committed day, or 202
// with the pending confirmation.
func writeOutcome(w http.ResponseWriter, outcome workday.PunchOutcome) {
	if outcome.Pending != nil {
		response.Accepted(w, "Punch outside schedule window; confirmation required", outcome)
		return
	}
	response.Success(w, outcome)
}
