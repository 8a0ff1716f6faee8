package http

import (
	"net/http"

	"github.com/fichador/fichador-backend/internal/domain/schedule"
	"github.com/fichador/fichador-backend/internal/domain/workday"
	"github.com/fichador/fichador-backend/internal/handler/http/response"
)

type ScheduleHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
}

type ScheduleHandlerImpl struct {
	policy schedule.Policy
}

func NewScheduleHandler(policy schedule.Policy) ScheduleHandler {
	return &ScheduleHandlerImpl{policy: policy}
}

type scheduleResponse struct {
	Policy          schedule.Policy   `json:"policy"`
	OvertimeReasons map[string]string `json:"overtime_reasons"`
	PunchLabels     map[string]string `json:"punch_labels"`
}

// Get implements ScheduleHandler. The widget reads this once to render its
// windows, buttons and the overtime reason picker.
func (h *ScheduleHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	reasons := make(map[string]string, len(workday.ReasonLabels))
	for reason, label := range workday.ReasonLabels {
		reasons[string(reason)] = label
	}
	labels := make(map[string]string, len(workday.PunchLabels))
	for pt, label := range workday.PunchLabels {
		labels[string(pt)] = label
	}

	response.Success(w, scheduleResponse{
		Policy:          h.policy,
		OvertimeReasons: reasons,
		PunchLabels:     labels,
	})
}
