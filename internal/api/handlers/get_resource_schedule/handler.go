package get_resource_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/service/schedule"
)

const (
	msgInvalidResourceID = "некорректный ID мастера"
	msgInvalidParams     = "некорректные параметры запроса, weekday от 0 до 6"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/schedule
// Query params: weekday (0-6, опционально), all=true - все настроенные окна
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID, err := strconv.ParseInt(mux.Vars(r)["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/schedule - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	query := r.URL.Query()

	if all, _ := strconv.ParseBool(query.Get("all")); all {
		result, err := h.service.GetAllByResource(r.Context(), resourceID)
		if err != nil {
			h.logger.Error("GET /resources/{id}/schedule - Failed to list schedules: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, result.Schedules)
		return
	}

	serviceReq, err := ToServiceRequest(resourceID, query.Get("weekday"))
	if err != nil {
		h.logger.Warn("GET /resources/{id}/schedule - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Если окно не настроено, сервис вернет окно по умолчанию
	result, err := h.service.GetSchedule(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}

		h.logger.Error("GET /resources/{id}/schedule - Failed to get schedule: resource_id=%d, error=%v", resourceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /resources/{id}/schedule - Schedule retrieved successfully: resource_id=%d, source=%s",
		resourceID, result.Source)
	handlers.RespondJSON(w, http.StatusOK, result)
}
