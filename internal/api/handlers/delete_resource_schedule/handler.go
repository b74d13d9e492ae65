package delete_resource_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/service/schedule"
	"github.com/m04kA/SMC-BarberBooking/internal/service/schedule/models"
)

const (
	msgInvalidResourceID = "некорректный ID мастера"
	msgInvalidWeekday    = "некорректный день недели, ожидается 0-6"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgForbidden         = "мастер может менять только свое расписание"
	msgNotFound          = "расписание не найдено"
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

// Handle DELETE /api/v1/resources/{resourceId}/schedule?weekday=
// Без weekday удаляется общее расписание, после чего действует окно по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID, err := strconv.ParseInt(mux.Vars(r)["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /resources/{id}/schedule - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.DeleteScheduleRequest{UserID: userID, ResourceID: resourceID}
	if weekdayStr := r.URL.Query().Get("weekday"); weekdayStr != "" {
		wd, err := strconv.Atoi(weekdayStr)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidWeekday)
			return
		}
		weekday := time.Weekday(wd)
		req.Weekday = &weekday
	}

	if err := h.service.Delete(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, schedule.ErrScheduleNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("DELETE /resources/{id}/schedule - Access denied: resource_id=%d, user_id=%d", resourceID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidWeekday)

		default:
			h.logger.Error("DELETE /resources/{id}/schedule - Failed to delete schedule: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /resources/{id}/schedule - Schedule deleted: resource_id=%d, weekday=%v", resourceID, req.Weekday)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
