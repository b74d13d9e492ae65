package update_resource_schedule

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/service/schedule/models"
)

// UpdateScheduleRequest HTTP request model
type UpdateScheduleRequest struct {
	Weekday   *int   `json:"weekday,omitempty"` // 0 - воскресенье ... 6 - суббота; без поля - все дни
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsDayOff  bool   `json:"isDayOff"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
// Диапазон weekday проверяет сервис
func (r *UpdateScheduleRequest) ToServiceRequest(resourceID, userID int64) *models.UpsertScheduleRequest {
	req := &models.UpsertScheduleRequest{
		UserID:     userID,
		ResourceID: resourceID,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		IsDayOff:   r.IsDayOff,
	}

	if r.Weekday != nil {
		weekday := time.Weekday(*r.Weekday)
		req.Weekday = &weekday
	}

	return req
}
