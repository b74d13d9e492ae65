package delete_resource_schedule

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/service/schedule/models"
)

type ScheduleService interface {
	Delete(ctx context.Context, req *models.DeleteScheduleRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
