package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// AppointmentStore хранилище записей, нужное движку
type AppointmentStore interface {
	// ListByResourceAndDate все записи мастера на дату, в любом статусе
	ListByResourceAndDate(ctx context.Context, resourceID int64, date time.Time) ([]*domain.Appointment, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	UpdateDateTime(ctx context.Context, id int64, date time.Time, t types.TimeString) (*domain.Appointment, error)
}

// ScheduleProvider источник рабочего окна мастера на конкретную дату
type ScheduleProvider interface {
	GetWindow(ctx context.Context, resourceID int64, date time.Time) (domain.OperatingWindow, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
