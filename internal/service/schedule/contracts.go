package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// ScheduleRepository интерфейс репозитория рабочих окон мастеров
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.ResourceSchedule) (*domain.ResourceSchedule, error)
	GetByResourceAndWeekday(ctx context.Context, resourceID int64, weekday *time.Weekday) (*domain.ResourceSchedule, error)
	GetWithHierarchy(ctx context.Context, resourceID int64, weekday time.Weekday) (*domain.ResourceSchedule, error)
	GetAllByResource(ctx context.Context, resourceID int64) ([]*domain.ResourceSchedule, error)
	Update(ctx context.Context, id int64, schedule *domain.ResourceSchedule) (*domain.ResourceSchedule, error)
	DeleteByResourceAndWeekday(ctx context.Context, resourceID int64, weekday *time.Weekday) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
