package validate_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/service/availability"
)

// AvailabilityEngine проверка слота
type AvailabilityEngine interface {
	CheckWindow(ctx context.Context, resourceID int64, date time.Time, rawTime string) error
	ValidateBooking(ctx context.Context, req availability.ValidateRequest) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
