package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/service/availability"
)

// AvailabilityEngine интерфейс движка доступности
type AvailabilityEngine interface {
	// ListAvailableSlots возвращает полную сетку окна с отметками занятости
	ListAvailableSlots(ctx context.Context, req availability.ListSlotsRequest) (*availability.SlotGrid, error)
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
