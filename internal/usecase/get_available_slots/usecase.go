package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/availability"
)

// UseCase use case для получения сетки слотов мастера на дату
type UseCase struct {
	engine       AvailabilityEngine
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(engine AvailabilityEngine, location *time.Location, logger Logger) *UseCase {
	return &UseCase{
		engine:       engine,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, resource=%d, date=%s",
		req.UserID, req.ResourceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.ResourceID <= 0 {
		return nil, fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Сетка слотов с отметками занятости
	grid, err := uc.engine.ListAvailableSlots(ctx, availability.ListSlotsRequest{
		ResourceID:           req.ResourceID,
		Date:                 req.Date,
		ExcludeAppointmentID: req.ExcludeAppointmentID,
	})
	if err != nil {
		if errors.Is(err, availability.ErrInvalidInput) {
			uc.logger.Warn("GetAvailableSlots: invalid input: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("GetAvailableSlots: failed to list slots for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	// 4. Размечаем прошедшие слоты
	slots := annotateSlots(grid.Date, grid.Slots, now, uc.location, req.OnlyAvailable)

	uc.logger.Info("GetAvailableSlots: resource=%d, date=%s, returned %d slots",
		req.ResourceID, grid.Date.Format(domain.DateFormat), len(slots))

	return &Response{
		ResourceID: grid.ResourceID,
		Date:       grid.Date,
		Window: Window{
			Start:  grid.Window.Start,
			End:    grid.Window.End,
			DayOff: grid.Window.DayOff,
		},
		Slots: slots,
	}, nil
}
