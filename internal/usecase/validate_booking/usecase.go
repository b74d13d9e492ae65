package validate_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/availability"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// UseCase предварительная проверка слота перед бронированием
// Результат не резервирует слот: окончательная проверка идет при создании записи
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

// Execute возвращает nil, если слот сейчас можно забронировать
// Порядок ошибок: окно и сетка, затем прошедшее время, затем занятость
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	// 1. Слот на сетке и в окне мастера
	if err := uc.engine.CheckWindow(ctx, req.ResourceID, req.Date, req.Time); err != nil {
		return uc.mapError(req, err)
	}

	// 2. Прошедшие слоты не бронируются
	slotTime, err := types.NewTimeStringFromString(req.Time)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutOfWindow, err)
	}
	if domain.IsSlotInPast(req.Date, slotTime, uc.timeProvider.Now(), uc.location) {
		return ErrSlotInPast
	}

	// 3. Слот не занят
	err = uc.engine.ValidateBooking(ctx, availability.ValidateRequest{
		ResourceID:           req.ResourceID,
		Date:                 req.Date,
		Time:                 req.Time,
		ExcludeAppointmentID: req.ExcludeAppointmentID,
	})
	if err != nil {
		return uc.mapError(req, err)
	}

	return nil
}

func (uc *UseCase) mapError(req *Request, err error) error {
	switch {
	case errors.Is(err, availability.ErrSlotTaken):
		return fmt.Errorf("%w: %v", ErrSlotTaken, err)
	case errors.Is(err, availability.ErrOutOfWindow):
		return fmt.Errorf("%w: %v", ErrOutOfWindow, err)
	case errors.Is(err, availability.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("ValidateBooking: resource=%d: %v", req.ResourceID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
