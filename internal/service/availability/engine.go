package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Engine вычисляет сетку свободных слотов мастера и проверяет конкретный слот перед записью.
// Состояния не хранит: каждый вызов заново читает записи из хранилища.
// Ошибки хранилища возвращаются обернутыми через %w и не ретраятся.
type Engine struct {
	store         AppointmentStore
	schedule      ScheduleProvider
	defaultWindow domain.OperatingWindow
	logger        Logger
}

// NewEngine создает движок доступности
// schedule может быть nil - тогда всегда используется defaultWindow
func NewEngine(store AppointmentStore, schedule ScheduleProvider, defaultWindow domain.OperatingWindow, logger Logger) *Engine {
	return &Engine{
		store:         store,
		schedule:      schedule,
		defaultWindow: defaultWindow,
		logger:        logger,
	}
}

// ListAvailableSlots возвращает полную сетку окна, размеченную занятыми и свободными слотами
func (e *Engine) ListAvailableSlots(ctx context.Context, req ListSlotsRequest) (*SlotGrid, error) {
	if req.ResourceID <= 0 {
		return nil, fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	date := dateOnly(req.Date)

	window, err := e.window(ctx, req.ResourceID, date)
	if err != nil {
		return nil, err
	}

	grid, err := generateGrid(window)
	if err != nil {
		e.logger.Error("ListAvailableSlots: resource=%d, date=%s: bad window: %v",
			req.ResourceID, date.Format(domain.DateFormat), err)
		return nil, err
	}

	occupied := map[types.TimeString]int64{}
	if len(grid) > 0 {
		appointments, err := e.store.ListByResourceAndDate(ctx, req.ResourceID, date)
		if err != nil {
			return nil, fmt.Errorf("ListAvailableSlots - list appointments: %w", err)
		}
		occupied = occupiedSlots(appointments, req.ExcludeAppointmentID)
	}

	result := &SlotGrid{
		ResourceID: req.ResourceID,
		Date:       date,
		Window:     window,
		Slots:      buildSlots(grid, occupied),
	}

	e.logger.Debug("ListAvailableSlots: resource=%d, date=%s: %d of %d slots free",
		req.ResourceID, date.Format(domain.DateFormat), len(result.FreeTimes()), len(result.Slots))

	return result, nil
}

// CheckWindow проверяет только сетку и окно мастера на дату, записи не читает
func (e *Engine) CheckWindow(ctx context.Context, resourceID int64, date time.Time, rawTime string) error {
	_, err := e.checkWindow(ctx, resourceID, date, rawTime)
	return err
}

// ValidateBooking проверяет, что слот на сетке, в окне и не занят другой активной записью
// Проверка окна выполняется до обращения к хранилищу
func (e *Engine) ValidateBooking(ctx context.Context, req ValidateRequest) error {
	t, err := e.checkWindow(ctx, req.ResourceID, req.Date, req.Time)
	if err != nil {
		return err
	}
	date := dateOnly(req.Date)

	appointments, err := e.store.ListByResourceAndDate(ctx, req.ResourceID, date)
	if err != nil {
		return fmt.Errorf("ValidateBooking - list appointments: %w", err)
	}

	if holder, taken := occupiedSlots(appointments, req.ExcludeAppointmentID)[t]; taken {
		return &SlotTakenError{
			ResourceID:    req.ResourceID,
			Date:          date,
			Time:          t,
			AppointmentID: holder,
		}
	}

	return nil
}

// RescheduleAppointment переносит запись на новый слот того же мастера
// Проверка идет с исключением самой записи, поэтому перенос на свой же слот разрешен.
// ID записи не меняется.
func (e *Engine) RescheduleAppointment(ctx context.Context, appointmentID int64, newDate time.Time, newTime string) (*domain.Appointment, error) {
	appointment, err := e.store.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("RescheduleAppointment - get appointment: %w", err)
	}

	err = e.ValidateBooking(ctx, ValidateRequest{
		ResourceID:           appointment.ResourceID,
		Date:                 newDate,
		Time:                 newTime,
		ExcludeAppointmentID: &appointment.ID,
	})
	if err != nil {
		return nil, err
	}

	t, _ := types.NewTimeStringFromString(newTime)

	updated, err := e.store.UpdateDateTime(ctx, appointment.ID, dateOnly(newDate), t)
	if err != nil {
		return nil, fmt.Errorf("RescheduleAppointment - update date/time: %w", err)
	}

	e.logger.Info("RescheduleAppointment: appointment=%d moved from %s %s to %s %s",
		appointment.ID, appointment.Date.Format(domain.DateFormat), appointment.Time,
		updated.Date.Format(domain.DateFormat), updated.Time)

	return updated, nil
}

func (e *Engine) checkWindow(ctx context.Context, resourceID int64, date time.Time, rawTime string) (types.TimeString, error) {
	if resourceID <= 0 {
		return "", fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return "", fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	window, err := e.window(ctx, resourceID, dateOnly(date))
	if err != nil {
		return "", err
	}

	t, err := types.NewTimeStringFromString(rawTime)
	if err != nil || !window.Contains(t) {
		return "", &OutOfWindowError{Time: rawTime, Window: window}
	}

	return t, nil
}

// window окно мастера на дату; без провайдера - окно по умолчанию
func (e *Engine) window(ctx context.Context, resourceID int64, date time.Time) (domain.OperatingWindow, error) {
	if e.schedule == nil {
		return e.defaultWindow, nil
	}

	window, err := e.schedule.GetWindow(ctx, resourceID, date)
	if err != nil {
		return domain.OperatingWindow{}, fmt.Errorf("resolve operating window: %w", err)
	}

	return window, nil
}
