package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarberBooking/internal/service/availability"
	"github.com/m04kA/SMC-BarberBooking/pkg/txmanager"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// UseCase use case переноса записи на другой слот того же мастера
type UseCase struct {
	appointmentRepo AppointmentRepository
	engine          AvailabilityEngine
	txManager       TransactionManager
	timeProvider    TimeProvider
	location        *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	engine AvailabilityEngine,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		engine:          engine,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		location:        location,
		logger:          logger,
	}
}

// Execute переносит запись. ID записи сохраняется, статус не меняется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: appointment=%d to %s %s by user=%d",
		req.AppointmentID, req.Date.Format(domain.DateFormat), req.Time, req.UserID)

	// 1. Валидация входных данных
	if req.AppointmentID <= 0 {
		return nil, fmt.Errorf("%w: appointmentId must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	slotTime, err := types.NewTimeStringFromString(req.Time)
	if err != nil {
		uc.logger.Warn("RescheduleAppointment: unparsable time %q", req.Time)
		return nil, fmt.Errorf("%w: %v", ErrOutOfWindow, err)
	}

	// 2. Текущее время
	now := uc.timeProvider.Now()

	var previous domain.Appointment
	var result *domain.Appointment

	// 3. Перенос в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем запись с блокировкой
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			return uc.mapError("get appointment", err)
		}
		previous = *appointment

		// 3.2. Переносить могут только клиент и мастер записи
		if appointment.ClientID != req.UserID && appointment.ResourceID != req.UserID {
			uc.logger.Warn("RescheduleAppointment: user=%d is not a participant of appointment=%d",
				req.UserID, req.AppointmentID)
			return ErrAccessDenied
		}

		// 3.3. Только активные незавершенные записи
		if !appointment.CanBeRescheduled() {
			uc.logger.Warn("RescheduleAppointment: appointment=%d has status %s", appointment.ID, appointment.Status)
			return fmt.Errorf("%w: status %s", ErrCannotReschedule, appointment.Status)
		}

		// 3.4. Новый слот на сетке и в окне мастера
		if err := uc.engine.CheckWindow(txCtx, appointment.ResourceID, req.Date, req.Time); err != nil {
			return uc.mapError("check window", err)
		}

		// 3.5. Новый слот не в прошлом
		if domain.IsSlotInPast(req.Date, slotTime, now, uc.location) {
			uc.logger.Warn("RescheduleAppointment: slot %s %s is in the past", req.Date.Format(domain.DateFormat), slotTime)
			return ErrSlotInPast
		}

		// 3.6. Проверка слота (без учета самой записи) и обновление
		updated, err := uc.engine.RescheduleAppointment(txCtx, appointment.ID, req.Date, req.Time)
		if err != nil {
			return uc.mapError("reschedule", err)
		}

		result = updated
		return nil
	})
	if errors.Is(err, txmanager.ErrSerializationFailure) {
		// конкурентная транзакция заняла тот же слот раньше
		return nil, uc.mapError("commit", err)
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: appointment=%d is now at %s %s",
		result.ID, result.Date.Format(domain.DateFormat), result.Time)

	return &Response{
		ID:           result.ID,
		ResourceID:   result.ResourceID,
		ClientID:     result.ClientID,
		ServiceID:    result.ServiceID,
		Date:         result.Date,
		Time:         result.Time,
		PreviousDate: previous.Date,
		PreviousTime: previous.Time,
		Status:       string(result.Status),
		Notes:        result.Notes,
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.UpdatedAt,
	}, nil
}

func (uc *UseCase) mapError(op string, err error) error {
	switch {
	case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
		uc.logger.Warn("RescheduleAppointment: %s: %v", op, err)
		return ErrAppointmentNotFound
	case errors.Is(err, availability.ErrSlotTaken), errors.Is(err, appointmentRepo.ErrSlotTaken),
		errors.Is(err, txmanager.ErrSerializationFailure):
		uc.logger.Warn("RescheduleAppointment: %s: %v", op, err)
		return fmt.Errorf("%w: %v", ErrSlotTaken, err)
	case errors.Is(err, availability.ErrOutOfWindow):
		uc.logger.Warn("RescheduleAppointment: %s: %v", op, err)
		return fmt.Errorf("%w: %v", ErrOutOfWindow, err)
	case errors.Is(err, availability.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("RescheduleAppointment: %s: %v", op, err)
		return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
	}
}
