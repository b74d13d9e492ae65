package create_appointment

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

// UseCase use case для создания записи к мастеру
type UseCase struct {
	appointmentRepo AppointmentRepository
	engine          AvailabilityEngine
	txManager       TransactionManager
	timeProvider    TimeProvider
	location        *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// location - часовой пояс салона, в нем сравниваются слот и текущее время
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

// Execute выполняет use case создания записи
// Проверка слота и вставка идут в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: user=%d, resource=%d, client=%d, service=%d, date=%s, time=%s",
		req.UserID, req.ResourceID, req.ClientID, req.ServiceID, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	status, err := initialStatus(req.Status)
	if err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Записать может сам клиент или мастер
	if req.UserID != req.ClientID && req.UserID != req.ResourceID {
		uc.logger.Warn("CreateAppointment: user=%d is neither client=%d nor resource=%d",
			req.UserID, req.ClientID, req.ResourceID)
		return nil, ErrAccessDenied
	}

	// 3. Время должно разбираться, иначе это не слот сетки
	slotTime, err := types.NewTimeStringFromString(req.Time)
	if err != nil {
		uc.logger.Warn("CreateAppointment: unparsable time %q", req.Time)
		return nil, fmt.Errorf("%w: %v", ErrOutOfWindow, err)
	}

	// 4. Слот на сетке и в окне мастера (до проверки на прошедшее время)
	if err := uc.engine.CheckWindow(ctx, req.ResourceID, req.Date, req.Time); err != nil {
		return nil, uc.mapError("check window", err)
	}

	// 5. Прошедшие слоты не бронируются
	if domain.IsSlotInPast(req.Date, slotTime, uc.timeProvider.Now(), uc.location) {
		uc.logger.Warn("CreateAppointment: slot %s %s is in the past", req.Date.Format(domain.DateFormat), slotTime)
		return nil, ErrSlotInPast
	}

	var result *domain.Appointment

	// 6. Проверка слота и создание в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Слот в окне и не занят (записи на дату читаются FOR UPDATE)
		err := uc.engine.ValidateBooking(txCtx, availability.ValidateRequest{
			ResourceID: req.ResourceID,
			Date:       req.Date,
			Time:       req.Time,
		})
		if err != nil {
			return uc.mapError("validate slot", err)
		}

		// 6.2. Сохраняем запись
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			ResourceID: req.ResourceID,
			ClientID:   req.ClientID,
			ServiceID:  req.ServiceID,
			Date:       req.Date,
			Time:       slotTime,
			Status:     status,
			Notes:      req.Notes,
		})
		if err != nil {
			return uc.mapError("create appointment", err)
		}

		result = created
		return nil
	})
	if errors.Is(err, txmanager.ErrSerializationFailure) {
		// конкурентная транзакция заняла тот же слот раньше
		return nil, uc.mapError("commit", err)
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	return &Response{
		ID:         result.ID,
		ResourceID: result.ResourceID,
		ClientID:   result.ClientID,
		ServiceID:  result.ServiceID,
		Date:       result.Date,
		Time:       result.Time,
		Status:     string(result.Status),
		Notes:      result.Notes,
		CreatedAt:  result.CreatedAt,
		UpdatedAt:  result.UpdatedAt,
	}, nil
}

// mapError переводит ошибки движка и репозитория в ошибки use case
func (uc *UseCase) mapError(op string, err error) error {
	switch {
	case errors.Is(err, availability.ErrSlotTaken), errors.Is(err, appointmentRepo.ErrSlotTaken),
		errors.Is(err, txmanager.ErrSerializationFailure):
		uc.logger.Warn("CreateAppointment: %s: %v", op, err)
		return fmt.Errorf("%w: %v", ErrSlotTaken, err)
	case errors.Is(err, availability.ErrOutOfWindow):
		uc.logger.Warn("CreateAppointment: %s: %v", op, err)
		return fmt.Errorf("%w: %v", ErrOutOfWindow, err)
	case errors.Is(err, availability.ErrInvalidInput):
		uc.logger.Warn("CreateAppointment: %s: %v", op, err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("CreateAppointment: %s: %v", op, err)
		return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
	}
}
