package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments/models"
)

// Service сервис для работы с записями: просмотр, смена статуса, удаление
//
// Права определяются по ID вызывающего (X-User-ID):
// клиент записи видит её и может только отменить,
// мастер (ресурс) видит и меняет статусы своих записей и может удалить запись.
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Доступно клиенту и мастеру записи
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appointment, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !isParticipant(appointment, userID) {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appointment), nil
}

// GetClientAppointments получает записи клиента, опционально по статусу
// Доступно только самому клиенту
func (s *Service) GetClientAppointments(ctx context.Context, req *models.GetClientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetClientAppointments: fetching appointments for client=%d, status=%v", req.ClientID, req.Status)

	if req.UserID != req.ClientID {
		s.logger.Warn("GetClientAppointments: user=%d is not client=%d", req.UserID, req.ClientID)
		return nil, ErrAccessDenied
	}

	filter := domain.AppointmentsFilter{ClientID: &req.ClientID, IncludeInactive: true}
	if req.Status != nil {
		status, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientAppointments: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	appointments, err := s.appointmentRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetClientAppointments: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientAppointments: fetched %d appointments for client=%d", len(appointments), req.ClientID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetResourceAppointments получает записи мастера с фильтрацией по периоду и статусу
// Доступно только самому мастеру
//
// - на дату: StartDate и EndDate указывают на одну дату
// - за период: StartDate и EndDate указывают на разные даты
// - включая отмененные и no-show: IncludeInactive = true
func (s *Service) GetResourceAppointments(ctx context.Context, req *models.GetResourceAppointmentsRequest) (*models.AppointmentListResponse, error) {
	logMsg := fmt.Sprintf("GetResourceAppointments: fetching appointments for resource=%d, user=%d", req.ResourceID, req.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	s.logger.Info(logMsg)

	if req.UserID != req.ResourceID {
		s.logger.Warn("GetResourceAppointments: user=%d is not resource=%d", req.UserID, req.ResourceID)
		return nil, ErrAccessDenied
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetResourceAppointments: invalid filter for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetResourceAppointments: repository error for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: GetResourceAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetResourceAppointments: fetched %d appointments for resource=%d", len(appointments), req.ResourceID)
	return models.FromDomainAppointmentList(appointments), nil
}

// UpdateStatus меняет статус записи
// Мастер выполняет любые допустимые переходы, клиент может только отменить.
// Терминальные статусы не меняются, поэтому смена статуса не может занять слот повторно.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s by user=%d", id, req.Status, req.UserID)

	newStatus, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	var updated *domain.Appointment
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Получаем запись (с блокировкой строки в транзакции)
		appointment, err := s.getAppointment(ctx, "UpdateStatus", id)
		if err != nil {
			return err
		}

		// 2. Проверяем права
		switch {
		case appointment.ResourceID == req.UserID:
		case appointment.ClientID == req.UserID && newStatus == domain.StatusCancelled:
		default:
			s.logger.Warn("UpdateStatus: user=%d may not set status=%s on appointment id=%d", req.UserID, newStatus, id)
			return ErrAccessDenied
		}

		// 3. Проверяем переход
		if !appointment.CanTransitionTo(newStatus) {
			s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for appointment id=%d",
				appointment.Status, newStatus, id)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, newStatus)
		}

		// 4. Обновляем
		updated, err = s.appointmentRepo.UpdateStatus(ctx, id, newStatus)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: appointment id=%d is now %s", id, updated.Status)
	return models.FromDomainAppointment(updated), nil
}

// Delete административное удаление записи, освобождает слот
// Доступно только мастеру записи
func (s *Service) Delete(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Delete: deleting appointment id=%d by user=%d", id, userID)

	return s.txManager.Do(ctx, func(ctx context.Context) error {
		appointment, err := s.getAppointment(ctx, "Delete", id)
		if err != nil {
			return err
		}

		if appointment.ResourceID != userID {
			s.logger.Warn("Delete: user=%d is not resource of appointment id=%d", userID, id)
			return ErrAccessDenied
		}

		if err := s.appointmentRepo.Delete(ctx, id); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("Delete: appointment id=%d deleted", id)
		return nil
	})
}

func (s *Service) getAppointment(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appointment, nil
}

func isParticipant(appointment *domain.Appointment, userID int64) bool {
	return appointment.ClientID == userID || appointment.ResourceID == userID
}
