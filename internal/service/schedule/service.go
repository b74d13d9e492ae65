package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-BarberBooking/internal/service/schedule/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Service сервис рабочих окон мастеров
type Service struct {
	repo          ScheduleRepository
	defaultWindow domain.OperatingWindow
	logger        Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(repo ScheduleRepository, defaultWindow domain.OperatingWindow, logger Logger) *Service {
	return &Service{
		repo:          repo,
		defaultWindow: defaultWindow,
		logger:        logger,
	}
}

// GetWindow возвращает рабочее окно мастера на дату
// Приоритет: день недели > все дни > окно по умолчанию
func (s *Service) GetWindow(ctx context.Context, resourceID int64, date time.Time) (domain.OperatingWindow, error) {
	schedule, err := s.repo.GetWithHierarchy(ctx, resourceID, date.Weekday())
	if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		return s.defaultWindow, nil
	}
	if err != nil {
		s.logger.Error("GetWindow: repository error for resource=%d: %v", resourceID, err)
		return domain.OperatingWindow{}, fmt.Errorf("%w: GetWindow - repository error: %v", ErrInternal, err)
	}

	return schedule.Window(), nil
}

// GetSchedule возвращает действующее окно мастера с указанием уровня
// Без weekday - общее расписание или окно по умолчанию
func (s *Service) GetSchedule(ctx context.Context, req *models.GetScheduleRequest) (*models.ScheduleResponse, error) {
	if req.ResourceID <= 0 {
		return nil, fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}
	if err := validateWeekday(req.Weekday); err != nil {
		return nil, err
	}

	var schedule *domain.ResourceSchedule
	var err error
	if req.Weekday != nil {
		schedule, err = s.repo.GetWithHierarchy(ctx, req.ResourceID, *req.Weekday)
	} else {
		schedule, err = s.repo.GetByResourceAndWeekday(ctx, req.ResourceID, nil)
	}

	if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		return models.FromDefaultWindow(req.ResourceID, s.defaultWindow), nil
	}
	if err != nil {
		s.logger.Error("GetSchedule: repository error for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(schedule), nil
}

// GetAllByResource возвращает все настроенные окна мастера
func (s *Service) GetAllByResource(ctx context.Context, resourceID int64) (*models.ScheduleListResponse, error) {
	schedules, err := s.repo.GetAllByResource(ctx, resourceID)
	if err != nil {
		s.logger.Error("GetAllByResource: repository error for resource=%d: %v", resourceID, err)
		return nil, fmt.Errorf("%w: GetAllByResource - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainScheduleList(schedules), nil
}

// Upsert создает или заменяет окно мастера на день недели (или на все дни)
// Уже существующие записи не проверяются: окно влияет только на новые бронирования
func (s *Service) Upsert(ctx context.Context, req *models.UpsertScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Upsert: resource=%d, weekday=%v by user=%d", req.ResourceID, req.Weekday, req.UserID)

	// 1. Валидация
	schedule, err := toDomainSchedule(req)
	if err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	// 2. Менять окно может только сам мастер
	if req.UserID != req.ResourceID {
		s.logger.Warn("Upsert: user=%d is not resource=%d", req.UserID, req.ResourceID)
		return nil, ErrAccessDenied
	}

	// 3. Ищем существующее окно на этом уровне
	existing, err := s.repo.GetByResourceAndWeekday(ctx, req.ResourceID, req.Weekday)
	if err != nil && !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		s.logger.Error("Upsert: failed to check existing schedule: %v", err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	// 4. Обновляем или создаем
	var saved *domain.ResourceSchedule
	if existing != nil {
		saved, err = s.repo.Update(ctx, existing.ID, schedule)
	} else {
		saved, err = s.repo.Create(ctx, schedule)
	}
	if err != nil {
		s.logger.Error("Upsert: repository error: %v", err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: saved schedule id=%d for resource=%d", saved.ID, saved.ResourceID)
	return models.FromDomainSchedule(saved), nil
}

// Delete удаляет окно мастера, после чего действует следующий уровень иерархии
func (s *Service) Delete(ctx context.Context, req *models.DeleteScheduleRequest) error {
	s.logger.Info("Delete: resource=%d, weekday=%v by user=%d", req.ResourceID, req.Weekday, req.UserID)

	if err := validateWeekday(req.Weekday); err != nil {
		return err
	}
	if req.UserID != req.ResourceID {
		s.logger.Warn("Delete: user=%d is not resource=%d", req.UserID, req.ResourceID)
		return ErrAccessDenied
	}

	err := s.repo.DeleteByResourceAndWeekday(ctx, req.ResourceID, req.Weekday)
	if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		s.logger.Warn("Delete: no schedule for resource=%d, weekday=%v", req.ResourceID, req.Weekday)
		return ErrScheduleNotFound
	}
	if err != nil {
		s.logger.Error("Delete: repository error: %v", err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	return nil
}

func toDomainSchedule(req *models.UpsertScheduleRequest) (*domain.ResourceSchedule, error) {
	if req.ResourceID <= 0 {
		return nil, fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}
	if err := validateWeekday(req.Weekday); err != nil {
		return nil, err
	}

	start, err := parseGridTime(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	end, err := parseGridTime(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}
	if end.IsBefore(start) {
		return nil, fmt.Errorf("%w: endTime must not be before startTime", ErrInvalidInput)
	}

	return &domain.ResourceSchedule{
		ResourceID: req.ResourceID,
		Weekday:    req.Weekday,
		StartTime:  start,
		EndTime:    end,
		IsDayOff:   req.IsDayOff,
	}, nil
}

// parseGridTime время должно лежать на сетке слотов (:00 или :30)
func parseGridTime(s string) (types.TimeString, error) {
	t, err := types.NewTimeStringFromString(s)
	if err != nil {
		return "", err
	}
	if t.Minutes()%domain.SlotGranularityMinutes != 0 {
		return "", fmt.Errorf("%q is not on the %d-minute grid", s, domain.SlotGranularityMinutes)
	}
	return t, nil
}

func validateWeekday(weekday *time.Weekday) error {
	if weekday != nil && (*weekday < time.Sunday || *weekday > time.Saturday) {
		return fmt.Errorf("%w: weekday must be between 0 and 6", ErrInvalidInput)
	}
	return nil
}
