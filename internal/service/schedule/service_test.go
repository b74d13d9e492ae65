package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-BarberBooking/internal/service/schedule/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, s *domain.ResourceSchedule) (*domain.ResourceSchedule, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResourceSchedule), args.Error(1)
}

func (m *mockRepo) GetByResourceAndWeekday(ctx context.Context, resourceID int64, weekday *time.Weekday) (*domain.ResourceSchedule, error) {
	args := m.Called(ctx, resourceID, weekday)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResourceSchedule), args.Error(1)
}

func (m *mockRepo) GetWithHierarchy(ctx context.Context, resourceID int64, weekday time.Weekday) (*domain.ResourceSchedule, error) {
	args := m.Called(ctx, resourceID, weekday)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResourceSchedule), args.Error(1)
}

func (m *mockRepo) GetAllByResource(ctx context.Context, resourceID int64) ([]*domain.ResourceSchedule, error) {
	args := m.Called(ctx, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ResourceSchedule), args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, id int64, s *domain.ResourceSchedule) (*domain.ResourceSchedule, error) {
	args := m.Called(ctx, id, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResourceSchedule), args.Error(1)
}

func (m *mockRepo) DeleteByResourceAndWeekday(ctx context.Context, resourceID int64, weekday *time.Weekday) error {
	return m.Called(ctx, resourceID, weekday).Error(0)
}

func newService(repo *mockRepo) *Service {
	return NewService(repo, domain.DefaultOperatingWindow(), logger.Nop())
}

func TestGetWindow_DefaultWhenNotConfigured(t *testing.T) {
	repo := new(mockRepo)
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) // суббота
	repo.On("GetWithHierarchy", mock.Anything, int64(1), time.Saturday).
		Return(nil, scheduleRepo.ErrScheduleNotFound)

	window, err := newService(repo).GetWindow(context.Background(), 1, date)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultOperatingWindow(), window)
	repo.AssertExpectations(t)
}

func TestGetWindow_ConfiguredDayOff(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetWithHierarchy", mock.Anything, int64(1), time.Sunday).
		Return(&domain.ResourceSchedule{ID: 3, ResourceID: 1, Weekday: ptr.Ptr(time.Sunday), StartTime: "09:00", EndTime: "09:00", IsDayOff: true}, nil)

	window, err := newService(repo).GetWindow(context.Background(), 1, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.True(t, window.DayOff)
}

func TestGetWindow_RepositoryError(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetWithHierarchy", mock.Anything, int64(1), mock.Anything).
		Return(nil, errors.New("db down"))

	_, err := newService(repo).GetWindow(context.Background(), 1, time.Now())

	assert.ErrorIs(t, err, ErrInternal)
}

func TestGetSchedule_DefaultSource(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetByResourceAndWeekday", mock.Anything, int64(1), (*time.Weekday)(nil)).
		Return(nil, scheduleRepo.ErrScheduleNotFound)

	resp, err := newService(repo).GetSchedule(context.Background(), &models.GetScheduleRequest{ResourceID: 1})

	require.NoError(t, err)
	assert.Equal(t, models.SourceDefault, resp.Source)
	assert.Equal(t, "09:00", resp.StartTime)
	assert.Equal(t, "20:00", resp.EndTime)
	assert.Nil(t, resp.ID)
}

func TestUpsert_CreatesWhenMissing(t *testing.T) {
	repo := new(mockRepo)
	weekday := time.Monday

	repo.On("GetByResourceAndWeekday", mock.Anything, int64(1), &weekday).
		Return(nil, scheduleRepo.ErrScheduleNotFound)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.ResourceSchedule) bool {
		return s.StartTime == "10:00" && s.EndTime == "18:30" && *s.Weekday == time.Monday
	})).Return(&domain.ResourceSchedule{ID: 5, ResourceID: 1, Weekday: &weekday, StartTime: "10:00", EndTime: "18:30"}, nil)

	resp, err := newService(repo).Upsert(context.Background(), &models.UpsertScheduleRequest{
		UserID:     1,
		ResourceID: 1,
		Weekday:    &weekday,
		StartTime:  "10:00",
		EndTime:    "18:30:00",
	})

	require.NoError(t, err)
	assert.Equal(t, models.SourceWeekday, resp.Source)
	require.NotNil(t, resp.Weekday)
	assert.Equal(t, 1, *resp.Weekday)
	repo.AssertExpectations(t)
}

func TestUpsert_UpdatesExisting(t *testing.T) {
	repo := new(mockRepo)

	repo.On("GetByResourceAndWeekday", mock.Anything, int64(1), (*time.Weekday)(nil)).
		Return(&domain.ResourceSchedule{ID: 7, ResourceID: 1, StartTime: "09:00", EndTime: "20:00"}, nil)
	repo.On("Update", mock.Anything, int64(7), mock.Anything).
		Return(&domain.ResourceSchedule{ID: 7, ResourceID: 1, StartTime: "08:00", EndTime: "21:00"}, nil)

	resp, err := newService(repo).Upsert(context.Background(), &models.UpsertScheduleRequest{
		UserID:     1,
		ResourceID: 1,
		StartTime:  "08:00",
		EndTime:    "21:00",
	})

	require.NoError(t, err)
	assert.Equal(t, models.SourceAllDays, resp.Source)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpsert_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.UpsertScheduleRequest
	}{
		{name: "off grid start", req: models.UpsertScheduleRequest{ResourceID: 1, StartTime: "09:15", EndTime: "20:00"}},
		{name: "bad end", req: models.UpsertScheduleRequest{ResourceID: 1, StartTime: "09:00", EndTime: "24:00"}},
		{name: "end before start", req: models.UpsertScheduleRequest{ResourceID: 1, StartTime: "12:00", EndTime: "11:30"}},
		{name: "weekday out of range", req: models.UpsertScheduleRequest{ResourceID: 1, Weekday: ptr.Ptr(time.Weekday(7)), StartTime: "09:00", EndTime: "20:00"}},
		{name: "no resource", req: models.UpsertScheduleRequest{StartTime: "09:00", EndTime: "20:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepo)

			_, err := newService(repo).Upsert(context.Background(), &tt.req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo := new(mockRepo)
	repo.On("DeleteByResourceAndWeekday", mock.Anything, int64(1), (*time.Weekday)(nil)).
		Return(scheduleRepo.ErrScheduleNotFound)

	err := newService(repo).Delete(context.Background(), &models.DeleteScheduleRequest{UserID: 1, ResourceID: 1})

	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestUpsert_OnlyOwnSchedule(t *testing.T) {
	repo := new(mockRepo)

	_, err := newService(repo).Upsert(context.Background(), &models.UpsertScheduleRequest{
		UserID:     2,
		ResourceID: 1,
		StartTime:  "09:00",
		EndTime:    "20:00",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = newService(repo).Delete(context.Background(), &models.DeleteScheduleRequest{UserID: 2, ResourceID: 1})
	assert.ErrorIs(t, err, ErrAccessDenied)

	repo.AssertNotCalled(t, "GetByResourceAndWeekday", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "DeleteByResourceAndWeekday", mock.Anything, mock.Anything, mock.Anything)
}
