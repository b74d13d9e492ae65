package get_resource_appointments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetResourceAppointments(ctx context.Context, req *models.GetResourceAppointmentsRequest) (*models.AppointmentListResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppointmentListResponse), args.Error(1)
}

func TestToServiceRequest(t *testing.T) {
	req, err := ToServiceRequest(10, 10, url.Values{"date": {"2024-06-01"}, "status": {"pending"}, "includeInactive": {"true"}})
	require.NoError(t, err)
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, req.StartDate.Equal(day))
	assert.True(t, req.EndDate.Equal(day))
	assert.Equal(t, "pending", *req.Status)
	assert.True(t, req.IncludeInactive)

	req, err = ToServiceRequest(10, 10, url.Values{"startDate": {"2024-06-01"}, "endDate": {"2024-06-07"}})
	require.NoError(t, err)
	assert.Equal(t, 7, req.EndDate.Day())

	_, err = ToServiceRequest(10, 10, url.Values{"date": {"2024-06-01"}, "endDate": {"2024-06-07"}})
	assert.Error(t, err)

	_, err = ToServiceRequest(10, 10, url.Values{"includeInactive": {"maybe"}})
	assert.Error(t, err)
}

func TestHandle(t *testing.T) {
	svc := new(mockService)
	svc.On("GetResourceAppointments", mock.Anything, mock.MatchedBy(func(r *models.GetResourceAppointmentsRequest) bool {
		return r.UserID == 10
	})).Return(&models.AppointmentListResponse{Appointments: []models.AppointmentResponse{{ID: 1}}}, nil)
	svc.On("GetResourceAppointments", mock.Anything, mock.MatchedBy(func(r *models.GetResourceAppointmentsRequest) bool {
		return r.UserID == 11
	})).Return(nil, appointments.ErrAccessDenied)

	do := func(userID int64, query string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/resources/10/appointments?"+query, nil)
		req = mux.SetURLVars(req, map[string]string{"resourceId": "10"})
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
		rec := httptest.NewRecorder()
		NewHandler(svc, logger.Nop()).Handle(rec, req)
		return rec
	}

	rec := do(10, "date=2024-06-01")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":1`)

	assert.Equal(t, http.StatusForbidden, do(11, "").Code)
	assert.Equal(t, http.StatusBadRequest, do(10, "date=June").Code)
}
