package get_client_appointments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetClientAppointments(ctx context.Context, req *models.GetClientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppointmentListResponse), args.Error(1)
}

func serve(svc *mockService, userID int64, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients/20/appointments?"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"clientId": "20"})
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := new(mockService)
	svc.On("GetClientAppointments", mock.Anything, mock.MatchedBy(func(r *models.GetClientAppointmentsRequest) bool {
		return r.UserID == 20 && r.ClientID == 20 && r.Status != nil && *r.Status == "cancelled"
	})).Return(&models.AppointmentListResponse{Appointments: []models.AppointmentResponse{}}, nil)
	svc.On("GetClientAppointments", mock.Anything, mock.MatchedBy(func(r *models.GetClientAppointmentsRequest) bool {
		return r.UserID == 10
	})).Return(nil, appointments.ErrAccessDenied)

	rec := serve(svc, 20, "status=cancelled")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	assert.Equal(t, http.StatusForbidden, serve(svc, 10, "").Code)
}
