package update_appointment_status

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
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

func (m *mockService) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppointmentResponse), args.Error(1)
}

func serve(svc *mockService, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/1/status", strings.NewReader(payload))
	req = mux.SetURLVars(req, map[string]string{"appointmentId": "1"})
	req = req.WithContext(middleware.WithUserID(req.Context(), 10))
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	svc := new(mockService)
	svc.On("UpdateStatus", mock.Anything, int64(1), &models.UpdateStatusRequest{UserID: 10, Status: "confirmed"}).
		Return(&models.AppointmentResponse{ID: 1, Status: "confirmed"}, nil)

	rec := serve(svc, `{"status":"confirmed"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"confirmed"`)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{err: appointments.ErrAppointmentNotFound, status: http.StatusNotFound},
		{err: appointments.ErrAccessDenied, status: http.StatusForbidden},
		{err: fmt.Errorf("%w: invalid status", appointments.ErrInvalidInput), status: http.StatusBadRequest},
		{err: fmt.Errorf("%w: cancelled -> confirmed", appointments.ErrInvalidTransition), status: http.StatusConflict},
		{err: errors.New("db"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			svc := new(mockService)
			svc.On("UpdateStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			assert.Equal(t, tt.status, serve(svc, `{"status":"confirmed"}`).Code)
		})
	}
}
