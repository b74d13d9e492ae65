package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	createAppointment "github.com/m04kA/SMC-BarberBooking/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

const body = `{"resourceId":10,"clientId":20,"serviceId":3,"date":"2024-06-02","time":"10:00","notes":"fade"}`

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createAppointment.Response), args.Error(1)
}

func serve(uc *mockUseCase, userID int64, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(payload))
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.Nop()).Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := new(mockUseCase)
	created := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createAppointment.Request) bool {
		return r.UserID == 20 && r.ResourceID == 10 && r.Time == "10:00" && *r.Notes == "fade" &&
			r.Date.Equal(time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC))
	})).Return(&createAppointment.Response{
		ID: 1, ResourceID: 10, ClientID: 20, ServiceID: 3,
		Date: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), Time: "10:00",
		Status: "pending", CreatedAt: created, UpdatedAt: created,
	}, nil)

	rec := serve(uc, 20, body)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{
		"id": 1, "resourceId": 10, "clientId": 20, "serviceId": 3,
		"date": "2024-06-02", "time": "10:00", "status": "pending",
		"createdAt": "2024-06-01T08:00:00Z", "updatedAt": "2024-06-01T08:00:00Z"
	}`, rec.Body.String())
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "slot taken", err: fmt.Errorf("%w: held by 7", createAppointment.ErrSlotTaken), status: http.StatusConflict},
		{name: "out of window", err: createAppointment.ErrOutOfWindow, status: http.StatusBadRequest},
		{name: "past", err: createAppointment.ErrSlotInPast, status: http.StatusBadRequest},
		{name: "forbidden", err: createAppointment.ErrAccessDenied, status: http.StatusForbidden},
		{name: "invalid", err: createAppointment.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "internal", err: errors.New("db"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			assert.Equal(t, tt.status, serve(uc, 20, body).Code)
		})
	}
}

func TestHandle_RequestProblems(t *testing.T) {
	uc := new(mockUseCase)

	assert.Equal(t, http.StatusUnauthorized, serve(uc, 0, body).Code)
	assert.Equal(t, http.StatusBadRequest, serve(uc, 20, `{"resourceId":"ten"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(uc, 20, strings.Replace(body, "2024-06-02", "02.06.2024", 1)).Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
