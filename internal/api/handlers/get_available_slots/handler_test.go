package get_available_slots

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	getAvailableSlots "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getAvailableSlots.Response), args.Error(1)
}

func serve(uc *mockUseCase, resourceID, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/resources/"+resourceID+"/available-slots?"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"resourceId": resourceID})
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.Nop()).Handle(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	uc := new(mockUseCase)
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	uc.On("Execute", mock.Anything, &getAvailableSlots.Request{
		ResourceID:           7,
		Date:                 date,
		ExcludeAppointmentID: ptr.Ptr(int64(3)),
	}).Return(&getAvailableSlots.Response{
		ResourceID: 7,
		Date:       date,
		Window:     getAvailableSlots.Window{Start: "09:00", End: "09:30"},
		Slots: []getAvailableSlots.Slot{
			{Time: "09:00", Selectable: true},
			{Time: "09:30", Occupied: true},
		},
	}, nil)

	rec := serve(uc, "7", "date=2024-06-01&excludeAppointmentId=3")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"resourceId": 7,
		"date": "2024-06-01",
		"window": {"start": "09:00", "end": "09:30", "dayOff": false},
		"slots": [
			{"time": "09:00", "occupied": false, "past": false, "selectable": true},
			{"time": "09:30", "occupied": true, "past": false, "selectable": false}
		]
	}`, rec.Body.String())
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name       string
		resourceID string
		query      string
	}{
		{name: "bad resource", resourceID: "abc", query: "date=2024-06-01"},
		{name: "missing date", resourceID: "1", query: ""},
		{name: "bad date", resourceID: "1", query: "date=01.06.2024"},
		{name: "bad exclude", resourceID: "1", query: "date=2024-06-01&excludeAppointmentId=x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)

			rec := serve(uc, tt.resourceID, tt.query)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandle_InternalError(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	rec := serve(uc, "1", "date=2024-06-01")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
