package validate_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	validateBooking "github.com/m04kA/SMC-BarberBooking/internal/usecase/validate_booking"
)

const (
	msgInvalidResourceID  = "некорректный ID мастера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgSlotTaken          = "выбранный слот уже занят, выберите другое время"
	msgOutOfWindow        = "время вне рабочего окна мастера или не на сетке 30 минут"
	msgSlotInPast         = "выбранный слот уже прошел"
	msgInvalidInput       = "некорректные параметры запроса"
)

type Handler struct {
	useCase ValidateBookingUseCase
	logger  Logger
}

func NewHandler(useCase ValidateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/resources/{resourceId}/validate-booking
// Слот не резервируется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID, err := strconv.ParseInt(mux.Vars(r)["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /resources/{id}/validate-booking - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	var req ValidateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /resources/{id}/validate-booking - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(resourceID)
	if err != nil {
		h.logger.Warn("POST /resources/{id}/validate-booking - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	err = h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, validateBooking.ErrSlotTaken):
			h.logger.Info("POST /resources/{id}/validate-booking - Slot taken: resource_id=%d, date=%s, time=%s",
				resourceID, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, validateBooking.ErrOutOfWindow):
			h.logger.Info("POST /resources/{id}/validate-booking - Out of window: resource_id=%d, time=%s", resourceID, req.Time)
			handlers.RespondBadRequest(w, msgOutOfWindow)

		case errors.Is(err, validateBooking.ErrSlotInPast):
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, validateBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /resources/{id}/validate-booking - Failed to validate: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ValidateBookingResponse{Available: true})
}
