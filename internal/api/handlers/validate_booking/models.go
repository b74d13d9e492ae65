package validate_booking

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	validateBooking "github.com/m04kA/SMC-BarberBooking/internal/usecase/validate_booking"
)

// ValidateBookingRequest HTTP request model
type ValidateBookingRequest struct {
	Date                 string `json:"date"` // "2024-06-01"
	Time                 string `json:"time"` // "10:00"
	ExcludeAppointmentID *int64 `json:"excludeAppointmentId,omitempty"`
}

// ValidateBookingResponse результат проверки
type ValidateBookingResponse struct {
	Available bool `json:"available"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ValidateBookingRequest) ToUseCaseRequest(resourceID int64) (*validateBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &validateBooking.Request{
		ResourceID:           resourceID,
		Date:                 date,
		Time:                 r.Time,
		ExcludeAppointmentID: r.ExcludeAppointmentID,
	}, nil
}
