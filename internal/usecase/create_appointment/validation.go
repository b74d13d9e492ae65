package create_appointment

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceId must be positive", ErrInvalidInput)
	}

	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientId must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if utf8.RuneCountInString(ptr.Value(req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// initialStatus статус новой записи: pending или confirmed
func initialStatus(status *string) (domain.AppointmentStatus, error) {
	if ptr.Value(status) == "" {
		return domain.StatusPending, nil
	}

	switch s := domain.AppointmentStatus(*status); s {
	case domain.StatusPending, domain.StatusConfirmed:
		return s, nil
	default:
		return "", fmt.Errorf("%w: initial status must be pending or confirmed", ErrInvalidInput)
	}
}
