package reschedule_appointment

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Request модель запроса на перенос записи
type Request struct {
	UserID        int64
	AppointmentID int64
	Date          time.Time
	Time          string
}

// Response перенесенная запись
type Response struct {
	ID           int64
	ResourceID   int64
	ClientID     int64
	ServiceID    int64
	Date         time.Time
	Time         types.TimeString
	PreviousDate time.Time
	PreviousTime types.TimeString
	Status       string
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
