package reschedule_appointment

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	rescheduleAppointment "github.com/m04kA/SMC-BarberBooking/internal/usecase/reschedule_appointment"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	Date string `json:"date"` // новая дата, "2024-06-01"
	Time string `json:"time"` // новое время, "10:00"
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	ID           int64   `json:"id"`
	ResourceID   int64   `json:"resourceId"`
	ClientID     int64   `json:"clientId"`
	ServiceID    int64   `json:"serviceId"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	PreviousDate string  `json:"previousDate"`
	PreviousTime string  `json:"previousTime"`
	Status       string  `json:"status"`
	Notes        *string `json:"notes,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(appointmentID, userID int64) (*rescheduleAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &rescheduleAppointment.Request{
		UserID:        userID,
		AppointmentID: appointmentID,
		Date:          date,
		Time:          r.Time,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *RescheduleResponse {
	return &RescheduleResponse{
		ID:           resp.ID,
		ResourceID:   resp.ResourceID,
		ClientID:     resp.ClientID,
		ServiceID:    resp.ServiceID,
		Date:         resp.Date.Format(domain.DateFormat),
		Time:         resp.Time.String(),
		PreviousDate: resp.PreviousDate.Format(domain.DateFormat),
		PreviousTime: resp.PreviousTime.String(),
		Status:       resp.Status,
		Notes:        resp.Notes,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
