package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	createAppointment "github.com/m04kA/SMC-BarberBooking/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ResourceID int64   `json:"resourceId"`
	ClientID   int64   `json:"clientId"`
	ServiceID  int64   `json:"serviceId"`
	Date       string  `json:"date"` // "2024-06-01"
	Time       string  `json:"time"` // "10:00"
	Status     *string `json:"status,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID         int64   `json:"id"`
	ResourceID int64   `json:"resourceId"`
	ClientID   int64   `json:"clientId"`
	ServiceID  int64   `json:"serviceId"`
	Date       string  `json:"date"`
	Time       string  `json:"time"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes,omitempty"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Время передается как есть: формат проверяет use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(userID int64) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		UserID:     userID,
		ResourceID: r.ResourceID,
		ClientID:   r.ClientID,
		ServiceID:  r.ServiceID,
		Date:       date,
		Time:       r.Time,
		Status:     r.Status,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:         resp.ID,
		ResourceID: resp.ResourceID,
		ClientID:   resp.ClientID,
		ServiceID:  resp.ServiceID,
		Date:       resp.Date.Format(domain.DateFormat),
		Time:       resp.Time.String(),
		Status:     resp.Status,
		Notes:      resp.Notes,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
	}
}
