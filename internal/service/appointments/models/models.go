package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	UserID int64  `json:"-"`
	Status string `json:"status"`
}

// GetClientAppointmentsRequest запрос на получение записей клиента
type GetClientAppointmentsRequest struct {
	UserID   int64
	ClientID int64
	Status   *string
}

// GetResourceAppointmentsRequest запрос на получение записей мастера
type GetResourceAppointmentsRequest struct {
	UserID          int64
	ResourceID      int64
	StartDate       *time.Time // начало периода (опционально)
	EndDate         *time.Time // конец периода (опционально)
	Status          *string    // фильтр по статусу (опционально)
	IncludeInactive bool       // включить отмененные и no-show
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetResourceAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		ResourceID:      &r.ResourceID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID         int64     `json:"id"`
	ResourceID int64     `json:"resourceId"`
	ClientID   int64     `json:"clientId"`
	ServiceID  int64     `json:"serviceId"`
	Date       string    `json:"date"` // "2024-06-01"
	Time       string    `json:"time"` // "10:00"
	Status     string    `json:"status"`
	Notes      *string   `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:         a.ID,
		ResourceID: a.ResourceID,
		ClientID:   a.ClientID,
		ServiceID:  a.ServiceID,
		Date:       a.Date.Format(domain.DateFormat),
		Time:       a.Time.String(),
		Status:     string(a.Status),
		Notes:      a.Notes,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		if item := FromDomainAppointment(a); item != nil {
			resp.Appointments = append(resp.Appointments, *item)
		}
	}

	return resp
}

// ToDomainStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
