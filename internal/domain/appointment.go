package domain

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// AppointmentStatus статус записи к мастеру
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusNoShow    AppointmentStatus = "no_show"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment запись клиента к мастеру (ресурсу) на слот сетки
type Appointment struct {
	ID         int64
	ResourceID int64 // ID мастера
	ClientID   int64
	ServiceID  int64 // только для отображения, длительность услуги не моделируется
	Date       time.Time
	Time       types.TimeString
	Status     AppointmentStatus
	Notes      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment occupies its slot.
// Cancelled and no-show appointments free the slot for rebooking.
func (a *Appointment) IsActive() bool {
	return a.Status.IsActive()
}

// CanBeRescheduled returns true if the appointment date/time may be changed
func (a *Appointment) CanBeRescheduled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanTransitionTo проверяет допустимость перехода статуса
// Терминальные статусы (completed, no_show, cancelled) не меняются,
// поэтому смена статуса никогда не занимает слот повторно
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	switch a.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCompleted ||
			next == StatusNoShow || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusNoShow || next == StatusCancelled
	default:
		return false
	}
}

func (s AppointmentStatus) IsActive() bool {
	return s != StatusCancelled && s != StatusNoShow
}

func (s AppointmentStatus) IsValid() bool {
	for _, valid := range AllStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// AppointmentsFilter фильтр для списков записей
type AppointmentsFilter struct {
	ResourceID      *int64
	ClientID        *int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *AppointmentStatus
	IncludeInactive bool // включать отмененные и no-show
}
