package domain

import "github.com/m04kA/SMC-BarberBooking/pkg/types"

// SlotGranularityMinutes шаг сетки слотов
// Каждая запись занимает ровно одну ячейку сетки независимо от реальной длительности услуги
const SlotGranularityMinutes = 30

// Границы рабочего окна по умолчанию (End - начало последнего слота)
const (
	DefaultWindowStart types.TimeString = "09:00"
	DefaultWindowEnd   types.TimeString = "20:00"
)

const MaxNotesLength = 500

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AllStatuses все допустимые статусы записи
var AllStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusNoShow,
	StatusCancelled,
}

// InactiveStatuses статусы, освобождающие слот
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusNoShow,
}
