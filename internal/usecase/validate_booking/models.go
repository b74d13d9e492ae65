package validate_booking

import "time"

// Request проверка слота без создания записи
type Request struct {
	ResourceID           int64
	Date                 time.Time
	Time                 string
	ExcludeAppointmentID *int64
}
