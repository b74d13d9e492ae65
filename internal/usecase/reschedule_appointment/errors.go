package reschedule_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrAccessDenied возвращается, когда пользователь не участник записи
	ErrAccessDenied = errors.New("reschedule_appointment: access denied")

	// ErrCannotReschedule возвращается для записей в терминальном статусе
	ErrCannotReschedule = errors.New("reschedule_appointment: appointment cannot be rescheduled")

	// ErrSlotTaken возвращается, когда новый слот занят другой активной записью
	ErrSlotTaken = errors.New("reschedule_appointment: slot already taken")

	// ErrOutOfWindow возвращается, когда новое время вне рабочего окна
	ErrOutOfWindow = errors.New("reschedule_appointment: time is outside the operating window")

	// ErrSlotInPast возвращается при переносе на уже начавшийся слот
	ErrSlotInPast = errors.New("reschedule_appointment: slot is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
