package create_appointment

import "errors"

var (
	// ErrSlotTaken возвращается, когда слот уже занят активной записью
	ErrSlotTaken = errors.New("create_appointment: slot already taken")

	// ErrOutOfWindow возвращается, когда время вне рабочего окна или не на сетке
	ErrOutOfWindow = errors.New("create_appointment: time is outside the operating window")

	// ErrSlotInPast возвращается при попытке записаться на уже начавшийся слот
	ErrSlotInPast = errors.New("create_appointment: slot is in the past")

	// ErrAccessDenied возвращается, когда пользователь не клиент и не мастер записи
	ErrAccessDenied = errors.New("create_appointment: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
