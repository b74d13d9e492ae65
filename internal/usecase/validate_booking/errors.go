package validate_booking

import "errors"

var (
	ErrSlotTaken    = errors.New("validate_booking: slot already taken")
	ErrOutOfWindow  = errors.New("validate_booking: time is outside the operating window")
	ErrSlotInPast   = errors.New("validate_booking: slot is in the past")
	ErrInvalidInput = errors.New("validate_booking: invalid input data")
	ErrInternal     = errors.New("validate_booking: internal error")
)
