package availability

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

var (
	// ErrSlotTaken слот уже занят активной записью
	ErrSlotTaken = errors.New("availability: slot already taken")

	// ErrOutOfWindow время вне рабочего окна или не на сетке слотов
	ErrOutOfWindow = errors.New("availability: time is outside the operating window")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("availability: invalid input")
)

// SlotTakenError слот (resource, date, time) занят другой активной записью
// Вызывающий должен перезапросить сетку и предложить выбрать другой слот
type SlotTakenError struct {
	ResourceID    int64
	Date          time.Time
	Time          types.TimeString
	AppointmentID int64 // запись, занимающая слот
}

func (e *SlotTakenError) Error() string {
	return fmt.Sprintf("%v: resource %d at %s %s is held by appointment %d",
		ErrSlotTaken, e.ResourceID, e.Date.Format(domain.DateFormat), e.Time, e.AppointmentID)
}

func (e *SlotTakenError) Unwrap() error {
	return ErrSlotTaken
}

// OutOfWindowError время вне окна или не кратно шагу сетки
type OutOfWindowError struct {
	Time   string
	Window domain.OperatingWindow
}

func (e *OutOfWindowError) Error() string {
	if e.Window.DayOff {
		return fmt.Sprintf("%v: %q requested on a day off", ErrOutOfWindow, e.Time)
	}
	return fmt.Sprintf("%v: %q is not a %d-minute slot between %s and %s",
		ErrOutOfWindow, e.Time, domain.SlotGranularityMinutes, e.Window.Start, e.Window.End)
}

func (e *OutOfWindowError) Unwrap() error {
	return ErrOutOfWindow
}
