package domain

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// OperatingWindow рабочее окно мастера на день
// Start - первый слот, End - начало последнего слота (включительно)
type OperatingWindow struct {
	Start  types.TimeString
	End    types.TimeString
	DayOff bool
}

// DefaultOperatingWindow окно 09:00-20:00, используется, если расписание мастера не задано
func DefaultOperatingWindow() OperatingWindow {
	return OperatingWindow{Start: DefaultWindowStart, End: DefaultWindowEnd}
}

// Contains проверяет, что время лежит в окне и на сетке слотов
func (w OperatingWindow) Contains(t types.TimeString) bool {
	if w.DayOff {
		return false
	}
	minutes := t.Minutes()
	start := w.Start.Minutes()
	if minutes < 0 || start < 0 {
		return false
	}
	if t.IsBefore(w.Start) || t.IsAfter(w.End) {
		return false
	}
	return (minutes-start)%SlotGranularityMinutes == 0
}

// Slot ячейка сетки: свободна или занята активной записью
type Slot struct {
	Time          types.TimeString
	Occupied      bool
	AppointmentID *int64 // запись, занимающая слот
}

// ResourceSchedule настройка рабочего окна мастера
// Weekday == nil - окно на все дни недели, иначе - на конкретный день (приоритетнее)
type ResourceSchedule struct {
	ID         int64
	ResourceID int64
	Weekday    *time.Weekday
	StartTime  types.TimeString
	EndTime    types.TimeString
	IsDayOff   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsWeekdaySpecific returns true if the schedule applies to a single weekday
func (s *ResourceSchedule) IsWeekdaySpecific() bool {
	return s.Weekday != nil
}

// Window конвертирует настройку в рабочее окно
func (s *ResourceSchedule) Window() OperatingWindow {
	return OperatingWindow{Start: s.StartTime, End: s.EndTime, DayOff: s.IsDayOff}
}

// SlotStart момент начала слота в часовом поясе салона
func SlotStart(date time.Time, t types.TimeString, loc *time.Location) time.Time {
	minutes := t.Minutes()
	if minutes < 0 {
		minutes = 0
	}
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, loc)
}

// IsSlotInPast слот уже начался относительно now
func IsSlotInPast(date time.Time, t types.TimeString, now time.Time, loc *time.Location) bool {
	return SlotStart(date, t, loc).Before(now.In(loc))
}
