package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// annotateSlots размечает слоты сетки относительно текущего времени
// Занятые слоты остаются в ответе для отображения, но не выбираются
func annotateSlots(date time.Time, slots []domain.Slot, now time.Time, loc *time.Location, onlyAvailable bool) []Slot {
	result := make([]Slot, 0, len(slots))
	for _, s := range slots {
		past := domain.IsSlotInPast(date, s.Time, now, loc)
		slot := Slot{
			Time:       s.Time,
			Occupied:   s.Occupied,
			Past:       past,
			Selectable: !s.Occupied && !past,
		}
		if onlyAvailable && !slot.Selectable {
			continue
		}
		result = append(result, slot)
	}
	return result
}
