package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// generateGrid генерирует все слоты окна с шагом SlotGranularityMinutes
// End - начало последнего слота, включительно
func generateGrid(window domain.OperatingWindow) ([]types.TimeString, error) {
	if window.DayOff {
		return []types.TimeString{}, nil
	}
	if err := window.Start.Validate(); err != nil {
		return nil, fmt.Errorf("%w: window start: %v", ErrInvalidInput, err)
	}
	if err := window.End.Validate(); err != nil {
		return nil, fmt.Errorf("%w: window end: %v", ErrInvalidInput, err)
	}

	grid := make([]types.TimeString, 0)
	current := window.Start

	for !current.IsAfter(window.End) {
		grid = append(grid, current)

		next, err := current.AddMinutes(domain.SlotGranularityMinutes)
		if err != nil {
			// сетка дошла до конца суток
			break
		}
		current = next
	}

	return grid, nil
}

// buildSlots размечает сетку занятыми временами
func buildSlots(grid []types.TimeString, occupied map[types.TimeString]int64) []domain.Slot {
	slots := make([]domain.Slot, len(grid))

	for i, t := range grid {
		slots[i] = domain.Slot{Time: t}
		if id, ok := occupied[t]; ok {
			holder := id
			slots[i].Occupied = true
			slots[i].AppointmentID = &holder
		}
	}

	return slots
}

// dateOnly отбрасывает время, оставляя календарную дату
func dateOnly(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}
