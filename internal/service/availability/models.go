package availability

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// ListSlotsRequest запрос сетки слотов мастера на дату
type ListSlotsRequest struct {
	ResourceID           int64
	Date                 time.Time
	ExcludeAppointmentID *int64 // запись, которую не считать конфликтом (перенос самой себя)
}

// SlotGrid сетка слотов на день: свободные и занятые (занятые отдаются для отображения)
type SlotGrid struct {
	ResourceID int64
	Date       time.Time
	Window     domain.OperatingWindow
	Slots      []domain.Slot
}

// FreeTimes возвращает времена свободных слотов
func (g *SlotGrid) FreeTimes() []types.TimeString {
	free := make([]types.TimeString, 0, len(g.Slots))
	for _, slot := range g.Slots {
		if !slot.Occupied {
			free = append(free, slot.Time)
		}
	}
	return free
}

// ValidateRequest проверка конкретного слота перед записью
type ValidateRequest struct {
	ResourceID           int64
	Date                 time.Time
	Time                 string // HH:MM или HH:MM:SS, секунды отбрасываются
	ExcludeAppointmentID *int64
}
