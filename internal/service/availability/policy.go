package availability

import (
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Политика конфликтов: две записи конфликтуют только при точном совпадении (resource, date, time).
// Длительность услуги не учитывается, каждая запись занимает одну ячейку сетки.

// occupies проверяет, занимает ли запись свой слот с учетом исключения
func occupies(appointment *domain.Appointment, excludeID *int64) bool {
	if !appointment.IsActive() {
		return false
	}
	if excludeID != nil && appointment.ID == *excludeID {
		return false
	}
	return true
}

// occupiedSlots строит множество занятых времен (HH:MM) -> ID занявшей записи
// Записи передаются на одного мастера и одну дату
func occupiedSlots(appointments []*domain.Appointment, excludeID *int64) map[types.TimeString]int64 {
	occupied := make(map[types.TimeString]int64, len(appointments))

	for _, appointment := range appointments {
		if !occupies(appointment, excludeID) {
			continue
		}

		key, err := types.NewTimeStringFromString(appointment.Time.String())
		if err != nil {
			continue
		}

		// при нескольких записях на слот держателем считается первая
		if _, taken := occupied[key]; !taken {
			occupied[key] = appointment.ID
		}
	}

	return occupied
}
