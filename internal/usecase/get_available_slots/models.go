package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Request модель запроса на получение сетки слотов
type Request struct {
	UserID               int64     // ID пользователя (для логирования, не влияет на результат)
	ResourceID           int64     // ID мастера
	Date                 time.Time // Дата (без времени)
	ExcludeAppointmentID *int64    // Не считать занятым слот этой записи (выбор слота для переноса)
	OnlyAvailable        bool      // Вернуть только слоты, доступные для выбора
}

// Response модель ответа с сеткой слотов
type Response struct {
	ResourceID int64
	Date       time.Time
	Window     Window
	Slots      []Slot
}

// Window рабочее окно мастера на дату
type Window struct {
	Start  types.TimeString
	End    types.TimeString
	DayOff bool
}

// Slot модель слота сетки
type Slot struct {
	Time       types.TimeString
	Occupied   bool // занят активной записью
	Past       bool // уже начался
	Selectable bool // свободен и не в прошлом
}
