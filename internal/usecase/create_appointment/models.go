package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	UserID     int64     // ID вызывающего (клиент или мастер)
	ResourceID int64     // ID мастера
	ClientID   int64     // ID клиента
	ServiceID  int64     // ID услуги
	Date       time.Time // Дата записи (без времени)
	Time       string    // Время слота, "HH:MM" или "HH:MM:SS"
	Status     *string   // pending (по умолчанию) или confirmed
	Notes      *string   // Заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID         int64
	ResourceID int64
	ClientID   int64
	ServiceID  int64
	Date       time.Time
	Time       types.TimeString
	Status     string
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
