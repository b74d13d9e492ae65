package get_available_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ResourceID int64          `json:"resourceId"`
	Date       string         `json:"date"`
	Window     WindowResponse `json:"window"`
	Slots      []SlotResponse `json:"slots"`
}

// WindowResponse рабочее окно мастера на дату
type WindowResponse struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	DayOff bool   `json:"dayOff"`
}

// SlotResponse слот сетки
type SlotResponse struct {
	Time       string `json:"time"`
	Occupied   bool   `json:"occupied"`
	Past       bool   `json:"past"`
	Selectable bool   `json:"selectable"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			Time:       slot.Time.String(),
			Occupied:   slot.Occupied,
			Past:       slot.Past,
			Selectable: slot.Selectable,
		}
	}

	return &AvailableSlotsResponse{
		ResourceID: resp.ResourceID,
		Date:       resp.Date.Format(domain.DateFormat),
		Window: WindowResponse{
			Start:  resp.Window.Start.String(),
			End:    resp.Window.End.String(),
			DayOff: resp.Window.DayOff,
		},
		Slots: slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(resourceID, userID int64, dateStr, excludeStr, onlyAvailableStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		UserID:     userID,
		ResourceID: resourceID,
		Date:       date,
	}

	if excludeStr != "" {
		excludeID, err := strconv.ParseInt(excludeStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ExcludeAppointmentID = &excludeID
	}

	if onlyAvailableStr != "" {
		req.OnlyAvailable, err = strconv.ParseBool(onlyAvailableStr)
		if err != nil {
			return nil, err
		}
	}

	return req, nil
}
