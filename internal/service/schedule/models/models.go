package models

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// Уровень, с которого взято рабочее окно
const (
	SourceWeekday = "weekday"  // расписание на конкретный день недели
	SourceAllDays = "all_days" // общее расписание мастера
	SourceDefault = "default"  // окно по умолчанию из конфигурации
)

// Request модели

// GetScheduleRequest запрос действующего окна мастера
// Weekday == nil - общее расписание
type GetScheduleRequest struct {
	ResourceID int64
	Weekday    *time.Weekday
}

// UpsertScheduleRequest создание или замена окна мастера
type UpsertScheduleRequest struct {
	UserID     int64         `json:"-"`
	ResourceID int64         `json:"-"`
	Weekday    *time.Weekday `json:"weekday,omitempty"` // 0 - воскресенье ... 6 - суббота, nil - все дни
	StartTime  string        `json:"startTime"`         // первый слот, HH:MM
	EndTime    string        `json:"endTime"`           // последний слот, HH:MM
	IsDayOff   bool          `json:"isDayOff"`
}

// DeleteScheduleRequest удаление окна мастера
type DeleteScheduleRequest struct {
	UserID     int64
	ResourceID int64
	Weekday    *time.Weekday
}

// Response модели

// ScheduleResponse рабочее окно мастера
type ScheduleResponse struct {
	ID         *int64     `json:"id,omitempty"` // nil для окна по умолчанию
	ResourceID int64      `json:"resourceId"`
	Weekday    *int       `json:"weekday,omitempty"`
	StartTime  string     `json:"startTime"`
	EndTime    string     `json:"endTime"`
	IsDayOff   bool       `json:"isDayOff"`
	Source     string     `json:"source"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// ScheduleListResponse все окна мастера
type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
}

// Методы конвертации

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.ResourceSchedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	resp := &ScheduleResponse{
		ID:         &s.ID,
		ResourceID: s.ResourceID,
		StartTime:  s.StartTime.String(),
		EndTime:    s.EndTime.String(),
		IsDayOff:   s.IsDayOff,
		Source:     SourceAllDays,
		CreatedAt:  &s.CreatedAt,
		UpdatedAt:  &s.UpdatedAt,
	}

	if s.Weekday != nil {
		wd := int(*s.Weekday)
		resp.Weekday = &wd
		resp.Source = SourceWeekday
	}

	return resp
}

// FromDefaultWindow DTO для окна по умолчанию
func FromDefaultWindow(resourceID int64, window domain.OperatingWindow) *ScheduleResponse {
	return &ScheduleResponse{
		ResourceID: resourceID,
		StartTime:  window.Start.String(),
		EndTime:    window.End.String(),
		IsDayOff:   window.DayOff,
		Source:     SourceDefault,
	}
}

// FromDomainScheduleList конвертирует список domain моделей в DTO
func FromDomainScheduleList(schedules []*domain.ResourceSchedule) *ScheduleListResponse {
	resp := &ScheduleListResponse{
		Schedules: make([]ScheduleResponse, 0, len(schedules)),
	}

	for _, s := range schedules {
		if item := FromDomainSchedule(s); item != nil {
			resp.Schedules = append(resp.Schedules, *item)
		}
	}

	return resp
}
