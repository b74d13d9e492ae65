package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

func TestAppointment_IsActive(t *testing.T) {
	for _, status := range AllStatuses {
		a := &Appointment{Status: status}
		want := status != StatusCancelled && status != StatusNoShow
		assert.Equal(t, want, a.IsActive(), "status %s", status)
	}
}

func TestAppointment_CanTransitionTo(t *testing.T) {
	pending := &Appointment{Status: StatusPending}
	assert.True(t, pending.CanTransitionTo(StatusConfirmed))
	assert.True(t, pending.CanTransitionTo(StatusCancelled))
	assert.False(t, pending.CanTransitionTo(StatusPending))

	confirmed := &Appointment{Status: StatusConfirmed}
	assert.True(t, confirmed.CanTransitionTo(StatusNoShow))
	assert.False(t, confirmed.CanTransitionTo(StatusPending))

	for _, terminal := range []AppointmentStatus{StatusCompleted, StatusNoShow, StatusCancelled} {
		a := &Appointment{Status: terminal}
		for _, next := range AllStatuses {
			assert.False(t, a.CanTransitionTo(next), "%s -> %s", terminal, next)
		}
	}
}

func TestOperatingWindow_Contains(t *testing.T) {
	w := DefaultOperatingWindow()

	assert.True(t, w.Contains(types.MustTimeString("09:00")))
	assert.True(t, w.Contains(types.MustTimeString("14:30")))
	assert.True(t, w.Contains(types.MustTimeString("20:00")))

	assert.False(t, w.Contains(types.MustTimeString("08:45")))
	assert.False(t, w.Contains(types.MustTimeString("08:30")))
	assert.False(t, w.Contains(types.MustTimeString("10:15")))
	assert.False(t, w.Contains(types.MustTimeString("20:15")))
	assert.False(t, w.Contains(types.MustTimeString("20:30")))
	assert.False(t, w.Contains(""))

	w.DayOff = true
	assert.False(t, w.Contains(types.MustTimeString("10:00")))
}

func TestIsSlotInPast(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	// 10:15 по MSK
	now := time.Date(2024, 6, 1, 7, 15, 0, 0, time.UTC)

	assert.True(t, IsSlotInPast(date, types.MustTimeString("10:00"), now, loc))
	assert.False(t, IsSlotInPast(date, types.MustTimeString("10:30"), now, loc))
	assert.True(t, IsSlotInPast(date.AddDate(0, 0, -1), types.MustTimeString("20:00"), now, loc))
	assert.False(t, IsSlotInPast(date.AddDate(0, 0, 1), types.MustTimeString("09:00"), now, loc))

	assert.Equal(t, time.Date(2024, 6, 1, 10, 30, 0, 0, loc), SlotStart(date, "10:30", loc))
}
