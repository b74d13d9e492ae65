package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

var errNotFound = errors.New("memstore: appointment not found")

// memStore хранилище записей в памяти
type memStore struct {
	nextID    int64
	items     map[int64]*domain.Appointment
	listCalls int
	listErr   error
}

func newMemStore() *memStore {
	return &memStore{items: map[int64]*domain.Appointment{}}
}

func (s *memStore) create(resourceID int64, date time.Time, t string, status domain.AppointmentStatus) *domain.Appointment {
	s.nextID++
	a := &domain.Appointment{
		ID:         s.nextID,
		ResourceID: resourceID,
		ClientID:   100 + s.nextID,
		ServiceID:  1,
		Date:       date,
		Time:       types.TimeString(t),
		Status:     status,
	}
	s.items[a.ID] = a
	return a
}

func (s *memStore) ListByResourceAndDate(_ context.Context, resourceID int64, date time.Time) ([]*domain.Appointment, error) {
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}

	out := make([]*domain.Appointment, 0)
	for _, a := range s.items {
		if a.ResourceID == resourceID && a.Date.Format(domain.DateFormat) == date.Format(domain.DateFormat) {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *memStore) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := s.items[id]
	if !ok {
		return nil, errNotFound
	}
	copied := *a
	return &copied, nil
}

func (s *memStore) UpdateDateTime(_ context.Context, id int64, date time.Time, t types.TimeString) (*domain.Appointment, error) {
	a, ok := s.items[id]
	if !ok {
		return nil, errNotFound
	}
	a.Date = date
	a.Time = t
	copied := *a
	return &copied, nil
}

type fixedSchedule struct {
	window domain.OperatingWindow
	err    error
}

func (f fixedSchedule) GetWindow(context.Context, int64, time.Time) (domain.OperatingWindow, error) {
	return f.window, f.err
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(domain.DateFormat, s)
	require.NoError(t, err)
	return d
}

func newEngine(store *memStore) *Engine {
	return NewEngine(store, nil, domain.DefaultOperatingWindow(), logger.Nop())
}

func slotByTime(t *testing.T, grid *SlotGrid, at string) domain.Slot {
	t.Helper()
	for _, slot := range grid.Slots {
		if slot.Time == types.TimeString(at) {
			return slot
		}
	}
	t.Fatalf("slot %s not in grid", at)
	return domain.Slot{}
}

func TestListAvailableSlots_EmptyDayIsFullyFree(t *testing.T) {
	engine := newEngine(newMemStore())

	grid, err := engine.ListAvailableSlots(context.Background(), ListSlotsRequest{
		ResourceID: 1,
		Date:       mustDate(t, "2024-06-01"),
	})
	require.NoError(t, err)

	require.Len(t, grid.Slots, 23)
	assert.Equal(t, types.TimeString("09:00"), grid.Slots[0].Time)
	assert.Equal(t, types.TimeString("09:30"), grid.Slots[1].Time)
	assert.Equal(t, types.TimeString("19:30"), grid.Slots[21].Time)
	assert.Equal(t, types.TimeString("20:00"), grid.Slots[22].Time)
	for _, slot := range grid.Slots {
		assert.False(t, slot.Occupied, slot.Time)
		assert.Nil(t, slot.AppointmentID)
	}
	assert.Len(t, grid.FreeTimes(), 23)
}

func TestListAvailableSlots_InactiveAppointmentsDoNotOccupy(t *testing.T) {
	store := newMemStore()
	date := mustDate(t, "2024-06-01")
	store.create(1, date, "10:00", domain.StatusCancelled)
	store.create(1, date, "11:00", domain.StatusNoShow)
	active := store.create(1, date, "12:00", domain.StatusCompleted)

	grid, err := newEngine(store).ListAvailableSlots(context.Background(), ListSlotsRequest{ResourceID: 1, Date: date})
	require.NoError(t, err)

	assert.False(t, slotByTime(t, grid, "10:00").Occupied)
	assert.False(t, slotByTime(t, grid, "11:00").Occupied)

	completed := slotByTime(t, grid, "12:00")
	assert.True(t, completed.Occupied)
	require.NotNil(t, completed.AppointmentID)
	assert.Equal(t, active.ID, *completed.AppointmentID)
}

func TestListAvailableSlots_OtherResourcesAndDatesIgnored(t *testing.T) {
	store := newMemStore()
	date := mustDate(t, "2024-06-01")
	store.create(2, date, "10:00", domain.StatusConfirmed)
	store.create(1, date.AddDate(0, 0, 1), "10:00", domain.StatusConfirmed)

	grid, err := newEngine(store).ListAvailableSlots(context.Background(), ListSlotsRequest{ResourceID: 1, Date: date})
	require.NoError(t, err)

	assert.Len(t, grid.FreeTimes(), 23)
}

func TestListAvailableSlots_StoredSecondsAreTruncated(t *testing.T) {
	store := newMemStore()
	date := mustDate(t, "2024-06-01")
	store.create(1, date, "14:30:00", domain.StatusPending)

	grid, err := newEngine(store).ListAvailableSlots(context.Background(), ListSlotsRequest{ResourceID: 1, Date: date})
	require.NoError(t, err)

	assert.True(t, slotByTime(t, grid, "14:30").Occupied)
}

func TestListAvailableSlots_ExcludeAppointment(t *testing.T) {
	store := newMemStore()
	date := mustDate(t, "2024-06-01")
	own := store.create(1, date, "10:00", domain.StatusConfirmed)

	grid, err := newEngine(store).ListAvailableSlots(context.Background(), ListSlotsRequest{
		ResourceID:           1,
		Date:                 date,
		ExcludeAppointmentID: &own.ID,
	})
	require.NoError(t, err)

	assert.False(t, slotByTime(t, grid, "10:00").Occupied)
}

func TestBookingExample_OccupyThenCancel(t *testing.T) {
	store := newMemStore()
	engine := newEngine(store)
	ctx := context.Background()
	date := mustDate(t, "2024-06-01")
	booked := store.create(1, date, "10:00", domain.StatusConfirmed)

	grid, err := engine.ListAvailableSlots(ctx, ListSlotsRequest{ResourceID: 1, Date: date})
	require.NoError(t, err)
	for _, slot := range grid.Slots {
		assert.Equal(t, slot.Time == "10:00", slot.Occupied, slot.Time)
	}

	err = engine.ValidateBooking(ctx, ValidateRequest{ResourceID: 1, Date: date, Time: "10:00"})
	var taken *SlotTakenError
	require.ErrorAs(t, err, &taken)
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Equal(t, booked.ID, taken.AppointmentID)

	store.items[booked.ID].Status = domain.StatusCancelled

	grid, err = engine.ListAvailableSlots(ctx, ListSlotsRequest{ResourceID: 1, Date: date})
	require.NoError(t, err)
	assert.False(t, slotByTime(t, grid, "10:00").Occupied)
	assert.NoError(t, engine.ValidateBooking(ctx, ValidateRequest{ResourceID: 1, Date: date, Time: "10:00"}))
}

func TestValidateBooking_BookingMakesSlotUnavailable(t *testing.T) {
	store := newMemStore()
	engine := newEngine(store)
	ctx := context.Background()
	date := mustDate(t, "2024-06-01")
	req := ValidateRequest{ResourceID: 1, Date: date, Time: "15:30"}

	require.NoError(t, engine.ValidateBooking(ctx, req))
	store.create(1, date, "15:30", domain.StatusPending)

	assert.ErrorIs(t, engine.ValidateBooking(ctx, req), ErrSlotTaken)
}

func TestValidateBooking_OutOfWindow(t *testing.T) {
	store := newMemStore()
	engine := newEngine(store)
	date := mustDate(t, "2024-06-01")

	for _, at := range []string{"08:45", "08:30", "20:15", "20:30", "10:15", "10:01", "23:59", "25:00", "abc", ""} {
		t.Run(at, func(t *testing.T) {
			err := engine.ValidateBooking(context.Background(), ValidateRequest{ResourceID: 1, Date: date, Time: at})

			var outOfWindow *OutOfWindowError
			require.ErrorAs(t, err, &outOfWindow)
			assert.ErrorIs(t, err, ErrOutOfWindow)
			assert.Equal(t, at, outOfWindow.Time)
		})
	}

	assert.Zero(t, store.listCalls, "window check must not read the store")
}

func TestCheckWindow(t *testing.T) {
	store := newMemStore()
	store.create(1, mustDate(t, "2024-06-01"), "10:00", domain.StatusConfirmed)
	engine := newEngine(store)
	date := mustDate(t, "2024-06-01")

	assert.NoError(t, engine.CheckWindow(context.Background(), 1, date, "10:00"), "occupancy is not checked")
	assert.NoError(t, engine.CheckWindow(context.Background(), 1, date, "20:00:30"))
	assert.ErrorIs(t, engine.CheckWindow(context.Background(), 1, date, "08:45"), ErrOutOfWindow)
	assert.ErrorIs(t, engine.CheckWindow(context.Background(), 1, date, "20:15"), ErrOutOfWindow)
	assert.ErrorIs(t, engine.CheckWindow(context.Background(), 0, date, "10:00"), ErrInvalidInput)
	assert.Zero(t, store.listCalls)

	dayOff := NewEngine(store, fixedSchedule{window: domain.OperatingWindow{Start: "09:00", End: "20:00", DayOff: true}},
		domain.DefaultOperatingWindow(), logger.Nop())
	assert.ErrorIs(t, dayOff.CheckWindow(context.Background(), 1, date, "10:00"), ErrOutOfWindow)
}

func TestValidateBooking_AcceptsSecondsAndWindowEdges(t *testing.T) {
	engine := newEngine(newMemStore())
	date := mustDate(t, "2024-06-01")

	for _, at := range []string{"09:00", "20:00", "10:30:00", "10:30:59"} {
		assert.NoError(t, engine.ValidateBooking(context.Background(), ValidateRequest{ResourceID: 1, Date: date, Time: at}), at)
	}
}

func TestValidateBooking_InvalidInput(t *testing.T) {
	engine := newEngine(newMemStore())

	err := engine.ValidateBooking(context.Background(), ValidateRequest{ResourceID: 0, Date: mustDate(t, "2024-06-01"), Time: "10:00"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = engine.ValidateBooking(context.Background(), ValidateRequest{ResourceID: 1, Time: "10:00"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestValidateBooking_StoreErrorPropagates(t *testing.T) {
	store := newMemStore()
	storeErr := errors.New("connection refused")
	store.listErr = storeErr

	err := newEngine(store).ValidateBooking(context.Background(), ValidateRequest{
		ResourceID: 1,
		Date:       mustDate(t, "2024-06-01"),
		Time:       "10:00",
	})

	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, ErrSlotTaken)
	assert.Equal(t, 1, store.listCalls)
}

func TestRescheduleAppointment_ToFreeSlotKeepsID(t *testing.T) {
	store := newMemStore()
	engine := newEngine(store)
	original := store.create(1, mustDate(t, "2024-06-01"), "10:00", domain.StatusConfirmed)

	updated, err := engine.RescheduleAppointment(context.Background(), original.ID, mustDate(t, "2024-06-03"), "16:00:00")
	require.NoError(t, err)

	assert.Equal(t, original.ID, updated.ID)
	assert.Equal(t, "2024-06-03", updated.Date.Format(domain.DateFormat))
	assert.Equal(t, types.TimeString("16:00"), updated.Time)
	assert.Len(t, store.items, 1)
}

func TestRescheduleAppointment_OntoOwnSlot(t *testing.T) {
	store := newMemStore()
	date := mustDate(t, "2024-06-01")
	original := store.create(1, date, "10:00", domain.StatusPending)

	updated, err := newEngine(store).RescheduleAppointment(context.Background(), original.ID, date, "10:00")
	require.NoError(t, err)

	assert.Equal(t, original.ID, updated.ID)
	assert.Equal(t, types.TimeString("10:00"), updated.Time)
}

func TestRescheduleAppointment_SlotTaken(t *testing.T) {
	store := newMemStore()
	date := mustDate(t, "2024-06-01")
	original := store.create(1, date, "10:00", domain.StatusPending)
	other := store.create(1, date, "11:00", domain.StatusConfirmed)

	_, err := newEngine(store).RescheduleAppointment(context.Background(), original.ID, date, "11:00")

	var taken *SlotTakenError
	require.ErrorAs(t, err, &taken)
	assert.Equal(t, other.ID, taken.AppointmentID)
	assert.Equal(t, types.TimeString("10:00"), store.items[original.ID].Time)
}

func TestRescheduleAppointment_OutOfWindowAndNotFound(t *testing.T) {
	store := newMemStore()
	date := mustDate(t, "2024-06-01")
	original := store.create(1, date, "10:00", domain.StatusPending)
	engine := newEngine(store)

	_, err := engine.RescheduleAppointment(context.Background(), original.ID, date, "20:15")
	assert.ErrorIs(t, err, ErrOutOfWindow)

	_, err = engine.RescheduleAppointment(context.Background(), 999, date, "10:00")
	assert.ErrorIs(t, err, errNotFound)
}

func TestScheduleProvider_CustomWindow(t *testing.T) {
	store := newMemStore()
	window := domain.OperatingWindow{Start: "10:00", End: "12:00"}
	engine := NewEngine(store, fixedSchedule{window: window}, domain.DefaultOperatingWindow(), logger.Nop())
	date := mustDate(t, "2024-06-01")

	grid, err := engine.ListAvailableSlots(context.Background(), ListSlotsRequest{ResourceID: 1, Date: date})
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"10:00", "10:30", "11:00", "11:30", "12:00"}, grid.FreeTimes())

	assert.ErrorIs(t, engine.ValidateBooking(context.Background(), ValidateRequest{ResourceID: 1, Date: date, Time: "09:00"}), ErrOutOfWindow)
}

func TestScheduleProvider_DayOff(t *testing.T) {
	store := newMemStore()
	window := domain.OperatingWindow{Start: "09:00", End: "20:00", DayOff: true}
	engine := NewEngine(store, fixedSchedule{window: window}, domain.DefaultOperatingWindow(), logger.Nop())
	date := mustDate(t, "2024-06-02")

	grid, err := engine.ListAvailableSlots(context.Background(), ListSlotsRequest{ResourceID: 1, Date: date})
	require.NoError(t, err)
	assert.Empty(t, grid.Slots)
	assert.True(t, grid.Window.DayOff)
	assert.Zero(t, store.listCalls)

	assert.ErrorIs(t, engine.ValidateBooking(context.Background(), ValidateRequest{ResourceID: 1, Date: date, Time: "10:00"}), ErrOutOfWindow)
}

func TestScheduleProvider_Error(t *testing.T) {
	providerErr := errors.New("schedule unavailable")
	engine := NewEngine(newMemStore(), fixedSchedule{err: providerErr}, domain.DefaultOperatingWindow(), logger.Nop())

	_, err := engine.ListAvailableSlots(context.Background(), ListSlotsRequest{ResourceID: 1, Date: mustDate(t, "2024-06-01")})

	assert.ErrorIs(t, err, providerErr)
}
