package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkBooking(start string, duration int, status Status) Booking {
	return Booking{
		TeacherID:   1,
		StudentID:   2,
		Date:        "2026-09-01",
		StartTime:   start,
		DurationMin: duration,
		Status:      status,
	}
}

func TestHasConflict_SelfOverlap(t *testing.T) {
	b := mkBooking("10:00", 30, StatusApproved)

	conflict, err := HasConflict([]Booking{b}, b)
	require.NoError(t, err)
	assert.True(t, conflict, "a slot always conflicts with itself")
}

func TestHasConflict_AdjacentSlotsDoNotConflict(t *testing.T) {
	a := mkBooking("10:00", 30, StatusApproved)
	b := mkBooking("10:30", 30, StatusPending)

	conflict, err := HasConflict([]Booking{a}, b)
	require.NoError(t, err)
	assert.False(t, conflict, "candidate starting when another ends is fine")

	conflict, err = HasConflict([]Booking{b}, a)
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestHasConflict_PartialOverlap(t *testing.T) {
	a := mkBooking("10:00", 30, StatusApproved)
	b := mkBooking("10:15", 30, StatusPending)

	conflict, err := HasConflict([]Booking{a}, b)
	require.NoError(t, err)
	assert.True(t, conflict)

	conflict, err = HasConflict([]Booking{b}, a)
	require.NoError(t, err)
	assert.True(t, conflict)
}

func TestHasConflict_ContainedInterval(t *testing.T) {
	long := mkBooking("10:00", 120, StatusApproved)
	short := mkBooking("10:30", 30, StatusPending)

	conflict, err := HasConflict([]Booking{long}, short)
	require.NoError(t, err)
	assert.True(t, conflict)
}

func TestHasConflict_ExcludedStatusesDoNotBlock(t *testing.T) {
	candidate := mkBooking("10:00", 30, StatusPending)

	for _, s := range []Status{StatusCancelled, StatusRejected} {
		existing := mkBooking("10:00", 30, s)

		conflict, err := HasConflict([]Booking{existing}, candidate)
		require.NoError(t, err)
		assert.False(t, conflict, "status %s must not occupy the slot", s)
	}
}

func TestHasConflict_OccupyingStatusesBlock(t *testing.T) {
	candidate := mkBooking("10:00", 30, StatusPending)

	for _, s := range []Status{StatusPending, StatusApproved, StatusCompleted} {
		existing := mkBooking("10:00", 30, s)

		conflict, err := HasConflict([]Booking{existing}, candidate)
		require.NoError(t, err)
		assert.True(t, conflict, "status %s must occupy the slot", s)
	}
}

func TestHasConflict_OtherDateIgnored(t *testing.T) {
	existing := mkBooking("10:00", 30, StatusApproved)
	existing.Date = "2026-09-02"

	candidate := mkBooking("10:00", 30, StatusPending)

	conflict, err := HasConflict([]Booking{existing}, candidate)
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestHasConflict_EmptySnapshot(t *testing.T) {
	conflict, err := HasConflict(nil, mkBooking("10:00", 30, StatusPending))
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestHasConflict_MalformedTimeFailsFast(t *testing.T) {
	candidate := mkBooking("25:99", 30, StatusPending)

	_, err := HasConflict(nil, candidate)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestHasConflict_NonPositiveDurationFailsFast(t *testing.T) {
	for _, d := range []int{0, -30} {
		candidate := mkBooking("10:00", d, StatusPending)

		_, err := HasConflict(nil, candidate)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	}
}

func TestHasConflict_MalformedExistingFailsFast(t *testing.T) {
	existing := mkBooking("bogus", 30, StatusApproved)
	candidate := mkBooking("10:00", 30, StatusPending)

	_, err := HasConflict([]Booking{existing}, candidate)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestAvailableSlots_Exhaustive(t *testing.T) {
	wh := WorkingHours{StartHour: 9, EndHour: 10, SlotMin: 30}

	slots, err := AvailableSlots(nil, 1, "2026-09-01", wh)
	require.NoError(t, err)

	require.Len(t, slots, 2)
	assert.Equal(t, TimeSlot{Date: "2026-09-01", Start: "09:00", End: "09:30"}, slots[0])
	assert.Equal(t, TimeSlot{Date: "2026-09-01", Start: "09:30", End: "10:00"}, slots[1])
}

func TestAvailableSlots_ExcludesBooked(t *testing.T) {
	wh := WorkingHours{StartHour: 9, EndHour: 10, SlotMin: 30}
	existing := []Booking{mkBooking("09:00", 30, StatusApproved)}

	slots, err := AvailableSlots(existing, 1, "2026-09-01", wh)
	require.NoError(t, err)

	require.Len(t, slots, 1)
	assert.Equal(t, "09:30", slots[0].Start)
}

func TestAvailableSlots_Deterministic(t *testing.T) {
	wh := WorkingHours{StartHour: 9, EndHour: 17, SlotMin: 30}
	existing := []Booking{
		mkBooking("10:00", 30, StatusApproved),
		mkBooking("14:30", 60, StatusPending),
	}

	first, err := AvailableSlots(existing, 1, "2026-09-01", wh)
	require.NoError(t, err)

	second, err := AvailableSlots(existing, 1, "2026-09-01", wh)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAvailableSlots_EmptyWindow(t *testing.T) {
	for _, wh := range []WorkingHours{
		{StartHour: 17, EndHour: 9, SlotMin: 30},
		{StartHour: 9, EndHour: 9, SlotMin: 30},
		{},
	} {
		slots, err := AvailableSlots(nil, 1, "2026-09-01", wh)
		require.NoError(t, err)
		assert.Empty(t, slots)
	}
}

func TestAvailableSlots_DefaultSlotLength(t *testing.T) {
	wh := WorkingHours{StartHour: 9, EndHour: 10}

	slots, err := AvailableSlots(nil, 1, "2026-09-01", wh)
	require.NoError(t, err)
	assert.Len(t, slots, 2)
}

func TestAvailableSlots_OddSlotDoesNotSpillPastClose(t *testing.T) {
	// 9:00-10:00 window with 45-minute slots fits exactly one slot
	wh := WorkingHours{StartHour: 9, EndHour: 10, SlotMin: 45}

	slots, err := AvailableSlots(nil, 1, "2026-09-01", wh)
	require.NoError(t, err)

	require.Len(t, slots, 1)
	assert.Equal(t, "09:45", slots[0].End)
}

func fullyBook(date string) []Booking {
	b := mkBooking("09:00", 8*60, StatusApproved)
	b.Date = date
	return []Booking{b}
}

func TestNextAvailableSlot_FirstFreeDay(t *testing.T) {
	wh := WorkingHours{StartHour: 9, EndHour: 17, SlotMin: 30}

	existing := fullyBook("2026-09-01")

	slot, err := NextAvailableSlot(existing, 1, "2026-09-01", wh, 7)
	require.NoError(t, err)

	require.NotNil(t, slot)
	assert.Equal(t, "2026-09-02", slot.Date)
	assert.Equal(t, "09:00", slot.Start)
}

func TestNextAvailableSlot_FromDateInclusive(t *testing.T) {
	wh := WorkingHours{StartHour: 9, EndHour: 17, SlotMin: 30}

	slot, err := NextAvailableSlot(nil, 1, "2026-09-01", wh, 1)
	require.NoError(t, err)

	require.NotNil(t, slot)
	assert.Equal(t, "2026-09-01", slot.Date)
}

func TestNextAvailableSlot_HorizonExhausted(t *testing.T) {
	wh := WorkingHours{StartHour: 9, EndHour: 17, SlotMin: 30}

	horizon := 3
	var existing []Booking
	for _, d := range []string{"2026-09-01", "2026-09-02", "2026-09-03"} {
		existing = append(existing, fullyBook(d)...)
	}

	slot, err := NextAvailableSlot(existing, 1, "2026-09-01", wh, horizon)
	require.NoError(t, err)
	assert.Nil(t, slot, "fully booked horizon yields no slot, not an error")
}

func TestNextAvailableSlot_RequiresPositiveHorizon(t *testing.T) {
	wh := WorkingHours{StartHour: 9, EndHour: 17, SlotMin: 30}

	for _, horizon := range []int{0, -1} {
		_, err := NextAvailableSlot(nil, 1, "2026-09-01", wh, horizon)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	}
}

func TestNextAvailableSlot_MalformedFromDate(t *testing.T) {
	wh := WorkingHours{StartHour: 9, EndHour: 17, SlotMin: 30}

	_, err := NextAvailableSlot(nil, 1, "09/01/2026", wh, 7)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestWithinWindow(t *testing.T) {
	wh := WorkingHours{StartHour: 9, EndHour: 17, SlotMin: 30}

	cases := []struct {
		start    string
		duration int
		want     bool
	}{
		{"09:00", 30, true},
		{"16:30", 30, true},
		{"16:45", 30, false}, // runs past close
		{"08:30", 30, false}, // before open
		{"08:30", 60, false}, // straddles open
	}

	for _, tc := range cases {
		ok, err := WithinWindow(mkBooking(tc.start, tc.duration, StatusPending), wh)
		require.NoError(t, err)
		assert.Equal(t, tc.want, ok, "start %s duration %d", tc.start, tc.duration)
	}
}
