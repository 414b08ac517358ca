package availability

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var brt = time.FixedZone("BRT", -3*60*60)

// monday is 2025-06-02, a Monday, in the business timezone.
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, brt)

func mondaySchedule() WeekSchedule {
	return WeekSchedule{
		time.Monday: {Start: "09:00", End: "18:00", BreakStart: "12:00", BreakEnd: "13:00"},
	}
}

func baseQuery() SlotQuery {
	return SlotQuery{
		Schedule:               mondaySchedule(),
		Date:                   monday,
		ServiceDurationMinutes: 60,
		GranularityMinutes:     30,
	}
}

func at(hour, min int) time.Time {
	return time.Date(2025, 6, 2, hour, min, 0, 0, brt)
}

func TestAvailableSlots_FullDayWithBreak(t *testing.T) {
	slots, err := AvailableSlots(baseQuery())
	require.NoError(t, err)

	expected := []string{
		"09:00", "09:30", "10:00", "10:30", "11:00",
		"13:00", "13:30", "14:00", "14:30", "15:00", "15:30",
		"16:00", "16:30", "17:00",
	}
	assert.Equal(t, expected, slots)

	// 17:00 + 60min = 18:00 fits exactly; 11:30 + 60min spills into the break.
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "17:00", slots[len(slots)-1])
	assert.NotContains(t, slots, "11:30")
	assert.NotContains(t, slots, "12:00")
	assert.NotContains(t, slots, "12:30")
	assert.Contains(t, slots, "13:00")
}

func TestAvailableSlots_NoWindowForWeekday(t *testing.T) {
	q := baseQuery()
	q.Date = monday.AddDate(0, 0, 1) // Tuesday, no window configured

	slots, err := AvailableSlots(q)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlots_RecurringDayOff(t *testing.T) {
	q := baseQuery()
	q.DaysOff = []time.Weekday{time.Monday}

	slots, err := AvailableSlots(q)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlots_AllDayLeave(t *testing.T) {
	q := baseQuery()
	q.Leaves = []Leave{{Date: "2025-06-02", AllDay: true}}

	slots, err := AvailableSlots(q)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlots_PartialLeave(t *testing.T) {
	q := baseQuery()
	q.Leaves = []Leave{{Date: "2025-06-02", Start: "14:00", End: "16:00"}}

	slots, err := AvailableSlots(q)
	require.NoError(t, err)

	// Slots whose interval touches [14:00,16:00) disappear, the rest remain.
	assert.Contains(t, slots, "13:00")
	assert.NotContains(t, slots, "13:30")
	assert.NotContains(t, slots, "14:00")
	assert.NotContains(t, slots, "15:30")
	assert.Contains(t, slots, "16:00")
}

func TestAvailableSlots_LeaveOnOtherDateIgnored(t *testing.T) {
	q := baseQuery()
	q.Leaves = []Leave{{Date: "2025-06-03", AllDay: true}}

	slots, err := AvailableSlots(q)
	require.NoError(t, err)
	assert.Contains(t, slots, "09:00")
}

func TestAvailableSlots_BookingConflicts(t *testing.T) {
	q := baseQuery()
	q.GranularityMinutes = 15
	q.Bookings = []Booking{
		{ID: uuid.New(), StartsAt: at(10, 0), DurationMinutes: 45},
	}

	slots, err := AvailableSlots(q)
	require.NoError(t, err)

	// 09:30 + 60min covers [09:30,10:30) which overlaps [10:00,10:45).
	assert.NotContains(t, slots, "09:30")
	assert.NotContains(t, slots, "10:00")
	assert.NotContains(t, slots, "10:30")
	assert.Contains(t, slots, "10:45")
	assert.Contains(t, slots, "09:00")
}

func TestAvailableSlots_CancelledBookingFreesSlot(t *testing.T) {
	id := uuid.New()
	q := baseQuery()
	q.Bookings = []Booking{{ID: id, StartsAt: at(9, 0), DurationMinutes: 60}}

	slots, err := AvailableSlots(q)
	require.NoError(t, err)
	assert.NotContains(t, slots, "09:00")

	q.Bookings[0].Cancelled = true
	slots, err = AvailableSlots(q)
	require.NoError(t, err)
	assert.Contains(t, slots, "09:00")
}

func TestAvailableSlots_BookingOnOtherDateIgnored(t *testing.T) {
	q := baseQuery()
	q.Bookings = []Booking{
		{ID: uuid.New(), StartsAt: at(9, 0).AddDate(0, 0, 7), DurationMinutes: 60},
	}

	slots, err := AvailableSlots(q)
	require.NoError(t, err)
	assert.Contains(t, slots, "09:00")
}

func TestAvailableSlots_DurationFallback(t *testing.T) {
	// A booking whose service duration could not be resolved blocks the
	// default 60 minutes, not zero.
	q := baseQuery()
	q.Bookings = []Booking{{ID: uuid.New(), StartsAt: at(9, 0)}}

	slots, err := AvailableSlots(q)
	require.NoError(t, err)
	assert.NotContains(t, slots, "09:00")
	assert.NotContains(t, slots, "09:30")
	assert.Contains(t, slots, "10:00")
}

func TestAvailableSlots_BookingInstantInOtherZone(t *testing.T) {
	// 13:00 UTC is 10:00 in the business timezone; the engine compares
	// calendar dates and clock times in the query's location.
	q := baseQuery()
	q.Bookings = []Booking{
		{ID: uuid.New(), StartsAt: time.Date(2025, 6, 2, 13, 0, 0, 0, time.UTC), DurationMinutes: 60},
	}

	slots, err := AvailableSlots(q)
	require.NoError(t, err)
	assert.NotContains(t, slots, "10:00")
	assert.Contains(t, slots, "11:00")
}

func TestAvailableSlots_Idempotent(t *testing.T) {
	q := baseQuery()
	q.Bookings = []Booking{{ID: uuid.New(), StartsAt: at(14, 0), DurationMinutes: 30}}

	first, err := AvailableSlots(q)
	require.NoError(t, err)
	second, err := AvailableSlots(q)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAvailableSlots_SlotsStayInsideWindow(t *testing.T) {
	slots, err := AvailableSlots(baseQuery())
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	for _, slot := range slots {
		start, err := parseClock("slot", slot)
		require.NoError(t, err)
		end := start + 60
		assert.GreaterOrEqual(t, start, 9*60, "slot %s before opening", slot)
		assert.LessOrEqual(t, end, 18*60, "slot %s past closing", slot)
		assert.False(t, overlaps(start, end, 12*60, 13*60), "slot %s crosses the break", slot)
	}
}

func TestAvailableSlots_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SlotQuery)
	}{
		{"missing date", func(q *SlotQuery) { q.Date = time.Time{} }},
		{"non-positive duration", func(q *SlotQuery) { q.ServiceDurationMinutes = 0 }},
		{"non-positive granularity", func(q *SlotQuery) { q.GranularityMinutes = -30 }},
		{"malformed window start", func(q *SlotQuery) {
			q.Schedule = WeekSchedule{time.Monday: {Start: "9h00", End: "18:00"}}
		}},
		{"malformed break", func(q *SlotQuery) {
			q.Schedule = WeekSchedule{time.Monday: {Start: "09:00", End: "18:00", BreakStart: "noon", BreakEnd: "13:00"}}
		}},
		{"malformed leave window", func(q *SlotQuery) {
			q.Leaves = []Leave{{Date: "2025-06-02", Start: "25:99", End: "16:00"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := baseQuery()
			tt.mutate(&q)

			_, err := AvailableSlots(q)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestCheckSlot_Free(t *testing.T) {
	conflict, err := CheckSlot(baseQuery(), SlotCheck{Start: at(9, 0), DurationMinutes: 60})
	require.NoError(t, err)
	assert.Nil(t, conflict)
}

func TestCheckSlot_Reasons(t *testing.T) {
	bookingID := uuid.New()

	tests := []struct {
		name   string
		mutate func(*SlotQuery)
		check  SlotCheck
		want   ConflictReason
	}{
		{
			name:   "recurring day off",
			mutate: func(q *SlotQuery) { q.DaysOff = []time.Weekday{time.Monday} },
			check:  SlotCheck{Start: at(9, 0), DurationMinutes: 60},
			want:   ConflictDayOff,
		},
		{
			name:   "all-day leave",
			mutate: func(q *SlotQuery) { q.Leaves = []Leave{{Date: "2025-06-02", AllDay: true}} },
			check:  SlotCheck{Start: at(9, 0), DurationMinutes: 60},
			want:   ConflictLeave,
		},
		{
			name:   "partial leave",
			mutate: func(q *SlotQuery) { q.Leaves = []Leave{{Date: "2025-06-02", Start: "14:00", End: "16:00"}} },
			check:  SlotCheck{Start: at(15, 0), DurationMinutes: 30},
			want:   ConflictLeave,
		},
		{
			name:   "no window that weekday",
			mutate: func(q *SlotQuery) { q.Schedule = WeekSchedule{} },
			check:  SlotCheck{Start: at(9, 0), DurationMinutes: 60},
			want:   ConflictOutsideHours,
		},
		{
			name:   "before opening",
			mutate: func(q *SlotQuery) {},
			check:  SlotCheck{Start: at(8, 0), DurationMinutes: 60},
			want:   ConflictOutsideHours,
		},
		{
			name:   "spills past closing",
			mutate: func(q *SlotQuery) {},
			check:  SlotCheck{Start: at(17, 30), DurationMinutes: 60},
			want:   ConflictOutsideHours,
		},
		{
			name:   "crosses the break",
			mutate: func(q *SlotQuery) {},
			check:  SlotCheck{Start: at(11, 30), DurationMinutes: 60},
			want:   ConflictBreak,
		},
		{
			name: "overlapping booking",
			mutate: func(q *SlotQuery) {
				q.Bookings = []Booking{{ID: bookingID, StartsAt: at(10, 0), DurationMinutes: 45}}
			},
			check: SlotCheck{Start: at(9, 30), DurationMinutes: 60},
			want:  ConflictBooking,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := baseQuery()
			tt.mutate(&q)

			conflict, err := CheckSlot(q, tt.check)
			require.NoError(t, err)
			require.NotNil(t, conflict)
			assert.Equal(t, tt.want, conflict.Reason)
			if tt.want == ConflictBooking {
				assert.Equal(t, bookingID, conflict.BookingID)
			}
		})
	}
}

func TestCheckSlot_ExcludesAppointmentUnderEdit(t *testing.T) {
	id := uuid.New()
	q := baseQuery()
	q.Bookings = []Booking{{ID: id, StartsAt: at(10, 0), DurationMinutes: 60}}

	// Without exclusion the unchanged slot conflicts with itself.
	conflict, err := CheckSlot(q, SlotCheck{Start: at(10, 0), DurationMinutes: 60})
	require.NoError(t, err)
	require.NotNil(t, conflict)
	assert.Equal(t, ConflictBooking, conflict.Reason)

	conflict, err = CheckSlot(q, SlotCheck{Start: at(10, 0), DurationMinutes: 60, ExcludeBookingID: id})
	require.NoError(t, err)
	assert.Nil(t, conflict)
}

func TestCheckSlot_CancelledBookingDoesNotConflict(t *testing.T) {
	q := baseQuery()
	q.Bookings = []Booking{{ID: uuid.New(), StartsAt: at(10, 0), DurationMinutes: 60, Cancelled: true}}

	conflict, err := CheckSlot(q, SlotCheck{Start: at(10, 0), DurationMinutes: 60})
	require.NoError(t, err)
	assert.Nil(t, conflict)
}

func TestCheckSlot_ValidationErrors(t *testing.T) {
	_, err := CheckSlot(baseQuery(), SlotCheck{DurationMinutes: 60})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = CheckSlot(baseQuery(), SlotCheck{Start: at(9, 0)})
	require.ErrorAs(t, err, &verr)
}
