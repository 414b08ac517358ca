// Package availability computes bookable time slots for a professional on a
// given calendar day. It is a pure, stateless computation: all inputs (weekly
// schedule, recurring days off, manual leaves, existing bookings) are read
// from the store by the caller before invoking it, and it performs no I/O of
// its own, so it is safe to call concurrently with different inputs.
package availability

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultServiceDurationMinutes is the fallback duration applied when a
	// booking's service link cannot be resolved. Degrade-gracefully choice:
	// an unresolvable service still blocks a standard one-hour window
	// instead of blocking nothing.
	DefaultServiceDurationMinutes = 60

	// DefaultSlotGranularityMinutes is the canonical slot step. Callers pass
	// the granularity explicitly; this constant only seeds configuration.
	DefaultSlotGranularityMinutes = 30
)

const (
	clockLayout = "15:04"
	dateLayout  = "2006-01-02"
)

// ValidationError reports malformed or missing engine input. It is always a
// local, synchronous failure; an empty slot list is a normal result and never
// produces an error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("availability: %s %s", e.Field, e.Message)
}

// WorkWindow is one weekday's working hours with an optional break.
type WorkWindow struct {
	Start      string // HH:MM
	End        string // HH:MM
	BreakStart string // HH:MM, optional
	BreakEnd   string // HH:MM, optional
}

// WeekSchedule maps a weekday to its work window. A missing weekday means the
// professional does not work that day.
type WeekSchedule map[time.Weekday]WorkWindow

// Leave is a date-specific unavailability override. When AllDay is false,
// Start and End bound a partial-day blackout window.
type Leave struct {
	Date   string // YYYY-MM-DD
	AllDay bool
	Start  string // HH:MM, required when not all-day
	End    string // HH:MM, required when not all-day
}

// Booking is an existing appointment considered for conflicts. Bookings need
// not be pre-filtered to the target date; the engine matches on calendar-date
// equality itself. Cancelled bookings never occupy time.
type Booking struct {
	ID              uuid.UUID
	StartsAt        time.Time
	DurationMinutes int // <= 0 falls back to DefaultServiceDurationMinutes
	Cancelled       bool
}

// SlotQuery carries every input of a slot computation.
type SlotQuery struct {
	Schedule               WeekSchedule
	DaysOff                []time.Weekday
	Leaves                 []Leave
	Bookings               []Booking
	Date                   time.Time // calendar day in the business timezone
	ServiceDurationMinutes int
	GranularityMinutes     int
}

// SlotCheck is one explicit proposed interval tested by CheckSlot.
type SlotCheck struct {
	Start           time.Time
	DurationMinutes int
	// ExcludeBookingID removes the appointment under edit from the overlap
	// test so an unchanged booking does not conflict with itself.
	ExcludeBookingID uuid.UUID
}

// ConflictReason identifies the rule a proposed slot violates.
type ConflictReason string

const (
	ConflictDayOff       ConflictReason = "day_off"
	ConflictLeave        ConflictReason = "leave"
	ConflictOutsideHours ConflictReason = "outside_hours"
	ConflictBreak        ConflictReason = "break"
	ConflictBooking      ConflictReason = "booking"
)

// Conflict is the structured negative result of CheckSlot. BookingID is set
// only when Reason is ConflictBooking.
type Conflict struct {
	Reason    ConflictReason
	BookingID uuid.UUID
}

// interval is a half-open [start, end) range in minutes since midnight.
type interval struct {
	start, end int
	bookingID  uuid.UUID
}

// overlaps reports whether half-open intervals [a1,a2) and [b1,b2) intersect.
func overlaps(a1, a2, b1, b2 int) bool {
	return a1 < b2 && b1 < a2
}

// parseClock converts an HH:MM string to minutes since midnight.
func parseClock(field, value string) (int, error) {
	t, err := time.Parse(clockLayout, value)
	if err != nil {
		return 0, &ValidationError{Field: field, Message: fmt.Sprintf("has invalid time %q, use HH:MM", value)}
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// AvailableSlots returns the ordered list of free slot starts ("HH:MM",
// ascending) for the queried day. A slot is free when the day is not a
// recurring day off, carries no all-day leave, the full service interval fits
// inside the work window, and the interval intersects neither the lunch
// break, a partial-day leave, nor a non-cancelled booking.
func AvailableSlots(q SlotQuery) ([]string, error) {
	if q.Date.IsZero() {
		return nil, &ValidationError{Field: "date", Message: "is required"}
	}
	if q.ServiceDurationMinutes <= 0 {
		return nil, &ValidationError{Field: "service_duration_minutes", Message: "must be positive"}
	}
	if q.GranularityMinutes <= 0 {
		return nil, &ValidationError{Field: "granularity_minutes", Message: "must be positive"}
	}

	weekday := q.Date.Weekday()
	for _, off := range q.DaysOff {
		if off == weekday {
			return []string{}, nil
		}
	}

	dayKey := q.Date.Format(dateLayout)
	for _, leave := range q.Leaves {
		if leave.Date == dayKey && leave.AllDay {
			return []string{}, nil
		}
	}

	window, ok := q.Schedule[weekday]
	if !ok {
		return []string{}, nil
	}

	workStart, err := parseClock("schedule.start", window.Start)
	if err != nil {
		return nil, err
	}
	workEnd, err := parseClock("schedule.end", window.End)
	if err != nil {
		return nil, err
	}

	breakIv, err := breakInterval(window)
	if err != nil {
		return nil, err
	}

	occupied, err := occupiedIntervals(q, dayKey, uuid.Nil)
	if err != nil {
		return nil, err
	}

	slots := []string{}
	for start := workStart; start+q.ServiceDurationMinutes <= workEnd; start += q.GranularityMinutes {
		end := start + q.ServiceDurationMinutes
		if breakIv != nil && overlaps(start, end, breakIv.start, breakIv.end) {
			continue
		}
		if blocked(start, end, occupied) {
			continue
		}
		slots = append(slots, formatClock(start))
	}
	return slots, nil
}

// CheckSlot tests one proposed interval against the same rules as
// AvailableSlots and reports the first violated rule. A nil Conflict means
// the slot is free. The target day is taken from c.Start; q.Date is ignored.
func CheckSlot(q SlotQuery, c SlotCheck) (*Conflict, error) {
	if c.Start.IsZero() {
		return nil, &ValidationError{Field: "start", Message: "is required"}
	}
	if c.DurationMinutes <= 0 {
		return nil, &ValidationError{Field: "duration_minutes", Message: "must be positive"}
	}

	weekday := c.Start.Weekday()
	for _, off := range q.DaysOff {
		if off == weekday {
			return &Conflict{Reason: ConflictDayOff}, nil
		}
	}

	dayKey := c.Start.Format(dateLayout)
	for _, leave := range q.Leaves {
		if leave.Date == dayKey && leave.AllDay {
			return &Conflict{Reason: ConflictLeave}, nil
		}
	}

	window, ok := q.Schedule[weekday]
	if !ok {
		return &Conflict{Reason: ConflictOutsideHours}, nil
	}
	workStart, err := parseClock("schedule.start", window.Start)
	if err != nil {
		return nil, err
	}
	workEnd, err := parseClock("schedule.end", window.End)
	if err != nil {
		return nil, err
	}

	start := c.Start.Hour()*60 + c.Start.Minute()
	end := start + c.DurationMinutes
	if start < workStart || end > workEnd {
		return &Conflict{Reason: ConflictOutsideHours}, nil
	}

	breakIv, err := breakInterval(window)
	if err != nil {
		return nil, err
	}
	if breakIv != nil && overlaps(start, end, breakIv.start, breakIv.end) {
		return &Conflict{Reason: ConflictBreak}, nil
	}

	for _, leave := range q.Leaves {
		if leave.Date != dayKey || leave.AllDay {
			continue
		}
		iv, err := leaveInterval(leave)
		if err != nil {
			return nil, err
		}
		if overlaps(start, end, iv.start, iv.end) {
			return &Conflict{Reason: ConflictLeave}, nil
		}
	}

	booked, err := bookedIntervals(q.Bookings, dayKey, c.Start.Location(), c.ExcludeBookingID)
	if err != nil {
		return nil, err
	}
	for _, iv := range booked {
		if overlaps(start, end, iv.start, iv.end) {
			return &Conflict{Reason: ConflictBooking, BookingID: iv.bookingID}, nil
		}
	}
	return nil, nil
}

func breakInterval(window WorkWindow) (*interval, error) {
	if window.BreakStart == "" || window.BreakEnd == "" {
		return nil, nil
	}
	start, err := parseClock("schedule.break_start", window.BreakStart)
	if err != nil {
		return nil, err
	}
	end, err := parseClock("schedule.break_end", window.BreakEnd)
	if err != nil {
		return nil, err
	}
	return &interval{start: start, end: end}, nil
}

func leaveInterval(leave Leave) (*interval, error) {
	start, err := parseClock("leave.start", leave.Start)
	if err != nil {
		return nil, err
	}
	end, err := parseClock("leave.end", leave.End)
	if err != nil {
		return nil, err
	}
	return &interval{start: start, end: end}, nil
}

// occupiedIntervals collects partial-day leave windows and booked intervals
// for the target day. Multiple leaves are unioned additively.
func occupiedIntervals(q SlotQuery, dayKey string, exclude uuid.UUID) ([]interval, error) {
	var out []interval
	for _, leave := range q.Leaves {
		if leave.Date != dayKey || leave.AllDay {
			continue
		}
		iv, err := leaveInterval(leave)
		if err != nil {
			return nil, err
		}
		out = append(out, *iv)
	}
	booked, err := bookedIntervals(q.Bookings, dayKey, q.Date.Location(), exclude)
	if err != nil {
		return nil, err
	}
	return append(out, booked...), nil
}

func bookedIntervals(bookings []Booking, dayKey string, loc *time.Location, exclude uuid.UUID) ([]interval, error) {
	var out []interval
	for _, b := range bookings {
		if b.Cancelled {
			continue
		}
		if exclude != uuid.Nil && b.ID == exclude {
			continue
		}
		local := b.StartsAt.In(loc)
		if local.Format(dateLayout) != dayKey {
			continue
		}
		duration := b.DurationMinutes
		if duration <= 0 {
			duration = DefaultServiceDurationMinutes
		}
		start := local.Hour()*60 + local.Minute()
		out = append(out, interval{start: start, end: start + duration, bookingID: b.ID})
	}
	return out, nil
}

func blocked(start, end int, occupied []interval) bool {
	for _, iv := range occupied {
		if overlaps(start, end, iv.start, iv.end) {
			return true
		}
	}
	return false
}
