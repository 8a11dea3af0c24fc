package booking

import "time"

// Date/time layouts used throughout the engine. Dates are opaque day keys,
// times are minute-granular clock times; neither carries a timezone.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Booking is the engine's view of an appointment: just enough to decide
// conflicts. It is a plain value; the persistence shape lives in models.
type Booking struct {
	TeacherID   uint
	StudentID   uint
	Date        string // YYYY-MM-DD
	StartTime   string // HH:MM
	DurationMin int
	Status      Status
}

// TimeSlot is one bookable interval on a given day.
type TimeSlot struct {
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// WorkingHours bounds the daily window slots are offered in.
type WorkingHours struct {
	StartHour int
	EndHour   int
	SlotMin   int
}

// DefaultSlotMin matches the product default of half-hour lessons.
const DefaultSlotMin = 30

// interval is a booking reduced to minutes since midnight, half-open.
type interval struct {
	start int
	end   int
}

// ValidateDate checks a day key against the YYYY-MM-DD layout.
func ValidateDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return ErrValidation("date", "want YYYY-MM-DD, got "+date)
	}
	return nil
}

// clockMinutes parses an HH:MM clock time into minutes since midnight.
func clockMinutes(hm string) (int, error) {
	t, err := time.Parse(TimeLayout, hm)
	if err != nil {
		return 0, ErrValidation("start_time", "want HH:MM, got "+hm)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// minutesClock formats minutes since midnight back into HH:MM.
func minutesClock(m int) string {
	return time.Date(0, 1, 1, m/60, m%60, 0, 0, time.UTC).Format(TimeLayout)
}

// intervalOf validates a booking's time fields and returns its half-open
// occupation interval.
func intervalOf(b Booking) (interval, error) {
	start, err := clockMinutes(b.StartTime)
	if err != nil {
		return interval{}, err
	}
	if b.DurationMin <= 0 {
		return interval{}, ErrValidation("duration_min", "must be positive")
	}
	return interval{start: start, end: start + b.DurationMin}, nil
}

// overlaps applies the half-open interval rule: touching boundaries do not
// overlap, so back-to-back bookings are fine.
func (a interval) overlaps(b interval) bool {
	return a.start < b.end && b.start < a.end
}
