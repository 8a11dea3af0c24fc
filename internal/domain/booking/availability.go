package booking

import "time"

// ===============================
// Availability Engine
// ===============================
//
// Pure decision logic over a caller-supplied snapshot of bookings. The
// engine owns no storage and performs no I/O; callers fetch the snapshot,
// the engine answers. Safe for concurrent use: every call is a function of
// its arguments only.

// HasConflict reports whether the candidate overlaps any existing booking
// for the same teacher and date. Cancelled and rejected bookings do not
// occupy time; pending, approved and completed all do. The candidate's own
// status is irrelevant.
func HasConflict(existing []Booking, candidate Booking) (bool, error) {
	cand, err := intervalOf(candidate)
	if err != nil {
		return false, err
	}

	for _, b := range existing {
		if b.Date != candidate.Date {
			continue
		}
		if !Occupies(b.Status) {
			continue
		}

		iv, err := intervalOf(b)
		if err != nil {
			return false, err
		}
		if cand.overlaps(iv) {
			return true, nil
		}
	}

	return false, nil
}

// AvailableSlots enumerates every free slot of wh.SlotMin minutes between
// wh.StartHour and wh.EndHour on the given date, chronological ascending.
// Identical inputs always yield identical output. A window with
// EndHour <= StartHour simply has no slots; that is not an error.
func AvailableSlots(existing []Booking, teacherID uint, date string, wh WorkingHours) ([]TimeSlot, error) {
	slotMin := wh.SlotMin
	if slotMin <= 0 {
		slotMin = DefaultSlotMin
	}

	dayStart := wh.StartHour * 60
	dayEnd := wh.EndHour * 60

	slots := []TimeSlot{}
	for cur := dayStart; cur+slotMin <= dayEnd; cur += slotMin {
		candidate := Booking{
			TeacherID:   teacherID,
			Date:        date,
			StartTime:   minutesClock(cur),
			DurationMin: slotMin,
		}

		conflict, err := HasConflict(existing, candidate)
		if err != nil {
			return nil, err
		}
		if conflict {
			continue
		}

		slots = append(slots, TimeSlot{
			Date:  date,
			Start: minutesClock(cur),
			End:   minutesClock(cur + slotMin),
		})
	}

	return slots, nil
}

// WithinWindow reports whether the candidate lies entirely inside the
// teacher's daily working window.
func WithinWindow(candidate Booking, wh WorkingHours) (bool, error) {
	iv, err := intervalOf(candidate)
	if err != nil {
		return false, err
	}
	return iv.start >= wh.StartHour*60 && iv.end <= wh.EndHour*60, nil
}

// NextAvailableSlot scans forward day by day, starting at fromDate
// inclusive, and returns the first free slot found within horizonDays.
// Returns nil when the horizon is exhausted. The horizon is required and
// must be positive so a fully booked teacher terminates the search instead
// of looping forever.
func NextAvailableSlot(existing []Booking, teacherID uint, fromDate string, wh WorkingHours, horizonDays int) (*TimeSlot, error) {
	if horizonDays <= 0 {
		return nil, ErrValidation("horizon_days", "must be positive")
	}

	from, err := time.Parse(DateLayout, fromDate)
	if err != nil {
		return nil, ErrValidation("from_date", "want YYYY-MM-DD, got "+fromDate)
	}

	for day := 0; day < horizonDays; day++ {
		date := from.AddDate(0, 0, day).Format(DateLayout)

		slots, err := AvailableSlots(existing, teacherID, date, wh)
		if err != nil {
			return nil, err
		}
		if len(slots) > 0 {
			return &slots[0], nil
		}
	}

	return nil, nil
}
