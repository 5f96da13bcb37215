package booking

import (
	"fmt"
	"time"
)

// TimeSlot is a free, bookable interval [StartTime, EndTime).
type TimeSlot struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// parseClockOnDate combines a wall-clock string (HH:MM:SS or HH:MM) with a
// calendar date in the date's location.
func parseClockOnDate(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04:05", clock)
	if err != nil {
		t, err = time.Parse("15:04", clock)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid clock value %q: %w", clock, err)
		}
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, date.Location()), nil
}

// CalculateAvailability returns the free slots of a business day: the window
// between opening and closing hours minus every interval occupied by a
// pending or confirmed booking. Cancelled and completed bookings do not
// occupy their slot. Bookings are expected sorted by start time, as returned
// by Repository.ListActiveInRange.
func CalculateAvailability(date time.Time, openClock, closeClock string, bookings []*Booking) ([]TimeSlot, error) {
	open, err := parseClockOnDate(date, openClock)
	if err != nil {
		return nil, err
	}
	close, err := parseClockOnDate(date, closeClock)
	if err != nil {
		return nil, err
	}
	if !open.Before(close) {
		return nil, fmt.Errorf("opening time %q is not before closing time %q", openClock, closeClock)
	}

	var slots []TimeSlot
	cursor := open

	for _, b := range bookings {
		if b.Status != StatusPending && b.Status != StatusConfirmed {
			continue
		}
		// Clamp to the business day window
		start := b.StartTime
		if start.Before(open) {
			start = open
		}
		end := b.EndTime
		if end.After(close) {
			end = close
		}
		if !start.Before(close) || !end.After(cursor) {
			continue
		}

		if cursor.Before(start) {
			slots = append(slots, TimeSlot{StartTime: cursor, EndTime: start})
		}
		if end.After(cursor) {
			cursor = end
		}
	}

	if cursor.Before(close) {
		slots = append(slots, TimeSlot{StartTime: cursor, EndTime: close})
	}

	return slots, nil
}
