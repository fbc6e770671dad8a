package progress

import "time"

// UpdateStreak applies the consecutive-day streak policy at calendar-day
// granularity: no prior activity initializes to 1, same-day activity
// leaves the streak unchanged, a gap of exactly one day increments, and
// any longer gap resets to 1.
func UpdateStreak(current int, last, now time.Time) int {
	if last.IsZero() {
		return 1
	}

	gap := dayNumber(now) - dayNumber(last)
	switch {
	case gap == 0:
		if current < 1 {
			return 1
		}
		return current
	case gap == 1:
		return current + 1
	default:
		return 1
	}
}

// SameDay reports whether a and b fall on the same calendar day in local time.
func SameDay(a, b time.Time) bool {
	return dayNumber(a) == dayNumber(b)
}

// dayNumber maps a time to a monotonically increasing day count in the
// time's location, so day arithmetic survives month and year boundaries.
func dayNumber(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
