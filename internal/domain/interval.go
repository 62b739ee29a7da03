package domain

import "time"

// Overlaps is the half-open interval test: [aStart, aEnd) and [bStart, bEnd)
// share at least one instant. Back-to-back intervals do not overlap. A
// zero-length interval strictly inside the other still reports true; callers
// reject empty intervals with ValidInterval before asking.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// ValidInterval reports whether start is strictly before end.
func ValidInterval(start, end time.Time) bool {
	return start.Before(end)
}
