package booking

import "time"

// ValidateInterval checks a proposed [start, end) interval for basic
// legality against now. It runs before any store interaction.
//
// A start exactly equal to now is accepted: the rental may begin
// immediately. Zero-length and reversed intervals are rejected.
func ValidateInterval(start, end, now time.Time) error {
	if start.IsZero() || end.IsZero() {
		return ErrMissingTime
	}
	if !end.After(start) {
		return ErrEndBeforeStart
	}
	if start.Before(now) {
		return ErrStartInPast
	}
	// Guards against fully-past intervals if the start check is bypassed.
	if end.Before(now) {
		return ErrEndInPast
	}
	return nil
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share at least one instant. Touching endpoints do not
// overlap: one booking may end exactly when the next begins.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
