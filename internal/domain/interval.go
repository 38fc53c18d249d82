package domain

import (
	"math"
	"time"

	"github.com/m04kA/PetSpace-BookingService/pkg/types"
)

// Overlaps reports whether half-open ranges [aStart,aEnd) and [bStart,bEnd) share time.
// Touching ranges (aEnd == bStart) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && aEnd.IsAfter(bStart)
}

// Contains reports whether [reqStart,reqEnd) lies within [patternStart,patternEnd)
func Contains(patternStart, patternEnd, reqStart, reqEnd types.TimeString) bool {
	return !patternStart.IsAfter(reqStart) && !patternEnd.IsBefore(reqEnd)
}

// OverlapsAt is Overlaps for absolute date-times
func OverlapsAt(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// DateOnly truncates t to its calendar date. All date-times in the domain are
// naive wall-clock values carried in UTC, so the result is UTC midnight.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CombineDateTime returns date at midnight plus the time-of-day offset
func CombineDateTime(date time.Time, t types.TimeString) time.Time {
	return DateOnly(date).Add(t.Duration())
}

// IsSameDay reports whether both times fall on the same calendar date
func IsSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsDateInPast reports whether date is strictly before now's calendar date
func IsDateInPast(date, now time.Time) bool {
	return DateOnly(date).Before(DateOnly(now))
}

// HoursBetween returns end-start in hours rounded to 2 decimals
func HoursBetween(start, end types.TimeString) float64 {
	return Round2(float64(start.MinutesUntil(end)) / 60)
}

// Round2 rounds to 2 decimals (hours and money)
func Round2(h float64) float64 {
	if h < 0 {
		return -Round2(-h)
	}
	return float64(int64(h*100+0.5)) / 100
}

// ValidSlotDuration reports whether hours is a finite positive length that can
// fit into a single pattern
func ValidSlotDuration(hours float64) bool {
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return false
	}
	return hours > 0 && hours <= MaxPatternDurationHours
}
