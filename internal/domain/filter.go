package domain

import (
	"sort"
	"time"

	"github.com/m04kA/PetSpace-BookingService/pkg/types"
)

// PatternPredicate selects availability patterns
type PatternPredicate func(p *AvailabilityPattern) bool

// ActivePatterns keeps patterns with is_active set
func ActivePatterns() PatternPredicate {
	return func(p *AvailabilityPattern) bool { return p.IsActive }
}

// PatternsForDay keeps patterns on the given weekday
func PatternsForDay(day int) PatternPredicate {
	return func(p *AvailabilityPattern) bool { return p.DayOfWeek == day }
}

// ForSpace keeps patterns of one space
func ForSpace(spaceID int64) PatternPredicate {
	return func(p *AvailabilityPattern) bool { return p.SpaceID == spaceID }
}

// FilterPatterns returns patterns matching every predicate, preserving order
func FilterPatterns(patterns []*AvailabilityPattern, preds ...PatternPredicate) []*AvailabilityPattern {
	out := make([]*AvailabilityPattern, 0, len(patterns))
next:
	for _, p := range patterns {
		for _, pred := range preds {
			if !pred(p) {
				continue next
			}
		}
		out = append(out, p)
	}
	return out
}

// SortPatterns orders by weekday, then start time
func SortPatterns(patterns []*AvailabilityPattern) {
	sort.SliceStable(patterns, func(i, j int) bool {
		if patterns[i].DayOfWeek != patterns[j].DayOfWeek {
			return patterns[i].DayOfWeek < patterns[j].DayOfWeek
		}
		return patterns[i].StartTime.IsBefore(patterns[j].StartTime)
	})
}

// BookingPredicate selects bookings
type BookingPredicate func(b *Booking) bool

// ActiveBookings keeps bookings that are neither denied nor cancelled
func ActiveBookings() BookingPredicate {
	return func(b *Booking) bool { return b.IsActive() }
}

// BookingsOnDate keeps bookings on the calendar date of d
func BookingsOnDate(d time.Time) BookingPredicate {
	return func(b *Booking) bool { return IsSameDay(b.BookingDate, d) }
}

// BookingsOverlapping keeps bookings whose time range overlaps [start,end)
func BookingsOverlapping(start, end types.TimeString) BookingPredicate {
	return func(b *Booking) bool { return Overlaps(b.StartTime, b.EndTime, start, end) }
}

// BookingsWithStatus keeps bookings in status s
func BookingsWithStatus(s BookingStatus) BookingPredicate {
	return func(b *Booking) bool { return b.Status == s }
}

// FilterBookings returns bookings matching every predicate, preserving order
func FilterBookings(bookings []*Booking, preds ...BookingPredicate) []*Booking {
	out := make([]*Booking, 0, len(bookings))
next:
	for _, b := range bookings {
		for _, pred := range preds {
			if !pred(b) {
				continue next
			}
		}
		out = append(out, b)
	}
	return out
}

// PatternsFilter repository-side filter for availability patterns
type PatternsFilter struct {
	ActiveOnly bool
	DayOfWeek  *int
}
