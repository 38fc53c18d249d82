package domain

import "time"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Availability pattern bounds
const (
	MinPatternDurationHours = 1.0
	MaxPatternDurationHours = 12.0
	MinDayOfWeek            = 0 // Sunday
	MaxDayOfWeek            = 6 // Saturday
)

// Booking rules
const (
	MinBookingDurationHours = 1.0
	CancellationNotice      = 24 * time.Hour
	SlotStepMinutes         = 60
	MaxMessageLength        = 1000
	MaxSlotRangeDays        = 31
)

// Space bounds
const (
	MinDogsPerBooking = 1
	MaxDogsPerBooking = 50
)

// InactiveStatuses bookings in these statuses never block a time range
var InactiveStatuses = []BookingStatus{
	StatusDenied,
	StatusCancelled,
}

// ActiveStatuses bookings in these statuses occupy their time range
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusApproved,
	StatusCompleted,
}
