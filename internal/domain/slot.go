package domain

import (
	"time"

	"github.com/m04kA/PetSpace-BookingService/pkg/types"
)

// Slot is a concrete dated candidate interval derived from a pattern
type Slot struct {
	SpaceID       int64
	Date          time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	DurationHours float64
	PricePerDog   float64
	TotalPrice    *float64 // only for custom-duration slots
	Available     bool
}

// StartDatetime slot date combined with start time
func (s *Slot) StartDatetime() time.Time {
	return CombineDateTime(s.Date, s.StartTime)
}

// EndDatetime slot date combined with end time
func (s *Slot) EndDatetime() time.Time {
	return CombineDateTime(s.Date, s.EndTime)
}

// DayName English weekday name of the slot date
func (s *Slot) DayName() string {
	return s.Date.Weekday().String()
}

// AvailabilitySummary aggregate over a space's active patterns
type AvailabilitySummary struct {
	Available         bool
	AvailableDays     int
	TotalHoursPerWeek float64
	HourlyRate        float64
	MaxPets           int
	Patterns          []*AvailabilityPattern
}
