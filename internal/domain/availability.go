package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/PetSpace-BookingService/pkg/types"
)

// AvailabilityPattern is a recurring weekly window in which a space can be booked
type AvailabilityPattern struct {
	ID        int64
	SpaceID   int64
	DayOfWeek int // 0=Sunday..6=Saturday
	StartTime types.TimeString
	EndTime   types.TimeString
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the day range, time ordering and duration bounds
func (p *AvailabilityPattern) Validate() ValidationErrors {
	var errs ValidationErrors

	if p.DayOfWeek < MinDayOfWeek || p.DayOfWeek > MaxDayOfWeek {
		errs.Add("day_of_week", "must be between 0 (Sunday) and 6 (Saturday)")
	}

	startOK := checkTime(&errs, "start_time", p.StartTime)
	endOK := checkTime(&errs, "end_time", p.EndTime)
	if !startOK || !endOK {
		return errs
	}

	if !p.EndTime.IsAfter(p.StartTime) {
		errs.Add("end_time", "must be after start time")
		return errs
	}

	hours := p.DurationHours()
	switch {
	case hours < MinPatternDurationHours:
		errs.Add(BaseField, "Availability duration must be at least 1 hour")
	case hours > MaxPatternDurationHours:
		errs.Add(BaseField, "Availability duration cannot exceed 12 hours")
	}

	return errs
}

// DurationHours window length in hours, rounded to 2 decimals
func (p *AvailabilityPattern) DurationHours() float64 {
	if p.StartTime.IsZero() || p.EndTime.IsZero() {
		return 0
	}
	return HoursBetween(p.StartTime, p.EndTime)
}

// DayName English weekday name
func (p *AvailabilityPattern) DayName() string {
	if p.DayOfWeek < MinDayOfWeek || p.DayOfWeek > MaxDayOfWeek {
		return ""
	}
	return time.Weekday(p.DayOfWeek).String()
}

// FormattedTimeRange e.g. "09:00 AM - 12:00 PM"
func (p *AvailabilityPattern) FormattedTimeRange() string {
	return fmt.Sprintf("%s - %s", p.StartTime.Format12h(), p.EndTime.Format12h())
}

// OverlapsWith reports whether two patterns share time on the same weekday
func (p *AvailabilityPattern) OverlapsWith(other *AvailabilityPattern) bool {
	if other == nil || p.DayOfWeek != other.DayOfWeek {
		return false
	}
	return Overlaps(p.StartTime, p.EndTime, other.StartTime, other.EndTime)
}

// Covers reports whether [start,end) fits inside this pattern
func (p *AvailabilityPattern) Covers(start, end types.TimeString) bool {
	return Contains(p.StartTime, p.EndTime, start, end)
}

func checkTime(errs *ValidationErrors, field string, t types.TimeString) bool {
	if t.IsZero() {
		errs.Add(field, "can't be blank")
		return false
	}
	if err := t.Validate(); err != nil {
		errs.Add(field, "must be in HH:MM format")
		return false
	}
	return true
}
