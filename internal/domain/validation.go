package domain

import "time"

// BookingValidationInput everything the booking rules read
type BookingValidationInput struct {
	Booking  *Booking
	Space    *Space
	Patterns []*AvailabilityPattern
	Now      time.Time
}

// ValidateBooking runs every booking rule and collects all violations.
// A rule whose inputs are missing or malformed is skipped.
func ValidateBooking(in BookingValidationInput) ValidationErrors {
	var errs ValidationErrors
	b := in.Booking

	timesOK := checkTime(&errs, "start_time", b.StartTime)
	timesOK = checkTime(&errs, "end_time", b.EndTime) && timesOK
	if b.BookingDate.IsZero() {
		errs.Add("booking_date", "can't be blank")
	}

	// 1. Порядок времени
	ordered := timesOK && b.EndTime.IsAfter(b.StartTime)
	if timesOK && !ordered {
		errs.Add("end_time", "must be after start time")
	}

	// 2. Минимальная длительность
	if ordered && HoursBetween(b.StartTime, b.EndTime) < MinBookingDurationHours {
		errs.Add(BaseField, "Booking duration must be at least 1 hour")
	}

	// 3. Дата не в прошлом
	if !b.BookingDate.IsZero() {
		today := DateOnly(in.Now)
		date := DateOnly(b.BookingDate)
		switch {
		case date.Before(today):
			errs.Add("booking_date", "cannot be in the past")
		case date.Equal(today) && timesOK && !CombineDateTime(date, b.StartTime).After(in.Now):
			errs.Add("start_time", "cannot be in the past")
		}
	}

	// 4. Нельзя бронировать свою площадку
	if in.Space != nil && in.Space.IsOwnedBy(b.RenterID) {
		errs.Add(BaseField, "You cannot book your own space")
	}

	// 5. Попадание в активный шаблон доступности
	if in.Space != nil && timesOK && !b.BookingDate.IsZero() {
		day := int(b.BookingDate.Weekday())
		covered := false
		for _, p := range FilterPatterns(in.Patterns, ForSpace(in.Space.ID), ActivePatterns(), PatternsForDay(day)) {
			if p.Covers(b.StartTime, b.EndTime) {
				covered = true
				break
			}
		}
		if !covered {
			errs.Add(BaseField, "Space is not available during the requested time")
		}
	}

	return errs
}

// ValidateMessage checks an optional free-text message length
func ValidateMessage(errs *ValidationErrors, field string, msg *string) {
	if msg != nil && len([]rune(*msg)) > MaxMessageLength {
		errs.Add(field, "is too long (maximum is 1000 characters)")
	}
}
