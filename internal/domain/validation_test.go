package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validationInput(b *Booking) BookingValidationInput {
	return BookingValidationInput{
		Booking: b,
		Space:   &Space{ID: 10, OwnerID: 1, PricePerDog: 20, MaxDogsPerBooking: 5, Status: SpaceStatusActive},
		Patterns: []*AvailabilityPattern{
			{ID: 1, SpaceID: 10, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsActive: true},
			{ID: 2, SpaceID: 10, DayOfWeek: 1, StartTime: "14:00", EndTime: "18:00", IsActive: false},
		},
		Now: monday.AddDate(0, 0, -7),
	}
}

func TestValidateBooking_Valid(t *testing.T) {
	errs := ValidateBooking(validationInput(newBooking(StatusPending, "09:00", "11:00")))
	assert.Empty(t, errs)
	assert.NoError(t, errs.OrNil())
}

func TestValidateBooking_Rules(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		mutate    func(in *BookingValidationInput)
		wantField string
		wantMsg   string
	}{
		{
			name: "end before start", start: "11:00", end: "10:00",
			wantField: "end_time", wantMsg: "must be after start time",
		},
		{
			name: "shorter than an hour", start: "09:00", end: "09:30",
			wantField: BaseField, wantMsg: "Booking duration must be at least 1 hour",
		},
		{
			name: "date in the past", start: "09:00", end: "11:00",
			mutate:    func(in *BookingValidationInput) { in.Now = monday.AddDate(0, 0, 1) },
			wantField: "booking_date", wantMsg: "cannot be in the past",
		},
		{
			name: "today but start already passed", start: "09:00", end: "11:00",
			mutate:    func(in *BookingValidationInput) { in.Now = monday.Add(9*time.Hour + time.Minute) },
			wantField: "start_time", wantMsg: "cannot be in the past",
		},
		{
			name: "own space", start: "09:00", end: "11:00",
			mutate:    func(in *BookingValidationInput) { in.Booking.RenterID = in.Space.OwnerID },
			wantField: BaseField, wantMsg: "You cannot book your own space",
		},
		{
			name: "outside pattern", start: "11:00", end: "13:00",
			wantField: BaseField, wantMsg: "Space is not available during the requested time",
		},
		{
			name: "inactive pattern only", start: "14:00", end: "16:00",
			wantField: BaseField, wantMsg: "Space is not available during the requested time",
		},
		{
			name: "wrong weekday", start: "09:00", end: "11:00",
			mutate:    func(in *BookingValidationInput) { in.Booking.BookingDate = monday.AddDate(0, 0, 1) },
			wantField: BaseField, wantMsg: "Space is not available during the requested time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validationInput(newBooking(StatusPending, tt.start, tt.end))
			if tt.mutate != nil {
				tt.mutate(&in)
			}
			errs := ValidateBooking(in)
			assert.True(t, errs.HasField(tt.wantField), errs.Error())
			assert.True(t, errs.HasMessage(tt.wantMsg), errs.Error())
			assert.ErrorIs(t, errs.OrNil(), ErrValidationFailed)
		})
	}
}

func TestValidateBooking_CollectsAllFailures(t *testing.T) {
	// собственная площадка, прошедшая дата, слишком короткая и вне шаблона
	b := newBooking(StatusPending, "08:00", "08:30")
	in := validationInput(b)
	in.Booking.RenterID = in.Space.OwnerID
	in.Now = monday.AddDate(0, 0, 2)

	errs := ValidateBooking(in)

	assert.True(t, errs.HasMessage("Booking duration must be at least 1 hour"))
	assert.True(t, errs.HasMessage("cannot be in the past"))
	assert.True(t, errs.HasMessage("You cannot book your own space"))
	assert.True(t, errs.HasMessage("Space is not available during the requested time"))
	assert.Len(t, errs, 4)
}

func TestValidateBooking_SelfBookingAlwaysReported(t *testing.T) {
	in := validationInput(newBooking(StatusPending, "09:00", "11:00"))
	in.Booking.RenterID = in.Space.OwnerID

	errs := ValidateBooking(in)
	assert.Len(t, errs, 1)
	assert.True(t, errs.HasMessage("You cannot book your own space"))
}

func TestValidateMessage(t *testing.T) {
	var errs ValidationErrors
	long := make([]rune, MaxMessageLength+1)
	for i := range long {
		long[i] = 'a'
	}
	msg := string(long)

	ValidateMessage(&errs, "renter_message", nil)
	assert.Empty(t, errs)
	ValidateMessage(&errs, "renter_message", &msg)
	assert.True(t, errs.HasField("renter_message"))
}
