package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetSpace-BookingService/pkg/ptr"
)

// 2024-01-01 is a Monday
var monday = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newBooking(status BookingStatus, start, end string) *Booking {
	b := &Booking{
		ID:          1,
		SpaceID:     10,
		RenterID:    2,
		BookingDate: monday,
		StartTime:   ts(start),
		EndTime:     ts(end),
		Status:      status,
	}
	b.ComputeDuration()
	return b
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusApproved))
	assert.True(t, CanTransition(StatusPending, StatusDenied))
	assert.True(t, CanTransition(StatusApproved, StatusCancelled))
	assert.True(t, CanTransition(StatusApproved, StatusCompleted))

	assert.False(t, CanTransition(StatusPending, StatusCancelled))
	assert.False(t, CanTransition(StatusPending, StatusCompleted))
	assert.False(t, CanTransition(StatusDenied, StatusApproved))
	assert.False(t, CanTransition(StatusCancelled, StatusApproved))
	assert.False(t, CanTransition(StatusCompleted, StatusCancelled))

	assert.True(t, StatusDenied.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.False(t, StatusApproved.IsTerminal())
}

func TestParseBookingStatus(t *testing.T) {
	s, err := ParseBookingStatus("approved")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, s)

	_, err = ParseBookingStatus("archived")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestBooking_Approve(t *testing.T) {
	now := monday.Add(8 * time.Hour)

	b := newBooking(StatusPending, "09:00", "11:00")
	require.NoError(t, b.Approve(now))
	assert.Equal(t, StatusApproved, b.Status)

	started := newBooking(StatusPending, "09:00", "11:00")
	err := started.Approve(monday.Add(9 * time.Hour))
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusPending, started.Status)

	denied := newBooking(StatusDenied, "09:00", "11:00")
	assert.ErrorIs(t, denied.Approve(now), ErrInvalidTransition)
	assert.Equal(t, StatusDenied, denied.Status)
}

func TestBooking_Deny(t *testing.T) {
	now := monday.Add(8 * time.Hour)

	b := newBooking(StatusPending, "09:00", "11:00")
	require.NoError(t, b.Deny(now, ptr.Ptr("fully booked")))
	assert.Equal(t, StatusDenied, b.Status)
	assert.Equal(t, "fully booked", *b.HostResponseMessage)

	approved := newBooking(StatusApproved, "09:00", "11:00")
	assert.ErrorIs(t, approved.Deny(now, nil), ErrInvalidTransition)
}

func TestBooking_CanBeCancelled(t *testing.T) {
	b := newBooking(StatusApproved, "09:00", "11:00")
	start := b.StartDatetime()

	assert.True(t, b.CanBeCancelled(start.Add(-30*time.Hour)))
	assert.False(t, b.CanBeCancelled(start.Add(-12*time.Hour)))
	assert.False(t, b.CanBeCancelled(start.Add(-24*time.Hour)))
	assert.Equal(t, start.Add(-24*time.Hour), b.CancellationDeadline())

	pending := newBooking(StatusPending, "09:00", "11:00")
	assert.False(t, pending.CanBeCancelled(start.Add(-30*time.Hour)))
}

func TestBooking_Cancel(t *testing.T) {
	b := newBooking(StatusApproved, "09:00", "11:00")
	now := b.StartDatetime().Add(-30 * time.Hour)

	require.NoError(t, b.Cancel(now, 2, ptr.Ptr("plans changed")))
	assert.Equal(t, StatusCancelled, b.Status)
	assert.Equal(t, int64(2), *b.CancelledBy)
	assert.Equal(t, now, *b.CancelledAt)
	assert.True(t, b.RefundEligible)

	late := newBooking(StatusApproved, "09:00", "11:00")
	err := late.Cancel(late.StartDatetime().Add(-12*time.Hour), 2, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusApproved, late.Status)
	assert.Nil(t, late.CancelledBy)
}

func TestBooking_Complete(t *testing.T) {
	b := newBooking(StatusApproved, "09:00", "11:00")

	ok, err := b.Complete(monday.Add(10 * time.Hour))
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.False(t, ok)

	ok, err = b.Complete(monday.Add(12 * time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, StatusCompleted, b.Status)

	// повторный запуск ничего не меняет
	updated := b.UpdatedAt
	ok, err = b.Complete(monday.Add(13 * time.Hour))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, StatusCompleted, b.Status)
	assert.Equal(t, updated, b.UpdatedAt)

	pending := newBooking(StatusPending, "09:00", "11:00")
	_, err = pending.Complete(monday.Add(12 * time.Hour))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestBooking_Price(t *testing.T) {
	b := newBooking(StatusPending, "09:00", "11:00")
	b.PricePerDogPerHour = 20

	assert.Equal(t, 2.0, b.DurationHours)
	assert.Equal(t, 80.0, b.CalculateTotalPrice(20, 2))
	assert.Equal(t, 0.0, b.CalculateTotalPrice(20, 0))

	assert.Equal(t, 40.0, b.RecalculatePrice(1))
	assert.Equal(t, 40.0, *b.TotalPrice)
}

func TestBooking_OverlapsWith(t *testing.T) {
	a := newBooking(StatusPending, "09:00", "10:00")
	assert.False(t, a.OverlapsWith(newBooking(StatusPending, "10:00", "11:00")))

	c := newBooking(StatusPending, "09:00", "10:30")
	assert.True(t, c.OverlapsWith(newBooking(StatusPending, "10:00", "11:00")))

	other := newBooking(StatusPending, "09:00", "10:30")
	other.BookingDate = monday.AddDate(0, 0, 1)
	assert.False(t, c.OverlapsWith(other))
}

func TestBooking_StatusFlags(t *testing.T) {
	assert.True(t, newBooking(StatusPending, "09:00", "10:00").IsActive())
	assert.True(t, newBooking(StatusCompleted, "09:00", "10:00").IsActive())
	assert.False(t, newBooking(StatusCancelled, "09:00", "10:00").IsActive())
	assert.False(t, newBooking(StatusDenied, "09:00", "10:00").IsActive())

	assert.True(t, newBooking(StatusCompleted, "09:00", "10:00").IsLocked())
	assert.True(t, newBooking(StatusCancelled, "09:00", "10:00").IsLocked())
	assert.False(t, newBooking(StatusApproved, "09:00", "10:00").IsLocked())
}
