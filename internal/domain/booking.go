package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/PetSpace-BookingService/pkg/types"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusApproved  BookingStatus = "approved"
	StatusDenied    BookingStatus = "denied"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// transitions lists every legal move of the state machine
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:  {StatusApproved, StatusDenied},
	StatusApproved: {StatusCancelled, StatusCompleted},
}

// ParseBookingStatus validates a raw status value
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch status := BookingStatus(s); status {
	case StatusPending, StatusApproved, StatusDenied, StatusCancelled, StatusCompleted:
		return status, nil
	default:
		return "", fmt.Errorf("%w: unknown booking status %q", ErrValidationFailed, s)
	}
}

// IsTerminal returns true for statuses with no outgoing transitions
func (s BookingStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// CanTransition reports whether from -> to is a legal move
func CanTransition(from, to BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Booking is a renter's reservation of a space for a time range on one date
type Booking struct {
	ID          int64
	SpaceID     int64
	RenterID    int64
	CancelledBy *int64

	BookingDate   time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	DurationHours float64
	Status        BookingStatus

	TotalPrice         *float64
	PricePerDogPerHour float64

	RenterMessage       *string
	HostResponseMessage *string

	CancellationReason *string
	CancelledAt        *time.Time
	RefundEligible     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StartDatetime booking date combined with start time
func (b *Booking) StartDatetime() time.Time {
	return CombineDateTime(b.BookingDate, b.StartTime)
}

// EndDatetime booking date combined with end time
func (b *Booking) EndDatetime() time.Time {
	return CombineDateTime(b.BookingDate, b.EndTime)
}

// ComputeDuration derives and stores DurationHours from the time range
func (b *Booking) ComputeDuration() float64 {
	b.DurationHours = 0
	if b.StartTime.Validate() == nil && b.EndTime.Validate() == nil {
		b.DurationHours = HoursBetween(b.StartTime, b.EndTime)
	}
	return b.DurationHours
}

// IsActive returns true if the booking occupies its time range
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled && b.Status != StatusDenied
}

// IsLocked returns true if pets can no longer be changed
func (b *Booking) IsLocked() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// IsParticipant returns true for the renter or the space owner
func (b *Booking) IsParticipant(userID int64, space *Space) bool {
	return b.RenterID == userID || (space != nil && space.IsOwnedBy(userID))
}

// OverlapsWith reports whether two bookings share time on the same date
func (b *Booking) OverlapsWith(other *Booking) bool {
	if other == nil || !IsSameDay(b.BookingDate, other.BookingDate) {
		return false
	}
	return Overlaps(b.StartTime, b.EndTime, other.StartTime, other.EndTime)
}

// CanBeApproved pending and not started yet
func (b *Booking) CanBeApproved(now time.Time) bool {
	return b.Status == StatusPending && b.StartDatetime().After(now)
}

// CanBeDenied pending
func (b *Booking) CanBeDenied() bool {
	return b.Status == StatusPending
}

// CanBeCancelled approved and still before the cancellation deadline
func (b *Booking) CanBeCancelled(now time.Time) bool {
	return b.Status == StatusApproved && b.StartDatetime().After(now) && b.WithinCancellationDeadline(now)
}

// CancellationDeadline 24 hours before start
func (b *Booking) CancellationDeadline() time.Time {
	return b.StartDatetime().Add(-CancellationNotice)
}

// WithinCancellationDeadline now is earlier than the deadline
func (b *Booking) WithinCancellationDeadline(now time.Time) bool {
	return now.Before(b.CancellationDeadline())
}

// CalculateTotalPrice pricePerDog * duration * petCount; 0 without pets
func (b *Booking) CalculateTotalPrice(pricePerDog float64, petCount int) float64 {
	return CalculatePrice(pricePerDog, b.DurationHours, petCount)
}

// RecalculatePrice stores the price for the current pet count using the
// rate captured at creation
func (b *Booking) RecalculatePrice(petCount int) float64 {
	price := b.CalculateTotalPrice(b.PricePerDogPerHour, petCount)
	b.TotalPrice = &price
	return price
}

// Approve pending -> approved
func (b *Booking) Approve(now time.Time) error {
	if !CanTransition(b.Status, StatusApproved) {
		return b.transitionError(StatusApproved)
	}
	if !b.CanBeApproved(now) {
		return fmt.Errorf("%w: booking has already started", ErrInvalidTransition)
	}
	b.Status = StatusApproved
	b.UpdatedAt = now
	return nil
}

// Deny pending -> denied, optionally with the host's response
func (b *Booking) Deny(now time.Time, message *string) error {
	if !CanTransition(b.Status, StatusDenied) {
		return b.transitionError(StatusDenied)
	}
	b.Status = StatusDenied
	if message != nil {
		b.HostResponseMessage = message
	}
	b.UpdatedAt = now
	return nil
}

// Cancel approved -> cancelled, allowed only before the cancellation deadline
func (b *Booking) Cancel(now time.Time, by int64, reason *string) error {
	if !CanTransition(b.Status, StatusCancelled) {
		return b.transitionError(StatusCancelled)
	}
	if !b.CanBeCancelled(now) {
		return fmt.Errorf("%w: cancellation deadline %s has passed",
			ErrInvalidTransition, b.CancellationDeadline().Format(time.RFC3339))
	}
	b.Status = StatusCancelled
	b.CancelledBy = &by
	b.CancelledAt = &now
	b.CancellationReason = reason
	b.RefundEligible = true
	b.UpdatedAt = now
	return nil
}

// Complete approved -> completed once the end has passed. Returns false with
// no error when the booking is already completed.
func (b *Booking) Complete(now time.Time) (bool, error) {
	if b.Status == StatusCompleted {
		return false, nil
	}
	if !CanTransition(b.Status, StatusCompleted) {
		return false, b.transitionError(StatusCompleted)
	}
	if !b.EndDatetime().Before(now) {
		return false, fmt.Errorf("%w: booking has not ended yet", ErrInvalidTransition)
	}
	b.Status = StatusCompleted
	b.UpdatedAt = now
	return true, nil
}

func (b *Booking) transitionError(to BookingStatus) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, to)
}

// BookingsFilter selects bookings of a space in the repository
type BookingsFilter struct {
	SpaceID         *int64
	RenterID        *int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *BookingStatus
	IncludeInactive bool // include denied and cancelled
}
