package domain

import "time"

// Pet belongs to a user; read-only for the booking engine
type Pet struct {
	ID      int64
	OwnerID int64
	Name    string
}

// BookingPet joins a booking with one of the renter's pets
type BookingPet struct {
	ID        int64
	BookingID int64
	PetID     int64
	CreatedAt time.Time
}

// CheckPetAttachable runs the join rules for adding pet to booking.
// alreadyAttached tells whether the (booking, pet) pair exists.
func CheckPetAttachable(booking *Booking, pet *Pet, alreadyAttached bool) error {
	if pet.OwnerID != booking.RenterID {
		return ErrOwnershipMismatch
	}
	if booking.IsLocked() {
		return ErrBookingLocked
	}
	if alreadyAttached {
		return ErrDuplicatePet
	}
	return nil
}

// CheckPetDetachable runs the join rules for removing a pet from booking
func CheckPetDetachable(booking *Booking) error {
	if booking.IsLocked() {
		return ErrBookingLocked
	}
	return nil
}
