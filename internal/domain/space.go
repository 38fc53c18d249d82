package domain

// SpaceStatus publication status of a space
type SpaceStatus string

const (
	SpaceStatusActive   SpaceStatus = "active"
	SpaceStatusInactive SpaceStatus = "inactive"
)

// Space is the bookable place owned by a host. Only the fields the booking
// engine depends on are loaded.
type Space struct {
	ID                int64
	OwnerID           int64
	PricePerDog       float64
	MaxDogsPerBooking int
	Status            SpaceStatus
}

// IsActive returns true if the space is published
func (s *Space) IsActive() bool {
	return s.Status == SpaceStatusActive
}

// IsBookable returns true if the space is active and has at least one active pattern
func (s *Space) IsBookable(patterns []*AvailabilityPattern) bool {
	if !s.IsActive() {
		return false
	}
	for _, p := range patterns {
		if p.SpaceID == s.ID && p.IsActive {
			return true
		}
	}
	return false
}

// IsOwnedBy returns true if userID is the space host
func (s *Space) IsOwnedBy(userID int64) bool {
	return s.OwnerID == userID
}

// CanAccommodatePets returns true if petCount fits the per-booking limit
func (s *Space) CanAccommodatePets(petCount int) bool {
	return petCount >= 0 && petCount <= s.MaxDogsPerBooking
}

// CalculateBookingPrice price per dog per hour times duration times pets
func (s *Space) CalculateBookingPrice(durationHours float64, petCount int) float64 {
	return CalculatePrice(s.PricePerDog, durationHours, petCount)
}

// CalculatePrice pricePerDog * durationHours * petCount, rounded to cents; 0 for no pets
func CalculatePrice(pricePerDog, durationHours float64, petCount int) float64 {
	if petCount <= 0 || durationHours <= 0 || pricePerDog <= 0 {
		return 0
	}
	return Round2(pricePerDog * durationHours * float64(petCount))
}
