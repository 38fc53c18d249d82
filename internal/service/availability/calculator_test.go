package availability

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetSpace-BookingService/internal/domain"
	"github.com/m04kA/PetSpace-BookingService/pkg/types"
)

// 2024-01-01 is a Monday
var monday = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func testSpace() *domain.Space {
	return &domain.Space{ID: 10, OwnerID: 1, PricePerDog: 20, MaxDogsPerBooking: 4, Status: domain.SpaceStatusActive}
}

func pattern(id int64, day int, start, end string, active bool) *domain.AvailabilityPattern {
	return &domain.AvailabilityPattern{
		ID:        id,
		SpaceID:   10,
		DayOfWeek: day,
		StartTime: types.MustTimeString(start),
		EndTime:   types.MustTimeString(end),
		IsActive:  active,
	}
}

func booking(id int64, date time.Time, start, end string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		SpaceID:     10,
		RenterID:    2,
		BookingDate: date,
		StartTime:   types.MustTimeString(start),
		EndTime:     types.MustTimeString(end),
		Status:      status,
	}
}

func slotTimes(slots []domain.Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.StartTime.String() + "-" + s.EndTime.String()
	}
	return out
}

func TestCalculator_SlotsInRange_SingleDay(t *testing.T) {
	calc := NewCalculator(testSpace(), []*domain.AvailabilityPattern{pattern(1, 1, "09:00", "12:00", true)}, nil, monday.Add(8*time.Hour))

	slots := calc.SlotsInRange(monday, monday)

	require.Len(t, slots, 3)
	assert.Equal(t, []string{"09:00-10:00", "10:00-11:00", "11:00-12:00"}, slotTimes(slots))
	for _, s := range slots {
		assert.Equal(t, 20.0, s.PricePerDog)
		assert.Equal(t, 1.0, s.DurationHours)
		assert.True(t, s.Available)
		assert.Nil(t, s.TotalPrice)
		assert.Equal(t, int64(10), s.SpaceID)
		assert.Equal(t, "Monday", s.DayName())
	}
}

func TestCalculator_SlotsInRange_SkipsPast(t *testing.T) {
	patterns := []*domain.AvailabilityPattern{pattern(1, 1, "09:00", "12:00", true)}

	// слот 10:00 уже начался
	calc := NewCalculator(testSpace(), patterns, nil, monday.Add(10*time.Hour+30*time.Minute))
	assert.Equal(t, []string{"11:00-12:00"}, slotTimes(calc.SlotsInRange(monday, monday)))

	// понедельник уже прошёл, остаётся следующий
	calc = NewCalculator(testSpace(), patterns, nil, monday.AddDate(0, 0, 1))
	slots := calc.SlotsInRange(monday, monday.AddDate(0, 0, 7))
	require.Len(t, slots, 3)
	assert.True(t, domain.IsSameDay(monday.AddDate(0, 0, 7), slots[0].Date))
}

func TestCalculator_SlotsInRange_MultipleDaysSorted(t *testing.T) {
	patterns := []*domain.AvailabilityPattern{
		pattern(1, 1, "10:00", "13:00", true),
		pattern(2, 1, "09:00", "12:00", true),
		pattern(3, 2, "14:00", "16:00", true),
		pattern(4, 2, "08:00", "10:00", false),
	}
	calc := NewCalculator(testSpace(), patterns, nil, monday)

	slots := calc.SlotsInRange(monday, monday.AddDate(0, 0, 1))

	assert.Equal(t, []string{
		"09:00-10:00", "10:00-11:00", "10:00-11:00", "11:00-12:00", "11:00-12:00", "12:00-13:00",
		"14:00-15:00", "15:00-16:00",
	}, slotTimes(slots))
	for i := 1; i < len(slots); i++ {
		assert.False(t, slots[i].StartDatetime().Before(slots[i-1].StartDatetime()))
	}
}

func TestCalculator_SlotsInRange_NotBookable(t *testing.T) {
	patterns := []*domain.AvailabilityPattern{pattern(1, 1, "09:00", "12:00", true)}

	inactive := testSpace()
	inactive.Status = domain.SpaceStatusInactive
	assert.Empty(t, NewCalculator(inactive, patterns, nil, monday).SlotsInRange(monday, monday))

	noActive := []*domain.AvailabilityPattern{pattern(1, 1, "09:00", "12:00", false)}
	assert.Empty(t, NewCalculator(testSpace(), noActive, nil, monday).SlotsInRange(monday, monday))
}

func TestCalculator_CustomDurationSlots(t *testing.T) {
	calc := NewCalculator(testSpace(), []*domain.AvailabilityPattern{pattern(1, 1, "09:00", "12:00", true)}, nil, monday.Add(8*time.Hour))

	slots := calc.CustomDurationSlots(monday, monday, 2)
	assert.Equal(t, []string{"09:00-11:00", "10:00-12:00"}, slotTimes(slots))
	for _, s := range slots {
		require.NotNil(t, s.TotalPrice)
		assert.Equal(t, 40.0, *s.TotalPrice)
		assert.Equal(t, 2.0, s.DurationHours)
	}

	// начала с шагом в час, слоты перекрываются
	slots = calc.CustomDurationSlots(monday, monday, 1.5)
	assert.Equal(t, []string{"09:00-10:30", "10:00-11:30"}, slotTimes(slots))

	assert.Empty(t, calc.CustomDurationSlots(monday, monday, 4))
	assert.Empty(t, calc.CustomDurationSlots(monday, monday, 0.5))
	assert.Empty(t, calc.CustomDurationSlots(monday, monday, 1e18))
	assert.Empty(t, calc.CustomDurationSlots(monday, monday, math.NaN()))
	assert.Empty(t, calc.CustomDurationSlots(monday, monday, math.Inf(1)))
}

func TestCalculator_IsSlotAvailable(t *testing.T) {
	patterns := []*domain.AvailabilityPattern{
		pattern(1, 1, "09:00", "12:00", true),
		pattern(2, 1, "14:00", "18:00", false),
	}
	bookings := []*domain.Booking{booking(1, monday, "09:00", "11:00", domain.StatusApproved)}
	calc := NewCalculator(testSpace(), patterns, bookings, monday.Add(8*time.Hour))

	assert.True(t, calc.IsSlotAvailable(monday.Add(9*time.Hour), 2), "existing bookings are not considered")
	assert.True(t, calc.IsSlotAvailable(monday.Add(11*time.Hour), 1))
	assert.False(t, calc.IsSlotAvailable(monday.Add(11*time.Hour), 2))
	assert.False(t, calc.IsSlotAvailable(monday.Add(7*time.Hour), 1), "in the past")
	assert.False(t, calc.IsSlotAvailable(monday.Add(15*time.Hour), 1), "inactive pattern")
	assert.False(t, calc.IsSlotAvailable(monday.AddDate(0, 0, 1).Add(9*time.Hour), 1), "no pattern on Tuesday")
	assert.False(t, calc.IsSlotAvailable(monday.Add(23*time.Hour), 2), "crosses midnight")

	for _, hours := range []float64{0, -1, 1e18, math.NaN(), math.Inf(1)} {
		assert.False(t, calc.IsSlotAvailable(monday.Add(9*time.Hour), hours), "duration %v", hours)
	}
}

func TestCalculator_ConflictingBookings(t *testing.T) {
	bookings := []*domain.Booking{
		booking(1, monday, "09:00", "10:00", domain.StatusApproved),
		booking(2, monday, "10:00", "11:00", domain.StatusCancelled),
		booking(3, monday, "10:00", "11:30", domain.StatusPending),
		booking(4, monday, "10:30", "12:00", domain.StatusDenied),
		booking(5, monday.AddDate(0, 0, 7), "10:00", "11:00", domain.StatusApproved),
	}
	calc := NewCalculator(testSpace(), nil, bookings, monday)

	got := calc.ConflictingBookings(monday.Add(10*time.Hour), monday.Add(11*time.Hour))
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)

	got = calc.ConflictingBookings(monday.Add(9*time.Hour), monday.Add(10*time.Hour+30*time.Minute))
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)

	assert.Empty(t, calc.ConflictingBookings(monday.Add(12*time.Hour), monday.Add(13*time.Hour)))
}

func TestCalculator_Summary(t *testing.T) {
	patterns := []*domain.AvailabilityPattern{
		pattern(1, 3, "10:00", "14:00", true),
		pattern(2, 1, "09:00", "12:00", true),
		pattern(3, 1, "14:00", "16:00", false),
	}
	summary := NewCalculator(testSpace(), patterns, nil, monday).Summary()

	assert.True(t, summary.Available)
	assert.Equal(t, 2, summary.AvailableDays)
	assert.Equal(t, 7.0, summary.TotalHoursPerWeek)
	assert.Equal(t, 20.0, summary.HourlyRate)
	assert.Equal(t, 4, summary.MaxPets)
	require.Len(t, summary.Patterns, 2)
	assert.Equal(t, 1, summary.Patterns[0].DayOfWeek)
}

func TestCalculator_Pricing(t *testing.T) {
	calc := NewCalculator(testSpace(), nil, nil, monday)

	assert.Equal(t, 80.0, calc.SlotPrice(2, 2))
	assert.Equal(t, 0.0, calc.SlotPrice(2, 0))
	assert.True(t, calc.CanAccommodatePets(4))
	assert.False(t, calc.CanAccommodatePets(5))
	assert.False(t, calc.IsBookable())
}
