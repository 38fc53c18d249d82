package get_available_slots

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetSpace-BookingService/internal/domain"
	spaceRepo "github.com/m04kA/PetSpace-BookingService/internal/infra/storage/space"
	"github.com/m04kA/PetSpace-BookingService/pkg/logger"
	"github.com/m04kA/PetSpace-BookingService/pkg/ptr"
	"github.com/m04kA/PetSpace-BookingService/pkg/types"
)

// 2024-01-01 is a Monday
var monday = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type fakeSpaces struct {
	space *domain.Space
	err   error
}

func (f fakeSpaces) GetByID(ctx context.Context, id int64) (*domain.Space, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.space == nil || f.space.ID != id {
		return nil, spaceRepo.ErrSpaceNotFound
	}
	return f.space, nil
}

type fakePatterns []*domain.AvailabilityPattern

func (f fakePatterns) GetBySpace(ctx context.Context, spaceID int64, filter domain.PatternsFilter) ([]*domain.AvailabilityPattern, error) {
	return domain.FilterPatterns(f, domain.ForSpace(spaceID)), nil
}

type fakeBookings struct {
	bookings []*domain.Booking
	calls    int
}

func (f *fakeBookings) GetBySpaceWithFilter(ctx context.Context, spaceID int64, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.calls++
	return f.bookings, nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func newUseCase(now time.Time, bookings ...*domain.Booking) (*UseCase, *fakeBookings) {
	space := &domain.Space{ID: 10, OwnerID: 1, PricePerDog: 20, MaxDogsPerBooking: 4, Status: domain.SpaceStatusActive}
	patterns := fakePatterns{
		{ID: 1, SpaceID: 10, DayOfWeek: 1, StartTime: types.MustTimeString("09:00"), EndTime: types.MustTimeString("12:00"), IsActive: true},
		{ID: 2, SpaceID: 10, DayOfWeek: 3, StartTime: types.MustTimeString("14:00"), EndTime: types.MustTimeString("16:00"), IsActive: true},
	}
	repo := &fakeBookings{bookings: bookings}
	return NewUseCase(fakeSpaces{space: space}, patterns, repo, fixedTime{now: now}, logger.Nop()), repo
}

func approved(start, end string) *domain.Booking {
	return &domain.Booking{
		ID: 5, SpaceID: 10, RenterID: 2, BookingDate: monday,
		StartTime: types.MustTimeString(start), EndTime: types.MustTimeString(end),
		Status: domain.StatusApproved,
	}
}

func TestUseCase_Execute_HourlySlots(t *testing.T) {
	uc, _ := newUseCase(monday.AddDate(0, 0, -7), approved("10:00", "11:00"))

	resp, err := uc.Execute(context.Background(), &Request{SpaceID: 10, StartDate: monday, EndDate: monday})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.True(t, resp.Slots[0].Available)
	assert.False(t, resp.Slots[1].Available)
	assert.True(t, resp.Slots[2].Available)
	assert.Equal(t, 1.0, resp.DurationHours)
}

func TestUseCase_Execute_CustomDuration(t *testing.T) {
	uc, _ := newUseCase(monday.AddDate(0, 0, -7))

	resp, err := uc.Execute(context.Background(), &Request{
		SpaceID: 10, StartDate: monday, EndDate: monday.AddDate(0, 0, 2), DurationHours: ptr.Ptr(2.0),
	})

	require.NoError(t, err)
	// Пн 09-11, 10-12; Ср 14-16
	require.Len(t, resp.Slots, 3)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[1].StartTime)
	assert.Equal(t, types.TimeString("12:00"), resp.Slots[1].EndTime)
	assert.Equal(t, time.Wednesday, resp.Slots[2].Date.Weekday())
	require.NotNil(t, resp.Slots[2].TotalPrice)
	assert.Equal(t, 40.0, *resp.Slots[2].TotalPrice)
}

func TestUseCase_Execute_InvalidRange(t *testing.T) {
	uc, repo := newUseCase(monday)

	tests := []struct {
		name string
		req  *Request
	}{
		{"end before start", &Request{SpaceID: 10, StartDate: monday, EndDate: monday.AddDate(0, 0, -1)}},
		{"too long", &Request{SpaceID: 10, StartDate: monday, EndDate: monday.AddDate(0, 0, domain.MaxSlotRangeDays)}},
		{"missing dates", &Request{SpaceID: 10}},
		{"zero duration", &Request{SpaceID: 10, StartDate: monday, EndDate: monday, DurationHours: ptr.Ptr(0.0)}},
		{"huge duration", &Request{SpaceID: 10, StartDate: monday, EndDate: monday, DurationHours: ptr.Ptr(1e18)}},
		{"NaN duration", &Request{SpaceID: 10, StartDate: monday, EndDate: monday, DurationHours: ptr.Ptr(math.NaN())}},
		{"infinite duration", &Request{SpaceID: 10, StartDate: monday, EndDate: monday, DurationHours: ptr.Ptr(math.Inf(1))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.ErrorIs(t, err, domain.ErrValidationFailed)
		})
	}
	assert.Zero(t, repo.calls)
}

func TestUseCase_Execute_MaxRangeIsAllowed(t *testing.T) {
	uc, _ := newUseCase(monday.AddDate(0, 0, -7))

	_, err := uc.Execute(context.Background(), &Request{
		SpaceID: 10, StartDate: monday, EndDate: monday.AddDate(0, 0, domain.MaxSlotRangeDays-1),
	})
	assert.NoError(t, err)
}

func TestUseCase_Execute_SpaceNotFound(t *testing.T) {
	uc, _ := newUseCase(monday)

	_, err := uc.Execute(context.Background(), &Request{SpaceID: 99, StartDate: monday, EndDate: monday})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUseCase_Execute_RepositoryError(t *testing.T) {
	uc := NewUseCase(fakeSpaces{err: errors.New("db down")}, fakePatterns{}, &fakeBookings{}, fixedTime{now: monday}, logger.Nop())

	_, err := uc.Execute(context.Background(), &Request{SpaceID: 10, StartDate: monday, EndDate: monday})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUseCase_CheckSlot(t *testing.T) {
	uc, _ := newUseCase(monday.AddDate(0, 0, -7), approved("10:00", "11:00"))

	tests := []struct {
		name          string
		start         time.Time
		duration      float64
		withinPattern bool
		conflicts     int
	}{
		{"free hour", monday.Add(9 * time.Hour), 1, true, 0},
		{"touching booking", monday.Add(11 * time.Hour), 1, true, 0},
		{"overlaps booking", monday.Add(9*time.Hour + 30*time.Minute), 1, true, 1},
		{"outside pattern", monday.Add(11 * time.Hour), 2, false, 0},
		{"day without pattern", monday.AddDate(0, 0, 1).Add(9 * time.Hour), 1, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.CheckSlot(context.Background(), &CheckRequest{SpaceID: 10, Start: tt.start, DurationHours: tt.duration})

			require.NoError(t, err)
			assert.Equal(t, tt.withinPattern, resp.WithinPattern)
			assert.Len(t, resp.Conflicts, tt.conflicts)
			assert.Equal(t, tt.withinPattern && tt.conflicts == 0, resp.Available)
			assert.Equal(t, tt.start.Add(time.Duration(tt.duration*float64(time.Hour))), resp.End)
		})
	}
}

func TestUseCase_CheckSlot_InPast(t *testing.T) {
	uc, _ := newUseCase(monday.Add(10 * time.Hour))

	resp, err := uc.CheckSlot(context.Background(), &CheckRequest{SpaceID: 10, Start: monday.Add(9 * time.Hour), DurationHours: 1})

	require.NoError(t, err)
	assert.False(t, resp.Available)
}

func TestUseCase_CheckSlot_InvalidInput(t *testing.T) {
	uc, repo := newUseCase(monday.AddDate(0, 0, -7), approved("10:00", "11:00"))
	start := monday.Add(9 * time.Hour)

	tests := []struct {
		name string
		req  *CheckRequest
	}{
		{"zero duration", &CheckRequest{SpaceID: 10, Start: start}},
		{"negative duration", &CheckRequest{SpaceID: 10, Start: start, DurationHours: -1}},
		{"longer than any pattern", &CheckRequest{SpaceID: 10, Start: start, DurationHours: 13}},
		{"huge duration", &CheckRequest{SpaceID: 10, Start: start, DurationHours: 1e18}},
		{"NaN duration", &CheckRequest{SpaceID: 10, Start: start, DurationHours: math.NaN()}},
		{"infinite duration", &CheckRequest{SpaceID: 10, Start: start, DurationHours: math.Inf(1)}},
		{"missing start", &CheckRequest{SpaceID: 10, DurationHours: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.CheckSlot(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.ErrorIs(t, err, domain.ErrValidationFailed)
			assert.Nil(t, resp)
		})
	}
	assert.Zero(t, repo.calls)
}

func TestUseCase_Summary(t *testing.T) {
	uc, repo := newUseCase(monday)

	summary, err := uc.Summary(context.Background(), 10)

	require.NoError(t, err)
	assert.True(t, summary.Available)
	assert.Equal(t, 2, summary.AvailableDays)
	assert.Equal(t, 5.0, summary.TotalHoursPerWeek)
	assert.Equal(t, 20.0, summary.HourlyRate)
	assert.Equal(t, 4, summary.MaxPets)
	assert.Zero(t, repo.calls)
}
