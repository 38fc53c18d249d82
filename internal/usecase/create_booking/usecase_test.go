package create_booking

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetSpace-BookingService/internal/domain"
	"github.com/m04kA/PetSpace-BookingService/pkg/logger"
	"github.com/m04kA/PetSpace-BookingService/pkg/ptr"
	"github.com/m04kA/PetSpace-BookingService/pkg/types"
)

const (
	ownerID  int64 = 1
	renterID int64 = 2
	spaceID  int64 = 10
)

// 2024-01-01 is a Monday
var monday = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newUseCase(now time.Time) (*UseCase, *store, *countingMetrics) {
	s := newStore()
	s.spaces[spaceID] = &domain.Space{ID: spaceID, OwnerID: ownerID, PricePerDog: 20, MaxDogsPerBooking: 3, Status: domain.SpaceStatusActive}
	s.patterns = []*domain.AvailabilityPattern{{
		ID: 1, SpaceID: spaceID, DayOfWeek: 1,
		StartTime: types.MustTimeString("09:00"), EndTime: types.MustTimeString("12:00"), IsActive: true,
	}}
	s.pets[100] = &domain.Pet{ID: 100, OwnerID: renterID}
	s.pets[101] = &domain.Pet{ID: 101, OwnerID: renterID}
	s.pets[200] = &domain.Pet{ID: 200, OwnerID: ownerID}

	m := &countingMetrics{}
	uc := NewUseCase(s, joinRepo{s}, spaces{s}, patterns{s}, pets{s}, s, fixedTime{now: now}, m, logger.Nop())
	return uc, s, m
}

func request(start, end string, petIDs ...int64) *Request {
	return &Request{
		RenterID:  renterID,
		SpaceID:   spaceID,
		Date:      monday,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		PetIDs:    petIDs,
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	uc, s, m := newUseCase(monday.AddDate(0, 0, -7))

	resp, err := uc.Execute(context.Background(), request("09:00", "11:00", 100, 101))

	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 2.0, resp.DurationHours)
	require.NotNil(t, resp.TotalPrice)
	assert.Equal(t, 80.0, *resp.TotalPrice)
	assert.Equal(t, 20.0, resp.PricePerDogPerHour)
	assert.Equal(t, []int64{100, 101}, resp.PetIDs)
	assert.Equal(t, []int64{100, 101}, s.joins[resp.ID])
	assert.Equal(t, 1, s.locks)
	assert.Equal(t, 1, m.outcomes["created"])
}

func TestUseCase_Execute_NoPetsIsFree(t *testing.T) {
	uc, _, _ := newUseCase(monday.AddDate(0, 0, -7))

	resp, err := uc.Execute(context.Background(), request("09:00", "10:00"))

	require.NoError(t, err)
	assert.Equal(t, 0.0, *resp.TotalPrice)
	assert.Empty(t, resp.PetIDs)
}

func TestUseCase_Execute_DuplicatePetIDsAreMerged(t *testing.T) {
	uc, s, _ := newUseCase(monday.AddDate(0, 0, -7))

	resp, err := uc.Execute(context.Background(), request("09:00", "10:00", 100, 100))

	require.NoError(t, err)
	assert.Equal(t, 20.0, *resp.TotalPrice)
	assert.Equal(t, []int64{100}, s.joins[resp.ID])
}

func TestUseCase_Execute_Conflict(t *testing.T) {
	uc, _, m := newUseCase(monday.AddDate(0, 0, -7))

	_, err := uc.Execute(context.Background(), request("09:00", "11:00", 100))
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), request("10:00", "11:30", 101))
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.False(t, errors.Is(err, domain.ErrValidationFailed))
	assert.Equal(t, 1, m.outcomes["conflict"])
}

func TestUseCase_Execute_TouchingIsNotConflict(t *testing.T) {
	uc, _, _ := newUseCase(monday.AddDate(0, 0, -7))

	_, err := uc.Execute(context.Background(), request("09:00", "10:00"))
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), request("10:00", "11:00"))
	assert.NoError(t, err)
}

func TestUseCase_Execute_InactiveBookingDoesNotBlock(t *testing.T) {
	uc, s, _ := newUseCase(monday.AddDate(0, 0, -7))

	_, err := uc.Execute(context.Background(), request("09:00", "11:00"))
	require.NoError(t, err)
	s.bookings[0].Status = domain.StatusDenied

	_, err = uc.Execute(context.Background(), request("09:00", "11:00"))
	assert.NoError(t, err)
}

func TestUseCase_Execute_ConcurrentOverlappingRequests(t *testing.T) {
	uc, s, _ := newUseCase(monday.AddDate(0, 0, -7))

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), request("09:30", "11:00"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicts)
	assert.Len(t, s.bookings, 1)
}

func TestUseCase_Execute_CollectsAllValidationErrors(t *testing.T) {
	// Сегодня понедельник 10:00; бронирование в прошлом, короче часа и вне шаблона
	uc, s, _ := newUseCase(monday.Add(10 * time.Hour))
	req := request("08:00", "08:30")

	_, err := uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, domain.ErrValidationFailed)
	errs, ok := domain.AsValidationErrors(err)
	require.True(t, ok)
	assert.True(t, errs.HasMessage("at least 1 hour"))
	assert.True(t, errs.HasField("start_time"))
	assert.True(t, errs.HasMessage("not available during the requested time"))
	assert.Empty(t, s.bookings)
}

func TestUseCase_Execute_SelfBooking(t *testing.T) {
	uc, _, _ := newUseCase(monday.AddDate(0, 0, -7))
	req := request("09:00", "10:00")
	req.RenterID = ownerID

	_, err := uc.Execute(context.Background(), req)

	errs, ok := domain.AsValidationErrors(err)
	require.True(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "You cannot book your own space", errs[0].Message)
}

func TestUseCase_Execute_TooManyPetsAndLongMessage(t *testing.T) {
	uc, s, _ := newUseCase(monday.AddDate(0, 0, -7))
	s.spaces[spaceID].MaxDogsPerBooking = 1
	req := request("09:00", "10:00", 100, 101)
	req.Message = ptr.Ptr(strings.Repeat("a", domain.MaxMessageLength+1))

	_, err := uc.Execute(context.Background(), req)

	errs, ok := domain.AsValidationErrors(err)
	require.True(t, ok)
	assert.True(t, errs.HasField("pets"))
	assert.True(t, errs.HasField("renter_message"))
}

func TestUseCase_Execute_PetRules(t *testing.T) {
	uc, s, _ := newUseCase(monday.AddDate(0, 0, -7))

	_, err := uc.Execute(context.Background(), request("09:00", "10:00", 100, 200))
	assert.ErrorIs(t, err, domain.ErrOwnershipMismatch)

	_, err = uc.Execute(context.Background(), request("09:00", "10:00", 999))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Empty(t, s.bookings)
}

func TestUseCase_Execute_SpaceNotFound(t *testing.T) {
	uc, _, _ := newUseCase(monday.AddDate(0, 0, -7))
	req := request("09:00", "10:00")
	req.SpaceID = 77

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSpaceNotFound)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	uc, _, _ := newUseCase(monday.AddDate(0, 0, -7))
	req := request("09:00", "10:00", -1)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

type failingCommit struct{ *store }

func (f failingCommit) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return &pq.Error{Code: "40001", Message: "could not serialize access"}
}

func TestUseCase_Execute_SerializationFailureIsConflict(t *testing.T) {
	_, s, m := newUseCase(monday.AddDate(0, 0, -7))
	uc := NewUseCase(s, joinRepo{s}, spaces{s}, patterns{s}, pets{s}, failingCommit{s}, fixedTime{now: monday.AddDate(0, 0, -7)}, m, logger.Nop())

	_, err := uc.Execute(context.Background(), request("09:00", "10:00"))
	assert.ErrorIs(t, err, ErrConflict)
}
