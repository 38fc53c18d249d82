package create_booking

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/PetSpace-BookingService/internal/domain"
	spaceRepo "github.com/m04kA/PetSpace-BookingService/internal/infra/storage/space"
	"github.com/m04kA/PetSpace-BookingService/pkg/types"
)

// store хранилище в памяти; serializable-транзакция эмулируется мьютексом
type store struct {
	mu       sync.Mutex
	txMu     sync.Mutex
	nextID   int64
	bookings []*domain.Booking
	joins    map[int64][]int64
	locks    int

	spaces   map[int64]*domain.Space
	patterns []*domain.AvailabilityPattern
	pets     map[int64]*domain.Pet
}

func newStore() *store {
	return &store{
		joins:  make(map[int64][]int64),
		spaces: make(map[int64]*domain.Space),
		pets:   make(map[int64]*domain.Pet),
	}
}

func (s *store) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(ctx)
}

func (s *store) LockSpace(ctx context.Context, spaceID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locks++
	return nil
}

func (s *store) GetOverlapping(ctx context.Context, spaceID int64, date time.Time, start, end types.TimeString) ([]*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Booking
	for _, b := range domain.FilterBookings(s.bookings, domain.ActiveBookings(), domain.BookingsOnDate(date), domain.BookingsOverlapping(start, end)) {
		if b.SpaceID == spaceID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *store) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	booking.ID = s.nextID
	s.bookings = append(s.bookings, booking)
	return booking, nil
}

type joinRepo struct{ s *store }

func (r joinRepo) Create(ctx context.Context, bookingID, petID int64) (*domain.BookingPet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.joins[bookingID] = append(r.s.joins[bookingID], petID)
	return &domain.BookingPet{BookingID: bookingID, PetID: petID}, nil
}

type spaces struct{ s *store }

func (r spaces) GetByID(ctx context.Context, id int64) (*domain.Space, error) {
	sp, ok := r.s.spaces[id]
	if !ok {
		return nil, spaceRepo.ErrSpaceNotFound
	}
	return sp, nil
}

type patterns struct{ s *store }

func (r patterns) GetBySpace(ctx context.Context, spaceID int64, filter domain.PatternsFilter) ([]*domain.AvailabilityPattern, error) {
	preds := []domain.PatternPredicate{domain.ForSpace(spaceID)}
	if filter.ActiveOnly {
		preds = append(preds, domain.ActivePatterns())
	}
	return domain.FilterPatterns(r.s.patterns, preds...), nil
}

type pets struct{ s *store }

func (r pets) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Pet, error) {
	var out []*domain.Pet
	for _, id := range ids {
		if p, ok := r.s.pets[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type countingMetrics struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (m *countingMetrics) ObserveBookingCreated(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outcomes == nil {
		m.outcomes = make(map[string]int)
	}
	m.outcomes[outcome]++
}
