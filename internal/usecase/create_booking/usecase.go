package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PetSpace-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PetSpace-BookingService/internal/infra/storage/booking"
	spaceRepo "github.com/m04kA/PetSpace-BookingService/internal/infra/storage/space"
	"github.com/m04kA/PetSpace-BookingService/internal/service/bookings/models"
	"github.com/m04kA/PetSpace-BookingService/pkg/pgerr"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	bookingPetRepo BookingPetRepository
	spaceRepo      SpaceRepository
	patternRepo    PatternRepository
	petRepo        PetRepository
	txManager      TransactionManager
	timeProvider   TimeProvider
	metrics        Metrics
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	bookingPetRepo BookingPetRepository,
	spaceRepo SpaceRepository,
	patternRepo PatternRepository,
	petRepo PetRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		bookingPetRepo: bookingPetRepo,
		spaceRepo:      spaceRepo,
		patternRepo:    patternRepo,
		petRepo:        petRepo,
		txManager:      txManager,
		timeProvider:   timeProvider,
		metrics:        metrics,
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка пересечений и вставка выполняются под advisory lock площадки,
// поэтому из двух пересекающихся запросов сохраняется только один.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("CreateBooking: renter=%d, space=%d, date=%s, time=%s-%s, pets=%v",
		req.RenterID, req.SpaceID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.PetIDs)

	resp, err := uc.execute(ctx, req)
	uc.metrics.ObserveBookingCreated(outcome(err))
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: invalid request: %v", err)
		return nil, err
	}
	petIDs := uniquePetIDs(req.PetIDs)

	var result *domain.Booking

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Блокируем площадку до конца транзакции
		if err := uc.bookingRepo.LockSpace(txCtx, req.SpaceID); err != nil {
			uc.logger.Error("CreateBooking: failed to lock space=%d: %v", req.SpaceID, err)
			return fmt.Errorf("%w: failed to lock space: %v", ErrInternal, err)
		}

		// 2.2. Получаем площадку и её шаблоны
		space, err := uc.spaceRepo.GetByID(txCtx, req.SpaceID)
		if err != nil {
			if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
				uc.logger.Warn("CreateBooking: space=%d not found", req.SpaceID)
				return ErrSpaceNotFound
			}
			uc.logger.Error("CreateBooking: failed to get space=%d: %v", req.SpaceID, err)
			return fmt.Errorf("%w: failed to get space: %v", ErrInternal, err)
		}

		patterns, err := uc.patternRepo.GetBySpace(txCtx, req.SpaceID, domain.PatternsFilter{ActiveOnly: true})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get patterns of space=%d: %v", req.SpaceID, err)
			return fmt.Errorf("%w: failed to get patterns: %v", ErrInternal, err)
		}

		booking := &domain.Booking{
			SpaceID:            req.SpaceID,
			RenterID:           req.RenterID,
			BookingDate:        domain.DateOnly(req.Date),
			StartTime:          req.StartTime,
			EndTime:            req.EndTime,
			Status:             domain.StatusPending,
			PricePerDogPerHour: space.PricePerDog,
			RenterMessage:      req.Message,
		}

		// 2.3. Проверяем все правила бронирования разом
		errs := domain.ValidateBooking(domain.BookingValidationInput{
			Booking:  booking,
			Space:    space,
			Patterns: patterns,
			Now:      uc.timeProvider.Now(),
		})
		domain.ValidateMessage(&errs, "renter_message", req.Message)
		if !space.CanAccommodatePets(len(petIDs)) {
			errs.Add("pets", fmt.Sprintf("exceeds the maximum of %d pets for this space", space.MaxDogsPerBooking))
		}
		if len(errs) > 0 {
			uc.logger.Warn("CreateBooking: validation failed for space=%d: %v", req.SpaceID, errs)
			return errs
		}

		// 2.4. Питомцы должны принадлежать арендатору
		if err := uc.checkPets(txCtx, req.RenterID, petIDs); err != nil {
			return err
		}

		// 2.5. Ищем пересекающиеся активные бронирования
		overlapping, err := uc.bookingRepo.GetOverlapping(txCtx, req.SpaceID, booking.BookingDate, booking.StartTime, booking.EndTime)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to get overlapping bookings: %v", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("CreateBooking: space=%d already has booking id=%d at %s %s-%s",
				req.SpaceID, overlapping[0].ID, booking.BookingDate.Format(domain.DateFormat), overlapping[0].StartTime, overlapping[0].EndTime)
			return ErrConflict
		}

		// 2.6. Сохраняем бронирование и привязываем питомцев
		booking.DurationHours = booking.ComputeDuration()
		booking.RecalculatePrice(len(petIDs))

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrConcurrentWrite) {
				uc.logger.Warn("CreateBooking: concurrent write on space=%d: %v", req.SpaceID, err)
				return ErrConflict
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		for _, petID := range petIDs {
			if _, err := uc.bookingPetRepo.Create(txCtx, created.ID, petID); err != nil {
				uc.logger.Error("CreateBooking: failed to attach pet=%d to booking id=%d: %v", petID, created.ID, err)
				return fmt.Errorf("%w: failed to attach pet: %v", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		// Проигрыш в гонке сериализуемых транзакций обнаруживается на commit
		if pgerr.IsConcurrencyConflict(err) {
			uc.logger.Warn("CreateBooking: serialization conflict on space=%d: %v", req.SpaceID, err)
			return nil, ErrConflict
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, total=%.2f", result.ID, *result.TotalPrice)
	return models.FromDomainBooking(result, petIDs), nil
}

func (uc *UseCase) checkPets(ctx context.Context, renterID int64, petIDs []int64) error {
	if len(petIDs) == 0 {
		return nil
	}

	pets, err := uc.petRepo.GetByIDs(ctx, petIDs)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get pets %v: %v", petIDs, err)
		return fmt.Errorf("%w: failed to get pets: %v", ErrInternal, err)
	}

	found := make(map[int64]*domain.Pet, len(pets))
	for _, pet := range pets {
		found[pet.ID] = pet
	}

	for _, id := range petIDs {
		pet, ok := found[id]
		if !ok {
			uc.logger.Warn("CreateBooking: pet=%d not found", id)
			return ErrPetNotFound
		}
		if pet.OwnerID != renterID {
			uc.logger.Warn("CreateBooking: pet=%d belongs to user=%d, not renter=%d", id, pet.OwnerID, renterID)
			return domain.ErrOwnershipMismatch
		}
	}

	return nil
}

// validateRequest валидирует идентификаторы запроса.
// Время и дата проверяются доменными правилами.
func validateRequest(req *Request) error {
	if req.RenterID <= 0 {
		return fmt.Errorf("%w: renterID must be positive", ErrInvalidInput)
	}
	if req.SpaceID <= 0 {
		return fmt.Errorf("%w: spaceID must be positive", ErrInvalidInput)
	}
	for _, id := range req.PetIDs {
		if id <= 0 {
			return fmt.Errorf("%w: petIds must be positive", ErrInvalidInput)
		}
	}
	return nil
}

// uniquePetIDs убирает повторы, сохраняя порядок
func uniquePetIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "created"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrValidationFailed):
		return "invalid"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrOwnershipMismatch):
		return "ownership_mismatch"
	default:
		return "error"
	}
}
