package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PetSpace-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PetSpace-BookingService/internal/infra/storage/booking"
	bookingPetRepo "github.com/m04kA/PetSpace-BookingService/internal/infra/storage/bookingpet"
	petRepo "github.com/m04kA/PetSpace-BookingService/internal/infra/storage/pet"
	spaceRepo "github.com/m04kA/PetSpace-BookingService/internal/infra/storage/space"
	"github.com/m04kA/PetSpace-BookingService/internal/service/bookings/models"
)

// Действия над бронированием (метки метрик и логов)
const (
	ActionApprove = "approve"
	ActionDeny    = "deny"
	ActionCancel  = "cancel"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo    BookingRepository
	bookingPetRepo BookingPetRepository
	spaceRepo      SpaceRepository
	petRepo        PetRepository
	txManager      TransactionManager
	timeProvider   TimeProvider
	metrics        Metrics
	logger         Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	bookingPetRepo BookingPetRepository,
	spaceRepo SpaceRepository,
	petRepo PetRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		bookingPetRepo: bookingPetRepo,
		spaceRepo:      spaceRepo,
		petRepo:        petRepo,
		txManager:      txManager,
		timeProvider:   timeProvider,
		metrics:        metrics,
		logger:         logger,
	}
}

// GetByID получает бронирование по ID.
// Видно только арендатору и владельцу площадки, остальным - как несуществующее.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, space, err := s.load(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !booking.IsParticipant(userID, space) {
		s.logger.Warn("GetByID: user=%d is not a participant of booking id=%d", userID, id)
		return nil, ErrBookingNotFound
	}

	petIDs, err := s.bookingPetRepo.GetPetIDsByBooking(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to get pets of booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - failed to get pets: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking, petIDs), nil
}

// GetRenterBookings получает историю бронирований арендатора.
// Опционально фильтрует по статусу
func (s *Service) GetRenterBookings(ctx context.Context, req *models.GetRenterBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetRenterBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var status *domain.BookingStatus
	if req.Status != nil {
		parsed, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetRenterBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &parsed
	}

	bookings, err := s.bookingRepo.GetByRenterID(ctx, req.UserID, status)
	if err != nil {
		s.logger.Error("GetRenterBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetRenterBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetRenterBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetSpaceBookings получает бронирования площадки с фильтрацией по периоду и статусу.
// Доступно только владельцу площадки.
func (s *Service) GetSpaceBookings(ctx context.Context, req *models.GetSpaceBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetSpaceBookings: fetching bookings for space=%d, user=%d", req.SpaceID, req.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	space, err := s.space(ctx, "GetSpaceBookings", req.SpaceID)
	if err != nil {
		return nil, err
	}
	if !space.IsOwnedBy(req.UserID) {
		s.logger.Warn("GetSpaceBookings: user=%d is not the owner of space=%d", req.UserID, req.SpaceID)
		return nil, ErrSpaceNotFound
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetSpaceBookings: invalid filter for space=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetBySpaceWithFilter(ctx, req.SpaceID, filter)
	if err != nil {
		s.logger.Error("GetSpaceBookings: repository error for space=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: GetSpaceBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSpaceBookings: successfully fetched %d bookings for space=%d", len(bookings), req.SpaceID)
	return models.FromDomainBookingList(bookings), nil
}

// Approve подтверждает бронирование. Доступно только владельцу площадки.
func (s *Service) Approve(ctx context.Context, bookingID int64, req *models.TransitionRequest) (*models.BookingResponse, error) {
	return s.transition(ctx, ActionApprove, bookingID, req)
}

// Deny отклоняет бронирование. Доступно только владельцу площадки.
func (s *Service) Deny(ctx context.Context, bookingID int64, req *models.TransitionRequest) (*models.BookingResponse, error) {
	return s.transition(ctx, ActionDeny, bookingID, req)
}

// Cancel отменяет подтверждённое бронирование. Доступно арендатору и владельцу
// не позже чем за 24 часа до начала.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.TransitionRequest) (*models.BookingResponse, error) {
	return s.transition(ctx, ActionCancel, bookingID, req)
}

func (s *Service) transition(ctx context.Context, action string, bookingID int64, req *models.TransitionRequest) (*models.BookingResponse, error) {
	s.logger.Info("%s: booking id=%d by user=%d", action, bookingID, req.UserID)

	var (
		result *domain.Booking
		petIDs []int64
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Загружаем бронирование (под блокировкой строки) и площадку
		booking, space, err := s.load(txCtx, action, bookingID)
		if err != nil {
			return err
		}

		// 2. Проверяем права
		if !booking.IsParticipant(req.UserID, space) {
			s.logger.Warn("%s: user=%d is not a participant of booking id=%d", action, req.UserID, bookingID)
			return ErrBookingNotFound
		}
		if action != ActionCancel && !space.IsOwnedBy(req.UserID) {
			s.logger.Warn("%s: user=%d is not the owner of space=%d", action, req.UserID, space.ID)
			return ErrAccessDenied
		}

		// 3. Применяем переход
		if req.Message != nil {
			var errs domain.ValidationErrors
			domain.ValidateMessage(&errs, "message", req.Message)
			if len(errs) > 0 {
				return errs
			}
		}

		from := booking.Status
		now := s.timeProvider.Now()
		switch action {
		case ActionApprove:
			err = booking.Approve(now)
		case ActionDeny:
			err = booking.Deny(now, req.Message)
		case ActionCancel:
			err = booking.Cancel(now, req.UserID, req.Message)
		}
		if err != nil {
			s.logger.Warn("%s: booking id=%d rejected: %v", action, bookingID, err)
			return err
		}

		// 4. Сохраняем
		if err := s.bookingRepo.UpdateStatus(txCtx, booking, from); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusChanged) {
				s.logger.Warn("%s: booking id=%d changed concurrently", action, bookingID)
				return ErrConcurrentUpdate
			}
			s.logger.Error("%s: repository error for booking id=%d: %v", action, bookingID, err)
			return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, action, err)
		}

		petIDs, err = s.bookingPetRepo.GetPetIDsByBooking(txCtx, bookingID)
		if err != nil {
			s.logger.Error("%s: failed to get pets of booking id=%d: %v", action, bookingID, err)
			return fmt.Errorf("%w: %s - failed to get pets: %v", ErrInternal, action, err)
		}

		result = booking
		return nil
	})
	if err != nil {
		s.metrics.ObserveTransition(action, outcome(err))
		return nil, err
	}

	s.metrics.ObserveTransition(action, "ok")
	s.logger.Info("%s: booking id=%d is now %s", action, bookingID, result.Status)
	return models.FromDomainBooking(result, petIDs), nil
}

// AddPet добавляет питомца арендатора в бронирование и пересчитывает стоимость
func (s *Service) AddPet(ctx context.Context, bookingID, userID, petID int64) (*models.BookingResponse, error) {
	s.logger.Info("AddPet: adding pet=%d to booking id=%d by user=%d", petID, bookingID, userID)

	var (
		result *domain.Booking
		petIDs []int64
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, space, err := s.renterBooking(txCtx, "AddPet", bookingID, userID)
		if err != nil {
			return err
		}

		pet, err := s.petRepo.GetByID(txCtx, petID)
		if err != nil {
			if errors.Is(err, petRepo.ErrPetNotFound) {
				s.logger.Warn("AddPet: pet=%d not found", petID)
				return ErrPetNotFound
			}
			s.logger.Error("AddPet: failed to get pet=%d: %v", petID, err)
			return fmt.Errorf("%w: AddPet - failed to get pet: %v", ErrInternal, err)
		}

		exists, err := s.bookingPetRepo.Exists(txCtx, bookingID, petID)
		if err != nil {
			s.logger.Error("AddPet: failed to check pet=%d in booking id=%d: %v", petID, bookingID, err)
			return fmt.Errorf("%w: AddPet - failed to check pet: %v", ErrInternal, err)
		}

		if err := domain.CheckPetAttachable(booking, pet, exists); err != nil {
			s.logger.Warn("AddPet: pet=%d cannot be added to booking id=%d: %v", petID, bookingID, err)
			return err
		}

		count, err := s.bookingPetRepo.CountByBooking(txCtx, bookingID)
		if err != nil {
			s.logger.Error("AddPet: failed to count pets of booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: AddPet - failed to count pets: %v", ErrInternal, err)
		}
		if !space.CanAccommodatePets(count + 1) {
			s.logger.Warn("AddPet: booking id=%d would exceed %d pets", bookingID, space.MaxDogsPerBooking)
			errs := domain.ValidationErrors{}
			errs.Add("pets", fmt.Sprintf("exceeds the maximum of %d pets for this space", space.MaxDogsPerBooking))
			return errs
		}

		if _, err := s.bookingPetRepo.Create(txCtx, bookingID, petID); err != nil {
			if errors.Is(err, bookingPetRepo.ErrDuplicate) {
				return domain.ErrDuplicatePet
			}
			s.logger.Error("AddPet: failed to attach pet=%d to booking id=%d: %v", petID, bookingID, err)
			return fmt.Errorf("%w: AddPet - failed to attach pet: %v", ErrInternal, err)
		}

		petIDs, err = s.repriced(txCtx, "AddPet", booking)
		if err != nil {
			return err
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("AddPet: pet=%d added to booking id=%d, total=%.2f", petID, bookingID, *result.TotalPrice)
	return models.FromDomainBooking(result, petIDs), nil
}

// RemovePet убирает питомца из бронирования и пересчитывает стоимость
func (s *Service) RemovePet(ctx context.Context, bookingID, userID, petID int64) (*models.BookingResponse, error) {
	s.logger.Info("RemovePet: removing pet=%d from booking id=%d by user=%d", petID, bookingID, userID)

	var (
		result *domain.Booking
		petIDs []int64
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, _, err := s.renterBooking(txCtx, "RemovePet", bookingID, userID)
		if err != nil {
			return err
		}

		if err := domain.CheckPetDetachable(booking); err != nil {
			s.logger.Warn("RemovePet: booking id=%d is locked, status=%s", bookingID, booking.Status)
			return err
		}

		if err := s.bookingPetRepo.Delete(txCtx, bookingID, petID); err != nil {
			if errors.Is(err, bookingPetRepo.ErrNotFound) {
				s.logger.Warn("RemovePet: pet=%d is not in booking id=%d", petID, bookingID)
				return ErrPetNotInBooking
			}
			s.logger.Error("RemovePet: failed to detach pet=%d from booking id=%d: %v", petID, bookingID, err)
			return fmt.Errorf("%w: RemovePet - failed to detach pet: %v", ErrInternal, err)
		}

		petIDs, err = s.repriced(txCtx, "RemovePet", booking)
		if err != nil {
			return err
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("RemovePet: pet=%d removed from booking id=%d, total=%.2f", petID, bookingID, *result.TotalPrice)
	return models.FromDomainBooking(result, petIDs), nil
}

// CompleteExpiredBookings переводит в completed все подтверждённые бронирования,
// которые уже закончились. spaceID == nil означает все площадки.
// Бронирование, которое не удалось перевести, логируется и пропускается.
func (s *Service) CompleteExpiredBookings(ctx context.Context, spaceID *int64) (int, error) {
	now := s.timeProvider.Now()
	if spaceID != nil {
		s.logger.Info("CompleteExpiredBookings: sweeping space=%d at %s", *spaceID, now.Format("2006-01-02 15:04"))
	} else {
		s.logger.Info("CompleteExpiredBookings: sweeping all spaces at %s", now.Format("2006-01-02 15:04"))
	}

	expired, err := s.bookingRepo.GetExpiredApproved(ctx, spaceID, now)
	if err != nil {
		s.logger.Error("CompleteExpiredBookings: failed to get expired bookings: %v", err)
		return 0, fmt.Errorf("%w: CompleteExpiredBookings - repository error: %v", ErrInternal, err)
	}

	completed := 0
	for _, booking := range expired {
		from := booking.Status
		changed, err := booking.Complete(now)
		if err != nil {
			s.logger.Warn("CompleteExpiredBookings: skipping booking id=%d: %v", booking.ID, err)
			continue
		}
		if !changed {
			continue
		}

		if err := s.bookingRepo.UpdateStatus(ctx, booking, from); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusChanged) {
				s.logger.Warn("CompleteExpiredBookings: booking id=%d changed concurrently, skipping", booking.ID)
				continue
			}
			s.logger.Error("CompleteExpiredBookings: failed to complete booking id=%d: %v", booking.ID, err)
			continue
		}
		completed++
	}

	s.metrics.ObserveCompleted(completed)
	s.logger.Info("CompleteExpiredBookings: completed %d of %d expired bookings", completed, len(expired))
	return completed, nil
}

// Вспомогательные методы

func (s *Service) load(ctx context.Context, op string, bookingID int64) (*domain.Booking, *domain.Space, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, bookingID)
			return nil, nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
		return nil, nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	space, err := s.space(ctx, op, booking.SpaceID)
	if err != nil {
		return nil, nil, err
	}

	return booking, space, nil
}

func (s *Service) space(ctx context.Context, op string, spaceID int64) (*domain.Space, error) {
	space, err := s.spaceRepo.GetByID(ctx, spaceID)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			s.logger.Warn("%s: space=%d not found", op, spaceID)
			return nil, ErrSpaceNotFound
		}
		s.logger.Error("%s: failed to get space=%d: %v", op, spaceID, err)
		return nil, fmt.Errorf("%w: %s - failed to get space: %v", ErrInternal, op, err)
	}
	return space, nil
}

// renterBooking бронирование, которым может управлять только арендатор
func (s *Service) renterBooking(ctx context.Context, op string, bookingID, userID int64) (*domain.Booking, *domain.Space, error) {
	booking, space, err := s.load(ctx, op, bookingID)
	if err != nil {
		return nil, nil, err
	}
	if !booking.IsParticipant(userID, space) {
		s.logger.Warn("%s: user=%d is not a participant of booking id=%d", op, userID, bookingID)
		return nil, nil, ErrBookingNotFound
	}
	if booking.RenterID != userID {
		s.logger.Warn("%s: user=%d is not the renter of booking id=%d", op, userID, bookingID)
		return nil, nil, ErrAccessDenied
	}
	return booking, space, nil
}

// repriced пересчитывает стоимость по текущему составу питомцев
func (s *Service) repriced(ctx context.Context, op string, booking *domain.Booking) ([]int64, error) {
	petIDs, err := s.bookingPetRepo.GetPetIDsByBooking(ctx, booking.ID)
	if err != nil {
		s.logger.Error("%s: failed to get pets of booking id=%d: %v", op, booking.ID, err)
		return nil, fmt.Errorf("%w: %s - failed to get pets: %v", ErrInternal, op, err)
	}

	price := booking.RecalculatePrice(len(petIDs))
	if err := s.bookingRepo.UpdateTotalPrice(ctx, booking.ID, price); err != nil {
		s.logger.Error("%s: failed to update price of booking id=%d: %v", op, booking.ID, err)
		return nil, fmt.Errorf("%w: %s - failed to update price: %v", ErrInternal, op, err)
	}

	return petIDs, nil
}

func outcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrValidationFailed):
		return "invalid"
	default:
		return "error"
	}
}
