package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PetSpace-BookingService/internal/domain"
	patternRepo "github.com/m04kA/PetSpace-BookingService/internal/infra/storage/availability"
	spaceRepo "github.com/m04kA/PetSpace-BookingService/internal/infra/storage/space"
	"github.com/m04kA/PetSpace-BookingService/internal/service/availability/models"
)

// Service сервис шаблонов доступности площадок
type Service struct {
	spaceRepo   SpaceRepository
	patternRepo PatternRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	spaceRepo SpaceRepository,
	patternRepo PatternRepository,
	logger Logger,
) *Service {
	return &Service{
		spaceRepo:   spaceRepo,
		patternRepo: patternRepo,
		logger:      logger,
	}
}

// Create добавляет шаблон доступности. Доступно только владельцу площадки.
// Пересекающиеся шаблоны в один день допускаются.
func (s *Service) Create(ctx context.Context, ownerID, spaceID int64, req models.PatternRequest) (*models.PatternResponse, error) {
	s.logger.Info("Create: adding availability for space=%d by user=%d, day=%d %s-%s",
		spaceID, ownerID, req.DayOfWeek, req.StartTime, req.EndTime)

	if _, err := s.ownedSpace(ctx, "Create", spaceID, ownerID); err != nil {
		return nil, err
	}

	pattern := &domain.AvailabilityPattern{SpaceID: spaceID, IsActive: true}
	req.ApplyTo(pattern)

	if errs := pattern.Validate(); len(errs) > 0 {
		s.logger.Warn("Create: validation failed for space=%d: %v", spaceID, errs)
		return nil, errs
	}

	created, err := s.patternRepo.Create(ctx, pattern)
	if err != nil {
		s.logger.Error("Create: repository error for space=%d: %v", spaceID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: availability id=%d created for space=%d", created.ID, spaceID)
	return models.FromDomainPattern(created), nil
}

// Update изменяет шаблон. Доступно только владельцу площадки.
func (s *Service) Update(ctx context.Context, ownerID, spaceID, patternID int64, req models.PatternRequest) (*models.PatternResponse, error) {
	s.logger.Info("Update: updating availability id=%d of space=%d by user=%d", patternID, spaceID, ownerID)

	if _, err := s.ownedSpace(ctx, "Update", spaceID, ownerID); err != nil {
		return nil, err
	}

	pattern, err := s.spacePattern(ctx, "Update", spaceID, patternID)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(pattern)
	if errs := pattern.Validate(); len(errs) > 0 {
		s.logger.Warn("Update: validation failed for availability id=%d: %v", patternID, errs)
		return nil, errs
	}

	if err := s.patternRepo.Update(ctx, pattern); err != nil {
		if errors.Is(err, patternRepo.ErrPatternNotFound) {
			return nil, ErrPatternNotFound
		}
		s.logger.Error("Update: repository error for availability id=%d: %v", patternID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: availability id=%d updated", patternID)
	return models.FromDomainPattern(pattern), nil
}

// Deactivate снимает флаг активности. Шаблон остаётся в базе,
// уже принятые бронирования не пересматриваются.
func (s *Service) Deactivate(ctx context.Context, ownerID, spaceID, patternID int64) (*models.PatternResponse, error) {
	s.logger.Info("Deactivate: deactivating availability id=%d of space=%d by user=%d", patternID, spaceID, ownerID)

	if _, err := s.ownedSpace(ctx, "Deactivate", spaceID, ownerID); err != nil {
		return nil, err
	}

	pattern, err := s.spacePattern(ctx, "Deactivate", spaceID, patternID)
	if err != nil {
		return nil, err
	}

	if err := s.patternRepo.Deactivate(ctx, patternID); err != nil {
		if errors.Is(err, patternRepo.ErrPatternNotFound) {
			return nil, ErrPatternNotFound
		}
		s.logger.Error("Deactivate: repository error for availability id=%d: %v", patternID, err)
		return nil, fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}
	pattern.IsActive = false

	s.logger.Info("Deactivate: availability id=%d deactivated", patternID)
	return models.FromDomainPattern(pattern), nil
}

// GetByID получает шаблон площадки
func (s *Service) GetByID(ctx context.Context, spaceID, patternID int64) (*models.PatternResponse, error) {
	pattern, err := s.spacePattern(ctx, "GetByID", spaceID, patternID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainPattern(pattern), nil
}

// ListBySpace получает шаблоны площадки. По умолчанию только активные.
func (s *Service) ListBySpace(ctx context.Context, spaceID int64, req models.ListPatternsRequest) (*models.PatternListResponse, error) {
	s.logger.Info("ListBySpace: fetching availability for space=%d, includeInactive=%t", spaceID, req.IncludeInactive)

	if _, err := s.space(ctx, "ListBySpace", spaceID); err != nil {
		return nil, err
	}

	patterns, err := s.patternRepo.GetBySpace(ctx, spaceID, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("ListBySpace: repository error for space=%d: %v", spaceID, err)
		return nil, fmt.Errorf("%w: ListBySpace - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBySpace: fetched %d patterns for space=%d", len(patterns), spaceID)
	return models.FromDomainPatternList(patterns), nil
}

// Вспомогательные методы

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

// ownedSpace площадка другого владельца неотличима от несуществующей
func (s *Service) ownedSpace(ctx context.Context, op string, spaceID, ownerID int64) (*domain.Space, error) {
	space, err := s.space(ctx, op, spaceID)
	if err != nil {
		return nil, err
	}
	if !space.IsOwnedBy(ownerID) {
		s.logger.Warn("%s: user=%d is not the owner of space=%d", op, ownerID, spaceID)
		return nil, ErrSpaceNotFound
	}
	return space, nil
}

func (s *Service) spacePattern(ctx context.Context, op string, spaceID, patternID int64) (*domain.AvailabilityPattern, error) {
	pattern, err := s.patternRepo.GetByID(ctx, patternID)
	if err != nil {
		if errors.Is(err, patternRepo.ErrPatternNotFound) {
			s.logger.Warn("%s: availability id=%d not found", op, patternID)
			return nil, ErrPatternNotFound
		}
		s.logger.Error("%s: failed to get availability id=%d: %v", op, patternID, err)
		return nil, fmt.Errorf("%w: %s - failed to get availability: %v", ErrInternal, op, err)
	}
	if pattern.SpaceID != spaceID {
		s.logger.Warn("%s: availability id=%d does not belong to space=%d", op, patternID, spaceID)
		return nil, ErrPatternNotFound
	}
	return pattern, nil
}
