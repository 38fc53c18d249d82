package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/PetSpace-BookingService/internal/domain"
	spaceRepo "github.com/m04kA/PetSpace-BookingService/internal/infra/storage/space"
	"github.com/m04kA/PetSpace-BookingService/internal/service/availability"
)

// UseCase use case для получения слотов и проверки доступности площадки
type UseCase struct {
	spaceRepo    SpaceRepository
	patternRepo  PatternRepository
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	spaceRepo SpaceRepository,
	patternRepo PatternRepository,
	bookingRepo BookingRepository,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		spaceRepo:    spaceRepo,
		patternRepo:  patternRepo,
		bookingRepo:  bookingRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute возвращает слоты площадки за период.
// Без durationHours - часовые слоты, иначе перекрывающиеся слоты заданной длины.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: space=%d, period=%s to %s, duration=%v",
		req.SpaceID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat), req.DurationHours)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}
	startDate, endDate := domain.DateOnly(req.StartDate), domain.DateOnly(req.EndDate)

	// 2. Собираем калькулятор с бронированиями периода
	calc, err := uc.calculator(ctx, "GetAvailableSlots", req.SpaceID, &startDate, &endDate)
	if err != nil {
		return nil, err
	}

	// 3. Генерируем слоты
	var (
		slots    []domain.Slot
		duration = 1.0
	)
	if req.DurationHours != nil {
		duration = *req.DurationHours
		slots = calc.CustomDurationSlots(startDate, endDate, duration)
	} else {
		slots = calc.SlotsInRange(startDate, endDate)
	}

	// 4. Отмечаем занятые слоты
	booked := 0
	for i := range slots {
		if len(calc.ConflictingBookings(slots[i].StartDatetime(), slots[i].EndDatetime())) > 0 {
			slots[i].Available = false
			booked++
		}
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots (%d booked) for space=%d", len(slots), booked, req.SpaceID)

	return &Response{
		SpaceID:       req.SpaceID,
		StartDate:     startDate,
		EndDate:       endDate,
		DurationHours: duration,
		Slots:         slots,
	}, nil
}

// CheckSlot проверяет произвольный интервал: попадание в шаблон и пересечения
// с бронированиями считаются отдельно.
func (uc *UseCase) CheckSlot(ctx context.Context, req *CheckRequest) (*CheckResponse, error) {
	uc.logger.Info("CheckSlot: space=%d, start=%s, duration=%.2f",
		req.SpaceID, req.Start.Format("2006-01-02 15:04"), req.DurationHours)

	if req.SpaceID <= 0 {
		return nil, fmt.Errorf("%w: spaceID must be positive", ErrInvalidInput)
	}
	if req.Start.IsZero() {
		return nil, fmt.Errorf("%w: datetime is required", ErrInvalidInput)
	}
	if !domain.ValidSlotDuration(req.DurationHours) {
		return nil, fmt.Errorf("%w: durationHours must be in (0, %.0f]", ErrInvalidInput, domain.MaxPatternDurationHours)
	}

	date := domain.DateOnly(req.Start)
	calc, err := uc.calculator(ctx, "CheckSlot", req.SpaceID, &date, &date)
	if err != nil {
		return nil, err
	}

	end := req.Start.Add(time.Duration(req.DurationHours * float64(time.Hour)))
	within := calc.IsSlotAvailable(req.Start, req.DurationHours)
	conflicts := calc.ConflictingBookings(req.Start, end)

	uc.logger.Info("CheckSlot: space=%d, withinPattern=%t, conflicts=%d", req.SpaceID, within, len(conflicts))

	return &CheckResponse{
		SpaceID:       req.SpaceID,
		Start:         req.Start,
		End:           end,
		DurationHours: req.DurationHours,
		WithinPattern: within,
		Conflicts:     conflicts,
		Available:     within && len(conflicts) == 0,
		PricePerDog:   calc.SlotPrice(req.DurationHours, 1),
	}, nil
}

// Summary сводка доступности площадки по активным шаблонам
func (uc *UseCase) Summary(ctx context.Context, spaceID int64) (*domain.AvailabilitySummary, error) {
	uc.logger.Info("AvailabilitySummary: space=%d", spaceID)

	calc, err := uc.calculator(ctx, "AvailabilitySummary", spaceID, nil, nil)
	if err != nil {
		return nil, err
	}

	summary := calc.Summary()
	return &summary, nil
}

// calculator загружает площадку, активные шаблоны и (если задан период) активные бронирования
func (uc *UseCase) calculator(ctx context.Context, op string, spaceID int64, from, to *time.Time) (*availability.Calculator, error) {
	space, err := uc.spaceRepo.GetByID(ctx, spaceID)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			uc.logger.Warn("%s: space=%d not found", op, spaceID)
			return nil, ErrSpaceNotFound
		}
		uc.logger.Error("%s: failed to get space=%d: %v", op, spaceID, err)
		return nil, fmt.Errorf("%w: failed to get space: %v", ErrInternal, err)
	}

	patterns, err := uc.patternRepo.GetBySpace(ctx, spaceID, domain.PatternsFilter{ActiveOnly: true})
	if err != nil {
		uc.logger.Error("%s: failed to get patterns of space=%d: %v", op, spaceID, err)
		return nil, fmt.Errorf("%w: failed to get patterns: %v", ErrInternal, err)
	}

	var bookings []*domain.Booking
	if from != nil && to != nil {
		bookings, err = uc.bookingRepo.GetBySpaceWithFilter(ctx, spaceID, domain.BookingsFilter{
			SpaceID:   &spaceID,
			StartDate: from,
			EndDate:   to,
		})
		if err != nil {
			uc.logger.Error("%s: failed to get bookings of space=%d: %v", op, spaceID, err)
			return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}
	}

	return availability.NewCalculator(space, patterns, bookings, uc.timeProvider.Now()), nil
}

// validateRequest валидирует период и длительность
func validateRequest(req *Request) error {
	if req.SpaceID <= 0 {
		return fmt.Errorf("%w: spaceID must be positive", ErrInvalidInput)
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	start, end := domain.DateOnly(req.StartDate), domain.DateOnly(req.EndDate)
	if end.Before(start) {
		return fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}
	if days := int(end.Sub(start).Hours()/24) + 1; days > domain.MaxSlotRangeDays {
		return fmt.Errorf("%w: period must not exceed %d days", ErrInvalidInput, domain.MaxSlotRangeDays)
	}

	if req.DurationHours != nil && !domain.ValidSlotDuration(*req.DurationHours) {
		return fmt.Errorf("%w: durationHours must be in (0, %.0f]", ErrInvalidInput, domain.MaxPatternDurationHours)
	}

	return nil
}
