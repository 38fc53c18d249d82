package availability

import (
	"math"
	"sort"
	"time"

	"github.com/m04kA/PetSpace-BookingService/internal/domain"
	"github.com/m04kA/PetSpace-BookingService/pkg/types"
)

// Calculator считает слоты и доступность одной площадки.
// Работает только с переданными данными и не обращается к хранилищу.
type Calculator struct {
	space    *domain.Space
	patterns []*domain.AvailabilityPattern
	bookings []*domain.Booking
	now      time.Time
}

// NewCalculator создает калькулятор для площадки.
// patterns и bookings могут содержать неактивные записи, они отфильтровываются.
func NewCalculator(space *domain.Space, patterns []*domain.AvailabilityPattern, bookings []*domain.Booking, now time.Time) *Calculator {
	return &Calculator{
		space:    space,
		patterns: domain.FilterPatterns(patterns, domain.ForSpace(space.ID)),
		bookings: bookings,
		now:      now,
	}
}

// IsBookable площадка активна и имеет хотя бы один активный шаблон
func (c *Calculator) IsBookable() bool {
	return c.space.IsBookable(c.patterns)
}

// SlotsInRange часовые слоты для всех дат диапазона включительно.
// Прошедшие даты и слоты пропускаются, результат отсортирован по началу.
func (c *Calculator) SlotsInRange(startDate, endDate time.Time) []domain.Slot {
	return c.walk(startDate, endDate, domain.SlotStepMinutes, false)
}

// CustomDurationSlots слоты длительностью durationHours, начала которых идут с шагом в час.
// Соседние слоты перекрываются: это список всех допустимых времён начала.
func (c *Calculator) CustomDurationSlots(startDate, endDate time.Time, durationHours float64) []domain.Slot {
	if !domain.ValidSlotDuration(durationHours) || durationHours < domain.MinBookingDurationHours {
		return []domain.Slot{}
	}
	return c.walk(startDate, endDate, durationMinutes(durationHours), true)
}

func (c *Calculator) walk(startDate, endDate time.Time, lengthMinutes int, withTotal bool) []domain.Slot {
	slots := make([]domain.Slot, 0)
	if !c.IsBookable() {
		return slots
	}

	today := domain.DateOnly(c.now)
	last := domain.DateOnly(endDate)
	for date := domain.DateOnly(startDate); !date.After(last); date = date.AddDate(0, 0, 1) {
		if date.Before(today) {
			continue
		}

		day := make([]domain.Slot, 0)
		for _, p := range domain.FilterPatterns(c.patterns, domain.ActivePatterns(), domain.PatternsForDay(int(date.Weekday()))) {
			day = append(day, c.patternSlots(date, p, lengthMinutes, withTotal)...)
		}
		sort.SliceStable(day, func(i, j int) bool {
			return day[i].StartTime.IsBefore(day[j].StartTime)
		})
		slots = append(slots, day...)
	}

	return slots
}

func (c *Calculator) patternSlots(date time.Time, p *domain.AvailabilityPattern, lengthMinutes int, withTotal bool) []domain.Slot {
	slots := make([]domain.Slot, 0)
	hours := domain.Round2(float64(lengthMinutes) / 60)
	patternEnd := p.EndTime.Minutes()

	for start := p.StartTime.Minutes(); start+lengthMinutes <= patternEnd; start += domain.SlotStepMinutes {
		if date.Add(time.Duration(start) * time.Minute).Before(c.now) {
			continue
		}

		startTime, err := types.FromMinutes(start)
		if err != nil {
			break
		}
		endTime, err := types.FromMinutes(start + lengthMinutes)
		if err != nil {
			break
		}

		slot := domain.Slot{
			SpaceID:       c.space.ID,
			Date:          date,
			StartTime:     startTime,
			EndTime:       endTime,
			DurationHours: hours,
			PricePerDog:   c.space.PricePerDog,
			Available:     true,
		}
		if withTotal {
			total := c.SlotPrice(hours, 1)
			slot.TotalPrice = &total
		}
		slots = append(slots, slot)
	}

	return slots
}

// IsSlotAvailable проверяет только попадание интервала в активный шаблон.
// Существующие бронирования не учитываются, для них есть ConflictingBookings.
func (c *Calculator) IsSlotAvailable(start time.Time, durationHours float64) bool {
	if !domain.ValidSlotDuration(durationHours) || !c.IsBookable() || start.Before(c.now) {
		return false
	}

	end := start.Add(time.Duration(durationMinutes(durationHours)) * time.Minute)
	if !domain.IsSameDay(start, end) {
		return false
	}

	startTime, endTime := types.NewTimeString(start), types.NewTimeString(end)
	for _, p := range domain.FilterPatterns(c.patterns, domain.ActivePatterns(), domain.PatternsForDay(int(start.Weekday()))) {
		if p.Covers(startTime, endTime) {
			return true
		}
	}
	return false
}

// ConflictingBookings активные бронирования на дату start, пересекающиеся с [start, end)
func (c *Calculator) ConflictingBookings(start, end time.Time) []*domain.Booking {
	if !end.After(start) {
		return []*domain.Booking{}
	}

	out := make([]*domain.Booking, 0)
	for _, b := range domain.FilterBookings(c.bookings, domain.ActiveBookings(), domain.BookingsOnDate(start)) {
		if b.SpaceID == c.space.ID && domain.OverlapsAt(b.StartDatetime(), b.EndDatetime(), start, end) {
			out = append(out, b)
		}
	}
	return out
}

// Summary сводка по активным шаблонам
func (c *Calculator) Summary() domain.AvailabilitySummary {
	active := domain.FilterPatterns(c.patterns, domain.ActivePatterns())
	domain.SortPatterns(active)

	days := make(map[int]struct{})
	total := 0.0
	for _, p := range active {
		days[p.DayOfWeek] = struct{}{}
		total += p.DurationHours()
	}

	return domain.AvailabilitySummary{
		Available:         c.IsBookable(),
		AvailableDays:     len(days),
		TotalHoursPerWeek: domain.Round2(total),
		HourlyRate:        c.space.PricePerDog,
		MaxPets:           c.space.MaxDogsPerBooking,
		Patterns:          active,
	}
}

// SlotPrice стоимость слота для petCount питомцев
func (c *Calculator) SlotPrice(durationHours float64, petCount int) float64 {
	return c.space.CalculateBookingPrice(durationHours, petCount)
}

// CanAccommodatePets вмещает ли площадка petCount питомцев
func (c *Calculator) CanAccommodatePets(petCount int) bool {
	return c.space.CanAccommodatePets(petCount)
}

func durationMinutes(hours float64) int {
	return int(math.Round(hours * 60))
}
