package get_available_slots

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/m04kA/PetSpace-BookingService/internal/domain"
	availabilityModels "github.com/m04kA/PetSpace-BookingService/internal/service/availability/models"
	getAvailableSlots "github.com/m04kA/PetSpace-BookingService/internal/usecase/get_available_slots"
)

const dateTimeFormat = "2006-01-02T15:04"

// SlotsResponse HTTP response model
type SlotsResponse struct {
	SpaceID       int64   `json:"spaceId"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	DurationHours float64 `json:"durationHours"`
	Slots         []Slot  `json:"slots"`
}

// Slot модель временного слота
type Slot struct {
	Date          string   `json:"date"`
	DayName       string   `json:"dayName"`
	StartTime     string   `json:"startTime"`
	EndTime       string   `json:"endTime"`
	DurationHours float64  `json:"durationHours"`
	PricePerDog   float64  `json:"pricePerDog"`
	TotalPrice    *float64 `json:"totalPrice,omitempty"`
	Available     bool     `json:"available"`
}

// CheckResponse результат проверки слота
type CheckResponse struct {
	SpaceID       int64         `json:"spaceId"`
	Start         string        `json:"start"`
	End           string        `json:"end"`
	DurationHours float64       `json:"durationHours"`
	WithinPattern bool          `json:"withinPattern"`
	Available     bool          `json:"available"`
	PricePerDog   float64       `json:"pricePerDog"`
	Conflicts     []ConflictRef `json:"conflicts"`
}

// ConflictRef пересекающееся бронирование (без данных арендатора)
type ConflictRef struct {
	BookingID int64  `json:"bookingId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
}

// SummaryResponse сводка доступности
type SummaryResponse struct {
	Available         bool                                 `json:"available"`
	AvailableDays     int                                  `json:"availableDays"`
	TotalHoursPerWeek float64                              `json:"totalHoursPerWeek"`
	HourlyRate        float64                              `json:"hourlyRate"`
	MaxPets           int                                  `json:"maxPets"`
	Patterns          []availabilityModels.PatternResponse `json:"patterns"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i := range resp.Slots {
		slot := &resp.Slots[i]
		slots[i] = Slot{
			Date:          slot.Date.Format(domain.DateFormat),
			DayName:       slot.DayName(),
			StartTime:     slot.StartTime.String(),
			EndTime:       slot.EndTime.String(),
			DurationHours: slot.DurationHours,
			PricePerDog:   slot.PricePerDog,
			TotalPrice:    slot.TotalPrice,
			Available:     slot.Available,
		}
	}

	return &SlotsResponse{
		SpaceID:       resp.SpaceID,
		StartDate:     resp.StartDate.Format(domain.DateFormat),
		EndDate:       resp.EndDate.Format(domain.DateFormat),
		DurationHours: resp.DurationHours,
		Slots:         slots,
	}
}

// FromCheckResponse конвертирует результат проверки слота
func FromCheckResponse(resp *getAvailableSlots.CheckResponse) *CheckResponse {
	conflicts := make([]ConflictRef, len(resp.Conflicts))
	for i, b := range resp.Conflicts {
		conflicts[i] = ConflictRef{
			BookingID: b.ID,
			StartTime: b.StartTime.String(),
			EndTime:   b.EndTime.String(),
			Status:    string(b.Status),
		}
	}

	return &CheckResponse{
		SpaceID:       resp.SpaceID,
		Start:         resp.Start.Format(dateTimeFormat),
		End:           resp.End.Format(dateTimeFormat),
		DurationHours: resp.DurationHours,
		WithinPattern: resp.WithinPattern,
		Available:     resp.Available,
		PricePerDog:   resp.PricePerDog,
		Conflicts:     conflicts,
	}
}

// FromSummary конвертирует сводку
func FromSummary(s *domain.AvailabilitySummary) *SummaryResponse {
	return &SummaryResponse{
		Available:         s.Available,
		AvailableDays:     s.AvailableDays,
		TotalHoursPerWeek: s.TotalHoursPerWeek,
		HourlyRate:        s.HourlyRate,
		MaxPets:           s.MaxPets,
		Patterns:          availabilityModels.FromDomainPatternList(s.Patterns).Patterns,
	}
}

// parseDates разбирает обязательный период startDate..endDate
func parseDates(startStr, endStr string, parse func(string) (time.Time, error)) (time.Time, time.Time, error) {
	start, err := parse(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parse(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// parseDuration разбирает длительность в часах. NaN и бесконечность не принимаются
func parseDuration(raw string) (float64, error) {
	hours, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return 0, fmt.Errorf("duration %q is not a finite number", raw)
	}
	return hours, nil
}
