package models

import (
	"time"

	"github.com/m04kA/PetSpace-BookingService/internal/domain"
	"github.com/m04kA/PetSpace-BookingService/pkg/types"
)

// Request модели

// PatternRequest данные для создания или обновления шаблона
type PatternRequest struct {
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "12:00"
	IsActive  *bool  `json:"isActive,omitempty"`
}

// ListPatternsRequest фильтр списка шаблонов
type ListPatternsRequest struct {
	DayOfWeek       *int `json:"dayOfWeek,omitempty"`
	IncludeInactive bool `json:"includeInactive,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r ListPatternsRequest) ToDomainFilter() domain.PatternsFilter {
	return domain.PatternsFilter{
		ActiveOnly: !r.IncludeInactive,
		DayOfWeek:  r.DayOfWeek,
	}
}

// ApplyTo переносит значения запроса в шаблон
func (r PatternRequest) ApplyTo(p *domain.AvailabilityPattern) {
	p.DayOfWeek = r.DayOfWeek
	p.StartTime = parseTime(r.StartTime)
	p.EndTime = parseTime(r.EndTime)
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
}

// parseTime нормализует "HH:MM:SS" в "HH:MM". Некорректное значение
// сохраняется как есть, чтобы валидация домена сообщила о формате.
func parseTime(raw string) types.TimeString {
	t, err := types.NewTimeStringFromString(raw)
	if err != nil {
		return types.TimeString(raw)
	}
	return t
}

// Response модели

// PatternResponse ответ с данными шаблона
type PatternResponse struct {
	ID                 int64     `json:"id"`
	SpaceID            int64     `json:"spaceId"`
	DayOfWeek          int       `json:"dayOfWeek"`
	DayName            string    `json:"dayName"`
	StartTime          string    `json:"startTime"`
	EndTime            string    `json:"endTime"`
	DurationHours      float64   `json:"durationHours"`
	FormattedTimeRange string    `json:"formattedTimeRange"`
	IsActive           bool      `json:"isActive"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// PatternListResponse ответ со списком шаблонов
type PatternListResponse struct {
	Patterns []PatternResponse `json:"patterns"`
}

// FromDomainPattern конвертирует domain модель в DTO
func FromDomainPattern(p *domain.AvailabilityPattern) *PatternResponse {
	if p == nil {
		return nil
	}
	return &PatternResponse{
		ID:                 p.ID,
		SpaceID:            p.SpaceID,
		DayOfWeek:          p.DayOfWeek,
		DayName:            p.DayName(),
		StartTime:          p.StartTime.String(),
		EndTime:            p.EndTime.String(),
		DurationHours:      p.DurationHours(),
		FormattedTimeRange: p.FormattedTimeRange(),
		IsActive:           p.IsActive,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

// FromDomainPatternList конвертирует список domain моделей в DTO
func FromDomainPatternList(patterns []*domain.AvailabilityPattern) *PatternListResponse {
	resp := &PatternListResponse{Patterns: make([]PatternResponse, 0, len(patterns))}
	for _, p := range patterns {
		resp.Patterns = append(resp.Patterns, *FromDomainPattern(p))
	}
	return resp
}
