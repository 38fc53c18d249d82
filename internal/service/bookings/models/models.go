package models

import (
	"time"

	"github.com/m04kA/PetSpace-BookingService/internal/domain"
)

// Request модели

// TransitionRequest запрос на смену статуса бронирования
type TransitionRequest struct {
	UserID  int64   `json:"userId"`
	Message *string `json:"message,omitempty"` // ответ владельца (deny) или причина (cancel)
}

// GetRenterBookingsRequest запрос на получение бронирований арендатора
type GetRenterBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetSpaceBookingsRequest запрос на получение бронирований площадки
type GetSpaceBookingsRequest struct {
	UserID          int64      `json:"userId"`
	SpaceID         int64      `json:"spaceId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отклонённые и отменённые
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetSpaceBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		SpaceID:         &r.SpaceID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                 int64    `json:"id"`
	SpaceID            int64    `json:"spaceId"`
	RenterID           int64    `json:"renterId"`
	BookingDate        string   `json:"bookingDate"` // "2025-10-15"
	StartTime          string   `json:"startTime"`   // "10:00"
	EndTime            string   `json:"endTime"`
	DurationHours      float64  `json:"durationHours"`
	Status             string   `json:"status"`
	TotalPrice         *float64 `json:"totalPrice,omitempty"`
	PricePerDogPerHour float64  `json:"pricePerDogPerHour"`
	PetIDs             []int64  `json:"petIds"`

	RenterMessage       *string `json:"renterMessage,omitempty"`
	HostResponseMessage *string `json:"hostResponseMessage,omitempty"`

	CancelledBy          *int64  `json:"cancelledBy,omitempty"`
	CancellationReason   *string `json:"cancellationReason,omitempty"`
	CancelledAt          *string `json:"cancelledAt,omitempty"` // ISO 8601 format
	CancellationDeadline string  `json:"cancellationDeadline"`
	RefundEligible       bool    `json:"refundEligible"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// CompleteExpiredResponse результат фонового завершения
type CompleteExpiredResponse struct {
	Completed int `json:"completed"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking, petIDs []int64) *BookingResponse {
	if b == nil {
		return nil
	}
	if petIDs == nil {
		petIDs = []int64{}
	}

	resp := &BookingResponse{
		ID:                   b.ID,
		SpaceID:              b.SpaceID,
		RenterID:             b.RenterID,
		BookingDate:          b.BookingDate.Format(domain.DateFormat),
		StartTime:            b.StartTime.String(),
		EndTime:              b.EndTime.String(),
		DurationHours:        b.DurationHours,
		Status:               string(b.Status),
		TotalPrice:           b.TotalPrice,
		PricePerDogPerHour:   b.PricePerDogPerHour,
		PetIDs:               petIDs,
		RenterMessage:        b.RenterMessage,
		HostResponseMessage:  b.HostResponseMessage,
		CancelledBy:          b.CancelledBy,
		CancellationReason:   b.CancellationReason,
		CancellationDeadline: b.CancellationDeadline().Format(time.RFC3339),
		RefundEligible:       b.RefundEligible,
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO.
// Питомцы в списках не подгружаются.
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, nil); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
