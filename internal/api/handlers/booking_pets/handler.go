package booking_pets

import (
	"errors"
	"net/http"

	"github.com/m04kA/PetSpace-BookingService/internal/api/handlers"
	"github.com/m04kA/PetSpace-BookingService/internal/api/middleware"
	"github.com/m04kA/PetSpace-BookingService/internal/domain"
	"github.com/m04kA/PetSpace-BookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidPetID       = "некорректный ID питомца"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBookingNotFound    = "бронирование не найдено"
	msgPetNotFound        = "питомец не найден"
	msgPetNotInBooking    = "питомец не привязан к бронированию"
	msgForbidden          = "питомцами бронирования управляет только арендатор"
	msgBookingLocked      = "нельзя менять питомцев завершённого или отменённого бронирования"
	msgDuplicatePet       = "питомец уже добавлен в бронирование"
	msgOwnershipMismatch  = "питомец должен принадлежать арендатору"
	msgValidationFailed   = "питомца нельзя добавить в бронирование"
)

// AddPetRequest тело запроса добавления питомца
type AddPetRequest struct {
	PetID int64 `json:"petId"`
}

// Handler управление питомцами бронирования (только арендатор)
type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Add POST /api/v1/bookings/{bookingId}/pets
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	const route = "POST /bookings/{id}/pets"

	bookingID, userID, ok := h.identify(w, r, route)
	if !ok {
		return
	}

	var req AddPetRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.PetID <= 0 {
		h.logger.Warn("%s - Invalid pet_id=%d", route, req.PetID)
		handlers.RespondBadRequest(w, msgInvalidPetID)
		return
	}

	result, err := h.service.AddPet(r.Context(), bookingID, userID, req.PetID)
	if err != nil {
		h.respondError(w, route, bookingID, err)
		return
	}

	h.logger.Info("%s - Pet added: booking_id=%d, pet_id=%d", route, bookingID, req.PetID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Remove DELETE /api/v1/bookings/{bookingId}/pets/{petId}
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /bookings/{id}/pets/{id}"

	bookingID, userID, ok := h.identify(w, r, route)
	if !ok {
		return
	}

	petID, err := handlers.PathInt64(r, "petId")
	if err != nil {
		h.logger.Warn("%s - %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidPetID)
		return
	}

	result, err := h.service.RemovePet(r.Context(), bookingID, userID, petID)
	if err != nil {
		h.respondError(w, route, bookingID, err)
		return
	}

	h.logger.Info("%s - Pet removed: booking_id=%d, pet_id=%d", route, bookingID, petID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) identify(w http.ResponseWriter, r *http.Request, route string) (int64, int64, bool) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("%s - %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return 0, 0, false
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID, booking_id=%d", route, bookingID)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return 0, 0, false
	}

	return bookingID, userID, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, bookingID int64, err error) {
	switch {
	case errors.Is(err, bookings.ErrPetNotInBooking):
		h.logger.Warn("%s - Pet not in booking: booking_id=%d", route, bookingID)
		handlers.RespondNotFound(w, msgPetNotInBooking)

	case errors.Is(err, bookings.ErrPetNotFound):
		h.logger.Warn("%s - Pet not found: booking_id=%d", route, bookingID)
		handlers.RespondNotFound(w, msgPetNotFound)

	case errors.Is(err, domain.ErrNotFound):
		h.logger.Warn("%s - Booking not found: booking_id=%d", route, bookingID)
		handlers.RespondNotFound(w, msgBookingNotFound)

	case errors.Is(err, domain.ErrForbidden):
		h.logger.Warn("%s - Forbidden: booking_id=%d", route, bookingID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, domain.ErrBookingLocked):
		h.logger.Warn("%s - Booking locked: booking_id=%d", route, bookingID)
		handlers.RespondConflict(w, msgBookingLocked)

	case errors.Is(err, domain.ErrDuplicatePet):
		h.logger.Warn("%s - Duplicate pet: booking_id=%d", route, bookingID)
		handlers.RespondConflict(w, msgDuplicatePet)

	case errors.Is(err, domain.ErrOwnershipMismatch):
		h.logger.Warn("%s - Pet ownership mismatch: booking_id=%d", route, bookingID)
		handlers.RespondError(w, http.StatusUnprocessableEntity, msgOwnershipMismatch)

	case errors.Is(err, domain.ErrValidationFailed):
		h.logger.Warn("%s - Validation failed: booking_id=%d, error=%v", route, bookingID, err)
		handlers.RespondValidation(w, msgValidationFailed, err)

	default:
		h.logger.Error("%s - Failed: booking_id=%d, error=%v", route, bookingID, err)
		handlers.RespondInternalError(w)
	}
}
