package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/PetSpace-BookingService/internal/api/handlers"
	"github.com/m04kA/PetSpace-BookingService/internal/api/middleware"
	"github.com/m04kA/PetSpace-BookingService/internal/domain"
	createBooking "github.com/m04kA/PetSpace-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgValidationFailed   = "бронирование не прошло проверку"
	msgConflict           = "выбранное время уже занято, обновите список слотов"
	msgSpaceNotFound      = "площадка не найдена"
	msgPetNotFound        = "питомец не найден"
	msgOwnershipMismatch  = "питомец должен принадлежать арендатору"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid booking date %q: %v", req.BookingDate, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("POST /bookings - Conflict: user_id=%d, space_id=%d", userID, req.SpaceID)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, domain.ErrValidationFailed):
			h.logger.Warn("POST /bookings - Validation failed: user_id=%d, space_id=%d, error=%v", userID, req.SpaceID, err)
			handlers.RespondValidation(w, msgValidationFailed, err)

		case errors.Is(err, createBooking.ErrSpaceNotFound):
			h.logger.Warn("POST /bookings - Space not found: space_id=%d", req.SpaceID)
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, createBooking.ErrPetNotFound):
			h.logger.Warn("POST /bookings - Pet not found: user_id=%d, pets=%v", userID, req.PetIDs)
			handlers.RespondNotFound(w, msgPetNotFound)

		case errors.Is(err, domain.ErrOwnershipMismatch):
			h.logger.Warn("POST /bookings - Pet ownership mismatch: user_id=%d, pets=%v", userID, req.PetIDs)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgOwnershipMismatch)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, space_id=%d, error=%v",
				userID, req.SpaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, space_id=%d",
		result.ID, userID, req.SpaceID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
