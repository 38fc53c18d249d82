package transition_booking

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PetSpace-BookingService/internal/api/handlers"
	"github.com/m04kA/PetSpace-BookingService/internal/api/middleware"
	"github.com/m04kA/PetSpace-BookingService/internal/domain"
	"github.com/m04kA/PetSpace-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnknownAction      = "неизвестное действие, ожидается approve, deny или cancel"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBookingNotFound    = "бронирование не найдено"
	msgForbidden          = "действие доступно только владельцу площадки"
	msgInvalidTransition  = "переход статуса недопустим"
	msgConcurrentUpdate   = "бронирование было изменено, повторите запрос"
	msgValidationFailed   = "запрос не прошёл проверку"
)

// TransitionRequest тело запроса смены статуса
type TransitionRequest struct {
	Message *string `json:"message,omitempty"`
}

type transitionFunc func(ctx context.Context, bookingID int64, req *models.TransitionRequest) (*models.BookingResponse, error)

type Handler struct {
	actions map[string]transitionFunc
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		actions: map[string]transitionFunc{
			"approve": service.Approve,
			"deny":    service.Deny,
			"cancel":  service.Cancel,
		},
		logger: logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/{action}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	action := mux.Vars(r)["action"]
	route := "PATCH /bookings/{id}/" + action

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("%s - %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	transition, ok := h.actions[action]
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/{action} - Unknown action %q, booking_id=%d", action, bookingID)
		handlers.RespondNotFound(w, msgUnknownAction)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID, booking_id=%d", route, bookingID)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Тело необязательно: сообщение можно не передавать
	var body TransitionRequest
	if err := handlers.DecodeJSON(r, &body); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := transition(r.Context(), bookingID, &models.TransitionRequest{
		UserID:  userID,
		Message: body.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("%s - Booking not found: booking_id=%d, user_id=%d", route, bookingID, userID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("%s - Forbidden: booking_id=%d, user_id=%d", route, bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("%s - Invalid transition: booking_id=%d, error=%v", route, bookingID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("%s - Concurrent update: booking_id=%d", route, bookingID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		case errors.Is(err, domain.ErrValidationFailed):
			h.logger.Warn("%s - Validation failed: booking_id=%d, error=%v", route, bookingID, err)
			handlers.RespondValidation(w, msgValidationFailed, err)

		default:
			h.logger.Error("%s - Failed: booking_id=%d, error=%v", route, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Booking %s: booking_id=%d, status=%s", route, action, bookingID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
