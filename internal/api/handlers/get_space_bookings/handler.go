package get_space_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/PetSpace-BookingService/internal/api/handlers"
	"github.com/m04kA/PetSpace-BookingService/internal/api/middleware"
	"github.com/m04kA/PetSpace-BookingService/internal/domain"
	"github.com/m04kA/PetSpace-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidSpaceID = "некорректный ID площадки"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFlag    = "некорректное значение includeInactive"
	msgInvalidFilter  = "некорректный фильтр бронирований"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgSpaceNotFound  = "площадка не найдена"
)

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

// Handle GET /api/v1/spaces/{spaceId}/bookings?startDate=2024-01-01&endDate=2024-01-31&status=approved&includeInactive=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spaceID, err := handlers.PathInt64(r, "spaceId")
	if err != nil {
		h.logger.Warn("GET /spaces/{id}/bookings - %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /spaces/{id}/bookings - Missing user ID, space_id=%d", spaceID)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetSpaceBookingsRequest{
		UserID:  userID,
		SpaceID: spaceID,
	}

	query := r.URL.Query()

	if raw := query.Get("startDate"); raw != "" {
		date, err := handlers.ParseDate(raw)
		if err != nil {
			h.logger.Warn("GET /spaces/{id}/bookings - Invalid startDate=%s", raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &date
	}

	if raw := query.Get("endDate"); raw != "" {
		date, err := handlers.ParseDate(raw)
		if err != nil {
			h.logger.Warn("GET /spaces/{id}/bookings - Invalid endDate=%s", raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &date
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if raw := query.Get("includeInactive"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /spaces/{id}/bookings - Invalid includeInactive=%s", raw)
			handlers.RespondBadRequest(w, msgInvalidFlag)
			return
		}
		req.IncludeInactive = include
	}

	result, err := h.service.GetSpaceBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("GET /spaces/{id}/bookings - Space not found: space_id=%d, user_id=%d", spaceID, userID)
			handlers.RespondNotFound(w, msgSpaceNotFound)
		case errors.Is(err, domain.ErrValidationFailed):
			h.logger.Warn("GET /spaces/{id}/bookings - Invalid filter: space_id=%d, error=%v", spaceID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
		default:
			h.logger.Error("GET /spaces/{id}/bookings - Failed to get bookings: space_id=%d, error=%v", spaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /spaces/{id}/bookings - Retrieved %d bookings for space_id=%d", len(result.Bookings), spaceID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
