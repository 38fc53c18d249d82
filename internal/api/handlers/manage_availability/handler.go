package manage_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/PetSpace-BookingService/internal/api/handlers"
	"github.com/m04kA/PetSpace-BookingService/internal/api/middleware"
	"github.com/m04kA/PetSpace-BookingService/internal/domain"
	"github.com/m04kA/PetSpace-BookingService/internal/service/availability"
	"github.com/m04kA/PetSpace-BookingService/internal/service/availability/models"
)

const (
	msgInvalidSpaceID     = "некорректный ID площадки"
	msgInvalidPatternID   = "некорректный ID шаблона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSpaceNotFound      = "площадка не найдена"
	msgPatternNotFound    = "шаблон доступности не найден"
	msgValidationFailed   = "шаблон доступности не прошёл проверку"
)

// Handler управление шаблонами доступности (только владелец площадки)
type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/spaces/{spaceId}/availabilities
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const route = "POST /spaces/{id}/availabilities"

	spaceID, userID, ok := h.identify(w, r, route)
	if !ok {
		return
	}

	var req models.PatternRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), userID, spaceID, req)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Pattern created: pattern_id=%d, space_id=%d", route, result.ID, spaceID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/spaces/{spaceId}/availabilities/{availabilityId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /spaces/{id}/availabilities/{id}"

	spaceID, userID, ok := h.identify(w, r, route)
	if !ok {
		return
	}
	patternID, err := handlers.PathInt64(r, "availabilityId")
	if err != nil {
		h.logger.Warn("%s - %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidPatternID)
		return
	}

	var req models.PatternRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), userID, spaceID, patternID, req)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Pattern updated: pattern_id=%d", route, patternID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Deactivate PATCH /api/v1/spaces/{spaceId}/availabilities/{availabilityId}/deactivate
func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	const route = "PATCH /spaces/{id}/availabilities/{id}/deactivate"

	spaceID, userID, ok := h.identify(w, r, route)
	if !ok {
		return
	}
	patternID, err := handlers.PathInt64(r, "availabilityId")
	if err != nil {
		h.logger.Warn("%s - %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidPatternID)
		return
	}

	result, err := h.service.Deactivate(r.Context(), userID, spaceID, patternID)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Pattern deactivated: pattern_id=%d", route, patternID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) identify(w http.ResponseWriter, r *http.Request, route string) (int64, int64, bool) {
	spaceID, err := handlers.PathInt64(r, "spaceId")
	if err != nil {
		h.logger.Warn("%s - %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return 0, 0, false
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return 0, 0, false
	}

	return spaceID, userID, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, domain.ErrValidationFailed):
		h.logger.Warn("%s - Validation failed: %v", route, err)
		handlers.RespondValidation(w, msgValidationFailed, err)

	case errors.Is(err, availability.ErrSpaceNotFound):
		h.logger.Warn("%s - Space not found: %v", route, err)
		handlers.RespondNotFound(w, msgSpaceNotFound)

	case errors.Is(err, availability.ErrPatternNotFound):
		h.logger.Warn("%s - Pattern not found: %v", route, err)
		handlers.RespondNotFound(w, msgPatternNotFound)

	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
