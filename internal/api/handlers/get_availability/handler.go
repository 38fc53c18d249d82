package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/PetSpace-BookingService/internal/api/handlers"
	"github.com/m04kA/PetSpace-BookingService/internal/domain"
	"github.com/m04kA/PetSpace-BookingService/internal/service/availability/models"
)

const (
	msgInvalidSpaceID   = "некорректный ID площадки"
	msgInvalidPatternID = "некорректный ID шаблона"
	msgInvalidParams    = "некорректные параметры запроса"
	msgNotFound         = "не найдено"
)

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

// List GET /api/v1/spaces/{spaceId}/availabilities
// Query params: dayOfWeek, includeInactive (опционально)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	spaceID, err := handlers.PathInt64(r, "spaceId")
	if err != nil {
		h.logger.Warn("GET /spaces/{id}/availabilities - %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	req, err := parseListRequest(r)
	if err != nil {
		h.logger.Warn("GET /spaces/{id}/availabilities - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListBySpace(r.Context(), spaceID, req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.logger.Warn("GET /spaces/{id}/availabilities - Space not found: space_id=%d", spaceID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /spaces/{id}/availabilities - Failed: space_id=%d, error=%v", spaceID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/spaces/{spaceId}/availabilities/{availabilityId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	spaceID, err := handlers.PathInt64(r, "spaceId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}
	patternID, err := handlers.PathInt64(r, "availabilityId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPatternID)
		return
	}

	result, err := h.service.GetByID(r.Context(), spaceID, patternID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.logger.Warn("GET /spaces/{id}/availabilities/{id} - Not found: space_id=%d, pattern_id=%d", spaceID, patternID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /spaces/{id}/availabilities/{id} - Failed: pattern_id=%d, error=%v", patternID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseListRequest(r *http.Request) (models.ListPatternsRequest, error) {
	var req models.ListPatternsRequest
	q := r.URL.Query()

	if raw := q.Get("dayOfWeek"); raw != "" {
		day, err := strconv.Atoi(raw)
		if err != nil || day < domain.MinDayOfWeek || day > domain.MaxDayOfWeek {
			return req, errors.New("dayOfWeek must be 0..6")
		}
		req.DayOfWeek = &day
	}

	if raw := q.Get("includeInactive"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return req, err
		}
		req.IncludeInactive = include
	}

	return req, nil
}
