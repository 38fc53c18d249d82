package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/PetSpace-BookingService/internal/api/handlers"
	"github.com/m04kA/PetSpace-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/PetSpace-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidSpaceID  = "некорректный ID площадки"
	msgInvalidDates    = "некорректный формат дат, ожидается startDate и endDate в формате YYYY-MM-DD"
	msgInvalidDuration = "некорректная длительность, ожидается число часов"
	msgInvalidDatetime = "некорректный формат datetime, ожидается YYYY-MM-DDTHH:MM"
	msgInvalidParams   = "некорректные параметры запроса"
	msgSpaceNotFound   = "площадка не найдена"
)

type Handler struct {
	useCase SlotsUseCase
	logger  Logger
}

func NewHandler(useCase SlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Slots GET /api/v1/spaces/{spaceId}/slots?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD[&durationHours=2]
func (h *Handler) Slots(w http.ResponseWriter, r *http.Request) {
	spaceID, err := handlers.PathInt64(r, "spaceId")
	if err != nil {
		h.logger.Warn("GET /spaces/{id}/slots - %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	q := r.URL.Query()
	startDate, endDate, err := parseDates(q.Get("startDate"), q.Get("endDate"), handlers.ParseDate)
	if err != nil {
		h.logger.Warn("GET /spaces/{id}/slots - Invalid dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	req := &getAvailableSlots.Request{SpaceID: spaceID, StartDate: startDate, EndDate: endDate}
	if raw := q.Get("durationHours"); raw != "" {
		duration, err := parseDuration(raw)
		if err != nil {
			h.logger.Warn("GET /spaces/{id}/slots - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
		req.DurationHours = &duration
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		h.respondError(w, "GET /spaces/{id}/slots", spaceID, err)
		return
	}

	h.logger.Info("GET /spaces/{id}/slots - Returned %d slots for space_id=%d", len(result.Slots), spaceID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// Check GET /api/v1/spaces/{spaceId}/slots/check?datetime=YYYY-MM-DDTHH:MM&durationHours=2
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	spaceID, err := handlers.PathInt64(r, "spaceId")
	if err != nil {
		h.logger.Warn("GET /spaces/{id}/slots/check - %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	q := r.URL.Query()
	start, err := handlers.ParseDateTime(q.Get("datetime"))
	if err != nil {
		h.logger.Warn("GET /spaces/{id}/slots/check - Invalid datetime: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDatetime)
		return
	}

	duration := 1.0
	if raw := q.Get("durationHours"); raw != "" {
		if duration, err = parseDuration(raw); err != nil {
			h.logger.Warn("GET /spaces/{id}/slots/check - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	result, err := h.useCase.CheckSlot(r.Context(), &getAvailableSlots.CheckRequest{
		SpaceID:       spaceID,
		Start:         start,
		DurationHours: duration,
	})
	if err != nil {
		h.respondError(w, "GET /spaces/{id}/slots/check", spaceID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromCheckResponse(result))
}

// Summary GET /api/v1/spaces/{spaceId}/availability-summary
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	spaceID, err := handlers.PathInt64(r, "spaceId")
	if err != nil {
		h.logger.Warn("GET /spaces/{id}/availability-summary - %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	result, err := h.useCase.Summary(r.Context(), spaceID)
	if err != nil {
		h.respondError(w, "GET /spaces/{id}/availability-summary", spaceID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromSummary(result))
}

func (h *Handler) respondError(w http.ResponseWriter, route string, spaceID int64, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.logger.Warn("%s - Space not found: space_id=%d", route, spaceID)
		handlers.RespondNotFound(w, msgSpaceNotFound)

	case errors.Is(err, domain.ErrValidationFailed):
		h.logger.Warn("%s - Invalid parameters: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidParams)

	default:
		h.logger.Error("%s - Failed: space_id=%d, error=%v", route, spaceID, err)
		handlers.RespondInternalError(w)
	}
}
