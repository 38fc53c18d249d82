package complete_expired

import (
	"net/http"
	"strconv"

	"github.com/m04kA/PetSpace-BookingService/internal/api/handlers"
	"github.com/m04kA/PetSpace-BookingService/internal/service/bookings/models"
)

const msgInvalidSpaceID = "некорректный ID площадки"

// Handler ручной запуск завершения прошедших бронирований
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

// Handle POST /api/v1/admin/bookings/complete-expired?spaceId=1
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var spaceID *int64
	if raw := r.URL.Query().Get("spaceId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			h.logger.Warn("POST /admin/bookings/complete-expired - Invalid spaceId=%s", raw)
			handlers.RespondBadRequest(w, msgInvalidSpaceID)
			return
		}
		spaceID = &id
	}

	completed, err := h.service.CompleteExpiredBookings(r.Context(), spaceID)
	if err != nil {
		h.logger.Error("POST /admin/bookings/complete-expired - Sweep failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/bookings/complete-expired - Completed %d bookings", completed)
	handlers.RespondJSON(w, http.StatusOK, models.CompleteExpiredResponse{Completed: completed})
}
