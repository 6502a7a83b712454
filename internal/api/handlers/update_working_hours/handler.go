package update_working_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TRV-PlanService/internal/api/handlers"
	"github.com/m04kA/TRV-PlanService/internal/api/middleware"
	"github.com/m04kA/TRV-PlanService/internal/service/specialists"
)

const (
	msgInvalidSpecialistID = "некорректный ID специалиста"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidWorkingHours = "некорректный формат рабочих часов, ожидается HH:MM"
	msgUnauthorized        = "требуется аутентификация"
	msgForbidden           = "доступ запрещен"
	msgNotFound            = "специалист не найден"
)

type Handler struct {
	service SpecialistService
	logger  Logger
}

func NewHandler(service SpecialistService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/specialists/{specialistId}/working-hours
// Специалист меняет только собственные рабочие часы
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	authID, ok := middleware.SpecialistIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("PUT /specialists/{id}/working-hours - Missing specialist ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	specialistIDStr := vars["specialistId"]

	specialistID, err := strconv.ParseInt(specialistIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /specialists/{id}/working-hours - Invalid specialist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecialistID)
		return
	}

	if specialistID != authID {
		h.logger.Warn("PUT /specialists/{id}/working-hours - Access denied: path_id=%d, auth_id=%d",
			specialistID, authID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req UpdateWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /specialists/{id}/working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	specialist, err := h.service.UpdateWorkingHours(r.Context(), specialistID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, specialists.ErrSpecialistNotFound):
			h.logger.Warn("PUT /specialists/{id}/working-hours - Specialist not found: specialist_id=%d",
				specialistID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, specialists.ErrInvalidInput):
			h.logger.Warn("PUT /specialists/{id}/working-hours - Invalid working hours: specialist_id=%d, error=%v",
				specialistID, err)
			handlers.RespondBadRequest(w, msgInvalidWorkingHours)

		default:
			h.logger.Error("PUT /specialists/{id}/working-hours - Failed to update working hours: specialist_id=%d, error=%v",
				specialistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /specialists/{id}/working-hours - Working hours updated successfully: specialist_id=%d, windows=%d",
		specialistID, len(specialist.WorkingHours))
	handlers.RespondJSON(w, http.StatusOK, specialist)
}
