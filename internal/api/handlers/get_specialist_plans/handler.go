package get_specialist_plans

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TRV-PlanService/internal/api/handlers"
	"github.com/m04kA/TRV-PlanService/internal/api/middleware"
	"github.com/m04kA/TRV-PlanService/internal/service/plans"
)

const (
	msgInvalidSpecialistID = "некорректный ID специалиста"
	msgInvalidFilter       = "некорректные параметры фильтрации"
	msgUnauthorized        = "требуется аутентификация"
	msgForbidden           = "доступ запрещен"
)

type Handler struct {
	service PlanService
	logger  Logger
}

func NewHandler(service PlanService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/specialists/{specialistId}/plans
// Query params: appointmentStatus, startDate, endDate (optional)
// Специалист видит только собственные планы: ID из заголовка должен совпадать с путём
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	authID, ok := middleware.SpecialistIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /specialists/{id}/plans - Missing specialist ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Извлекаем specialistId из URL
	vars := mux.Vars(r)
	specialistIDStr := vars["specialistId"]

	specialistID, err := strconv.ParseInt(specialistIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /specialists/{id}/plans - Invalid specialist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecialistID)
		return
	}

	if specialistID != authID {
		h.logger.Warn("GET /specialists/{id}/plans - Access denied: path_id=%d, auth_id=%d", specialistID, authID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	// Собираем фильтры из query параметров
	query := r.URL.Query()
	req, err := ToServiceRequest(specialistID, query.Get("appointmentStatus"),
		query.Get("startDate"), query.Get("endDate"))
	if err != nil {
		h.logger.Warn("GET /specialists/{id}/plans - Invalid filter: specialist_id=%d, error=%v", specialistID, err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.GetSpecialistPlans(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, plans.ErrInvalidInput):
			h.logger.Warn("GET /specialists/{id}/plans - Invalid filter: specialist_id=%d, error=%v",
				specialistID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /specialists/{id}/plans - Failed to get plans: specialist_id=%d, error=%v",
				specialistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /specialists/{id}/plans - Plans retrieved successfully: specialist_id=%d, count=%d",
		specialistID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
