package get_plan

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
	msgInvalidPlanID = "некорректный ID плана"
	msgUnauthorized  = "требуется аутентификация"
	msgNotFound      = "план не найден"
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

// Handle GET /api/v1/plans/{planId}
// Чужие планы неотличимы от несуществующих: в обоих случаях 404
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	specialistID, ok := middleware.SpecialistIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /plans/{id} - Missing specialist ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Извлекаем planId из URL
	vars := mux.Vars(r)
	planIDStr := vars["planId"]

	planID, err := strconv.ParseInt(planIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /plans/{id} - Invalid plan ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPlanID)
		return
	}

	plan, err := h.service.GetByID(r.Context(), planID, specialistID)
	if err != nil {
		switch {
		case errors.Is(err, plans.ErrPlanNotFound):
			h.logger.Warn("GET /plans/{id} - Plan not found: plan_id=%d, specialist_id=%d", planID, specialistID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /plans/{id} - Failed to get plan: plan_id=%d, error=%v", planID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /plans/{id} - Plan retrieved successfully: plan_id=%d, specialist_id=%d", planID, specialistID)
	handlers.RespondJSON(w, http.StatusOK, plan)
}
