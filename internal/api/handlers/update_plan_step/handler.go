package update_plan_step

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TRV-PlanService/internal/api/handlers"
	"github.com/m04kA/TRV-PlanService/internal/service/plans"
)

const (
	msgInvalidPlanID      = "некорректный ID плана"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPlanData    = "некорректные данные плана"
	msgNotFound           = "план не найден"
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

// Handle PATCH /api/v1/plans/{planId}/steps
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем planId из URL
	vars := mux.Vars(r)
	planIDStr := vars["planId"]

	planID, err := strconv.ParseInt(planIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /plans/{id}/steps - Invalid plan ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPlanID)
		return
	}

	// Декодируем body
	var req UpdateStepRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /plans/{id}/steps - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Применяем изменения шага мастера
	plan, err := h.service.UpdateStep(r.Context(), planID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, plans.ErrPlanNotFound):
			h.logger.Warn("PATCH /plans/{id}/steps - Plan not found: plan_id=%d", planID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, plans.ErrInvalidInput):
			h.logger.Warn("PATCH /plans/{id}/steps - Invalid plan data: plan_id=%d, error=%v", planID, err)
			handlers.RespondBadRequest(w, msgInvalidPlanData)

		default:
			h.logger.Error("PATCH /plans/{id}/steps - Failed to update plan: plan_id=%d, error=%v", planID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /plans/{id}/steps - Plan updated successfully: plan_id=%d", planID)
	handlers.RespondJSON(w, http.StatusOK, plan)
}
