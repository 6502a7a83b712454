package cancel_plan

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TRV-PlanService/internal/api/handlers"
	"github.com/m04kA/TRV-PlanService/internal/api/middleware"
	"github.com/m04kA/TRV-PlanService/internal/service/plans"
)

const (
	msgInvalidPlanID      = "некорректный ID плана"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidComment     = "некорректный комментарий"
	msgUnauthorized       = "требуется аутентификация"
	msgNotFound           = "план не найден"
	msgNotActive          = "встреча не активна и не может быть отменена"
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

// Handle PATCH /api/v1/plans/{planId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	specialistID, ok := middleware.SpecialistIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("PATCH /plans/{id}/cancel - Missing specialist ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Извлекаем planId из URL
	vars := mux.Vars(r)
	planIDStr := vars["planId"]

	planID, err := strconv.ParseInt(planIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /plans/{id}/cancel - Invalid plan ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPlanID)
		return
	}

	// Декодируем body (комментарий опционален, пустое тело допустимо)
	var req CancelPlanRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /plans/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Отменяем встречу
	err = h.service.Cancel(r.Context(), planID, req.ToServiceRequest(specialistID))
	if err != nil {
		switch {
		case errors.Is(err, plans.ErrPlanNotFound):
			h.logger.Warn("PATCH /plans/{id}/cancel - Plan not found: plan_id=%d, specialist_id=%d",
				planID, specialistID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, plans.ErrNotActive):
			h.logger.Warn("PATCH /plans/{id}/cancel - Appointment not active: plan_id=%d", planID)
			handlers.RespondConflict(w, msgNotActive)

		case errors.Is(err, plans.ErrInvalidInput):
			h.logger.Warn("PATCH /plans/{id}/cancel - Invalid comment: plan_id=%d, error=%v", planID, err)
			handlers.RespondBadRequest(w, msgInvalidComment)

		default:
			h.logger.Error("PATCH /plans/{id}/cancel - Failed to cancel plan: plan_id=%d, error=%v", planID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /plans/{id}/cancel - Plan cancelled successfully: plan_id=%d, specialist_id=%d",
		planID, specialistID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
