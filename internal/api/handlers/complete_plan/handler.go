package complete_plan

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
	msgNotActive          = "встреча не активна и не может быть завершена"
	msgNoEndTime          = "у встречи не задано время окончания"
	msgTooEarly           = "встреча ещё не закончилась"
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

// Handle PATCH /api/v1/plans/{planId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	specialistID, ok := middleware.SpecialistIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("PATCH /plans/{id}/complete - Missing specialist ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Извлекаем planId из URL
	vars := mux.Vars(r)
	planIDStr := vars["planId"]

	planID, err := strconv.ParseInt(planIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /plans/{id}/complete - Invalid plan ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPlanID)
		return
	}

	// Декодируем body (комментарий опционален, пустое тело допустимо)
	var req CompletePlanRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /plans/{id}/complete - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Завершаем встречу
	err = h.service.Complete(r.Context(), planID, req.ToServiceRequest(specialistID))
	if err != nil {
		switch {
		case errors.Is(err, plans.ErrPlanNotFound):
			h.logger.Warn("PATCH /plans/{id}/complete - Plan not found: plan_id=%d, specialist_id=%d",
				planID, specialistID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, plans.ErrNotActive):
			h.logger.Warn("PATCH /plans/{id}/complete - Appointment not active: plan_id=%d", planID)
			handlers.RespondConflict(w, msgNotActive)

		case errors.Is(err, plans.ErrNoEndTime):
			h.logger.Warn("PATCH /plans/{id}/complete - No end time: plan_id=%d", planID)
			handlers.RespondConflict(w, msgNoEndTime)

		case errors.Is(err, plans.ErrTooEarly):
			h.logger.Warn("PATCH /plans/{id}/complete - Too early to complete: plan_id=%d", planID)
			handlers.RespondConflict(w, msgTooEarly)

		case errors.Is(err, plans.ErrInvalidInput):
			h.logger.Warn("PATCH /plans/{id}/complete - Invalid comment: plan_id=%d, error=%v", planID, err)
			handlers.RespondBadRequest(w, msgInvalidComment)

		default:
			h.logger.Error("PATCH /plans/{id}/complete - Failed to complete plan: plan_id=%d, error=%v", planID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /plans/{id}/complete - Plan completed successfully: plan_id=%d, specialist_id=%d",
		planID, specialistID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
