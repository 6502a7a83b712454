package create_plan

import (
	"errors"
	"net/http"

	"github.com/m04kA/TRV-PlanService/internal/api/handlers"
	"github.com/m04kA/TRV-PlanService/internal/service/plans"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPlanData    = "некорректные данные плана"
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

// Handle POST /api/v1/plans
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Декодируем body
	var req CreatePlanRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /plans - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Создаем черновик плана
	plan, err := h.service.Create(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, plans.ErrInvalidInput):
			h.logger.Warn("POST /plans - Invalid plan data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPlanData)

		default:
			h.logger.Error("POST /plans - Failed to create plan: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /plans - Plan created successfully: plan_id=%d", plan.ID)
	handlers.RespondJSON(w, http.StatusCreated, plan)
}
