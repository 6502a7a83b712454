package get_specialist

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TRV-PlanService/internal/api/handlers"
	"github.com/m04kA/TRV-PlanService/internal/service/specialists"
)

const (
	msgInvalidSpecialistID = "некорректный ID специалиста"
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

// Handle GET /api/v1/specialists/{specialistId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	specialistIDStr := vars["specialistId"]

	specialistID, err := strconv.ParseInt(specialistIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /specialists/{id} - Invalid specialist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecialistID)
		return
	}

	specialist, err := h.service.GetByID(r.Context(), specialistID)
	if err != nil {
		switch {
		case errors.Is(err, specialists.ErrSpecialistNotFound):
			h.logger.Warn("GET /specialists/{id} - Specialist not found: specialist_id=%d", specialistID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /specialists/{id} - Failed to get specialist: specialist_id=%d, error=%v",
				specialistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /specialists/{id} - Specialist retrieved successfully: specialist_id=%d", specialistID)
	handlers.RespondJSON(w, http.StatusOK, specialist)
}
