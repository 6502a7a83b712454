package select_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TRV-PlanService/internal/api/handlers"
	selectSlot "github.com/m04kA/TRV-PlanService/internal/usecase/select_slot"
)

const (
	msgInvalidPlanID        = "некорректный ID плана"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidSlotData      = "некорректные данные слота"
	msgPlanNotFound         = "план не найден"
	msgSpecialistNotFound   = "специалист не найден"
	msgAlreadyBooked        = "встреча уже забронирована"
	msgSlotNotAvailable     = "выбранный слот недоступен"
	msgSpecialistNotCfgured = "специалист не настроен для бронирования"
)

type Handler struct {
	useCase SelectSlotUseCase
	logger  Logger
}

func NewHandler(useCase SelectSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/plans/{planId}/slot
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем planId из URL
	vars := mux.Vars(r)
	planIDStr := vars["planId"]

	planID, err := strconv.ParseInt(planIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /plans/{id}/slot - Invalid plan ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPlanID)
		return
	}

	// Декодируем body
	var req SelectSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /plans/{id}/slot - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(planID))
	if err != nil {
		switch {
		case errors.Is(err, selectSlot.ErrPlanNotFound):
			h.logger.Warn("POST /plans/{id}/slot - Plan not found: plan_id=%d", planID)
			handlers.RespondNotFound(w, msgPlanNotFound)

		case errors.Is(err, selectSlot.ErrSpecialistNotFound):
			h.logger.Warn("POST /plans/{id}/slot - Specialist not found: plan_id=%d, specialist_id=%d",
				planID, req.SpecialistID)
			handlers.RespondNotFound(w, msgSpecialistNotFound)

		case errors.Is(err, selectSlot.ErrAppointmentAlreadyActive):
			h.logger.Warn("POST /plans/{id}/slot - Appointment already booked: plan_id=%d", planID)
			handlers.RespondConflict(w, msgAlreadyBooked)

		case errors.Is(err, selectSlot.ErrSlotNotAvailable):
			h.logger.Warn("POST /plans/{id}/slot - Slot not available: plan_id=%d, specialist_id=%d, start=%s",
				planID, req.SpecialistID, req.Start.Format("2006-01-02 15:04"))
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, selectSlot.ErrSpecialistMisconfigured):
			h.logger.Warn("POST /plans/{id}/slot - Specialist misconfigured: plan_id=%d, specialist_id=%d",
				planID, req.SpecialistID)
			handlers.RespondUnprocessableEntity(w, msgSpecialistNotCfgured)

		case errors.Is(err, selectSlot.ErrInvalidInput):
			h.logger.Warn("POST /plans/{id}/slot - Invalid slot data: plan_id=%d, error=%v", planID, err)
			handlers.RespondBadRequest(w, msgInvalidSlotData)

		default:
			h.logger.Error("POST /plans/{id}/slot - Failed to select slot: plan_id=%d, error=%v", planID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /plans/{id}/slot - Slot selected successfully: plan_id=%d, start=%s",
		planID, result.AppointmentStart.Format("2006-01-02 15:04"))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
