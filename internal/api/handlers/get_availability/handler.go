package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TRV-PlanService/internal/api/handlers"
	getAvailability "github.com/m04kA/TRV-PlanService/internal/usecase/get_availability"
)

const (
	msgInvalidSpecialistID = "некорректный ID специалиста"
	msgMissingDuration     = "длительность консультации обязательна"
	msgInvalidDuration     = "некорректная длительность консультации"
	msgSpecialistNotFound  = "специалист не найден"
	msgNoWorkingHours      = "у специалиста не настроены рабочие часы"
	msgNoTimezone          = "у специалиста не задан часовой пояс"
	msgInvalidTimezone     = "у специалиста задан некорректный часовой пояс"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/specialists/{specialistId}/availability
// Query params: durationMinutes (required), date (optional, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем specialistId из URL
	specialistIDStr := vars["specialistId"]
	specialistID, err := strconv.ParseInt(specialistIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /specialists/{id}/availability - Invalid specialist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecialistID)
		return
	}

	// Извлекаем durationMinutes из query параметров
	durationStr := r.URL.Query().Get("durationMinutes")
	if durationStr == "" {
		h.logger.Warn("GET /specialists/{id}/availability - Missing duration: specialist_id=%d", specialistID)
		handlers.RespondBadRequest(w, msgMissingDuration)
		return
	}

	durationMinutes, err := strconv.Atoi(durationStr)
	if err != nil {
		h.logger.Warn("GET /specialists/{id}/availability - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	// Дата опциональна: некорректное значение обрабатывает use case (пустой список)
	var selectedDate *string
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		selectedDate = &dateStr
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), ToUseCaseRequest(specialistID, durationMinutes, selectedDate))
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrSpecialistNotFound):
			h.logger.Warn("GET /specialists/{id}/availability - Specialist not found: specialist_id=%d", specialistID)
			handlers.RespondNotFound(w, msgSpecialistNotFound)

		case errors.Is(err, getAvailability.ErrNoWorkingHours):
			h.logger.Warn("GET /specialists/{id}/availability - No working hours: specialist_id=%d", specialistID)
			handlers.RespondUnprocessableEntity(w, msgNoWorkingHours)

		case errors.Is(err, getAvailability.ErrNoTimezone):
			h.logger.Warn("GET /specialists/{id}/availability - No timezone: specialist_id=%d", specialistID)
			handlers.RespondUnprocessableEntity(w, msgNoTimezone)

		case errors.Is(err, getAvailability.ErrInvalidTimezone):
			h.logger.Warn("GET /specialists/{id}/availability - Invalid timezone: specialist_id=%d", specialistID)
			handlers.RespondUnprocessableEntity(w, msgInvalidTimezone)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /specialists/{id}/availability - Invalid input: specialist_id=%d, error=%v",
				specialistID, err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		default:
			h.logger.Error("GET /specialists/{id}/availability - Failed to get availability: specialist_id=%d, error=%v",
				specialistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /specialists/{id}/availability - Availability retrieved successfully: specialist_id=%d, duration=%d, slots_count=%d",
		specialistID, durationMinutes, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
