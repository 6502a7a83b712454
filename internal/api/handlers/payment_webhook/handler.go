package payment_webhook

import (
	"net/http"

	"github.com/m04kA/TRV-PlanService/internal/api/handlers"
)

type Handler struct {
	useCase ConfirmPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/webhook
// Всегда отвечает 200: провайдер доставляет уведомления at-least-once,
// и любой другой статус провоцирует шторм ретраев
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req WebhookRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/webhook - Invalid request body: %v", err)
		handlers.RespondJSON(w, http.StatusOK, nil)
		return
	}

	// Чужие типы событий подтверждаем без обработки
	if req.Type != eventTypeCheckoutCompleted {
		h.logger.Info("POST /payments/webhook - Ignoring event type=%s, session=%s", req.Type, req.Data.SessionID)
		handlers.RespondJSON(w, http.StatusOK, nil)
		return
	}

	planID, ok := req.PlanID()
	if !ok {
		h.logger.Warn("POST /payments/webhook - Missing or invalid planId in metadata: session=%s", req.Data.SessionID)
		handlers.RespondJSON(w, http.StatusOK, nil)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(planID))
	if err != nil {
		// Ошибки обработки не транслируются провайдеру
		h.logger.Warn("POST /payments/webhook - Notification absorbed: plan_id=%d, session=%s, error=%v",
			planID, req.Data.SessionID, err)
		handlers.RespondJSON(w, http.StatusOK, nil)
		return
	}

	h.logger.Info("POST /payments/webhook - Payment confirmed: plan_id=%d, activated=%t, event_created=%t",
		planID, result.Activated, result.EventCreated)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
