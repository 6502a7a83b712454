package payment_webhook

import (
	"strconv"

	confirmPayment "github.com/m04kA/TRV-PlanService/internal/usecase/confirm_payment"
)

// WebhookRequest уведомление платёжного провайдера
// В metadata провайдер возвращает planId, который был передан при создании сессии
type WebhookRequest struct {
	Type string      `json:"type"`
	Data WebhookData `json:"data"`
}

// WebhookData данные платёжной сессии из уведомления
type WebhookData struct {
	SessionID       string            `json:"sessionId"`
	PaymentIntentID string            `json:"paymentIntentId"`
	Metadata        map[string]string `json:"metadata"`
}

// eventTypeCheckoutCompleted единственный обрабатываемый тип события
const eventTypeCheckoutCompleted = "checkout.session.completed"

// PlanID извлекает ID плана из метаданных уведомления
func (r *WebhookRequest) PlanID() (int64, bool) {
	raw, ok := r.Data.Metadata["planId"]
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ToUseCaseRequest формирует запрос к use case
func (r *WebhookRequest) ToUseCaseRequest(planID int64) *confirmPayment.Request {
	return &confirmPayment.Request{
		SessionReference: r.Data.SessionID,
		PlanID:           planID,
		PaymentIntentID:  r.Data.PaymentIntentID,
	}
}
