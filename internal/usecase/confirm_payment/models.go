package confirm_payment

// Request модель уведомления об успешной оплате
// Провайдер доставляет уведомления at-least-once: дубли ожидаемы
type Request struct {
	SessionReference string // Опаковый идентификатор платёжной сессии
	PlanID           int64  // ID плана из метаданных уведомления
	PaymentIntentID  string // Идентификатор платежа у провайдера
}

// Result итог обработки уведомления (для логов и тестов)
type Result struct {
	Activated    bool // Встреча переведена в active этим уведомлением
	EventCreated bool // Создано событие календаря
}
