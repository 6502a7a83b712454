package confirm_payment

import "errors"

// Ошибки usecase не доходят до платёжного провайдера: webhook-обработчик
// всегда отвечает 200, чтобы не провоцировать шторм ретраев
// Сентинелы нужны для логирования и тестов
var (
	// ErrPlanNotFound возвращается, когда план из метаданных уведомления не найден
	ErrPlanNotFound = errors.New("confirm_payment: plan not found")

	// ErrDuplicateInFlight возвращается, когда дубль уведомления уже обрабатывается
	ErrDuplicateInFlight = errors.New("confirm_payment: duplicate notification is being processed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_payment: internal error")
)
