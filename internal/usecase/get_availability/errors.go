package get_availability

import "errors"

var (
	// ErrSpecialistNotFound возвращается, когда специалист не найден или неактивен
	ErrSpecialistNotFound = errors.New("get_availability: specialist not found")

	// ErrNoWorkingHours возвращается, когда у специалиста не настроены рабочие часы
	// Это ошибка конфигурации, а не пустая доступность: вызывающая сторона
	// должна отличать "нечего бронировать" от "специалист не настроен"
	ErrNoWorkingHours = errors.New("get_availability: specialist has no working hours configured")

	// ErrNoTimezone возвращается, когда у специалиста не задан часовой пояс
	ErrNoTimezone = errors.New("get_availability: specialist has no timezone configured")

	// ErrInvalidTimezone возвращается, когда часовой пояс специалиста не распознан
	ErrInvalidTimezone = errors.New("get_availability: specialist timezone is invalid")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
