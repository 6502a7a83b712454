package get_availability

import (
	"fmt"

	"github.com/m04kA/TRV-PlanService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SpecialistID <= 0 {
		return fmt.Errorf("%w: specialistID must be positive", ErrInvalidInput)
	}

	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}

	if req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	return nil
}

// validateSpecialistConfig проверяет, что специалиста можно опрашивать на доступность
// Отсутствие рабочих часов или часового пояса — жёсткая ошибка конфигурации,
// а не пустой результат
func validateSpecialistConfig(s *domain.Specialist) error {
	if !s.HasWorkingHours() {
		return ErrNoWorkingHours
	}
	if !s.HasTimezone() {
		return ErrNoTimezone
	}
	return nil
}
