package get_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/TRV-PlanService/internal/domain"
)

// generateSlotsForDate генерирует кандидатов для одной локальной даты специалиста
// по всем его рабочим окнам
// Пересекающиеся окна не схлопываются: каждое окно даёт своих кандидатов,
// дубли допустимы
func generateSlotsForDate(
	date time.Time, // локальная полночь нужной даты
	workingHours []domain.WorkingHour,
	durationMinutes int,
	loc *time.Location,
) ([]domain.AvailabilitySlot, error) {
	slots := make([]domain.AvailabilitySlot, 0)

	for _, window := range workingHours {
		windowSlots, err := generateSlotsForWindow(date, window, durationMinutes, loc)
		if err != nil {
			return nil, err
		}
		slots = append(slots, windowSlots...)
	}

	return slots, nil
}

// generateSlotsForWindow генерирует кандидатов внутри одного рабочего окна
//
// Кандидаты шагают по фиксированной часовой сетке: первый кандидат — начало
// часа, содержащего начало окна (если эта граница раньше начала окна, она
// пропускается). Сетка общая для всех специалистов, поэтому предлагаемые
// времена начала предсказуемы даже при длительности, не кратной часу
//
// Окно с end_time <= start_time считается переходящим через полночь: конец
// окна сдвигается на следующий день
func generateSlotsForWindow(
	date time.Time,
	window domain.WorkingHour,
	durationMinutes int,
	loc *time.Location,
) ([]domain.AvailabilitySlot, error) {
	startMinutes, err := window.StartTime.ToMinutes()
	if err != nil {
		return nil, fmt.Errorf("invalid window start %q: %w", window.StartTime, err)
	}
	endMinutes, err := window.EndTime.ToMinutes()
	if err != nil {
		return nil, fmt.Errorf("invalid window end %q: %w", window.EndTime, err)
	}

	year, month, day := date.Date()

	windowStart := time.Date(year, month, day, startMinutes/60, startMinutes%60, 0, 0, loc)
	windowEnd := time.Date(year, month, day, endMinutes/60, endMinutes%60, 0, 0, loc)
	if !windowEnd.After(windowStart) {
		// Окно через полночь: конец на следующий день
		windowEnd = windowEnd.AddDate(0, 0, 1)
	}

	// Первый кандидат — граница часа, содержащего начало окна
	candidate := time.Date(year, month, day, windowStart.Hour(), 0, 0, 0, loc)
	if candidate.Before(windowStart) {
		candidate = candidate.Add(domain.SlotStepMinutes * time.Minute)
	}

	duration := time.Duration(durationMinutes) * time.Minute
	slots := make([]domain.AvailabilitySlot, 0)

	for !candidate.Add(duration).After(windowEnd) {
		end := candidate.Add(duration)

		slots = append(slots, domain.AvailabilitySlot{
			Start:           candidate.UTC(),
			End:             end.UTC(),
			Date:            candidate.In(loc).Format(domain.DateFormat),
			Time:            candidate.In(loc).Format(domain.TimeFormat),
			TimeEnd:         end.In(loc).Format(domain.TimeFormat),
			DurationMinutes: durationMinutes,
		})

		candidate = candidate.Add(domain.SlotStepMinutes * time.Minute)
	}

	return slots, nil
}

// localMidnight возвращает полночь даты t в поясе loc
func localMidnight(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
