package domain

import "time"

// AvailabilitySlot кандидат на бронируемое временное окно
// Не персистится: вычисляется из рабочих часов специалиста
// Абсолютные метки — в UTC, строковые поля — в часовом поясе специалиста
type AvailabilitySlot struct {
	Start           time.Time // Начало слота (UTC)
	End             time.Time // Конец слота (UTC)
	Date            string    // Локальная дата специалиста (YYYY-MM-DD)
	Time            string    // Локальное время начала (HH:MM)
	TimeEnd         string    // Локальное время окончания (HH:MM)
	DurationMinutes int
}

// Duration возвращает длительность слота
func (s *AvailabilitySlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Contains проверяет, что момент t попадает внутрь слота
func (s *AvailabilitySlot) Contains(t time.Time) bool {
	return !t.Before(s.Start) && t.Before(s.End)
}
