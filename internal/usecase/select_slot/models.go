package select_slot

import "time"

// Request модель запроса на выбор слота встречи
type Request struct {
	PlanID          int64     // ID плана
	SpecialistID    int64     // ID специалиста
	DurationMinutes int       // Длительность консультации
	Start           time.Time // Начало выбранного слота (UTC, из ответа доступности)
}

// Response модель ответа с закреплённым слотом
type Response struct {
	PlanID           int64
	SelectedTimeSlot string    // Локальное представление слота (дата + время специалиста)
	AppointmentStart time.Time // UTC
	AppointmentEnd   time.Time // UTC
}
