package calendarservice

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ConnectionStatus ответ на запрос статуса подключения календаря
type ConnectionStatus struct {
	SpecialistID int64 `json:"specialist_id"`
	Connected    bool  `json:"connected"`
}

// WorkingHourWindow рабочее окно специалиста, передаваемое календарному сервису
// Формат времени HH:MM, часовой пояс задаётся отдельным полем запроса
type WorkingHourWindow struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// AvailabilityRequest запрос делегированного расчёта доступности
// Календарный сервис применяет ту же логику рабочих часов и длительности,
// дополнительно исключая кандидатов, пересекающихся с занятыми интервалами
type AvailabilityRequest struct {
	SpecialistID    int64               `json:"specialist_id"`
	Timezone        string              `json:"timezone"`
	DurationMinutes int                 `json:"duration_minutes"`
	WorkingHours    []WorkingHourWindow `json:"working_hours"`
	SelectedDate    *string             `json:"selected_date,omitempty"` // YYYY-MM-DD
}

// Slot слот доступности из ответа календарного сервиса
type Slot struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	TimeEnd         string    `json:"time_end"`
	DurationMinutes int       `json:"duration_minutes"`
}

// AvailabilityResponse ответ делегированного расчёта доступности
type AvailabilityResponse struct {
	Slots []Slot `json:"slots"`
}

// BusyInterval занятый интервал из внешнего календаря
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// BusyIntervalsResponse ответ со списком занятых интервалов
type BusyIntervalsResponse struct {
	Intervals []BusyInterval `json:"intervals"`
}

// EventRequest запрос на создание события встречи в календаре специалиста
type EventRequest struct {
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	AttendeeName  string    `json:"attendee_name"`
	AttendeeEmail string    `json:"attendee_email"`
	AttendeePhone *string   `json:"attendee_phone,omitempty"`
}

// EventResponse созданное событие календаря
type EventResponse struct {
	EventID     string `json:"event_id"`
	MeetingLink string `json:"meeting_link"`
}

// ErrorResponse модель ошибки календарного сервиса
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
