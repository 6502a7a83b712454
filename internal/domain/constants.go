package domain

// Политика горизонта бронирования
const (
	// MinAdvanceDays минимальный сдвиг даты встречи: бронируются даты
	// не раньше, чем через два календарных дня (сегодня и завтра не предлагаются)
	MinAdvanceDays = 2

	// BookingHorizonDays верхняя граница окна по умолчанию: today + 14 дней включительно
	BookingHorizonDays = 14

	// SlotStepMinutes шаг генерации кандидатов: начала слотов выровнены
	// по границам часа, чтобы у всех специалистов была общая сетка времени
	SlotStepMinutes = 60
)

// Бизнес-ограничения
const (
	MinDurationMinutes    = 15
	MaxDurationMinutes    = 480 // 8 часов
	MaxCommentLength      = 500
	MaxTravelerNameLength = 200
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalAppointmentStatuses терминальные статусы встречи
// После них ссылка на событие календаря очищена и переходы запрещены
var TerminalAppointmentStatuses = []AppointmentStatus{
	AppointmentStatusCancelled,
	AppointmentStatusCompleted,
}
