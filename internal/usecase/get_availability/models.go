package get_availability

import (
	"time"

	"github.com/m04kA/TRV-PlanService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	SpecialistID    int64   // ID специалиста
	DurationMinutes int     // Длительность консультации в минутах
	SelectedDate    *string // Конкретная дата (YYYY-MM-DD), опционально
}

// Response модель ответа со списком доступных слотов
type Response struct {
	SpecialistID    int64  // ID специалиста
	DurationMinutes int    // Длительность консультации
	Timezone        string // Часовой пояс специалиста (для отображения)
	Slots           []Slot // Список доступных слотов
}

// Slot модель доступного слота
// Абсолютные метки — UTC, строковые поля — локальное время специалиста
type Slot struct {
	Start           time.Time // Начало (UTC)
	End             time.Time // Конец (UTC)
	Date            string    // Локальная дата (YYYY-MM-DD)
	Time            string    // Локальное время начала (HH:MM)
	TimeEnd         string    // Локальное время окончания (HH:MM)
	DurationMinutes int
}

// fromDomainSlots конвертирует доменные слоты в модель ответа
func fromDomainSlots(slots []domain.AvailabilitySlot) []Slot {
	result := make([]Slot, len(slots))
	for i, s := range slots {
		result[i] = Slot{
			Start:           s.Start,
			End:             s.End,
			Date:            s.Date,
			Time:            s.Time,
			TimeEnd:         s.TimeEnd,
			DurationMinutes: s.DurationMinutes,
		}
	}
	return result
}
