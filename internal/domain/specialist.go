package domain

import (
	"time"

	"github.com/m04kA/TRV-PlanService/pkg/types"
)

// SpecialistStatus статус специалиста
type SpecialistStatus string

const (
	SpecialistStatusActive   SpecialistStatus = "active"
	SpecialistStatusInactive SpecialistStatus = "inactive"
)

// Specialist тревел-консультант с настроенными рабочими часами
type Specialist struct {
	ID       int64
	Name     string
	Email    string
	Timezone string // IANA-идентификатор, например "Europe/Lisbon"
	Status   SpecialistStatus

	// Подключен ли внешний календарь (режим connected для расчёта доступности)
	CalendarConnected bool

	WorkingHours []WorkingHour

	CreatedAt time.Time
	UpdatedAt time.Time
}

// WorkingHour ежедневное окно доступности специалиста (локальное время суток)
// EndTime раньше StartTime означает окно через полночь (конец на следующий день)
// Пересечения окон допустимы и не схлопываются
type WorkingHour struct {
	ID           int64
	SpecialistID int64
	StartTime    types.TimeString
	EndTime      types.TimeString
}

// IsOvernight возвращает true, если окно переходит через полночь
func (w *WorkingHour) IsOvernight() bool {
	return !w.EndTime.IsAfter(w.StartTime)
}

// IsActive возвращает true, если специалист активен
func (s *Specialist) IsActive() bool {
	return s.Status == SpecialistStatusActive
}

// HasWorkingHours возвращает true, если у специалиста есть хотя бы одно рабочее окно
func (s *Specialist) HasWorkingHours() bool {
	return len(s.WorkingHours) > 0
}

// HasTimezone возвращает true, если у специалиста задан часовой пояс
func (s *Specialist) HasTimezone() bool {
	return s.Timezone != ""
}
