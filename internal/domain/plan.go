package domain

import "time"

// PlanStatus статус прохождения мастера планирования поездки
// Отдельная ось от статуса встречи: план может быть не дозаполнен,
// даже когда встреча уже отменена, и наоборот
type PlanStatus string

const (
	PlanStatusDraft      PlanStatus = "draft"
	PlanStatusPending    PlanStatus = "pending"
	PlanStatusInProgress PlanStatus = "in_progress"
	PlanStatusCompleted  PlanStatus = "completed"
)

// AppointmentStatus статус встречи со специалистом (авторитетная ось)
type AppointmentStatus string

const (
	AppointmentStatusDraft     AppointmentStatus = "draft"
	AppointmentStatusActive    AppointmentStatus = "active"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// PaymentStatus статус оплаты консультации
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// CanceledByType тип инициатора отмены встречи
type CanceledByType string

const (
	CanceledBySpecialist CanceledByType = "specialist"
	CanceledByTraveler   CanceledByType = "traveler"
)

// Plan план поездки путешественника
// Создается при старте мастера планирования и постепенно заполняется:
// детали поездки, специалист, слот встречи, оплата
type Plan struct {
	ID int64

	// Контакты путешественника
	TravelerName  string
	TravelerEmail string
	TravelerPhone *string

	// Слабые ссылки на справочники (могут быть не заполнены на ранних шагах)
	SpecialistID  *int64
	DestinationID *int64

	Status            PlanStatus
	AppointmentStatus AppointmentStatus
	PaymentStatus     PaymentStatus

	// Данные встречи (заполняются после выбора слота)
	SelectedTimeSlot *string
	AppointmentStart *time.Time // UTC
	AppointmentEnd   *time.Time // UTC

	// Ссылка на событие во внешнем календаре (жизненным циклом события
	// управляет календарный сервис, план хранит только идентификатор)
	GoogleCalendarEventID *string
	MeetingLink           *string

	// Оплата
	PaymentIntentID *string
	PaidAt          *time.Time

	// Отмена
	CancellationComment *string
	CanceledByType      *CanceledByType
	CanceledByID        *int64
	CanceledAt          *time.Time

	// Завершение
	CompletionComment *string
	CompletedAt       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAppointmentActive возвращает true, если встреча активна
func (p *Plan) IsAppointmentActive() bool {
	return p.AppointmentStatus == AppointmentStatusActive
}

// CanBeCancelled возвращает true, если встречу можно отменить
// Отменяются только активные встречи
func (p *Plan) CanBeCancelled() bool {
	return p.AppointmentStatus == AppointmentStatusActive
}

// CanBeCompleted возвращает true, если встречу можно завершить в момент now
// Завершить можно только активную встречу с наступившим временем окончания
func (p *Plan) CanBeCompleted(now time.Time) bool {
	return p.AppointmentStatus == AppointmentStatusActive &&
		p.AppointmentEnd != nil &&
		!now.Before(*p.AppointmentEnd)
}

// IsPaid возвращает true, если консультация оплачена
func (p *Plan) IsPaid() bool {
	return p.PaymentStatus == PaymentStatusPaid
}

// HasCalendarEvent возвращает true, если для встречи создано событие календаря
func (p *Plan) HasCalendarEvent() bool {
	return p.GoogleCalendarEventID != nil && *p.GoogleCalendarEventID != ""
}

// BelongsToSpecialist проверяет привязку плана к специалисту
func (p *Plan) BelongsToSpecialist(specialistID int64) bool {
	return p.SpecialistID != nil && *p.SpecialistID == specialistID
}

// SpecialistPlansFilter фильтр для получения планов специалиста
type SpecialistPlansFilter struct {
	SpecialistID      int64              // Обязательный параметр
	AppointmentStatus *AppointmentStatus // Фильтр по статусу встречи (опционально)
	StartDate         *time.Time         // Начало периода по appointment_start (опционально)
	EndDate           *time.Time         // Конец периода по appointment_start (опционально)
}
