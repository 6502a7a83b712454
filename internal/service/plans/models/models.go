package models

import (
	"errors"
	"time"

	"github.com/m04kA/TRV-PlanService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе мастера
	ErrInvalidStatus = errors.New("invalid plan status")
)

// Request модели

// CreatePlanRequest запрос на создание плана (старт мастера планирования)
type CreatePlanRequest struct {
	TravelerName  string  `json:"travelerName"`
	TravelerEmail string  `json:"travelerEmail"`
	TravelerPhone *string `json:"travelerPhone,omitempty"`
	DestinationID *int64  `json:"destinationId,omitempty"`
}

// UpdateStepRequest запрос на изменение плана на шаге мастера
// nil-поля не изменяются
type UpdateStepRequest struct {
	TravelerName  *string `json:"travelerName,omitempty"`
	TravelerEmail *string `json:"travelerEmail,omitempty"`
	TravelerPhone *string `json:"travelerPhone,omitempty"`
	SpecialistID  *int64  `json:"specialistId,omitempty"`
	DestinationID *int64  `json:"destinationId,omitempty"`
	Status        *string `json:"status,omitempty"`
}

// CancelPlanRequest запрос на отмену встречи
type CancelPlanRequest struct {
	SpecialistID int64  `json:"specialistId"`
	Comment      string `json:"comment"`
}

// CompletePlanRequest запрос на завершение встречи
type CompletePlanRequest struct {
	SpecialistID int64  `json:"specialistId"`
	Comment      string `json:"comment"`
}

// GetSpecialistPlansRequest запрос на получение планов специалиста
type GetSpecialistPlansRequest struct {
	SpecialistID      int64      `json:"specialistId"`
	AppointmentStatus *string    `json:"appointmentStatus,omitempty"`
	StartDate         *time.Time `json:"startDate,omitempty"`
	EndDate           *time.Time `json:"endDate,omitempty"`
}

// ToDomainFilter конвертирует запрос в доменный фильтр
func (r *GetSpecialistPlansRequest) ToDomainFilter() (domain.SpecialistPlansFilter, error) {
	filter := domain.SpecialistPlansFilter{
		SpecialistID: r.SpecialistID,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
	}

	if r.AppointmentStatus != nil {
		status, err := ToDomainAppointmentStatus(*r.AppointmentStatus)
		if err != nil {
			return domain.SpecialistPlansFilter{}, err
		}
		filter.AppointmentStatus = &status
	}

	return filter, nil
}

// Response модели

// PlanResponse представление плана для вызывающей стороны
type PlanResponse struct {
	ID int64 `json:"id"`

	TravelerName  string  `json:"travelerName"`
	TravelerEmail string  `json:"travelerEmail"`
	TravelerPhone *string `json:"travelerPhone,omitempty"`

	SpecialistID  *int64 `json:"specialistId,omitempty"`
	DestinationID *int64 `json:"destinationId,omitempty"`

	Status            string `json:"status"`
	AppointmentStatus string `json:"appointmentStatus"`
	PaymentStatus     string `json:"paymentStatus"`

	SelectedTimeSlot *string    `json:"selectedTimeSlot,omitempty"`
	AppointmentStart *time.Time `json:"appointmentStart,omitempty"`
	AppointmentEnd   *time.Time `json:"appointmentEnd,omitempty"`

	GoogleCalendarEventID *string `json:"googleCalendarEventId,omitempty"`
	MeetingLink           *string `json:"meetingLink,omitempty"`

	PaidAt *time.Time `json:"paidAt,omitempty"`

	CancellationComment *string    `json:"cancellationComment,omitempty"`
	CanceledByType      *string    `json:"canceledByType,omitempty"`
	CanceledByID        *int64     `json:"canceledById,omitempty"`
	CanceledAt          *time.Time `json:"canceledAt,omitempty"`

	CompletionComment *string    `json:"completionComment,omitempty"`
	CompletedAt       *time.Time `json:"completedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PlanListResponse список планов
type PlanListResponse struct {
	Plans []*PlanResponse `json:"plans"`
	Total int             `json:"total"`
}

// FromDomainPlan конвертирует доменный план в response-модель
func FromDomainPlan(p *domain.Plan) *PlanResponse {
	resp := &PlanResponse{
		ID:                    p.ID,
		TravelerName:          p.TravelerName,
		TravelerEmail:         p.TravelerEmail,
		TravelerPhone:         p.TravelerPhone,
		SpecialistID:          p.SpecialistID,
		DestinationID:         p.DestinationID,
		Status:                string(p.Status),
		AppointmentStatus:     string(p.AppointmentStatus),
		PaymentStatus:         string(p.PaymentStatus),
		SelectedTimeSlot:      p.SelectedTimeSlot,
		AppointmentStart:      p.AppointmentStart,
		AppointmentEnd:        p.AppointmentEnd,
		GoogleCalendarEventID: p.GoogleCalendarEventID,
		MeetingLink:           p.MeetingLink,
		PaidAt:                p.PaidAt,
		CancellationComment:   p.CancellationComment,
		CanceledByID:          p.CanceledByID,
		CanceledAt:            p.CanceledAt,
		CompletionComment:     p.CompletionComment,
		CompletedAt:           p.CompletedAt,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}

	if p.CanceledByType != nil {
		byType := string(*p.CanceledByType)
		resp.CanceledByType = &byType
	}

	return resp
}

// FromDomainPlanList конвертирует список доменных планов
func FromDomainPlanList(plans []*domain.Plan) *PlanListResponse {
	result := make([]*PlanResponse, len(plans))
	for i, p := range plans {
		result[i] = FromDomainPlan(p)
	}
	return &PlanListResponse{
		Plans: result,
		Total: len(result),
	}
}

// ToDomainPlanStatus конвертирует строку в статус мастера с валидацией
func ToDomainPlanStatus(s string) (domain.PlanStatus, error) {
	switch domain.PlanStatus(s) {
	case domain.PlanStatusDraft, domain.PlanStatusPending, domain.PlanStatusInProgress, domain.PlanStatusCompleted:
		return domain.PlanStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// ToDomainAppointmentStatus конвертирует строку в статус встречи с валидацией
func ToDomainAppointmentStatus(s string) (domain.AppointmentStatus, error) {
	switch domain.AppointmentStatus(s) {
	case domain.AppointmentStatusDraft, domain.AppointmentStatusActive,
		domain.AppointmentStatusCancelled, domain.AppointmentStatusCompleted:
		return domain.AppointmentStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
