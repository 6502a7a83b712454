package models

import (
	"time"

	"github.com/m04kA/TRV-PlanService/internal/domain"
	"github.com/m04kA/TRV-PlanService/pkg/types"
)

// WorkingHourPayload окно рабочих часов в запросах и ответах
// Окно через полночь передаётся как endTime раньше startTime
type WorkingHourPayload struct {
	StartTime string `json:"startTime"` // HH:MM
	EndTime   string `json:"endTime"`   // HH:MM
}

// UpdateWorkingHoursRequest запрос на замену рабочих часов целиком
type UpdateWorkingHoursRequest struct {
	WorkingHours []WorkingHourPayload `json:"workingHours"`
}

// SpecialistResponse представление специалиста для вызывающей стороны
type SpecialistResponse struct {
	ID                int64                `json:"id"`
	Name              string               `json:"name"`
	Email             string               `json:"email"`
	Timezone          string               `json:"timezone"`
	Status            string               `json:"status"`
	CalendarConnected bool                 `json:"calendarConnected"`
	WorkingHours      []WorkingHourPayload `json:"workingHours"`
	CreatedAt         time.Time            `json:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt"`
}

// FromDomainSpecialist конвертирует доменного специалиста в response-модель
func FromDomainSpecialist(s *domain.Specialist) *SpecialistResponse {
	hours := make([]WorkingHourPayload, len(s.WorkingHours))
	for i, h := range s.WorkingHours {
		hours[i] = WorkingHourPayload{
			StartTime: h.StartTime.String(),
			EndTime:   h.EndTime.String(),
		}
	}

	return &SpecialistResponse{
		ID:                s.ID,
		Name:              s.Name,
		Email:             s.Email,
		Timezone:          s.Timezone,
		Status:            string(s.Status),
		CalendarConnected: s.CalendarConnected,
		WorkingHours:      hours,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

// ToDomainWorkingHours конвертирует и валидирует окна из запроса
func (r *UpdateWorkingHoursRequest) ToDomainWorkingHours() ([]domain.WorkingHour, error) {
	hours := make([]domain.WorkingHour, len(r.WorkingHours))
	for i, w := range r.WorkingHours {
		start, err := types.NewTimeStringFromString(w.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := types.NewTimeStringFromString(w.EndTime)
		if err != nil {
			return nil, err
		}
		hours[i] = domain.WorkingHour{
			StartTime: start,
			EndTime:   end,
		}
	}
	return hours, nil
}
