package select_slot

import (
	"time"

	selectSlot "github.com/m04kA/TRV-PlanService/internal/usecase/select_slot"
)

// SelectSlotRequest HTTP request model
// Start берётся из ответа доступности (UTC)
type SelectSlotRequest struct {
	SpecialistID    int64     `json:"specialistId"`
	DurationMinutes int       `json:"durationMinutes"`
	Start           time.Time `json:"start"`
}

// SelectSlotResponse HTTP модель закреплённого слота
type SelectSlotResponse struct {
	PlanID           int64     `json:"planId"`
	SelectedTimeSlot string    `json:"selectedTimeSlot"`
	AppointmentStart time.Time `json:"appointmentStart"`
	AppointmentEnd   time.Time `json:"appointmentEnd"`
}

// ToUseCaseRequest формирует запрос к use case
func (r *SelectSlotRequest) ToUseCaseRequest(planID int64) *selectSlot.Request {
	return &selectSlot.Request{
		PlanID:          planID,
		SpecialistID:    r.SpecialistID,
		DurationMinutes: r.DurationMinutes,
		Start:           r.Start,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *selectSlot.Response) *SelectSlotResponse {
	return &SelectSlotResponse{
		PlanID:           resp.PlanID,
		SelectedTimeSlot: resp.SelectedTimeSlot,
		AppointmentStart: resp.AppointmentStart,
		AppointmentEnd:   resp.AppointmentEnd,
	}
}
