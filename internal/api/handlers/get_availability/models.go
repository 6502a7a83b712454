package get_availability

import (
	"time"

	getAvailability "github.com/m04kA/TRV-PlanService/internal/usecase/get_availability"
)

// SlotResponse HTTP модель доступного слота
type SlotResponse struct {
	Start           time.Time `json:"start"`   // UTC
	End             time.Time `json:"end"`     // UTC
	Date            string    `json:"date"`    // Локальная дата специалиста (YYYY-MM-DD)
	Time            string    `json:"time"`    // Локальное время начала (HH:MM)
	TimeEnd         string    `json:"timeEnd"` // Локальное время окончания (HH:MM)
	DurationMinutes int       `json:"durationMinutes"`
}

// AvailabilityResponse HTTP модель ответа с доступными слотами
type AvailabilityResponse struct {
	SpecialistID    int64          `json:"specialistId"`
	DurationMinutes int            `json:"durationMinutes"`
	Timezone        string         `json:"timezone"`
	Slots           []SlotResponse `json:"slots"`
}

// ToUseCaseRequest формирует запрос к use case
func ToUseCaseRequest(specialistID int64, durationMinutes int, date *string) *getAvailability.Request {
	return &getAvailability.Request{
		SpecialistID:    specialistID,
		DurationMinutes: durationMinutes,
		SelectedDate:    date,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			Start:           s.Start,
			End:             s.End,
			Date:            s.Date,
			Time:            s.Time,
			TimeEnd:         s.TimeEnd,
			DurationMinutes: s.DurationMinutes,
		}
	}

	return &AvailabilityResponse{
		SpecialistID:    resp.SpecialistID,
		DurationMinutes: resp.DurationMinutes,
		Timezone:        resp.Timezone,
		Slots:           slots,
	}
}
