package update_working_hours

import (
	"github.com/m04kA/TRV-PlanService/internal/service/specialists/models"
)

// WorkingHourPayload HTTP модель рабочего окна
type WorkingHourPayload struct {
	StartTime string `json:"startTime"` // HH:MM
	EndTime   string `json:"endTime"`   // HH:MM
}

// UpdateWorkingHoursRequest HTTP request model
// Всегда присылает полный набор окон (wholesale replace)
type UpdateWorkingHoursRequest struct {
	WorkingHours []WorkingHourPayload `json:"workingHours"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateWorkingHoursRequest) ToServiceRequest() *models.UpdateWorkingHoursRequest {
	hours := make([]models.WorkingHourPayload, len(r.WorkingHours))
	for i, h := range r.WorkingHours {
		hours[i] = models.WorkingHourPayload{
			StartTime: h.StartTime,
			EndTime:   h.EndTime,
		}
	}
	return &models.UpdateWorkingHoursRequest{WorkingHours: hours}
}
