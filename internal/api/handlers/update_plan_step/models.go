package update_plan_step

import (
	"github.com/m04kA/TRV-PlanService/internal/service/plans/models"
)

// UpdateStepRequest HTTP request model
// nil-поля не изменяются
type UpdateStepRequest struct {
	TravelerName  *string `json:"travelerName,omitempty"`
	TravelerEmail *string `json:"travelerEmail,omitempty"`
	TravelerPhone *string `json:"travelerPhone,omitempty"`
	SpecialistID  *int64  `json:"specialistId,omitempty"`
	DestinationID *int64  `json:"destinationId,omitempty"`
	Status        *string `json:"status,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStepRequest) ToServiceRequest() *models.UpdateStepRequest {
	return &models.UpdateStepRequest{
		TravelerName:  r.TravelerName,
		TravelerEmail: r.TravelerEmail,
		TravelerPhone: r.TravelerPhone,
		SpecialistID:  r.SpecialistID,
		DestinationID: r.DestinationID,
		Status:        r.Status,
	}
}
