package create_plan

import (
	"github.com/m04kA/TRV-PlanService/internal/service/plans/models"
)

// CreatePlanRequest HTTP request model
type CreatePlanRequest struct {
	TravelerName  string  `json:"travelerName"`
	TravelerEmail string  `json:"travelerEmail"`
	TravelerPhone *string `json:"travelerPhone,omitempty"`
	DestinationID *int64  `json:"destinationId,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreatePlanRequest) ToServiceRequest() *models.CreatePlanRequest {
	return &models.CreatePlanRequest{
		TravelerName:  r.TravelerName,
		TravelerEmail: r.TravelerEmail,
		TravelerPhone: r.TravelerPhone,
		DestinationID: r.DestinationID,
	}
}
