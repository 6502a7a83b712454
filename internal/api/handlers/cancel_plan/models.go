package cancel_plan

import (
	"github.com/m04kA/TRV-PlanService/internal/service/plans/models"
)

// CancelPlanRequest HTTP request model
type CancelPlanRequest struct {
	Comment *string `json:"comment,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelPlanRequest) ToServiceRequest(specialistID int64) *models.CancelPlanRequest {
	comment := ""
	if r.Comment != nil {
		comment = *r.Comment
	}

	return &models.CancelPlanRequest{
		SpecialistID: specialistID,
		Comment:      comment,
	}
}
