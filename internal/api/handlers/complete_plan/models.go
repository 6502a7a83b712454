package complete_plan

import (
	"github.com/m04kA/TRV-PlanService/internal/service/plans/models"
)

// CompletePlanRequest HTTP request model
type CompletePlanRequest struct {
	Comment *string `json:"comment,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CompletePlanRequest) ToServiceRequest(specialistID int64) *models.CompletePlanRequest {
	comment := ""
	if r.Comment != nil {
		comment = *r.Comment
	}

	return &models.CompletePlanRequest{
		SpecialistID: specialistID,
		Comment:      comment,
	}
}
