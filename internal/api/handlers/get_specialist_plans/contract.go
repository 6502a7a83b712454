package get_specialist_plans

import (
	"context"

	"github.com/m04kA/TRV-PlanService/internal/service/plans/models"
)

type PlanService interface {
	GetSpecialistPlans(ctx context.Context, req *models.GetSpecialistPlansRequest) (*models.PlanListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
