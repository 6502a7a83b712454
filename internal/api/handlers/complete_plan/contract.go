package complete_plan

import (
	"context"

	"github.com/m04kA/TRV-PlanService/internal/service/plans/models"
)

type PlanService interface {
	Complete(ctx context.Context, id int64, req *models.CompletePlanRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
