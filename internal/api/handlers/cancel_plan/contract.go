package cancel_plan

import (
	"context"

	"github.com/m04kA/TRV-PlanService/internal/service/plans/models"
)

type PlanService interface {
	Cancel(ctx context.Context, id int64, req *models.CancelPlanRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
