package update_working_hours

import (
	"context"

	"github.com/m04kA/TRV-PlanService/internal/service/specialists/models"
)

type SpecialistService interface {
	UpdateWorkingHours(ctx context.Context, id int64, req *models.UpdateWorkingHoursRequest) (*models.SpecialistResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
