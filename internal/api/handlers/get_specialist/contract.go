package get_specialist

import (
	"context"

	"github.com/m04kA/TRV-PlanService/internal/service/specialists/models"
)

type SpecialistService interface {
	GetByID(ctx context.Context, id int64) (*models.SpecialistResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
