package select_slot

import (
	"context"

	selectSlot "github.com/m04kA/TRV-PlanService/internal/usecase/select_slot"
)

type SelectSlotUseCase interface {
	Execute(ctx context.Context, req *selectSlot.Request) (*selectSlot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
