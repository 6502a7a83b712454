package specialists

import (
	"context"

	"github.com/m04kA/TRV-PlanService/internal/domain"
)

// SpecialistRepository интерфейс репозитория специалистов
type SpecialistRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Specialist, error)
	ReplaceWorkingHours(ctx context.Context, specialistID int64, hours []domain.WorkingHour) error
}

// TxManager интерфейс менеджера транзакций
// Замена рабочих часов (delete + insert) выполняется атомарно
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
