package select_slot

import (
	"context"
	"time"

	"github.com/m04kA/TRV-PlanService/internal/domain"
	plan "github.com/m04kA/TRV-PlanService/internal/infra/storage/plan"
	getAvailability "github.com/m04kA/TRV-PlanService/internal/usecase/get_availability"
)

// PlanRepository интерфейс репозитория планов
type PlanRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Plan, error)
	UpdateStep(ctx context.Context, id int64, upd plan.StepUpdate) error
}

// AvailabilityProvider расчёт доступности специалиста
// Выбранный слот проверяется против актуальной доступности
type AvailabilityProvider interface {
	Execute(ctx context.Context, req *getAvailability.Request) (*getAvailability.Response, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
