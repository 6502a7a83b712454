package plans

import (
	"context"
	"time"

	"github.com/m04kA/TRV-PlanService/internal/domain"
	plan "github.com/m04kA/TRV-PlanService/internal/infra/storage/plan"
)

// PlanRepository интерфейс репозитория планов
type PlanRepository interface {
	Create(ctx context.Context, p *domain.Plan) (*domain.Plan, error)
	GetByID(ctx context.Context, id int64) (*domain.Plan, error)
	GetBySpecialistWithFilter(ctx context.Context, filter domain.SpecialistPlansFilter) ([]*domain.Plan, error)
	UpdateStep(ctx context.Context, id int64, upd plan.StepUpdate) error
	CancelAppointment(ctx context.Context, id int64, comment string, byType domain.CanceledByType, byID int64, canceledAt time.Time) error
	CompleteAppointment(ctx context.Context, id int64, comment string, completedAt time.Time) error
}

// CalendarClient интерфейс клиента календарного сервиса
// Сервису планов нужно только удаление события при отмене встречи
type CalendarClient interface {
	DeleteEvent(ctx context.Context, specialistID int64, eventID string) error
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
