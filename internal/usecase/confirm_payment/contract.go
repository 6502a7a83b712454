package confirm_payment

import (
	"context"
	"time"

	"github.com/m04kA/TRV-PlanService/internal/domain"
	"github.com/m04kA/TRV-PlanService/internal/integrations/calendarservice"
)

// PlanRepository интерфейс репозитория планов
type PlanRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Plan, error)
	// MarkPaid атомарно помечает план оплаченным и активирует встречу
	// Возвращает false, если план уже был оплачен
	MarkPaid(ctx context.Context, id int64, paymentIntentID string, paidAt time.Time) (bool, error)
	SetCalendarEvent(ctx context.Context, id int64, eventID string, meetingLink string) error
}

// SpecialistRepository интерфейс репозитория специалистов
type SpecialistRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Specialist, error)
}

// CalendarClient интерфейс клиента календарного сервиса
type CalendarClient interface {
	IsConnected(ctx context.Context, specialistID int64) (bool, error)
	CreateEvent(ctx context.Context, specialistID int64, event *calendarservice.EventRequest) (*calendarservice.EventResponse, error)
}

// Locker распределённая блокировка по плану на время обработки уведомления
type Locker interface {
	WithPlanLock(ctx context.Context, planID int64, fn func(ctx context.Context) error) error
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
