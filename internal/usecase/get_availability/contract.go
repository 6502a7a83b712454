package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/TRV-PlanService/internal/domain"
	"github.com/m04kA/TRV-PlanService/internal/integrations/calendarservice"
)

// SpecialistRepository интерфейс репозитория специалистов
type SpecialistRepository interface {
	// GetByID получает специалиста вместе с рабочими часами
	GetByID(ctx context.Context, id int64) (*domain.Specialist, error)
}

// CalendarClient интерфейс клиента календарного сервиса
// В connected-режиме расчёт доступности делегируется сервису целиком
type CalendarClient interface {
	IsConnected(ctx context.Context, specialistID int64) (bool, error)
	GetAvailableSlots(ctx context.Context, req *calendarservice.AvailabilityRequest) ([]calendarservice.Slot, error)
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
