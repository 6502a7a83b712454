package calendarservice

import (
	"context"
	"time"
)

// Service полный контракт календарного сервиса
// Реализуется HTTP-клиентом и no-op клиентом для развертываний без интеграции
type Service interface {
	IsConnected(ctx context.Context, specialistID int64) (bool, error)
	GetAvailableSlots(ctx context.Context, req *AvailabilityRequest) ([]Slot, error)
	ListBusyIntervals(ctx context.Context, specialistID int64, from, to time.Time) ([]BusyInterval, error)
	CreateEvent(ctx context.Context, specialistID int64, event *EventRequest) (*EventResponse, error)
	DeleteEvent(ctx context.Context, specialistID int64, eventID string) error
}

var (
	_ Service = (*Client)(nil)
	_ Service = (*NoopClient)(nil)
)
