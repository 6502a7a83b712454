package calendarservice

import (
	"context"
	"time"
)

// NoopClient реализация клиента для развертываний без календарной интеграции
// Все специалисты считаются неподключенными: доступность рассчитывается
// локально из рабочих часов, события календаря не создаются
type NoopClient struct{}

// NewNoopClient создает no-op клиент календарного сервиса
func NewNoopClient() *NoopClient {
	return &NoopClient{}
}

// IsConnected всегда возвращает false
func (*NoopClient) IsConnected(ctx context.Context, specialistID int64) (bool, error) {
	return false, nil
}

// GetAvailableSlots возвращает пустой список
func (*NoopClient) GetAvailableSlots(ctx context.Context, req *AvailabilityRequest) ([]Slot, error) {
	return []Slot{}, nil
}

// ListBusyIntervals возвращает пустой список
func (*NoopClient) ListBusyIntervals(ctx context.Context, specialistID int64, from, to time.Time) ([]BusyInterval, error) {
	return []BusyInterval{}, nil
}

// CreateEvent возвращает ErrNotConnected
func (*NoopClient) CreateEvent(ctx context.Context, specialistID int64, event *EventRequest) (*EventResponse, error) {
	return nil, ErrNotConnected
}

// DeleteEvent ничего не делает
func (*NoopClient) DeleteEvent(ctx context.Context, specialistID int64, eventID string) error {
	return nil
}
