package calendarservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с календарным сервисом
// Сервис хранит OAuth-привязки специалистов к внешним календарям и
// выполняет операции над событиями от их имени
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента календарного сервиса
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// IsConnected проверяет, подключен ли внешний календарь специалиста
func (c *Client) IsConnected(ctx context.Context, specialistID int64) (bool, error) {
	url := fmt.Sprintf("%s/internal/specialists/%d/connection", c.baseURL, specialistID)

	var status ConnectionStatus
	if err := c.doJSON(ctx, http.MethodGet, url, nil, &status); err != nil {
		return false, err
	}

	return status.Connected, nil
}

// GetAvailableSlots делегирует расчёт доступности календарному сервису
// Рабочие часы, длительность, часовой пояс и выбранная дата передаются
// без изменений: слияние занятых интервалов — ответственность сервиса
func (c *Client) GetAvailableSlots(ctx context.Context, req *AvailabilityRequest) ([]Slot, error) {
	url := fmt.Sprintf("%s/internal/specialists/%d/availability", c.baseURL, req.SpecialistID)

	var resp AvailabilityResponse
	if err := c.doJSON(ctx, http.MethodPost, url, req, &resp); err != nil {
		return nil, err
	}

	return resp.Slots, nil
}

// ListBusyIntervals возвращает занятые интервалы календаря за период
func (c *Client) ListBusyIntervals(ctx context.Context, specialistID int64, from, to time.Time) ([]BusyInterval, error) {
	url := fmt.Sprintf("%s/internal/specialists/%d/busy?from=%s&to=%s",
		c.baseURL, specialistID, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))

	var resp BusyIntervalsResponse
	if err := c.doJSON(ctx, http.MethodGet, url, nil, &resp); err != nil {
		return nil, err
	}

	return resp.Intervals, nil
}

// CreateEvent создает событие встречи в календаре специалиста
// Возвращает идентификатор события и ссылку на видеовстречу
func (c *Client) CreateEvent(ctx context.Context, specialistID int64, event *EventRequest) (*EventResponse, error) {
	url := fmt.Sprintf("%s/internal/specialists/%d/events", c.baseURL, specialistID)

	var resp EventResponse
	if err := c.doJSON(ctx, http.MethodPost, url, event, &resp); err != nil {
		return nil, err
	}

	c.log.Info("Calendar event created: specialist=%d, event_id=%s", specialistID, resp.EventID)
	return &resp, nil
}

// DeleteEvent удаляет событие из календаря специалиста
// Отсутствующее событие возвращается как ErrEventNotFound: вызывающая
// сторона логирует и продолжает
func (c *Client) DeleteEvent(ctx context.Context, specialistID int64, eventID string) error {
	url := fmt.Sprintf("%s/internal/specialists/%d/events/%s", c.baseURL, specialistID, eventID)

	return c.doJSON(ctx, http.MethodDelete, url, nil, nil)
}

// doJSON выполняет HTTP-запрос с JSON-телом и разбирает JSON-ответ
func (c *Client) doJSON(ctx context.Context, method, url string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrCalendarService, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		// Продолжаем обработку
	case http.StatusNotFound:
		return ErrEventNotFound
	case http.StatusConflict:
		return ErrNotConnected
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrCalendarService, resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
