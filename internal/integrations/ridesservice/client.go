package ridesservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с RidesService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента RidesService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetRidesForDay получает поездки водителя за дату
// Используется для сверки фактических результатов с запланированными бронированиями
func (c *Client) GetRidesForDay(ctx context.Context, driverID int64, date time.Time) ([]Ride, error) {
	url := fmt.Sprintf("%s/internal/drivers/%d/rides?date=%s", c.baseURL, driverID, date.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		// Нет поездок за дату - это не ошибка
		return []Ride{}, nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var rides []Ride
	if err := json.NewDecoder(resp.Body).Decode(&rides); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return rides, nil
}

// GetRidesForDayWithGracefulDegradation получает поездки с graceful degradation
// При недоступности RidesService возвращает ErrServiceDegraded, что позволяет
// пересчитать результаты по данным, присланным вызывающей стороной
func (c *Client) GetRidesForDayWithGracefulDegradation(ctx context.Context, driverID int64, date time.Time) ([]Ride, error) {
	c.log.Info("Fetching rides for driver_id=%d date=%s", driverID, date.Format("2006-01-02"))

	rides, err := c.GetRidesForDay(ctx, driverID, date)
	if err != nil {
		// Недоступность сервиса, timeout, ошибки парсинга - деградируем
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("RidesService unavailable, applying graceful degradation for driver_id=%d: %v", driverID, err)
		return nil, fmt.Errorf("%w: driver_id=%d, error=%v", ErrServiceDegraded, driverID, err)
	}

	c.log.Info("Successfully fetched %d rides for driver_id=%d", len(rides), driverID)
	return rides, nil
}
