package stationservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client клиент для работы со справочником зарядных станций
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// NewClient создает новый экземпляр клиента справочника станций
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetStation получает зарядную станцию по ID
func (c *Client) GetStation(ctx context.Context, stationID int64) (*Station, error) {
	requestURL := fmt.Sprintf("%s/internal/stations/%d", c.baseURL, stationID)

	var station Station
	if err := c.get(ctx, requestURL, &station, ErrStationNotFound); err != nil {
		return nil, err
	}

	return &station, nil
}

// GetStationByOperator получает станцию, закрепленную за оператором
func (c *Client) GetStationByOperator(ctx context.Context, operatorUsername string) (*Station, error) {
	requestURL := fmt.Sprintf("%s/internal/operators/%s/station", c.baseURL, url.PathEscape(operatorUsername))

	var station Station
	if err := c.get(ctx, requestURL, &station, ErrOperatorNotFound); err != nil {
		return nil, err
	}

	return &station, nil
}

func (c *Client) get(ctx context.Context, requestURL string, out interface{}, notFound error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
