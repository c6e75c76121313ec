// Package backend реализует HTTP-клиент API сервера rental-tracker.
//
// Client удовлетворяет интерфейсу session.UserStore: отсутствие пользователя
// возвращается как session.ErrUserNotFound, а сетевые ошибки и ответы 5xx
// как session.ErrBackendUnavailable.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/magabrotheeeer/rental-tracker/internal/http/response"
	"github.com/magabrotheeeer/rental-tracker/internal/services/session"
)

var (
	// ErrNotFound — запрошенный ресурс не существует.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized — API-ключ отсутствует или отклонён сервером.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConflict — ресурс уже существует.
	ErrConflict = errors.New("conflict")
	// ErrBadRequest — сервер отклонил запрос как некорректный.
	ErrBadRequest = errors.New("bad request")
)

// DefaultTimeout — таймаут HTTP-запроса по умолчанию.
const DefaultTimeout = 10 * time.Second

// Client — клиент API бэкенда.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient создаёт клиент. Нулевой timeout заменяется на DefaultTimeout.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type envelope struct {
	Status string          `json:"status"`
	Error  string          `json:"error"`
	Data   json.RawMessage `json:"data"`
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// do выполняет запрос и раскладывает поле data ответа в out.
// Ошибки приводятся к сентинелам пакета и session.ErrBackendUnavailable.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", session.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %w", session.ErrBackendUnavailable, err)
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 500 {
			return fmt.Errorf("%w: decode response: %w", session.ErrBackendUnavailable, err)
		}
	}

	switch {
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: unexpected status: %s", session.ErrBackendUnavailable, resp.Status)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, env.Error)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, env.Error)
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, env.Error)
	case resp.StatusCode >= 400:
		return fmt.Errorf("%w: %s", ErrBadRequest, env.Error)
	}

	if env.Status != response.StatusOK {
		return fmt.Errorf("%w: %s", session.ErrBackendUnavailable, env.Error)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: decode data: %w", session.ErrBackendUnavailable, err)
		}
	}
	return nil
}

// Health проверяет доступность сервера.
func (c *Client) Health(ctx context.Context) error {
	const op = "backend.Health"
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func escape(s string) string {
	return url.PathEscape(s)
}
