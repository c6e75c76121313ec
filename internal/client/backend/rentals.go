package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/magabrotheeeer/rental-tracker/internal/models"
)

// Catalogue — список платформ: встроенные, пользовательские и объединённый.
type Catalogue struct {
	Defaults []string `json:"defaults"`
	Custom   []string `json:"custom"`
	All      []string `json:"all"`
}

// ListPlatforms возвращает полный каталог платформ.
func (c *Client) ListPlatforms(ctx context.Context) (*Catalogue, error) {
	const op = "backend.ListPlatforms"

	var cat Catalogue
	if err := c.do(ctx, http.MethodGet, "/api/v1/platforms", nil, &cat); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cat, nil
}

// ListCustomPlatforms возвращает пользовательские платформы по алфавиту.
func (c *Client) ListCustomPlatforms(ctx context.Context) ([]string, error) {
	const op = "backend.ListCustomPlatforms"

	var names []string
	if err := c.do(ctx, http.MethodGet, "/api/v1/platforms/custom", nil, &names); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return names, nil
}

// AddCustomPlatform добавляет платформу. Возвращает false, если имя уже есть.
func (c *Client) AddCustomPlatform(ctx context.Context, name string) (bool, error) {
	const op = "backend.AddCustomPlatform"

	var res struct {
		Added bool `json:"added"`
	}
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/api/v1/platforms/custom", body, &res); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return res.Added, nil
}

// ListRentals возвращает аренды владельца или все аренды при пустом userID.
func (c *Client) ListRentals(ctx context.Context, userID string) ([]*models.Rental, error) {
	const op = "backend.ListRentals"

	path := "/api/v1/rentals"
	if userID != "" {
		path += "?" + url.Values{"user_id": {userID}}.Encode()
	}
	var rentals []*models.Rental
	if err := c.do(ctx, http.MethodGet, path, nil, &rentals); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rentals, nil
}

// GetRental возвращает аренду вместе с историей замен.
func (c *Client) GetRental(ctx context.Context, id string) (*models.Rental, error) {
	const op = "backend.GetRental"

	var rental models.Rental
	if err := c.do(ctx, http.MethodGet, "/api/v1/rentals/"+escape(id), nil, &rental); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &rental, nil
}

// CreateRental создаёт аренду. Владелец передаётся в req.UserID.
func (c *Client) CreateRental(ctx context.Context, req models.DummyRental) (*models.Rental, error) {
	const op = "backend.CreateRental"

	var rental models.Rental
	if err := c.do(ctx, http.MethodPost, "/api/v1/rentals", req, &rental); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &rental, nil
}

// UpdateRental изменяет аренду.
func (c *Client) UpdateRental(ctx context.Context, id string, req models.DummyRental) (*models.Rental, error) {
	const op = "backend.UpdateRental"

	var rental models.Rental
	if err := c.do(ctx, http.MethodPut, "/api/v1/rentals/"+escape(id), req, &rental); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &rental, nil
}

// DeleteRental удаляет аренду вместе с историей замен.
func (c *Client) DeleteRental(ctx context.Context, id string) error {
	const op = "backend.DeleteRental"

	if err := c.do(ctx, http.MethodDelete, "/api/v1/rentals/"+escape(id), nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ReplaceCredentials записывает замену учётных данных и возвращает обновлённую аренду.
func (c *Client) ReplaceCredentials(ctx context.Context, id string, req models.DummyReplacement) (*models.Rental, error) {
	const op = "backend.ReplaceCredentials"

	var rental models.Rental
	path := "/api/v1/rentals/" + escape(id) + "/replacements"
	if err := c.do(ctx, http.MethodPost, path, req, &rental); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &rental, nil
}

// ListReplacements возвращает историю замен аренды, новые сначала.
func (c *Client) ListReplacements(ctx context.Context, id string) ([]models.Replacement, error) {
	const op = "backend.ListReplacements"

	var items []models.Replacement
	path := "/api/v1/rentals/" + escape(id) + "/replacements"
	if err := c.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}
