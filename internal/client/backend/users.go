package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/magabrotheeeer/rental-tracker/internal/models"
	"github.com/magabrotheeeer/rental-tracker/internal/services/session"
)

// FindUserByUsername ищет пользователя по точному имени.
func (c *Client) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "backend.FindUserByUsername"

	var user models.User
	err := c.do(ctx, http.MethodGet, "/api/v1/users/by-username/"+escape(username), nil, &user)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, session.ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

// ListUsers возвращает всех пользователей в порядке создания.
func (c *Client) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "backend.ListUsers"

	var users []*models.User
	if err := c.do(ctx, http.MethodGet, "/api/v1/users", nil, &users); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// SaveUser создаёт или обновляет пользователя.
func (c *Client) SaveUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "backend.SaveUser"

	var saved models.User
	err := c.do(ctx, http.MethodPut, "/api/v1/users", user, &saved)
	switch {
	case errors.Is(err, ErrConflict):
		return nil, fmt.Errorf("%s: %w", op, session.ErrDuplicateUsername)
	case errors.Is(err, ErrNotFound):
		return nil, fmt.Errorf("%s: %w", op, session.ErrUserNotFound)
	case err != nil:
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &saved, nil
}

// DeleteUser удаляет пользователя. Возвращает false, если удалять было нечего.
func (c *Client) DeleteUser(ctx context.Context, id string) (bool, error) {
	const op = "backend.DeleteUser"

	var res struct {
		Deleted bool `json:"deleted"`
	}
	err := c.do(ctx, http.MethodDelete, "/api/v1/users/"+escape(id), nil, &res)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return res.Deleted, nil
}
