package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/rental-tracker/internal/models"
)

const userColumns = `id, username, full_name, role, currency, password_hash,
	subscription_start_date, subscription_duration_months, subscription_end_date, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	var start, end sql.NullTime
	if err := row.Scan(&u.ID, &u.Username, &u.FullName, &u.Role, &u.Currency, &u.PasswordHash,
		&start, &u.SubscriptionDurationMonths, &end, &u.CreatedAt); err != nil {
		return nil, err
	}
	if start.Valid {
		t := start.Time.UTC()
		u.SubscriptionStartDate = &t
	}
	if end.Valid {
		t := end.Time.UTC()
		u.SubscriptionEndDate = &t
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// CreateUser сохраняет нового пользователя. Если ID пуст, он генерируется.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	query := `INSERT INTO users (id, username, full_name, role, currency, password_hash,
			      subscription_start_date, subscription_duration_months, subscription_end_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING ` + userColumns
	created, err := scanUser(s.DB.QueryRowContext(ctx, query,
		user.ID, user.Username, user.FullName, user.Role, user.Currency, user.PasswordHash,
		nullTime(user.SubscriptionStartDate), user.SubscriptionDurationMonths,
		nullTime(user.SubscriptionEndDate)))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrUsernameTaken)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// UpdateUser перезаписывает все изменяемые поля пользователя по ID.
func (s *Storage) UpdateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.UpdateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET username = $1, full_name = $2, role = $3, currency = $4, password_hash = $5,
			      subscription_start_date = $6, subscription_duration_months = $7,
			      subscription_end_date = $8
			  WHERE id = $9
			  RETURNING ` + userColumns
	updated, err := scanUser(s.DB.QueryRowContext(ctx, query,
		user.Username, user.FullName, user.Role, user.Currency, user.PasswordHash,
		nullTime(user.SubscriptionStartDate), user.SubscriptionDurationMonths,
		nullTime(user.SubscriptionEndDate), user.ID))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	case isUniqueViolation(err):
		return nil, fmt.Errorf("%s: %w", op, ErrUsernameTaken)
	case err != nil:
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// GetUserByUsername возвращает пользователя по точному имени.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по ID.
func (s *Storage) GetUser(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// ListUsers возвращает всех пользователей в порядке создания.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at, username`
	return s.queryUsers(ctx, op, query)
}

// ListUsersExpiringBetween возвращает обычных пользователей, чья подписка
// заканчивается в полуинтервале [from, to).
func (s *Storage) ListUsersExpiringBetween(ctx context.Context, from, to time.Time) ([]*models.User, error) {
	const op = "storage.ListUsersExpiringBetween"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE role <> 'admin'
			    AND subscription_end_date >= $1
			    AND subscription_end_date < $2
			  ORDER BY subscription_end_date`
	return s.queryUsers(ctx, op, query, from, to)
}

func (s *Storage) queryUsers(ctx context.Context, op, query string, args ...any) ([]*models.User, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []*models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// DeleteUser удаляет пользователя. Возвращает false, если пользователя не было.
func (s *Storage) DeleteUser(ctx context.Context, id string) (bool, error) {
	const op = "storage.DeleteUser"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	result, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected > 0, nil
}
