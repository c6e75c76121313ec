package storage

import (
	"context"
	"fmt"
)

// ListCustomPlatforms возвращает названия пользовательских платформ по алфавиту.
func (s *Storage) ListCustomPlatforms(ctx context.Context) ([]string, error) {
	const op = "storage.ListCustomPlatforms"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT name FROM custom_platforms ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return names, nil
}

// AddCustomPlatform добавляет платформу. Возвращает false, если такое имя уже есть.
func (s *Storage) AddCustomPlatform(ctx context.Context, name string) (bool, error) {
	const op = "storage.AddCustomPlatform"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx,
		`INSERT INTO custom_platforms (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected > 0, nil
}
