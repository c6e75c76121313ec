package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/rental-tracker/internal/models"
)

// ReplaceCredentials в одной транзакции записывает замену в историю
// и переключает аренду на новые учётные данные.
func (s *Storage) ReplaceCredentials(ctx context.Context, rentalID, newEmail, newPassword string,
	reason *string) (*models.Replacement, error) {
	const op = "storage.ReplaceCredentials"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := uuid.Parse(rentalID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrRentalNotFound)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	rep := models.Replacement{
		ID:          uuid.NewString(),
		RentalID:    rentalID,
		NewEmail:    newEmail,
		NewPassword: newPassword,
		Reason:      reason,
	}
	err = tx.QueryRowContext(ctx,
		`SELECT account_email, account_password FROM rentals WHERE id = $1 FOR UPDATE`, rentalID).
		Scan(&rep.OldEmail, &rep.OldPassword)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrRentalNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = tx.QueryRowContext(ctx, `INSERT INTO replacements
			  (id, rental_id, old_email, old_password, new_email, new_password, reason)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING replaced_at`,
		rep.ID, rep.RentalID, rep.OldEmail, rep.OldPassword, rep.NewEmail, rep.NewPassword,
		nullString(rep.Reason)).Scan(&rep.ReplacedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE rentals SET account_email = $1, account_password = $2 WHERE id = $3`,
		newEmail, newPassword, rentalID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rep.ReplacedAt = rep.ReplacedAt.UTC()
	return &rep, nil
}

// ListReplacements возвращает историю замен аренды, новые сначала.
func (s *Storage) ListReplacements(ctx context.Context, rentalID string) ([]models.Replacement, error) {
	const op = "storage.ListReplacements"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result := []models.Replacement{}
	if _, err := uuid.Parse(rentalID); err != nil {
		return result, nil
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT id, rental_id, old_email, old_password,
			      new_email, new_password, reason, replaced_at
			  FROM replacements
			  WHERE rental_id = $1
			  ORDER BY replaced_at DESC`, rentalID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var rep models.Replacement
		var reason sql.NullString
		if err := rows.Scan(&rep.ID, &rep.RentalID, &rep.OldEmail, &rep.OldPassword,
			&rep.NewEmail, &rep.NewPassword, &reason, &rep.ReplacedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if reason.Valid {
			rep.Reason = &reason.String
		}
		rep.ReplacedAt = rep.ReplacedAt.UTC()
		result = append(result, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
