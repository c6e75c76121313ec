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

const rentalColumns = `id, rental_id, user_id, platform, customer_name, account_type, profile_name,
	account_email, account_password, price, duration, start_date, expiration_date, notes, created_at`

func scanRental(row rowScanner) (*models.Rental, error) {
	var r models.Rental
	var profile, notes sql.NullString
	if err := row.Scan(&r.ID, &r.RentalID, &r.UserID, &r.Platform, &r.CustomerName, &r.AccountType,
		&profile, &r.AccountEmail, &r.AccountPassword, &r.Price, &r.Duration, &r.StartDate,
		&r.ExpirationDate, &notes, &r.CreatedAt); err != nil {
		return nil, err
	}
	if profile.Valid {
		r.ProfileName = &profile.String
	}
	if notes.Valid {
		r.Notes = &notes.String
	}
	r.StartDate = r.StartDate.UTC()
	r.ExpirationDate = r.ExpirationDate.UTC()
	r.CreatedAt = r.CreatedAt.UTC()
	return &r, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// CreateRental сохраняет аренду. Если ID пуст, он генерируется.
func (s *Storage) CreateRental(ctx context.Context, rental models.Rental) (*models.Rental, error) {
	const op = "storage.CreateRental"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if rental.ID == "" {
		rental.ID = uuid.NewString()
	}
	query := `INSERT INTO rentals (id, rental_id, user_id, platform, customer_name, account_type,
			      profile_name, account_email, account_password, price, duration, start_date,
			      expiration_date, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			  RETURNING ` + rentalColumns
	created, err := scanRental(s.DB.QueryRowContext(ctx, query,
		rental.ID, rental.RentalID, rental.UserID, rental.Platform, rental.CustomerName,
		rental.AccountType, nullString(rental.ProfileName), rental.AccountEmail,
		rental.AccountPassword, rental.Price, rental.Duration, rental.StartDate,
		rental.ExpirationDate, nullString(rental.Notes)))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrRentalIDTaken)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// LastRentalID возвращает номер последней созданной аренды или пустую строку.
func (s *Storage) LastRentalID(ctx context.Context) (string, error) {
	const op = "storage.LastRentalID"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var id string
	err := s.DB.QueryRowContext(ctx,
		`SELECT rental_id FROM rentals ORDER BY created_at DESC, rental_id DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetRental возвращает аренду по ID без истории замен.
func (s *Storage) GetRental(ctx context.Context, id string) (*models.Rental, error) {
	const op = "storage.GetRental"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrRentalNotFound)
	}
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	r, err := scanRental(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrRentalNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

// ListRentals возвращает аренды владельца, новые сначала. Пустой userID — все аренды.
func (s *Storage) ListRentals(ctx context.Context, userID string) ([]*models.Rental, error) {
	const op = "storage.ListRentals"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if userID == "" {
		return s.queryRentals(ctx, op, `SELECT `+rentalColumns+` FROM rentals ORDER BY created_at DESC`)
	}
	if _, err := uuid.Parse(userID); err != nil {
		return []*models.Rental{}, nil
	}
	return s.queryRentals(ctx, op,
		`SELECT `+rentalColumns+` FROM rentals WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

// ListRentalsExpiringOn возвращает аренды, истекающие в указанный день.
func (s *Storage) ListRentalsExpiringOn(ctx context.Context, day time.Time) ([]*models.Rental, error) {
	const op = "storage.ListRentalsExpiringOn"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	return s.queryRentals(ctx, op,
		`SELECT `+rentalColumns+` FROM rentals WHERE expiration_date = $1::date ORDER BY rental_id`,
		day.Format(time.DateOnly))
}

func (s *Storage) queryRentals(ctx context.Context, op, query string, args ...any) ([]*models.Rental, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []*models.Rental{}
	for rows.Next() {
		r, err := scanRental(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateRental перезаписывает изменяемые поля аренды. Номер и владелец не меняются.
func (s *Storage) UpdateRental(ctx context.Context, rental models.Rental) (*models.Rental, error) {
	const op = "storage.UpdateRental"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := uuid.Parse(rental.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrRentalNotFound)
	}
	query := `UPDATE rentals
			  SET platform = $1, customer_name = $2, account_type = $3, profile_name = $4,
			      account_email = $5, account_password = $6, price = $7, duration = $8,
			      start_date = $9, expiration_date = $10, notes = $11
			  WHERE id = $12
			  RETURNING ` + rentalColumns
	updated, err := scanRental(s.DB.QueryRowContext(ctx, query,
		rental.Platform, rental.CustomerName, rental.AccountType, nullString(rental.ProfileName),
		rental.AccountEmail, rental.AccountPassword, rental.Price, rental.Duration,
		rental.StartDate, rental.ExpirationDate, nullString(rental.Notes), rental.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrRentalNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// DeleteRental удаляет аренду вместе с историей замен.
func (s *Storage) DeleteRental(ctx context.Context, id string) (bool, error) {
	const op = "storage.DeleteRental"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	result, err := s.DB.ExecContext(ctx, `DELETE FROM rentals WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected > 0, nil
}
