// Package rentals реализует бизнес-логику учёта аренды аккаунтов:
// выдачу номеров, расчёт даты окончания, замену учётных данных
// и каталог платформ.
package rentals

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/rental-tracker/internal/lib/subscription"
	"github.com/magabrotheeeer/rental-tracker/internal/models"
	"github.com/magabrotheeeer/rental-tracker/internal/storage"
)

const maxIDAttempts = 3

// ErrInvalidStartDate — дата начала не в формате 2006-01-02.
var ErrInvalidStartDate = errors.New("invalid start date")

// Repository определяет методы хранилища аренд.
type Repository interface {
	CreateRental(ctx context.Context, rental models.Rental) (*models.Rental, error)
	LastRentalID(ctx context.Context) (string, error)
	GetRental(ctx context.Context, id string) (*models.Rental, error)
	ListRentals(ctx context.Context, userID string) ([]*models.Rental, error)
	UpdateRental(ctx context.Context, rental models.Rental) (*models.Rental, error)
	DeleteRental(ctx context.Context, id string) (bool, error)
	ReplaceCredentials(ctx context.Context, rentalID, newEmail, newPassword string,
		reason *string) (*models.Replacement, error)
	ListReplacements(ctx context.Context, rentalID string) ([]models.Replacement, error)
}

// Service управляет арендами.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создаёт сервис аренд.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create присваивает аренде следующий номер и сохраняет её.
// При гонке за номер попытка повторяется.
func (s *Service) Create(ctx context.Context, userID string, in models.DummyRental) (*models.Rental, error) {
	const op = "rentals.Create"

	rental, err := buildRental(in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rental.UserID = userID

	for attempt := 1; ; attempt++ {
		last, err := s.repo.LastRentalID(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		rental.RentalID = NextRentalID(last)

		created, err := s.repo.CreateRental(ctx, rental)
		if errors.Is(err, storage.ErrRentalIDTaken) && attempt < maxIDAttempts {
			s.log.Warn("rental id taken, retrying",
				slog.String("rental_id", rental.RentalID),
				slog.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		s.log.Info("rental created",
			slog.String("rental_id", created.RentalID),
			slog.String("user_id", created.UserID))
		return created, nil
	}
}

// Get возвращает аренду вместе с историей замен.
func (s *Service) Get(ctx context.Context, id string) (*models.Rental, error) {
	const op = "rentals.Get"
	rental, err := s.repo.GetRental(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	history, err := s.repo.ListReplacements(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rental.Replacements = history
	return rental, nil
}

// List возвращает аренды владельца. Пустой userID — все аренды.
func (s *Service) List(ctx context.Context, userID string) ([]*models.Rental, error) {
	const op = "rentals.List"
	list, err := s.repo.ListRentals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// Update перезаписывает поля аренды и пересчитывает дату окончания.
// Номер, владелец и дата создания сохраняются.
func (s *Service) Update(ctx context.Context, id string, in models.DummyRental) (*models.Rental, error) {
	const op = "rentals.Update"

	existing, err := s.repo.GetRental(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rental, err := buildRental(in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rental.ID = existing.ID
	rental.RentalID = existing.RentalID
	rental.UserID = existing.UserID
	rental.CreatedAt = existing.CreatedAt

	updated, err := s.repo.UpdateRental(ctx, rental)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// Delete удаляет аренду. Возвращает false, если её не было.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	const op = "rentals.Delete"
	ok, err := s.repo.DeleteRental(ctx, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if ok {
		s.log.Info("rental deleted", slog.String("id", id))
	}
	return ok, nil
}

// ReplaceCredentials записывает замену учётных данных и возвращает
// обновлённую аренду с историей.
func (s *Service) ReplaceCredentials(ctx context.Context, id string, in models.DummyReplacement) (*models.Rental, error) {
	const op = "rentals.ReplaceCredentials"
	rep, err := s.repo.ReplaceCredentials(ctx, id, in.NewEmail, in.NewPassword, in.Reason)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("credentials replaced",
		slog.String("rental", id),
		slog.String("replacement", rep.ID))
	return s.Get(ctx, id)
}

// ListReplacements возвращает историю замен, новые сначала.
func (s *Service) ListReplacements(ctx context.Context, id string) ([]models.Replacement, error) {
	const op = "rentals.ListReplacements"
	history, err := s.repo.ListReplacements(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return history, nil
}

func buildRental(in models.DummyRental) (models.Rental, error) {
	start, err := time.Parse(time.DateOnly, in.StartDate)
	if err != nil {
		return models.Rental{}, fmt.Errorf("%w: %q", ErrInvalidStartDate, in.StartDate)
	}
	accountType := in.AccountType
	if accountType == "" {
		accountType = models.AccountTypeFull
	}
	profile := in.ProfileName
	if accountType == models.AccountTypeFull {
		profile = nil
	}
	return models.Rental{
		Platform:        in.Platform,
		CustomerName:    in.CustomerName,
		AccountType:     accountType,
		ProfileName:     profile,
		AccountEmail:    in.AccountEmail,
		AccountPassword: in.AccountPassword,
		Price:           in.Price,
		Duration:        in.Duration,
		StartDate:       start,
		ExpirationDate:  subscription.CalculateEndDate(start, in.Duration),
		Notes:           in.Notes,
	}, nil
}
