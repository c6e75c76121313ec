// Package directory содержит серверную бизнес-логику работы с пользователями:
// поиск с кэшированием в Redis, сохранение с пересчётом даты окончания подписки
// и создание администратора по умолчанию.
package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/rental-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/rental-tracker/internal/lib/subscription"
	"github.com/magabrotheeeer/rental-tracker/internal/models"
	"github.com/magabrotheeeer/rental-tracker/internal/storage"
)

// UserRepository определяет методы хранилища пользователей.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	UpdateUser(ctx context.Context, user models.User) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	DeleteUser(ctx context.Context, id string) (bool, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Hasher хэширует пароли.
type Hasher interface {
	Hash(plain string) (string, error)
}

// Directory реализует операции над пользователями с кэшированием.
type Directory struct {
	repo     UserRepository
	cache    Cache
	cacheTTL time.Duration
	clock    subscription.Clock
	log      *slog.Logger
}

// New создаёт Directory. cache может быть nil, тогда кэш не используется.
func New(repo UserRepository, cache Cache, cacheTTL time.Duration, clock subscription.Clock, log *slog.Logger) *Directory {
	if clock == nil {
		clock = subscription.SystemClock{}
	}
	return &Directory{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		clock:    clock,
		log:      log,
	}
}

func cacheKey(username string) string {
	return "user:" + username
}

// FindUserByUsername возвращает пользователя, сначала заглядывая в кэш.
func (d *Directory) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "directory.FindUserByUsername"
	key := cacheKey(username)

	if d.cache != nil {
		var cached models.User
		found, err := d.cache.Get(ctx, key, &cached)
		if err != nil {
			d.log.Warn("failed to read from cache", slog.String("key", key), sl.Err(err))
		}
		if found {
			return &cached, nil
		}
	}

	user, err := d.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if d.cache != nil {
		if err := d.cache.Set(ctx, key, user, d.cacheTTL); err != nil {
			d.log.Warn("failed to add to cache", slog.String("key", key), sl.Err(err))
		}
	}
	return user, nil
}

// ListUsers возвращает всех пользователей в порядке создания.
func (d *Directory) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "directory.ListUsers"
	users, err := d.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// SaveUser создаёт пользователя, если записи с таким ID нет, иначе обновляет её.
// Дата окончания подписки всегда пересчитывается из даты начала и длительности.
func (d *Directory) SaveUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "directory.SaveUser"

	var existing *models.User
	if user.ID != "" {
		found, err := d.repo.GetUser(ctx, user.ID)
		switch {
		case err == nil:
			existing = found
		case !errors.Is(err, storage.ErrUserNotFound):
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.Currency == "" {
		user.Currency = models.DefaultCurrency
	}
	if existing == nil {
		if user.SubscriptionStartDate == nil {
			now := d.clock.Now()
			user.SubscriptionStartDate = &now
		}
		if user.SubscriptionDurationMonths <= 0 {
			user.SubscriptionDurationMonths = 1
		}
	}
	if user.SubscriptionStartDate != nil {
		end := subscription.CalculateEndDate(*user.SubscriptionStartDate, user.SubscriptionDurationMonths)
		user.SubscriptionEndDate = &end
	}

	var saved *models.User
	var err error
	if existing == nil {
		saved, err = d.repo.CreateUser(ctx, user)
	} else {
		saved, err = d.repo.UpdateUser(ctx, user)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	d.invalidate(ctx, saved.Username)
	if existing != nil && existing.Username != saved.Username {
		d.invalidate(ctx, existing.Username)
	}

	d.log.Info("user saved", slog.String("id", saved.ID), slog.Bool("created", existing == nil))
	return saved, nil
}

// DeleteUser удаляет пользователя и сбрасывает его запись в кэше.
func (d *Directory) DeleteUser(ctx context.Context, id string) (bool, error) {
	const op = "directory.DeleteUser"

	user, err := d.repo.GetUser(ctx, id)
	if errors.Is(err, storage.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	ok, err := d.repo.DeleteUser(ctx, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	d.invalidate(ctx, user.Username)
	return ok, nil
}

// EnsureDefaultAdmin создаёт администратора, если пользователя с таким именем ещё нет.
// Возвращает true, если администратор был создан.
func (d *Directory) EnsureDefaultAdmin(ctx context.Context, admin models.User, password string, hasher Hasher) (bool, error) {
	const op = "directory.EnsureDefaultAdmin"

	_, err := d.repo.GetUserByUsername(ctx, admin.Username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if password == "" {
		return false, fmt.Errorf("%s: default admin password is empty", op)
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	admin.ID = ""
	admin.Role = models.RoleAdmin
	admin.PasswordHash = hash
	admin.SubscriptionDurationMonths = 12

	if _, err := d.SaveUser(ctx, admin); err != nil {
		if errors.Is(err, storage.ErrUsernameTaken) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}
	d.log.Info("default admin created", slog.String("username", admin.Username))
	return true, nil
}

func (d *Directory) invalidate(ctx context.Context, username string) {
	if d.cache == nil {
		return
	}
	key := cacheKey(username)
	if err := d.cache.Invalidate(ctx, key); err != nil {
		d.log.Warn("failed to remove from cache", slog.String("key", key), sl.Err(err))
	}
}
