package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/rental-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/rental-tracker/internal/models"
)

// NewUser — данные для создания пользователя администратором.
type NewUser struct {
	Username                   string
	Password                   string
	FullName                   string
	Role                       string
	Currency                   string
	SubscriptionStartDate      *time.Time
	SubscriptionDurationMonths int
}

// UserUpdate — изменяемые поля пользователя. Пустые значения оставляют поле без изменений.
type UserUpdate struct {
	Username                   string
	Password                   string
	FullName                   string
	Role                       string
	Currency                   string
	SubscriptionStartDate      *time.Time
	SubscriptionDurationMonths int
}

// ListUsers возвращает всех пользователей в порядке создания.
func (m *Manager) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "session.ListUsers"
	users, err := m.store.ListUsers(ctx)
	if err != nil {
		return nil, backendError(op, err)
	}
	return users, nil
}

// CreateUser создаёт пользователя. Имя должно быть свободно.
func (m *Manager) CreateUser(ctx context.Context, req NewUser) (*models.User, error) {
	const op = "session.CreateUser"
	log := m.log.With(sl.Op(op), slog.String("username", req.Username))

	if err := m.ensureUsernameFree(ctx, op, req.Username, ""); err != nil {
		return nil, err
	}

	hash, err := m.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	currency := req.Currency
	if currency == "" {
		currency = models.DefaultCurrency
	}

	saved, err := m.store.SaveUser(ctx, models.User{
		Username:                   req.Username,
		FullName:                   req.FullName,
		Role:                       role,
		Currency:                   currency,
		PasswordHash:               hash,
		SubscriptionStartDate:      req.SubscriptionStartDate,
		SubscriptionDurationMonths: req.SubscriptionDurationMonths,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			return nil, fmt.Errorf("%s: %w", op, ErrDuplicateUsername)
		}
		log.Error("failed to save user", sl.Err(err))
		return nil, backendError(op, err)
	}

	log.Info("user created", slog.String("id", saved.ID))
	return saved, nil
}

// UpdateUser изменяет пользователя. Если изменён текущий пользователь,
// сессия и её снимок обновляются.
func (m *Manager) UpdateUser(ctx context.Context, userID string, upd UserUpdate) (*models.User, error) {
	const op = "session.UpdateUser"
	log := m.log.With(sl.Op(op), slog.String("id", userID))

	users, err := m.store.ListUsers(ctx)
	if err != nil {
		return nil, backendError(op, err)
	}
	existing := findByID(users, userID)
	if existing == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}

	updated := *existing
	if upd.Username != "" && upd.Username != existing.Username {
		if err := m.ensureUsernameFree(ctx, op, upd.Username, userID); err != nil {
			return nil, err
		}
		updated.Username = upd.Username
	}
	if upd.FullName != "" {
		updated.FullName = upd.FullName
	}
	if upd.Role != "" {
		updated.Role = upd.Role
	}
	if upd.Currency != "" {
		updated.Currency = upd.Currency
	}
	if upd.Password != "" {
		hash, err := m.hasher.Hash(upd.Password)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		updated.PasswordHash = hash
	}
	if upd.SubscriptionStartDate != nil {
		updated.SubscriptionStartDate = upd.SubscriptionStartDate
	}
	if upd.SubscriptionDurationMonths > 0 {
		updated.SubscriptionDurationMonths = upd.SubscriptionDurationMonths
	}

	saved, err := m.store.SaveUser(ctx, updated)
	if err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			return nil, fmt.Errorf("%s: %w", op, ErrDuplicateUsername)
		}
		log.Error("failed to save user", sl.Err(err))
		return nil, backendError(op, err)
	}

	m.mu.Lock()
	self := m.current != nil && m.current.UserID == saved.ID
	var sess models.Session
	if self {
		sess = models.SessionFromUser(saved)
		m.generation++
		m.setLoggedInLocked(sess, TrustVerified)
	}
	m.mu.Unlock()

	if self {
		if err := m.snapshots.Save(ctx, sess); err != nil {
			log.Warn("failed to refresh session snapshot", sl.Err(err))
		}
	}

	log.Info("user updated")
	return saved, nil
}

// RemoveUser удаляет пользователя. Нельзя удалить себя и последнего администратора.
func (m *Manager) RemoveUser(ctx context.Context, userID string) error {
	const op = "session.RemoveUser"
	log := m.log.With(sl.Op(op), slog.String("id", userID))

	m.mu.Lock()
	self := m.current != nil && m.current.UserID == userID
	m.mu.Unlock()
	if self {
		return fmt.Errorf("%s: %w", op, ErrSelfDeletionForbidden)
	}

	users, err := m.store.ListUsers(ctx)
	if err != nil {
		return backendError(op, err)
	}
	if target := findByID(users, userID); target != nil && target.IsAdmin() && countAdmins(users) <= 1 {
		return fmt.Errorf("%s: %w", op, ErrLastAdminProtected)
	}

	ok, err := m.store.DeleteUser(ctx, userID)
	if err != nil {
		log.Error("failed to delete user", sl.Err(err))
		return backendError(op, err)
	}
	if !ok {
		return backendError(op, errors.New("user was not deleted"))
	}

	log.Info("user removed")
	return nil
}

// ensureUsernameFree проверяет, что имя не занято другим пользователем (кроме ownerID).
func (m *Manager) ensureUsernameFree(ctx context.Context, op, username, ownerID string) error {
	found, err := m.store.FindUserByUsername(ctx, username)
	switch {
	case errors.Is(err, ErrUserNotFound):
		return nil
	case err != nil:
		return backendError(op, err)
	case found != nil && found.ID != ownerID:
		return fmt.Errorf("%s: %w", op, ErrDuplicateUsername)
	}
	return nil
}

func findByID(users []*models.User, id string) *models.User {
	for _, u := range users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func countAdmins(users []*models.User) int {
	n := 0
	for _, u := range users {
		if u.IsAdmin() {
			n++
		}
	}
	return n
}
