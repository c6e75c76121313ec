// Package session реализует клиентский менеджер сессии: вход с проверкой подписки,
// сохранение локального снимка сессии, восстановление сессии при запуске
// с пониженным доверием при недоступности бэкенда, выход и администрирование пользователей.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/magabrotheeeer/rental-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/rental-tracker/internal/lib/subscription"
	"github.com/magabrotheeeer/rental-tracker/internal/models"
)

// DefaultRestoreTimeout — сколько RestoreSession ждёт ответа бэкенда,
// прежде чем довериться локальному снимку.
const DefaultRestoreTimeout = 5 * time.Second

// UserStore определяет методы удалённого хранилища пользователей.
type UserStore interface {
	// FindUserByUsername возвращает пользователя или ошибку, совместимую с ErrUserNotFound.
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	// ListUsers возвращает всех пользователей в порядке создания.
	ListUsers(ctx context.Context) ([]*models.User, error)
	// SaveUser создаёт пользователя без ID либо обновляет существующего.
	SaveUser(ctx context.Context, user models.User) (*models.User, error)
	// DeleteUser удаляет пользователя по ID.
	DeleteUser(ctx context.Context, id string) (bool, error)
}

// SnapshotStore хранит локальный снимок сессии.
type SnapshotStore interface {
	// Load возвращает (nil, nil), если снимка нет.
	Load(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, s models.Session) error
	Delete(ctx context.Context) error
}

// PasswordHasher хэширует и проверяет пароли.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// Option настраивает Manager.
type Option func(*Manager)

// WithRestoreTimeout задаёт таймаут ожидания бэкенда при восстановлении сессии.
func WithRestoreTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.restoreTimeout = d
		}
	}
}

// WithTimer подменяет источник таймера для гонки восстановления.
func WithTimer(after func(time.Duration) <-chan time.Time) Option {
	return func(m *Manager) {
		if after != nil {
			m.after = after
		}
	}
}

// Manager — менеджер сессии. Создаётся один раз на процесс.
type Manager struct {
	store     UserStore
	snapshots SnapshotStore
	hasher    PasswordHasher
	clock     subscription.Clock
	log       *slog.Logger

	restoreTimeout time.Duration
	after          func(time.Duration) <-chan time.Time

	mu         sync.Mutex
	state      State
	current    *models.Session
	trust      TrustLevel
	generation uint64
	restored   bool
}

// New создаёт менеджер сессии в состоянии LoggedOut.
func New(store UserStore, snapshots SnapshotStore, hasher PasswordHasher, clock subscription.Clock,
	log *slog.Logger, opts ...Option) *Manager {
	if clock == nil {
		clock = subscription.SystemClock{}
	}
	m := &Manager{
		store:          store,
		snapshots:      snapshots,
		hasher:         hasher,
		clock:          clock,
		log:            log,
		restoreTimeout: DefaultRestoreTimeout,
		after:          time.After,
		state:          StateLoggedOut,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Login проверяет учётные данные и подписку, после чего открывает проверенную сессию.
// Администраторы не проходят проверку подписки.
func (m *Manager) Login(ctx context.Context, username, password string) (*models.Session, error) {
	const op = "session.Login"
	log := m.log.With(sl.Op(op), slog.String("username", username))

	m.mu.Lock()
	prevState := m.state
	m.state = StateAuthenticating
	m.mu.Unlock()

	fail := func(err error) (*models.Session, error) {
		m.mu.Lock()
		if m.state == StateAuthenticating {
			m.state = prevState
		}
		m.mu.Unlock()
		return nil, err
	}

	user, err := m.store.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return fail(fmt.Errorf("%s: %w", op, ErrUserNotFound))
		}
		log.Error("failed to find user", sl.Err(err))
		return fail(backendError(op, err))
	}
	if user == nil {
		return fail(fmt.Errorf("%s: %w", op, ErrUserNotFound))
	}

	if !m.hasher.Verify(password, user.PasswordHash) {
		return fail(fmt.Errorf("%s: %w", op, ErrInvalidCredentials))
	}

	if !user.IsAdmin() && subscription.IsExpired(user.SubscriptionEndDate, m.clock.Now()) {
		log.Info("login rejected: subscription expired")
		return fail(fmt.Errorf("%s: %w", op, &SubscriptionExpiredError{ExpiredDate: *user.SubscriptionEndDate}))
	}

	sess := models.SessionFromUser(user)

	m.mu.Lock()
	m.generation++
	m.setLoggedInLocked(sess, TrustVerified)
	m.mu.Unlock()

	if err := m.snapshots.Save(ctx, sess); err != nil {
		log.Warn("failed to persist session snapshot", sl.Err(err))
	}

	log.Info("user logged in")
	return &sess, nil
}

type fetchResult struct {
	user *models.User
	err  error
}

// RestoreSession восстанавливает сессию из локального снимка. Вызывается один раз при запуске.
//
// Снимок проверяется запросом к бэкенду, который соревнуется с таймаутом.
// Если бэкенд не ответил вовремя или вернул ошибку, сессия принимается
// из снимка с уровнем доверия Cached. Если пользователь удалён, снимок стирается.
// Сам снимок при восстановлении не перезаписывается.
func (m *Manager) RestoreSession(ctx context.Context) error {
	const op = "session.RestoreSession"
	log := m.log.With(sl.Op(op))

	m.mu.Lock()
	if m.restored {
		m.mu.Unlock()
		return fmt.Errorf("%s: %w", op, ErrAlreadyRestored)
	}
	m.restored = true
	m.mu.Unlock()

	snap, err := m.snapshots.Load(ctx)
	if errors.Is(err, ErrCorruptSnapshot) {
		log.Warn("discarding corrupt session snapshot", sl.Err(err))
		if err := m.snapshots.Delete(ctx); err != nil {
			log.Warn("failed to delete session snapshot", sl.Err(err))
		}
		m.resetLoggedOut()
		return nil
	}
	if err != nil {
		// Снимок остаётся на месте: при следующем запуске он может прочитаться.
		log.Warn("session snapshot is unavailable, starting logged out", sl.Err(err))
		m.resetLoggedOut()
		return nil
	}
	if snap == nil {
		m.resetLoggedOut()
		return nil
	}
	log = log.With(slog.String("username", snap.Username))

	m.mu.Lock()
	m.state = StateRestoring
	m.generation++
	gen := m.generation
	m.mu.Unlock()

	results := make(chan fetchResult, 1)
	go func() {
		user, err := m.store.FindUserByUsername(ctx, snap.Username)
		results <- fetchResult{user: user, err: err}
	}()

	select {
	case res := <-results:
		m.applyRestore(ctx, log, gen, *snap, res)
	case <-m.after(m.restoreTimeout):
		log.Warn("backend did not answer in time, trusting cached session",
			slog.Duration("timeout", m.restoreTimeout))
		m.trustCached(gen, *snap)
	case <-ctx.Done():
		log.Warn("restore interrupted, trusting cached session", sl.Err(ctx.Err()))
		m.trustCached(gen, *snap)
	}
	return nil
}

func (m *Manager) applyRestore(ctx context.Context, log *slog.Logger, gen uint64, snap models.Session, res fetchResult) {
	switch {
	case res.err == nil && res.user != nil:
		sess := models.SessionFromUser(res.user)
		m.mu.Lock()
		if m.generation != gen {
			m.mu.Unlock()
			log.Debug("dropping stale restore result")
			return
		}
		m.setLoggedInLocked(sess, TrustVerified)
		m.mu.Unlock()
		log.Info("session restored")

	case res.err == nil || errors.Is(res.err, ErrUserNotFound):
		m.mu.Lock()
		if m.generation != gen {
			m.mu.Unlock()
			log.Debug("dropping stale restore result")
			return
		}
		m.clearLocked()
		m.mu.Unlock()
		if err := m.snapshots.Delete(ctx); err != nil {
			log.Warn("failed to delete session snapshot", sl.Err(err))
		}
		log.Info("user no longer exists, session discarded")

	default:
		log.Warn("backend unavailable, trusting cached session", sl.Err(res.err))
		m.trustCached(gen, snap)
	}
}

func (m *Manager) trustCached(gen uint64, snap models.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.generation != gen {
		return
	}
	m.setLoggedInLocked(snap, TrustCached)
}

// Logout завершает сессию и удаляет локальный снимок. Не возвращает ошибок.
func (m *Manager) Logout(ctx context.Context) {
	const op = "session.Logout"

	m.mu.Lock()
	m.generation++
	m.clearLocked()
	m.mu.Unlock()

	if err := m.snapshots.Delete(ctx); err != nil {
		m.log.Warn("failed to delete session snapshot", sl.Op(op), sl.Err(err))
	}
}

// State возвращает текущее состояние менеджера.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Current возвращает копию текущей сессии и уровень доверия к ней.
func (m *Manager) Current() (models.Session, TrustLevel, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return models.Session{}, TrustNone, false
	}
	return *m.current, m.trust, true
}

// IsAuthenticated сообщает, открыта ли сессия.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateLoggedIn && m.current != nil
}

// SubscriptionStatus классифицирует подписку текущего пользователя.
func (m *Manager) SubscriptionStatus() (models.SubscriptionStatus, bool) {
	sess, _, ok := m.Current()
	if !ok {
		return models.SubscriptionStatus{}, false
	}
	return subscription.Status(sess.SubscriptionEndDate, m.clock.Now()), true
}

func (m *Manager) resetLoggedOut() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
}

func (m *Manager) setLoggedInLocked(sess models.Session, trust TrustLevel) {
	m.current = &sess
	m.trust = trust
	m.state = StateLoggedIn
}

func (m *Manager) clearLocked() {
	m.current = nil
	m.trust = TrustNone
	m.state = StateLoggedOut
}
