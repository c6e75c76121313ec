package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/rental-tracker/internal/models"
)

type UserStoreMock struct{ mock.Mock }

func (m *UserStoreMock) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *UserStoreMock) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*models.User)
	return users, args.Error(1)
}

func (m *UserStoreMock) SaveUser(ctx context.Context, user models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *UserStoreMock) DeleteUser(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type memorySnapshots struct {
	mu      sync.Mutex
	session *models.Session
	loadErr error
	saves   int
	deletes int
}

func (s *memorySnapshots) Load(context.Context) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.session == nil {
		return nil, nil
	}
	cp := *s.session
	return &cp, nil
}

func (s *memorySnapshots) Save(_ context.Context, sess models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &sess
	s.saves++
	return nil
}

func (s *memorySnapshots) Delete(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.loadErr = nil
	s.deletes++
	return nil
}

func (s *memorySnapshots) get() *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (plainHasher) Verify(plain, hash string) bool { return hash == "hashed:"+plain }

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func noopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newManager(store UserStore, snaps SnapshotStore, opts ...Option) *Manager {
	return New(store, snaps, plainHasher{}, fixedClock{now: testNow}, noopLogger(), opts...)
}

func ptrTime(t time.Time) *time.Time { return &t }

func testUser(id, username, role string, end *time.Time) *models.User {
	return &models.User{
		ID:                  id,
		Username:            username,
		FullName:            strings.ToUpper(username),
		Role:                role,
		Currency:            "€",
		PasswordHash:        "hashed:secret",
		SubscriptionEndDate: end,
	}
}

func loginAs(t *testing.T, m *Manager, store *UserStoreMock, u *models.User) {
	t.Helper()
	store.On("FindUserByUsername", mock.Anything, u.Username).Return(u, nil).Once()
	_, err := m.Login(context.Background(), u.Username, "secret")
	require.NoError(t, err)
}

func TestLogin(t *testing.T) {
	expiredAt := testNow.Add(-24 * time.Hour)

	tests := []struct {
		name      string
		user      *models.User
		findErr   error
		password  string
		wantErr   error
		wantState State
	}{
		{
			name:      "active subscription",
			user:      testUser("u1", "alice", models.RoleUser, ptrTime(testNow.Add(10*24*time.Hour))),
			password:  "secret",
			wantState: StateLoggedIn,
		},
		{
			name:      "no end date",
			user:      testUser("u1", "alice", models.RoleUser, nil),
			password:  "secret",
			wantState: StateLoggedIn,
		},
		{
			name:      "admin bypasses expired subscription",
			user:      testUser("a1", "root", models.RoleAdmin, ptrTime(expiredAt)),
			password:  "secret",
			wantState: StateLoggedIn,
		},
		{
			name:      "expired subscription",
			user:      testUser("u1", "alice", models.RoleUser, ptrTime(expiredAt)),
			password:  "secret",
			wantErr:   ErrSubscriptionExpired,
			wantState: StateLoggedOut,
		},
		{
			name:      "expires exactly now",
			user:      testUser("u1", "alice", models.RoleUser, ptrTime(testNow)),
			password:  "secret",
			wantErr:   ErrSubscriptionExpired,
			wantState: StateLoggedOut,
		},
		{
			name:      "wrong password",
			user:      testUser("u1", "alice", models.RoleUser, nil),
			password:  "nope",
			wantErr:   ErrInvalidCredentials,
			wantState: StateLoggedOut,
		},
		{
			name:      "unknown user",
			findErr:   ErrUserNotFound,
			password:  "secret",
			wantErr:   ErrUserNotFound,
			wantState: StateLoggedOut,
		},
		{
			name:      "backend down",
			findErr:   errors.New("connection refused"),
			password:  "secret",
			wantErr:   ErrBackendUnavailable,
			wantState: StateLoggedOut,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(UserStoreMock)
			snaps := &memorySnapshots{}
			m := newManager(store, snaps)

			username := "alice"
			if tt.user != nil {
				username = tt.user.Username
			}
			store.On("FindUserByUsername", mock.Anything, username).Return(tt.user, tt.findErr)

			sess, err := m.Login(context.Background(), username, tt.password)

			assert.Equal(t, tt.wantState, m.State())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, sess)
				assert.Nil(t, snaps.get())
				assert.False(t, m.IsAuthenticated())
				return
			}
			require.NoError(t, err)
			require.NotNil(t, sess)
			assert.Equal(t, tt.user.ID, sess.UserID)
			assert.Equal(t, tt.user.Currency, sess.Currency)
			require.NotNil(t, snaps.get())
			assert.Equal(t, *sess, *snaps.get())

			cur, trust, ok := m.Current()
			require.True(t, ok)
			assert.Equal(t, TrustVerified, trust)
			assert.Equal(t, *sess, cur)
		})
	}
}

func TestLogin_ExpiredCarriesDate(t *testing.T) {
	store := new(UserStoreMock)
	m := newManager(store, &memorySnapshots{})
	expiredAt := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	store.On("FindUserByUsername", mock.Anything, "alice").
		Return(testUser("u1", "alice", models.RoleUser, ptrTime(expiredAt)), nil)

	_, err := m.Login(context.Background(), "alice", "secret")

	var expErr *SubscriptionExpiredError
	require.ErrorAs(t, err, &expErr)
	assert.Equal(t, expiredAt, expErr.ExpiredDate)
	assert.Contains(t, err.Error(), "2025-06-01")
}

func TestLogin_FailureKeepsPreviousSession(t *testing.T) {
	store := new(UserStoreMock)
	m := newManager(store, &memorySnapshots{})
	alice := testUser("u1", "alice", models.RoleUser, nil)
	loginAs(t, m, store, alice)

	store.On("FindUserByUsername", mock.Anything, "bob").Return(nil, ErrUserNotFound)
	_, err := m.Login(context.Background(), "bob", "secret")
	require.ErrorIs(t, err, ErrUserNotFound)

	assert.Equal(t, StateLoggedIn, m.State())
	cur, _, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, "u1", cur.UserID)
}

func TestLogin_DefaultsCurrency(t *testing.T) {
	store := new(UserStoreMock)
	m := newManager(store, &memorySnapshots{})
	u := testUser("u1", "alice", models.RoleUser, nil)
	u.Currency = ""
	store.On("FindUserByUsername", mock.Anything, "alice").Return(u, nil)

	sess, err := m.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCurrency, sess.Currency)
}

func TestRestoreSession_NoSnapshot(t *testing.T) {
	store := new(UserStoreMock)
	m := newManager(store, &memorySnapshots{})

	require.NoError(t, m.RestoreSession(context.Background()))

	assert.Equal(t, StateLoggedOut, m.State())
	store.AssertNotCalled(t, "FindUserByUsername", mock.Anything, mock.Anything)
}

func TestRestoreSession_CorruptSnapshot(t *testing.T) {
	store := new(UserStoreMock)
	snaps := &memorySnapshots{loadErr: fmt.Errorf("snapshot.Load: %w: invalid character", ErrCorruptSnapshot)}
	m := newManager(store, snaps)

	require.NoError(t, m.RestoreSession(context.Background()))

	assert.Equal(t, StateLoggedOut, m.State())
	assert.Equal(t, 1, snaps.deletes)
}

func TestRestoreSession_UnreadableSnapshotKept(t *testing.T) {
	store := new(UserStoreMock)
	snap := models.Session{UserID: "u1", Username: "alice"}
	snaps := &memorySnapshots{session: &snap, loadErr: errors.New("database is locked")}
	m := newManager(store, snaps)

	require.NoError(t, m.RestoreSession(context.Background()))

	assert.Equal(t, StateLoggedOut, m.State())
	assert.Equal(t, 0, snaps.deletes)
	assert.Equal(t, &snap, snaps.get())
	store.AssertNotCalled(t, "FindUserByUsername", mock.Anything, mock.Anything)
}

func TestRestoreSession_Verified(t *testing.T) {
	store := new(UserStoreMock)
	snaps := &memorySnapshots{session: &models.Session{
		UserID: "u1", Username: "alice", Role: models.RoleUser, Currency: "$",
	}}
	m := newManager(store, snaps)

	fresh := testUser("u1", "alice", models.RoleAdmin, nil)
	store.On("FindUserByUsername", mock.Anything, "alice").Return(fresh, nil)

	require.NoError(t, m.RestoreSession(context.Background()))

	cur, trust, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, TrustVerified, trust)
	assert.Equal(t, models.RoleAdmin, cur.Role)
	assert.Equal(t, "€", cur.Currency)

	// Снимок при восстановлении не перезаписывается.
	assert.Equal(t, 0, snaps.saves)
	require.NotNil(t, snaps.get())
	assert.Equal(t, models.RoleUser, snaps.get().Role)
}

func TestRestoreSession_LogoutAfterVerifiedLeavesNoSnapshot(t *testing.T) {
	store := new(UserStoreMock)
	snaps := &memorySnapshots{session: &models.Session{UserID: "u1", Username: "alice"}}
	m := newManager(store, snaps)
	store.On("FindUserByUsername", mock.Anything, "alice").
		Return(testUser("u1", "alice", models.RoleUser, nil), nil)

	done := make(chan error)
	go func() { done <- m.RestoreSession(context.Background()) }()
	m.Logout(context.Background())
	require.NoError(t, <-done)
	m.Logout(context.Background())

	assert.Equal(t, StateLoggedOut, m.State())
	assert.Nil(t, snaps.get())
	assert.Equal(t, 0, snaps.saves)
}

func TestRestoreSession_SkipsSubscriptionGate(t *testing.T) {
	store := new(UserStoreMock)
	snaps := &memorySnapshots{session: &models.Session{UserID: "u1", Username: "alice"}}
	m := newManager(store, snaps)

	store.On("FindUserByUsername", mock.Anything, "alice").
		Return(testUser("u1", "alice", models.RoleUser, ptrTime(testNow.Add(-48*time.Hour))), nil)

	require.NoError(t, m.RestoreSession(context.Background()))

	assert.True(t, m.IsAuthenticated())
	st, ok := m.SubscriptionStatus()
	require.True(t, ok)
	assert.Equal(t, models.SubscriptionExpired, st.State)
}

func TestRestoreSession_UserDeleted(t *testing.T) {
	store := new(UserStoreMock)
	snaps := &memorySnapshots{session: &models.Session{UserID: "u1", Username: "alice"}}
	m := newManager(store, snaps)

	store.On("FindUserByUsername", mock.Anything, "alice").Return(nil, ErrUserNotFound)

	require.NoError(t, m.RestoreSession(context.Background()))

	assert.Equal(t, StateLoggedOut, m.State())
	assert.False(t, m.IsAuthenticated())
	assert.Nil(t, snaps.get())
}

func TestRestoreSession_BackendError(t *testing.T) {
	store := new(UserStoreMock)
	snap := models.Session{UserID: "u1", Username: "alice", Role: models.RoleUser, Currency: "$"}
	snaps := &memorySnapshots{session: &snap}
	m := newManager(store, snaps)

	store.On("FindUserByUsername", mock.Anything, "alice").Return(nil, errors.New("503 service unavailable"))

	require.NoError(t, m.RestoreSession(context.Background()))

	cur, trust, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, TrustCached, trust)
	assert.Equal(t, snap, cur)
	assert.Equal(t, 0, snaps.saves)
}

func TestRestoreSession_TimeoutTrustsCache(t *testing.T) {
	store := new(UserStoreMock)
	snap := models.Session{
		UserID: "u1", Username: "alice", FullName: "Alice", Role: models.RoleUser, Currency: "$",
		SubscriptionEndDate: ptrTime(testNow.Add(72 * time.Hour)),
	}
	snaps := &memorySnapshots{session: &snap}

	timeout := make(chan time.Time, 1)
	timeout <- testNow
	m := newManager(store, snaps, WithTimer(func(time.Duration) <-chan time.Time { return timeout }))

	release := make(chan struct{})
	store.On("FindUserByUsername", mock.Anything, "alice").
		Run(func(mock.Arguments) { <-release }).
		Return(testUser("u1", "alice", models.RoleAdmin, nil), nil).
		Once()

	require.NoError(t, m.RestoreSession(context.Background()))

	cur, trust, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, TrustCached, trust)
	assert.Equal(t, snap, cur)

	// Ответ бэкенда приходит после таймаута и не должен ничего менять.
	close(release)
	assert.Never(t, func() bool {
		_, trust, _ := m.Current()
		return trust != TrustCached
	}, 50*time.Millisecond, 5*time.Millisecond)

	cur, _, _ = m.Current()
	assert.Equal(t, models.RoleUser, cur.Role)
	assert.Equal(t, 0, snaps.saves)
}

func TestRestoreSession_RealTimeout(t *testing.T) {
	store := new(UserStoreMock)
	snaps := &memorySnapshots{session: &models.Session{UserID: "u1", Username: "alice"}}
	m := newManager(store, snaps, WithRestoreTimeout(20*time.Millisecond))

	release := make(chan struct{})
	defer close(release)
	store.On("FindUserByUsername", mock.Anything, "alice").
		Run(func(mock.Arguments) { <-release }).
		Return(nil, ErrUserNotFound)

	start := time.Now()
	require.NoError(t, m.RestoreSession(context.Background()))

	assert.Less(t, time.Since(start), time.Second)
	_, trust, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, TrustCached, trust)
	assert.NotNil(t, snaps.get())
}

func TestRestoreSession_OnlyOnce(t *testing.T) {
	m := newManager(new(UserStoreMock), &memorySnapshots{})

	require.NoError(t, m.RestoreSession(context.Background()))
	assert.ErrorIs(t, m.RestoreSession(context.Background()), ErrAlreadyRestored)
}

func TestRestoreSession_LogoutDuringRestore(t *testing.T) {
	store := new(UserStoreMock)
	snaps := &memorySnapshots{session: &models.Session{UserID: "u1", Username: "alice"}}

	timeout := make(chan time.Time)
	m := newManager(store, snaps, WithTimer(func(time.Duration) <-chan time.Time { return timeout }))

	entered := make(chan struct{})
	release := make(chan struct{})
	store.On("FindUserByUsername", mock.Anything, "alice").
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(testUser("u1", "alice", models.RoleUser, nil), nil)

	done := make(chan error)
	go func() { done <- m.RestoreSession(context.Background()) }()

	<-entered
	assert.Equal(t, StateRestoring, m.State())
	m.Logout(context.Background())
	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, StateLoggedOut, m.State())
	assert.Nil(t, snaps.get())
}

func TestLogout(t *testing.T) {
	store := new(UserStoreMock)
	snaps := &memorySnapshots{}
	m := newManager(store, snaps)
	loginAs(t, m, store, testUser("u1", "alice", models.RoleUser, nil))
	require.NotNil(t, snaps.get())

	m.Logout(context.Background())

	assert.Equal(t, StateLoggedOut, m.State())
	assert.Nil(t, snaps.get())
	_, trust, ok := m.Current()
	assert.False(t, ok)
	assert.Equal(t, TrustNone, trust)
	_, ok = m.SubscriptionStatus()
	assert.False(t, ok)

	// Повторный выход безопасен.
	m.Logout(context.Background())
	assert.Equal(t, StateLoggedOut, m.State())
}

func TestSubscriptionStatus_Current(t *testing.T) {
	store := new(UserStoreMock)
	m := newManager(store, &memorySnapshots{})
	loginAs(t, m, store, testUser("u1", "alice", models.RoleUser, ptrTime(testNow.Add(5*24*time.Hour))))

	st, ok := m.SubscriptionStatus()
	require.True(t, ok)
	assert.Equal(t, models.SubscriptionCritical, st.State)
	assert.Equal(t, 5, st.DaysRemaining)
}

func TestStateStrings(t *testing.T) {
	assert.Equal(t, "logged_out", StateLoggedOut.String())
	assert.Equal(t, "authenticating", StateAuthenticating.String())
	assert.Equal(t, "logged_in", StateLoggedIn.String())
	assert.Equal(t, "restoring", StateRestoring.String())
	assert.Equal(t, "verified", TrustVerified.String())
	assert.Equal(t, "cached", TrustCached.String())
	assert.Equal(t, "none", TrustNone.String())
}
