package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/rental-tracker/internal/migrations"
	"github.com/magabrotheeeer/rental-tracker/internal/models"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя
func (f *TestDataFactory) CreateUser(t *testing.T, username, role string, end *time.Time) *models.User {
	t.Helper()
	u, err := f.storage.CreateUser(context.Background(), models.User{
		Username:                   username,
		FullName:                   "Test " + username,
		Role:                       role,
		Currency:                   "$",
		PasswordHash:               "hashedpassword",
		SubscriptionDurationMonths: 1,
		SubscriptionEndDate:        end,
	})
	require.NoError(t, err)
	return u
}

// CreateRental создает тестовую аренду
func (f *TestDataFactory) CreateRental(t *testing.T, userID, rentalID string, start time.Time, months int) *models.Rental {
	t.Helper()
	r, err := f.storage.CreateRental(context.Background(), models.Rental{
		RentalID:        rentalID,
		UserID:          userID,
		Platform:        "Netflix",
		CustomerName:    "Customer " + rentalID,
		AccountType:     models.AccountTypeFull,
		AccountEmail:    "acc-" + uuid.NewString()[:8] + "@example.com",
		AccountPassword: "pass",
		Price:           9.99,
		Duration:        months,
		StartDate:       start,
		ExpirationDate:  start.AddDate(0, months, 0),
	})
	require.NoError(t, err)
	return r
}

// setupTestDatabase поднимает PostgreSQL в контейнере и применяет миграции
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Пробуем подключиться несколько раз с ретраями
	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err, "Failed to create storage after retries")

	migrationsPath, err := filepath.Abs("../../migrations")
	require.NoError(t, err)
	_, err = migrations.Run(storage.DB, migrationsPath)
	require.NoError(t, err)
	require.NoError(t, CheckDatabaseReady(ctx, storage))

	cleanup := func() {
		_ = storage.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return storage, cleanup
}
