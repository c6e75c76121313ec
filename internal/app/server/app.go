package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/rental-tracker/internal/cache"
	"github.com/magabrotheeeer/rental-tracker/internal/config"
	"github.com/magabrotheeeer/rental-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/rental-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/rental-tracker/internal/lib/password"
	"github.com/magabrotheeeer/rental-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/rental-tracker/internal/lib/subscription"
	"github.com/magabrotheeeer/rental-tracker/internal/migrations"
	"github.com/magabrotheeeer/rental-tracker/internal/models"
	"github.com/magabrotheeeer/rental-tracker/internal/services/directory"
	"github.com/magabrotheeeer/rental-tracker/internal/services/rentals"
	"github.com/magabrotheeeer/rental-tracker/internal/storage"
)

// App — HTTP-сервер бэкенда со всеми зависимостями.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
}

func waitForDB(connection string, logger *slog.Logger) (*storage.Storage, error) {
	var lastErr error
	for attempt := range 10 {
		db, err := storage.New(connection)
		if err == nil {
			return db, nil
		}
		lastErr = err
		logger.Warn("database not ready, retrying", slog.Int("attempt", attempt+1), sl.Err(err))
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("database not ready after retries: %w", lastErr)
}

// New подключается к базе и Redis, применяет миграции, создаёт администратора
// по умолчанию и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := waitForDB(cfg.StorageConnectionString, logger)
	if err != nil {
		return nil, err
	}
	version, err := migrations.Run(db.DB, cfg.MigrationsPath)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Info("database schema is up to date", slog.Uint64("version", uint64(version)))
	if err = storage.CheckDatabaseReady(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	var userCache directory.Cache
	var redisCache *cache.Cache
	if cfg.AddressRedis != "" {
		redisCache, err = cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			logger.Warn("cache not initialized, continuing without it", sl.Err(err))
		} else {
			userCache = redisCache
		}
	}

	clock := subscription.SystemClock{}
	users := directory.New(db, userCache, cfg.CacheTTL, clock, logger)
	if err := seedAdmin(ctx, cfg.DefaultAdmin, users, logger); err != nil {
		_ = db.Close()
		if redisCache != nil {
			_ = redisCache.Close()
		}
		return nil, err
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Deps{
		Users:          users,
		Rentals:        rentals.New(db, logger),
		Platforms:      rentals.NewPlatforms(db, logger),
		DB:             db.DB,
		Keys:           jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL),
		Limiter:        middlewarectx.NewIPRateLimiter(cfg.RateLimit, cfg.RateBurst),
		Metrics:        middlewarectx.NewMetrics(prometheus.DefaultRegisterer),
		MetricsHandler: promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  redisCache,
	}, nil
}

// seedAdmin создаёт администратора из конфига, если его ещё нет.
func seedAdmin(ctx context.Context, cfg config.DefaultAdmin, users *directory.Directory, logger *slog.Logger) error {
	if cfg.Password == "" {
		logger.Warn("default admin password is not set, skipping admin bootstrap")
		return nil
	}
	created, err := users.EnsureDefaultAdmin(ctx, models.User{
		Username: cfg.Username,
		FullName: cfg.FullName,
		Currency: cfg.Currency,
	}, cfg.Password, password.NewHasher(0))
	if err != nil {
		return err
	}
	if created {
		logger.Info("default admin created", slog.String("username", cfg.Username))
	}
	return nil
}

// Run запускает HTTP-сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("failed to close cache", sl.Err(err))
		}
	}
}
