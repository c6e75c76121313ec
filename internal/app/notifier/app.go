// Package notifier собирает процесс уведомителя: хранилище, RabbitMQ и планировщик проверок.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/rental-tracker/internal/config"
	"github.com/magabrotheeeer/rental-tracker/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/rental-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/rental-tracker/internal/lib/subscription"
	notifierservice "github.com/magabrotheeeer/rental-tracker/internal/services/notifier"
	"github.com/magabrotheeeer/rental-tracker/internal/storage"
)

// App представляет приложение уведомителя.
type App struct {
	service  *notifierservice.Service
	interval time.Duration
	db       *storage.Storage
	conn     *amqp.Connection
	ch       *amqp.Channel
	metrics  *http.Server
	logger   *slog.Logger
}

func waitForDB(db *storage.Storage) error {
	for range 10 {
		err := storage.CheckDatabaseReady(context.Background(), db)
		if err == nil {
			return nil
		}
		time.Sleep(3 * time.Second)
	}
	return fmt.Errorf("database not ready after retries")
}

// New создает новый экземпляр приложения уведомителя.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.Retries, cfg.RetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		closeResources(nil, conn, logger)
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		closeResources(ch, conn, logger)
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}

	if err := waitForDB(db); err != nil {
		_ = db.Close()
		closeResources(ch, conn, logger)
		return nil, err
	}

	reg := prometheus.NewRegistry()
	metrics := notifierservice.NewMetrics(reg)
	service := notifierservice.New(db, rabbitmq.NewPublisher(ch), subscription.SystemClock{}, metrics, logger)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return &App{
		service:  service,
		interval: cfg.Notifier.Interval,
		db:       db,
		conn:     conn,
		ch:       ch,
		metrics: &http.Server{
			Addr:              cfg.Notifier.MetricsAddress,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}, nil
}

func closeResources(ch *amqp.Channel, conn *amqp.Connection, logger *slog.Logger) {
	if ch != nil {
		if err := ch.Close(); err != nil {
			logger.Error("failed to close channel", sl.Err(err))
		}
	}
	if conn != nil {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close connection", sl.Err(err))
		}
	}
}

// Run запускает проверки и останавливает их при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	go func() {
		a.logger.Info("metrics server starting on", slog.String("address", a.metrics.Addr))
		if err := a.metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server failed", sl.Err(err))
		}
	}()

	a.service.Run(ctx, a.interval)

	a.logger.Info("shutting down notifier")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.metrics.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("failed to stop metrics server", sl.Err(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
	closeResources(a.ch, a.conn, a.logger)

	return nil
}
