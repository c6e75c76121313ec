// Package notifier периодически ищет подписки в критическом состоянии
// и аренды, истекающие завтра, и публикует события в RabbitMQ.
package notifier

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/rental-tracker/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/rental-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/rental-tracker/internal/lib/subscription"
	"github.com/magabrotheeeer/rental-tracker/internal/models"
)

const day = 24 * time.Hour

// Repository определяет выборки, нужные уведомителю.
type Repository interface {
	ListUsersExpiringBetween(ctx context.Context, from, to time.Time) ([]*models.User, error)
	ListRentalsExpiringOn(ctx context.Context, day time.Time) ([]*models.Rental, error)
}

// Publisher отправляет сообщение с ключом маршрутизации.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// SubscriptionExpiring — событие о подписке, которая скоро закончится.
type SubscriptionExpiring struct {
	UserID        string    `json:"user_id"`
	Username      string    `json:"username"`
	FullName      string    `json:"full_name"`
	EndDate       time.Time `json:"end_date"`
	DaysRemaining int       `json:"days_remaining"`
}

// RentalExpiring — событие об аренде, истекающей завтра.
type RentalExpiring struct {
	RentalID       string    `json:"rental_id"`
	UserID         string    `json:"user_id"`
	Platform       string    `json:"platform"`
	CustomerName   string    `json:"customer_name"`
	ExpirationDate time.Time `json:"expiration_date"`
}

// Service выполняет проверки сроков.
type Service struct {
	repo      Repository
	publisher Publisher
	clock     subscription.Clock
	metrics   *Metrics
	log       *slog.Logger
}

// New создаёт уведомитель. metrics может быть nil.
func New(repo Repository, publisher Publisher, clock subscription.Clock, metrics *Metrics, log *slog.Logger) *Service {
	if clock == nil {
		clock = subscription.SystemClock{}
	}
	return &Service{
		repo:      repo,
		publisher: publisher,
		clock:     clock,
		metrics:   metrics,
		log:       log,
	}
}

// Run выполняет проверку сразу и затем с интервалом interval до отмены ctx.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	s.Scan(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("notifier stopped")
			return
		case <-ticker.C:
			s.Scan(ctx)
		}
	}
}

// Scan выполняет одну проверку подписок и аренд.
func (s *Service) Scan(ctx context.Context) {
	now := s.clock.Now()
	s.notifyCriticalSubscriptions(ctx, now)
	s.notifyRentalsExpiringTomorrow(ctx, now)
	if s.metrics != nil {
		s.metrics.Scans.Inc()
	}
}

func (s *Service) notifyCriticalSubscriptions(ctx context.Context, now time.Time) {
	s.log.Info("looking for subscriptions in critical state")
	users, err := s.repo.ListUsersExpiringBetween(ctx, now, now.Add((subscription.CriticalDays+1)*day))
	if err != nil {
		s.log.Error("failed to find expiring subscriptions", sl.Err(err))
		return
	}

	count := 0
	for _, u := range users {
		status := subscription.Status(u.SubscriptionEndDate, now)
		if status.State != models.SubscriptionCritical {
			continue
		}
		count++
		s.publish(rabbitmq.RoutingSubscriptionExpiring, SubscriptionExpiring{
			UserID:        u.ID,
			Username:      u.Username,
			FullName:      u.FullName,
			EndDate:       *u.SubscriptionEndDate,
			DaysRemaining: status.DaysRemaining,
		})
	}
	s.log.Info("critical subscriptions processed", slog.Int("count", count))
}

func (s *Service) notifyRentalsExpiringTomorrow(ctx context.Context, now time.Time) {
	s.log.Info("looking for rentals expiring tomorrow")
	tomorrow := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	rentals, err := s.repo.ListRentalsExpiringOn(ctx, tomorrow)
	if err != nil {
		s.log.Error("failed to find expiring rentals", sl.Err(err))
		return
	}
	if len(rentals) == 0 {
		s.log.Info("no expiring rentals found")
		return
	}

	s.log.Info("found expiring rentals", slog.Int("count", len(rentals)))
	for _, r := range rentals {
		s.publish(rabbitmq.RoutingRentalExpiring, RentalExpiring{
			RentalID:       r.RentalID,
			UserID:         r.UserID,
			Platform:       r.Platform,
			CustomerName:   r.CustomerName,
			ExpirationDate: r.ExpirationDate,
		})
	}
}

func (s *Service) publish(routingKey string, message any) {
	if err := s.publisher.Publish(routingKey, message); err != nil {
		s.log.Error("failed to publish message", slog.String("routing_key", routingKey), sl.Err(err))
		if s.metrics != nil {
			s.metrics.Failed.WithLabelValues(routingKey).Inc()
		}
		return
	}
	if s.metrics != nil {
		s.metrics.Published.WithLabelValues(routingKey).Inc()
	}
}
