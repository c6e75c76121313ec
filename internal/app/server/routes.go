// Package server собирает HTTP API бэкенда: маршруты, middleware и жизненный цикл сервера.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/magabrotheeeer/rental-tracker/docs"

	"github.com/magabrotheeeer/rental-tracker/internal/http/handlers/health"
	"github.com/magabrotheeeer/rental-tracker/internal/http/handlers/platform/catalogue"
	"github.com/magabrotheeeer/rental-tracker/internal/http/handlers/platform/customadd"
	"github.com/magabrotheeeer/rental-tracker/internal/http/handlers/platform/customlist"
	rentalcreate "github.com/magabrotheeeer/rental-tracker/internal/http/handlers/rental/create"
	rentalhistory "github.com/magabrotheeeer/rental-tracker/internal/http/handlers/rental/history"
	rentallist "github.com/magabrotheeeer/rental-tracker/internal/http/handlers/rental/list"
	rentalread "github.com/magabrotheeeer/rental-tracker/internal/http/handlers/rental/read"
	rentalremove "github.com/magabrotheeeer/rental-tracker/internal/http/handlers/rental/remove"
	rentalreplace "github.com/magabrotheeeer/rental-tracker/internal/http/handlers/rental/replace"
	rentalupdate "github.com/magabrotheeeer/rental-tracker/internal/http/handlers/rental/update"
	userfind "github.com/magabrotheeeer/rental-tracker/internal/http/handlers/user/find"
	userlist "github.com/magabrotheeeer/rental-tracker/internal/http/handlers/user/list"
	userremove "github.com/magabrotheeeer/rental-tracker/internal/http/handlers/user/remove"
	usersave "github.com/magabrotheeeer/rental-tracker/internal/http/handlers/user/save"
	"github.com/magabrotheeeer/rental-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/rental-tracker/internal/lib/jwt"
)

// UserService — операции справочника пользователей, доступные по HTTP.
type UserService interface {
	userfind.Service
	userlist.Service
	usersave.Service
	userremove.Service
}

// RentalService — операции с арендами, доступные по HTTP.
type RentalService interface {
	rentalcreate.Service
	rentalread.Service
	rentallist.Service
	rentalupdate.Service
	rentalremove.Service
	rentalreplace.Service
	rentalhistory.Service
}

// PlatformService — операции каталога платформ, доступные по HTTP.
type PlatformService interface {
	catalogue.Service
	customlist.Service
	customadd.Service
}

// Deps — зависимости маршрутов.
type Deps struct {
	Users     UserService
	Rentals   RentalService
	Platforms PlatformService
	DB        health.Pinger
	Keys      middlewarectx.TokenParser
	Limiter   *middlewarectx.IPRateLimiter
	Metrics   *middlewarectx.Metrics
	// MetricsHandler отдаёт /metrics. Если nil, маршрут не регистрируется.
	MetricsHandler http.Handler
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, d Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
	)
	if d.Metrics != nil {
		r.Use(middlewarectx.MetricsMiddleware(d.Metrics))
	}

	r.Get("/health", health.New(logger, d.DB).ServeHTTP)
	if d.MetricsHandler != nil {
		r.Handle("/metrics", d.MetricsHandler)
	}

	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.APIKeyMiddleware(d.Keys, logger))
		if d.Limiter != nil {
			r.Use(middlewarectx.RateLimitMiddleware(d.Limiter, logger))
		}

		r.Get("/users", userlist.New(logger, d.Users).ServeHTTP)
		r.Get("/users/by-username/{username}", userfind.New(logger, d.Users).ServeHTTP)

		// Изменение учётных записей только с ключом service_role
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireRole(jwt.RoleService, logger))
			r.Put("/users", usersave.New(logger, d.Users).ServeHTTP)
			r.Delete("/users/{id}", userremove.New(logger, d.Users).ServeHTTP)
		})

		r.Get("/platforms", catalogue.New(logger, d.Platforms).ServeHTTP)
		r.Get("/platforms/custom", customlist.New(logger, d.Platforms).ServeHTTP)
		r.Post("/platforms/custom", customadd.New(logger, d.Platforms).ServeHTTP)

		r.Get("/rentals", rentallist.New(logger, d.Rentals).ServeHTTP)
		r.Post("/rentals", rentalcreate.New(logger, d.Rentals).ServeHTTP)
		r.Get("/rentals/{id}", rentalread.New(logger, d.Rentals).ServeHTTP)
		r.Put("/rentals/{id}", rentalupdate.New(logger, d.Rentals).ServeHTTP)
		r.Delete("/rentals/{id}", rentalremove.New(logger, d.Rentals).ServeHTTP)
		r.Get("/rentals/{id}/replacements", rentalhistory.New(logger, d.Rentals).ServeHTTP)
		r.Post("/rentals/{id}/replacements", rentalreplace.New(logger, d.Rentals).ServeHTTP)
	})
}
