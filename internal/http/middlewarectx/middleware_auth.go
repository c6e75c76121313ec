// Package middlewarectx содержит HTTP middleware API: проверку API-ключа,
// проверку роли ключа, ограничение частоты запросов и сбор метрик.
//
// APIKeyMiddleware проверяет ключ в заголовке Authorization и в случае успеха
// кладёт роль ключа в контекст запроса. Иначе возвращает 401 Unauthorized.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/rental-tracker/internal/http/response"
	"github.com/magabrotheeeer/rental-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/rental-tracker/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// Role — ключ для роли API-ключа в контексте.
const Role Key = "role"

// TokenParser разбирает и проверяет API-ключ.
type TokenParser interface {
	ParseToken(tokenStr string) (*jwt.CustomClaims, error)
}

// APIKeyMiddleware возвращает middleware, который проверяет API-ключ
// в заголовке Authorization: Bearer <key>.
func APIKeyMiddleware(parser TokenParser, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.APIKeyMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := parser.ParseToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired api key", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired api key"))
				return
			}
			ctx := context.WithValue(r.Context(), Role, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
