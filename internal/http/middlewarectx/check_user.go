package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/rental-tracker/internal/http/response"
)

// RequireRole пропускает запрос, только если роль API-ключа из контекста равна role.
// Используется после APIKeyMiddleware.
func RequireRole(role string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := r.Context().Value(Role).(string)
			if !ok || got == "" {
				log.Error("api key role missing")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("api key role missing"))
				return
			}

			if got != role {
				log.Warn("api key role not permitted",
					slog.String("role", got),
					slog.String("required", role),
					slog.String("path", r.URL.Path))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("api key is not permitted to do this"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
