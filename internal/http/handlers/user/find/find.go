// Package find реализует HTTP-обработчик поиска пользователя по имени.
package find

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/rental-tracker/internal/http/response"
	"github.com/magabrotheeeer/rental-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/rental-tracker/internal/models"
	"github.com/magabrotheeeer/rental-tracker/internal/storage"
)

// Handler обрабатывает GET /api/v1/users/by-username/{username}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает поиск пользователя. Имя сравнивается с учётом регистра.
type Service interface {
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Найти пользователя по имени
// @Description Ищет пользователя по точному имени. Имя в пути передаётся в URL-кодировке.
// @Tags Users
// @Produce  json
// @Security BearerAuth
// @Param username path string true "Имя пользователя"
// @Success 200 {object} models.User "Найденный пользователь"
// @Failure 400 {object} response.Response "Пустое или некорректное имя"
// @Failure 401 {object} response.Response "Нет или неверный API-ключ"
// @Failure 404 {object} response.Response "Пользователь не найден"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /api/v1/users/by-username/{username} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.find"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username := chi.URLParam(r, "username")
	// chi маршрутизирует по RawPath, если он есть, и тогда параметр остаётся экранированным (a%2Fb).
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(username)
		if err != nil {
			log.Error("malformed username in url", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("malformed username"))
			return
		}
		username = unescaped
	}
	if username == "" {
		log.Error("empty username in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("username is required"))
		return
	}

	user, err := h.service.FindUserByUsername(r.Context(), username)
	if errors.Is(err, storage.ErrUserNotFound) {
		log.Info("user not found", slog.String("username", username))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("user not found"))
		return
	}
	if err != nil {
		log.Error("failed to find user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not find user"))
		return
	}

	render.JSON(w, r, response.OKWithData(user))
}
