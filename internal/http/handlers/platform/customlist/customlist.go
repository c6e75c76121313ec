package customlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/rental-tracker/internal/http/response"
	"github.com/magabrotheeeer/rental-tracker/internal/lib/sl"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	ListCustomPlatforms(ctx context.Context) ([]string, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Пользовательские платформы
// @Description Возвращает платформы, добавленные пользователями.
// @Tags Platforms
// @Produce  json
// @Security BearerAuth
// @Success 200 {array} string "Список платформ"
// @Failure 401 {object} response.Response "Нет или неверный API-ключ"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /api/v1/platforms/custom [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.platform.customlist"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	names, err := h.service.ListCustomPlatforms(r.Context())
	if err != nil {
		log.Error("failed to list custom platforms", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list custom platforms"))
		return
	}

	render.JSON(w, r, response.OKWithData(names))
}
