package history

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/rental-tracker/internal/http/response"
	"github.com/magabrotheeeer/rental-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/rental-tracker/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	ListReplacements(ctx context.Context, id string) ([]models.Replacement, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary История замен
// @Description Возвращает замены учётных данных аренды, новые первыми.
// @Tags Rentals
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID аренды"
// @Success 200 {array} models.Replacement "История замен"
// @Failure 401 {object} response.Response "Нет или неверный API-ключ"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /api/v1/rentals/{id}/replacements [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.rental.history"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	items, err := h.service.ListReplacements(r.Context(), id)
	if err != nil {
		log.Error("failed to list replacements", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list replacements"))
		return
	}

	render.JSON(w, r, response.OKWithData(items))
}
