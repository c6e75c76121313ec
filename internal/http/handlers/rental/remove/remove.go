package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
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
	Delete(ctx context.Context, id string) (bool, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить аренду
// @Description Удаляет аренду по ID.
// @Tags Rentals
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID аренды"
// @Success 200 {object} map[string]any "Аренда удалена"
// @Failure 401 {object} response.Response "Нет или неверный API-ключ"
// @Failure 404 {object} response.Response "Аренда не найдена"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /api/v1/rentals/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.rental.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		log.Error("failed to delete rental", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to delete rental"))
		return
	}
	if !deleted {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("rental not found"))
		return
	}

	log.Info("success to delete rental", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"deleted": deleted,
	}))
}
