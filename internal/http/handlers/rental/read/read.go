package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/rental-tracker/internal/http/response"
	"github.com/magabrotheeeer/rental-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/rental-tracker/internal/models"
	"github.com/magabrotheeeer/rental-tracker/internal/storage"
)

// Handler возвращает аренду вместе с историей замен.
type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Get(ctx context.Context, id string) (*models.Rental, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить аренду
// @Description Возвращает аренду по ID.
// @Tags Rentals
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID аренды"
// @Success 200 {object} models.Rental "Аренда"
// @Failure 401 {object} response.Response "Нет или неверный API-ключ"
// @Failure 404 {object} response.Response "Аренда не найдена"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /api/v1/rentals/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.rental.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	rental, err := h.service.Get(r.Context(), id)
	if errors.Is(err, storage.ErrRentalNotFound) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("rental not found"))
		return
	}
	if err != nil {
		log.Error("failed to read rental", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read rental"))
		return
	}

	render.JSON(w, r, response.OKWithData(rental))
}
