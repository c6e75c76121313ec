// Package catalogue реализует HTTP-обработчик полного каталога платформ.
package catalogue

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/rental-tracker/internal/http/response"
	"github.com/magabrotheeeer/rental-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/rental-tracker/internal/services/rentals"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Catalogue(ctx context.Context) (*rentals.Catalogue, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Каталог платформ
// @Description Возвращает стандартные, пользовательские и объединённый список платформ.
// @Tags Platforms
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} rentals.Catalogue "Каталог платформ"
// @Failure 401 {object} response.Response "Нет или неверный API-ключ"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /api/v1/platforms [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.platform.catalogue"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	c, err := h.service.Catalogue(r.Context())
	if err != nil {
		log.Error("failed to build catalogue", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list platforms"))
		return
	}

	render.JSON(w, r, response.OKWithData(c))
}
