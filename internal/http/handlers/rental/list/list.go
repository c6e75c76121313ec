// Package list реализует HTTP-обработчик списка аренд.
// Параметр user_id ограничивает выборку арендами владельца, без него возвращаются все.
package list

import (
	"context"
	"log/slog"
	"net/http"

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
	List(ctx context.Context, userID string) ([]*models.Rental, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список аренд
// @Description Возвращает аренды, при user_id только аренды этого пользователя.
// @Tags Rentals
// @Produce  json
// @Security BearerAuth
// @Param user_id query string false "ID пользователя"
// @Success 200 {array} models.Rental "Список аренд"
// @Failure 401 {object} response.Response "Нет или неверный API-ключ"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /api/v1/rentals [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.rental.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID := r.URL.Query().Get("user_id")
	items, err := h.service.List(r.Context(), userID)
	if err != nil {
		log.Error("failed to list rentals", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list rentals"))
		return
	}

	log.Info("success to list rentals", slog.String("user_id", userID), slog.Int("count", len(items)))
	render.JSON(w, r, response.OKWithData(items))
}
