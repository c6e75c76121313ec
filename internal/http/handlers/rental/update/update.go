package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/rental-tracker/internal/http/response"
	"github.com/magabrotheeeer/rental-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/rental-tracker/internal/models"
	"github.com/magabrotheeeer/rental-tracker/internal/services/rentals"
	"github.com/magabrotheeeer/rental-tracker/internal/storage"
)

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

type Service interface {
	Update(ctx context.Context, id string, in models.DummyRental) (*models.Rental, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить аренду
// @Description Перезаписывает изменяемые поля аренды.
// @Tags Rentals
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID аренды"
// @Param request body models.DummyRental true "Новые данные аренды"
// @Success 200 {object} models.Rental "Обновлённая аренда"
// @Failure 400 {object} response.Response "Некорректный JSON или дата"
// @Failure 401 {object} response.Response "Нет или неверный API-ключ"
// @Failure 404 {object} response.Response "Аренда не найдена"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /api/v1/rentals/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.rental.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	var req models.DummyRental
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	rental, err := h.service.Update(r.Context(), id, req)
	switch {
	case errors.Is(err, storage.ErrRentalNotFound):
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("rental not found"))
		return
	case errors.Is(err, rentals.ErrInvalidStartDate):
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("start_date must be in format 2006-01-02"))
		return
	case err != nil:
		log.Error("failed to update rental", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update rental"))
		return
	}

	log.Info("success to update rental", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(rental))
}
