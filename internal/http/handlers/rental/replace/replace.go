// Package replace реализует HTTP-обработчик замены учётных данных аренды.
// Ответ содержит обновлённую аренду вместе с историей замен.
package replace

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
	"github.com/magabrotheeeer/rental-tracker/internal/storage"
)

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

type Service interface {
	ReplaceCredentials(ctx context.Context, id string, in models.DummyReplacement) (*models.Rental, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Заменить учётные данные
// @Description Записывает новые логин и пароль аренды и добавляет запись в историю замен.
// @Tags Rentals
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID аренды"
// @Param request body models.DummyReplacement true "Новые учётные данные"
// @Success 200 {object} models.Rental "Аренда с новыми данными"
// @Failure 400 {object} response.Response "Некорректный JSON"
// @Failure 401 {object} response.Response "Нет или неверный API-ключ"
// @Failure 404 {object} response.Response "Аренда не найдена"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /api/v1/rentals/{id}/replacements [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.rental.replace"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	var req models.DummyReplacement
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

	rental, err := h.service.ReplaceCredentials(r.Context(), id, req)
	if errors.Is(err, storage.ErrRentalNotFound) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("rental not found"))
		return
	}
	if err != nil {
		log.Error("failed to replace credentials", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not replace credentials"))
		return
	}

	log.Info("credentials replaced", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(rental))
}
