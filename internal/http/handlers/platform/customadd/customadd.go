// Package customadd реализует HTTP-обработчик добавления пользовательской платформы.
package customadd

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/rental-tracker/internal/http/response"
	"github.com/magabrotheeeer/rental-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/rental-tracker/internal/services/rentals"
)

// Request — тело запроса POST /api/v1/platforms/custom.
type Request struct {
	Name string `json:"name" validate:"required"`
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

type Service interface {
	AddCustomPlatform(ctx context.Context, name string) (bool, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Добавить платформу
// @Description Добавляет пользовательскую платформу. added=false, если такая уже есть.
// @Tags Platforms
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Название платформы"
// @Success 200 {object} map[string]any "Результат добавления"
// @Failure 400 {object} response.Response "Некорректный JSON"
// @Failure 401 {object} response.Response "Нет или неверный API-ключ"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /api/v1/platforms/custom [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.platform.customadd"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
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

	added, err := h.service.AddCustomPlatform(r.Context(), req.Name)
	if errors.Is(err, rentals.ErrEmptyPlatformName) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("field Name is a required field"))
		return
	}
	if err != nil {
		log.Error("failed to add custom platform", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not add platform"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"added": added,
	}))
}
