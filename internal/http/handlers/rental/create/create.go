// Package create реализует HTTP-обработчик создания аренды.
//
// Handler принимает JSON с данными аренды и владельцем (user_id), валидирует их,
// передаёт в сервис и возвращает созданную запись со статусом 201.
package create

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
	"github.com/magabrotheeeer/rental-tracker/internal/models"
	"github.com/magabrotheeeer/rental-tracker/internal/services/rentals"
)

// Handler управляет HTTP-запросами на создание аренды.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики аренд
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает создание аренды.
type Service interface {
	Create(ctx context.Context, userID string, in models.DummyRental) (*models.Rental, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать аренду
// @Description Создаёт аренду и возвращает её с присвоенным ID вида R-0001.
// @Tags Rentals
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyRental true "Данные аренды"
// @Success 201 {object} models.Rental "Созданная аренда"
// @Failure 400 {object} response.Response "Некорректный JSON или дата"
// @Failure 401 {object} response.Response "Нет или неверный API-ключ"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /api/v1/rentals [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.rental.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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
	if req.UserID == "" {
		log.Error("owner is missing")
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("field UserID is a required field"))
		return
	}

	rental, err := h.service.Create(r.Context(), req.UserID, req)
	if errors.Is(err, rentals.ErrInvalidStartDate) {
		log.Error("invalid start date", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("start_date must be in format 2006-01-02"))
		return
	}
	if err != nil {
		log.Error("failed to create rental", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create rental"))
		return
	}

	log.Info("success to create rental", slog.String("rental_id", rental.RentalID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(rental))
}
