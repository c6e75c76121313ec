package find

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/rental-tracker/internal/models"
	"github.com/magabrotheeeer/rental-tracker/internal/storage"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestFindHandler(t *testing.T) {
	tests := []struct {
		name           string
		username       string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "found",
			username: "Alice",
			setupMock: func(m *MockService) {
				m.On("FindUserByUsername", mock.Anything, "Alice").
					Return(&models.User{ID: "u1", Username: "Alice", PasswordHash: "h"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"username":"Alice"`,
		},
		{
			name:     "not found",
			username: "ghost",
			setupMock: func(m *MockService) {
				m.On("FindUserByUsername", mock.Anything, "ghost").
					Return(nil, storage.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"user not found"}`,
		},
		{
			name:     "storage failure",
			username: "bob",
			setupMock: func(m *MockService) {
				m.On("FindUserByUsername", mock.Anything, "bob").
					Return(nil, errors.New("connection reset"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not find user"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			r := chi.NewRouter()
			r.Get("/api/v1/users/by-username/{username}", New(newNoopLogger(), svc).ServeHTTP)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/by-username/"+tt.username, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestFindHandler_EscapedUsername(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		username string
	}{
		{name: "slash", path: "ana%2Fb", username: "ana/b"},
		{name: "space", path: "a%20b", username: "a b"},
		{name: "percent", path: "100%25", username: "100%"},
		{name: "cyrillic", path: "%D0%B0%D0%BD%D1%8F", username: "аня"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("FindUserByUsername", mock.Anything, tt.username).
				Return(&models.User{ID: "u1", Username: tt.username}, nil)

			r := chi.NewRouter()
			r.Get("/api/v1/users/by-username/{username}", New(newNoopLogger(), svc).ServeHTTP)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/by-username/"+tt.path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			svc.AssertExpectations(t)
		})
	}
}
