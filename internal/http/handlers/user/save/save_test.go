package save

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/rental-tracker/internal/models"
	"github.com/magabrotheeeer/rental-tracker/internal/storage"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) SaveUser(ctx context.Context, user models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSaveHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockResult     *models.User
		mockErr        error
		callsService   bool
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "created",
			body:           `{"username":"bob","password_hash":"h","role":"user"}`,
			mockResult:     &models.User{ID: "u2", Username: "bob"},
			callsService:   true,
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":"u2"`,
		},
		{
			name:           "invalid json",
			body:           `{"username":`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "missing username",
			body:           `{"role":"user"}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Username is a required field`,
		},
		{
			name:           "unknown role",
			body:           `{"username":"bob","role":"root"}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Role must be one of: admin user`,
		},
		{
			name:           "username taken",
			body:           `{"username":"alice"}`,
			mockErr:        storage.ErrUsernameTaken,
			callsService:   true,
			expectedStatus: http.StatusConflict,
			expectedBody:   `"error":"username already taken"`,
		},
		{
			name:           "user vanished",
			body:           `{"id":"u9","username":"zed"}`,
			mockErr:        storage.ErrUserNotFound,
			callsService:   true,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "storage failure",
			body:           `{"username":"bob"}`,
			mockErr:        errors.New("db down"),
			callsService:   true,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not save user"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			if tt.callsService {
				svc.On("SaveUser", mock.Anything, mock.Anything).Return(tt.mockResult, tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodPut, "/api/v1/users", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			New(newNoopLogger(), svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
