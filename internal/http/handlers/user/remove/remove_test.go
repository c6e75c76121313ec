package remove

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
)

type MockService struct {
	mock.Mock
}

func (m *MockService) DeleteUser(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func TestRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		id             string
		deleted        bool
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{"deleted", "u1", true, nil, http.StatusOK, `{"status":"OK","data":{"deleted":true}}`},
		{"missing", "u2", false, nil, http.StatusOK, `{"status":"OK","data":{"deleted":false}}`},
		{"failure", "u3", false, errors.New("db down"), http.StatusInternalServerError, `"error":"failed to delete user"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("DeleteUser", mock.Anything, tt.id).Return(tt.deleted, tt.err)

			r := chi.NewRouter()
			r.Delete("/api/v1/users/{id}", New(logger, svc).ServeHTTP)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/users/"+tt.id, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}
