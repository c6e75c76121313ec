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

func (m *MockService) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func TestRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		deleted        bool
		err            error
		expectedStatus int
	}{
		{"deleted", true, nil, http.StatusOK},
		{"not found", false, nil, http.StatusNotFound},
		{"failure", false, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("Delete", mock.Anything, "id-1").Return(tt.deleted, tt.err)

			r := chi.NewRouter()
			r.Delete("/api/v1/rentals/{id}", New(logger, svc).ServeHTTP)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/rentals/id-1", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
