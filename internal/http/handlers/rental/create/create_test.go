package create

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/rental-tracker/internal/models"
	"github.com/magabrotheeeer/rental-tracker/internal/services/rentals"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, userID string, in models.DummyRental) (*models.Rental, error) {
	args := m.Called(ctx, userID, in)
	r, _ := args.Get(0).(*models.Rental)
	return r, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

const validBody = `{
	"user_id": "u1",
	"platform": "Netflix",
	"customer_name": "Ivan",
	"account_email": "acc@example.com",
	"account_password": "pass",
	"price": 5,
	"duration": 1,
	"start_date": "2024-01-31"
}`

func TestCreateHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "created",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "u1", mock.AnythingOfType("models.DummyRental")).
					Return(&models.Rental{ID: "id-1", RentalID: "R-0001"}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"rental_id":"R-0001"`,
		},
		{
			name:           "invalid json",
			body:           `nope`,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "bad email",
			body:           `{"user_id":"u1","platform":"Max","customer_name":"x","account_email":"nope","account_password":"p","duration":1,"start_date":"2024-01-01"}`,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field AccountEmail must be a valid email`,
		},
		{
			name:           "zero duration",
			body:           `{"user_id":"u1","platform":"Max","customer_name":"x","account_email":"a@b.co","account_password":"p","duration":0,"start_date":"2024-01-01"}`,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Duration is a required field`,
		},
		{
			name:           "missing owner",
			body:           `{"platform":"Max","customer_name":"x","account_email":"a@b.co","account_password":"p","duration":1,"start_date":"2024-01-01"}`,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field UserID is a required field`,
		},
		{
			name: "bad start date",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "u1", mock.Anything).
					Return(nil, fmt.Errorf("rentals.Create: %w", rentals.ErrInvalidStartDate))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `start_date must be in format 2006-01-02`,
		},
		{
			name: "service failure",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "u1", mock.Anything).Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not create rental"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/rentals", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			New(newNoopLogger(), svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
