package rentals

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/rental-tracker/internal/models"
	"github.com/magabrotheeeer/rental-tracker/internal/storage"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateRental(ctx context.Context, rental models.Rental) (*models.Rental, error) {
	args := m.Called(ctx, rental)
	r, _ := args.Get(0).(*models.Rental)
	return r, args.Error(1)
}

func (m *RepoMock) LastRentalID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *RepoMock) GetRental(ctx context.Context, id string) (*models.Rental, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*models.Rental)
	return r, args.Error(1)
}

func (m *RepoMock) ListRentals(ctx context.Context, userID string) ([]*models.Rental, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]*models.Rental)
	return list, args.Error(1)
}

func (m *RepoMock) UpdateRental(ctx context.Context, rental models.Rental) (*models.Rental, error) {
	args := m.Called(ctx, rental)
	r, _ := args.Get(0).(*models.Rental)
	return r, args.Error(1)
}

func (m *RepoMock) DeleteRental(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *RepoMock) ReplaceCredentials(ctx context.Context, rentalID, newEmail, newPassword string,
	reason *string) (*models.Replacement, error) {
	args := m.Called(ctx, rentalID, newEmail, newPassword, reason)
	r, _ := args.Get(0).(*models.Replacement)
	return r, args.Error(1)
}

func (m *RepoMock) ListReplacements(ctx context.Context, rentalID string) ([]models.Replacement, error) {
	args := m.Called(ctx, rentalID)
	list, _ := args.Get(0).([]models.Replacement)
	return list, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func validInput() models.DummyRental {
	return models.DummyRental{
		Platform:        "Netflix",
		CustomerName:    "Ivan",
		AccountEmail:    "acc@example.com",
		AccountPassword: "pass",
		Price:           5,
		Duration:        1,
		StartDate:       "2024-01-31",
	}
}

func TestNextRentalID(t *testing.T) {
	tests := []struct {
		last string
		want string
	}{
		{"", "R-0001"},
		{"R-0001", "R-0002"},
		{"R-0099", "R-0100"},
		{"R-9999", "R-10000"},
		{"garbage", "R-0001"},
		{"legacy R-0042", "R-0043"},
	}
	for _, tt := range tests {
		t.Run(tt.last, func(t *testing.T) {
			assert.Equal(t, tt.want, NextRentalID(tt.last))
		})
	}
}

func TestCreate(t *testing.T) {
	repo := new(RepoMock)
	svc := New(repo, newNoopLogger())
	profile := "Kids"
	in := validInput()
	in.ProfileName = &profile

	repo.On("LastRentalID", mock.Anything).Return("R-0007", nil)
	repo.On("CreateRental", mock.Anything, mock.MatchedBy(func(r models.Rental) bool {
		return r.RentalID == "R-0008" &&
			r.UserID == "u1" &&
			r.AccountType == models.AccountTypeFull &&
			r.ProfileName == nil &&
			r.ExpirationDate.Equal(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	})).Return(&models.Rental{ID: "id-1", RentalID: "R-0008", UserID: "u1"}, nil)

	created, err := svc.Create(context.Background(), "u1", in)
	require.NoError(t, err)
	assert.Equal(t, "R-0008", created.RentalID)
	repo.AssertExpectations(t)
}

func TestCreate_ProfileKeepsName(t *testing.T) {
	repo := new(RepoMock)
	svc := New(repo, newNoopLogger())
	profile := "Kids"
	in := validInput()
	in.AccountType = models.AccountTypeProfile
	in.ProfileName = &profile

	repo.On("LastRentalID", mock.Anything).Return("", nil)
	repo.On("CreateRental", mock.Anything, mock.MatchedBy(func(r models.Rental) bool {
		return r.RentalID == "R-0001" && r.ProfileName != nil && *r.ProfileName == "Kids"
	})).Return(&models.Rental{RentalID: "R-0001"}, nil)

	_, err := svc.Create(context.Background(), "u1", in)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreate_RetriesOnTakenID(t *testing.T) {
	repo := new(RepoMock)
	svc := New(repo, newNoopLogger())

	repo.On("LastRentalID", mock.Anything).Return("R-0001", nil).Once()
	repo.On("LastRentalID", mock.Anything).Return("R-0002", nil).Once()
	repo.On("CreateRental", mock.Anything, mock.MatchedBy(func(r models.Rental) bool {
		return r.RentalID == "R-0002"
	})).Return(nil, storage.ErrRentalIDTaken).Once()
	repo.On("CreateRental", mock.Anything, mock.MatchedBy(func(r models.Rental) bool {
		return r.RentalID == "R-0003"
	})).Return(&models.Rental{RentalID: "R-0003"}, nil).Once()

	created, err := svc.Create(context.Background(), "u1", validInput())
	require.NoError(t, err)
	assert.Equal(t, "R-0003", created.RentalID)
}

func TestCreate_GivesUpAfterAttempts(t *testing.T) {
	repo := new(RepoMock)
	svc := New(repo, newNoopLogger())
	repo.On("LastRentalID", mock.Anything).Return("R-0001", nil)
	repo.On("CreateRental", mock.Anything, mock.Anything).Return(nil, storage.ErrRentalIDTaken)

	_, err := svc.Create(context.Background(), "u1", validInput())
	require.ErrorIs(t, err, storage.ErrRentalIDTaken)
	repo.AssertNumberOfCalls(t, "CreateRental", maxIDAttempts)
}

func TestCreate_InvalidStartDate(t *testing.T) {
	repo := new(RepoMock)
	svc := New(repo, newNoopLogger())
	in := validInput()
	in.StartDate = "31.01.2024"

	_, err := svc.Create(context.Background(), "u1", in)
	require.ErrorIs(t, err, ErrInvalidStartDate)
	repo.AssertNotCalled(t, "LastRentalID", mock.Anything)
}

func TestGet_AttachesHistory(t *testing.T) {
	repo := new(RepoMock)
	svc := New(repo, newNoopLogger())
	repo.On("GetRental", mock.Anything, "id-1").Return(&models.Rental{ID: "id-1"}, nil)
	repo.On("ListReplacements", mock.Anything, "id-1").
		Return([]models.Replacement{{ID: "rep-1"}}, nil)

	got, err := svc.Get(context.Background(), "id-1")
	require.NoError(t, err)
	require.Len(t, got.Replacements, 1)
	assert.Equal(t, "rep-1", got.Replacements[0].ID)
}

func TestGet_NotFound(t *testing.T) {
	repo := new(RepoMock)
	svc := New(repo, newNoopLogger())
	repo.On("GetRental", mock.Anything, "nope").Return(nil, storage.ErrRentalNotFound)

	_, err := svc.Get(context.Background(), "nope")
	require.ErrorIs(t, err, storage.ErrRentalNotFound)
}

func TestUpdate_KeepsIdentity(t *testing.T) {
	repo := new(RepoMock)
	svc := New(repo, newNoopLogger())
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.On("GetRental", mock.Anything, "id-1").Return(&models.Rental{
		ID: "id-1", RentalID: "R-0005", UserID: "owner", CreatedAt: created,
	}, nil)
	repo.On("UpdateRental", mock.Anything, mock.MatchedBy(func(r models.Rental) bool {
		return r.ID == "id-1" && r.RentalID == "R-0005" && r.UserID == "owner" &&
			r.Duration == 3 &&
			r.ExpirationDate.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	})).Return(&models.Rental{ID: "id-1"}, nil)

	in := validInput()
	in.UserID = "someone-else"
	in.Duration = 3
	in.StartDate = "2024-02-01"
	_, err := svc.Update(context.Background(), "id-1", in)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDelete(t *testing.T) {
	repo := new(RepoMock)
	svc := New(repo, newNoopLogger())
	repo.On("DeleteRental", mock.Anything, "id-1").Return(true, nil)
	repo.On("DeleteRental", mock.Anything, "id-2").Return(false, errors.New("db down"))

	ok, err := svc.Delete(context.Background(), "id-1")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.Delete(context.Background(), "id-2")
	require.Error(t, err)
}

func TestReplaceCredentials(t *testing.T) {
	repo := new(RepoMock)
	svc := New(repo, newNoopLogger())
	reason := "leak"
	repo.On("ReplaceCredentials", mock.Anything, "id-1", "new@example.com", "np", &reason).
		Return(&models.Replacement{ID: "rep-1"}, nil)
	repo.On("GetRental", mock.Anything, "id-1").
		Return(&models.Rental{ID: "id-1", AccountEmail: "new@example.com"}, nil)
	repo.On("ListReplacements", mock.Anything, "id-1").
		Return([]models.Replacement{{ID: "rep-1"}}, nil)

	got, err := svc.ReplaceCredentials(context.Background(), "id-1", models.DummyReplacement{
		NewEmail: "new@example.com", NewPassword: "np", Reason: &reason,
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", got.AccountEmail)
	assert.Len(t, got.Replacements, 1)
}
