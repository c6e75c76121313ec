package rentals

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type PlatformRepoMock struct{ mock.Mock }

func (m *PlatformRepoMock) ListCustomPlatforms(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

func (m *PlatformRepoMock) AddCustomPlatform(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func TestAddCustomPlatform_Trims(t *testing.T) {
	repo := new(PlatformRepoMock)
	p := NewPlatforms(repo, newNoopLogger())
	repo.On("AddCustomPlatform", mock.Anything, "Okko").Return(true, nil).Once()
	repo.On("AddCustomPlatform", mock.Anything, "Okko").Return(false, nil).Once()

	added, err := p.AddCustomPlatform(context.Background(), "  Okko ")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = p.AddCustomPlatform(context.Background(), "Okko")
	require.NoError(t, err)
	assert.False(t, added)
}

func TestAddCustomPlatform_Empty(t *testing.T) {
	repo := new(PlatformRepoMock)
	p := NewPlatforms(repo, newNoopLogger())

	_, err := p.AddCustomPlatform(context.Background(), "   ")
	require.ErrorIs(t, err, ErrEmptyPlatformName)
	repo.AssertNotCalled(t, "AddCustomPlatform", mock.Anything, mock.Anything)
}

func TestAddCustomPlatform_DefaultNameForwarded(t *testing.T) {
	repo := new(PlatformRepoMock)
	p := NewPlatforms(repo, newNoopLogger())

	repo.On("AddCustomPlatform", mock.Anything, "Netflix").Return(true, nil).Once()

	added, err := p.AddCustomPlatform(context.Background(), " Netflix")
	require.NoError(t, err)
	assert.True(t, added)
	repo.AssertExpectations(t)
}

func TestCatalogue_MergesSortedUnique(t *testing.T) {
	repo := new(PlatformRepoMock)
	p := NewPlatforms(repo, newNoopLogger())
	repo.On("ListCustomPlatforms", mock.Anything).Return([]string{"Okko", "Netflix"}, nil)

	c, err := p.Catalogue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultPlatforms, c.Defaults)
	assert.Equal(t, []string{"Okko", "Netflix"}, c.Custom)
	assert.Len(t, c.All, len(DefaultPlatforms)+1)
	assert.IsNonDecreasing(t, c.All)
	assert.Contains(t, c.All, "Okko")
}

func TestCatalogue_DoesNotMutateDefaults(t *testing.T) {
	repo := new(PlatformRepoMock)
	p := NewPlatforms(repo, newNoopLogger())
	repo.On("ListCustomPlatforms", mock.Anything).Return([]string{}, nil)
	first := DefaultPlatforms[0]

	c, err := p.Catalogue(context.Background())
	require.NoError(t, err)
	c.Defaults[0] = "changed"
	assert.Equal(t, first, DefaultPlatforms[0])
}

func TestCatalogue_Error(t *testing.T) {
	repo := new(PlatformRepoMock)
	p := NewPlatforms(repo, newNoopLogger())
	repo.On("ListCustomPlatforms", mock.Anything).Return(nil, errors.New("db down"))

	_, err := p.Catalogue(context.Background())
	require.Error(t, err)
}
