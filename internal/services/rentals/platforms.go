package rentals

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// ErrEmptyPlatformName — название платформы пустое после обрезки пробелов.
var ErrEmptyPlatformName = errors.New("platform name is empty")

// DefaultPlatforms — встроенный каталог стриминговых платформ.
var DefaultPlatforms = []string{
	"Netflix",
	"Spotify",
	"Prime Video",
	"HBO Max",
	"Disney+",
	"Apple TV+",
	"Paramount+",
	"Crunchyroll",
	"YouTube Premium",
	"Star+",
	"Max",
	"Peacock",
	"Deezer",
	"Tidal",
}

// PlatformRepository определяет методы хранилища пользовательских платформ.
type PlatformRepository interface {
	ListCustomPlatforms(ctx context.Context) ([]string, error)
	AddCustomPlatform(ctx context.Context, name string) (bool, error)
}

// Catalogue — полный список платформ.
type Catalogue struct {
	Defaults []string `json:"defaults"`
	Custom   []string `json:"custom"`
	All      []string `json:"all"`
}

// Platforms управляет каталогом платформ.
type Platforms struct {
	repo PlatformRepository
	log  *slog.Logger
}

// NewPlatforms создаёт сервис каталога платформ.
func NewPlatforms(repo PlatformRepository, log *slog.Logger) *Platforms {
	return &Platforms{repo: repo, log: log}
}

// ListCustomPlatforms возвращает пользовательские платформы по алфавиту.
func (p *Platforms) ListCustomPlatforms(ctx context.Context) ([]string, error) {
	const op = "rentals.ListCustomPlatforms"
	names, err := p.repo.ListCustomPlatforms(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return names, nil
}

// AddCustomPlatform добавляет платформу под обрезанным именем.
// Возвращает false, если такое имя уже есть среди пользовательских платформ.
func (p *Platforms) AddCustomPlatform(ctx context.Context, name string) (bool, error) {
	const op = "rentals.AddCustomPlatform"
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false, fmt.Errorf("%s: %w", op, ErrEmptyPlatformName)
	}
	added, err := p.repo.AddCustomPlatform(ctx, trimmed)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if added {
		p.log.Info("custom platform added", slog.String("name", trimmed))
	}
	return added, nil
}

// Catalogue объединяет встроенные и пользовательские платформы
// в отсортированный список без повторов.
func (p *Platforms) Catalogue(ctx context.Context) (*Catalogue, error) {
	const op = "rentals.Catalogue"
	custom, err := p.repo.ListCustomPlatforms(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	all := make([]string, 0, len(DefaultPlatforms)+len(custom))
	all = append(all, DefaultPlatforms...)
	all = append(all, custom...)
	slices.Sort(all)
	all = slices.Compact(all)

	return &Catalogue{
		Defaults: slices.Clone(DefaultPlatforms),
		Custom:   custom,
		All:      all,
	}, nil
}
