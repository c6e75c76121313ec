// Command rentalctl — консольный клиент rental-tracker.
//
// При запуске восстанавливает сохранённую сессию (один раз), затем выполняет
// одну команду: login, logout, status, users, platforms или rentals.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/magabrotheeeer/rental-tracker/internal/cache"
	"github.com/magabrotheeeer/rental-tracker/internal/client/backend"
	"github.com/magabrotheeeer/rental-tracker/internal/config"
	"github.com/magabrotheeeer/rental-tracker/internal/lib/password"
	"github.com/magabrotheeeer/rental-tracker/internal/lib/subscription"
	"github.com/magabrotheeeer/rental-tracker/internal/services/session"
	"github.com/magabrotheeeer/rental-tracker/internal/snapshot"
)

const usage = `Usage: rentalctl [-config path] <command> [args]

Commands:
  login -u <username> [-p <password>]
  logout
  status
  users list | create | update <id> | delete <id>      (admin)
  platforms list | add <name>
  rentals list | create | show <id> | update <id> | delete <id>
  rentals replace <id> | history <id>
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %s\n", describe(err))
		os.Exit(1)
	}
}

// closer освобождает ресурсы хранилища снимка.
type closer func()

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("rentalctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	configPath := fs.String("config", os.Getenv("CONFIG_PATH"), "Path to config file")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fmt.Fprint(stderr, usage)
		return errors.New("missing command")
	}
	if *configPath == "" {
		return errors.New("config path is required: set CONFIG_PATH or pass -config")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	snapshots, closeSnapshots, err := openSnapshots(ctx, cfg, *configPath)
	if err != nil {
		return err
	}
	defer closeSnapshots()

	client := backend.NewClient(cfg.BackendURL, cfg.APIKey, cfg.RequestTimeout)
	manager := session.New(client, snapshots, password.NewHasher(0), subscription.SystemClock{}, logger,
		session.WithRestoreTimeout(cfg.RestoreTimeout))

	if err := manager.RestoreSession(ctx); err != nil {
		return err
	}
	if _, trust, ok := manager.Current(); ok && trust == session.TrustCached {
		fmt.Fprintln(stderr, "warning: backend unreachable, using cached session")
	}

	a := &cli{
		manager: manager,
		backend: client,
		clock:   subscription.SystemClock{},
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
	}
	return a.dispatch(ctx, fs.Args())
}

func openSnapshots(ctx context.Context, cfg *config.Config, configPath string) (session.SnapshotStore, closer, error) {
	switch cfg.SnapshotBackend {
	case "redis":
		c, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open redis snapshot store: %w", err)
		}
		key := snapshot.ClientKey(clientID(cfg.SnapshotKey, configPath))
		return snapshot.NewRedis(c, key), func() { _ = c.Close() }, nil
	case "sqlite", "":
		s, err := snapshot.NewSQLite(cfg.SnapshotPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite snapshot store: %w", err)
		}
		return s, func() { _ = s.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown snapshot backend %q", cfg.SnapshotBackend)
	}
}

// clientID возвращает идентификатор клиента для ключа снимка в Redis.
// Без явной настройки он строится из имени хоста и пути к конфигу,
// так что у каждой установки клиента свой стабильный ключ.
func clientID(configured, configPath string) string {
	if configured != "" {
		return configured
	}
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "localhost"
	}
	if abs, err := filepath.Abs(configPath); err == nil {
		configPath = abs
	}
	return host + ":" + uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+configPath)).String()
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	// Не терминал: тесты и конвейеры
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// describe переводит ошибки сессии в сообщения для пользователя.
func describe(err error) string {
	var expired *session.SubscriptionExpiredError
	switch {
	case errors.As(err, &expired):
		return expired.Error()
	case errors.Is(err, session.ErrInvalidCredentials), errors.Is(err, session.ErrUserNotFound):
		return "invalid username or password"
	case errors.Is(err, session.ErrDuplicateUsername):
		return "username is already taken"
	case errors.Is(err, session.ErrSelfDeletionForbidden):
		return "you cannot delete your own account"
	case errors.Is(err, session.ErrLastAdminProtected):
		return "cannot delete the last administrator"
	case errors.Is(err, session.ErrBackendUnavailable):
		return "backend is unavailable, try again later"
	case errors.Is(err, backend.ErrNotFound):
		return "not found"
	case errors.Is(err, backend.ErrUnauthorized):
		return "api key rejected by the backend"
	default:
		return err.Error()
	}
}
