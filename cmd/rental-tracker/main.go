// Command rental-tracker — HTTP API бэкенда учёта аренд.
//
// С флагом -issue-key печатает API-ключ для указанной роли (anon или service_role)
// и завершается.
//
// @title           Rental Tracker API
// @version         1.0
// @description     API учёта аренд стриминговых аккаунтов, пользователей и каталога платформ

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and API key.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/rental-tracker/internal/app/server"
	"github.com/magabrotheeeer/rental-tracker/internal/config"
	"github.com/magabrotheeeer/rental-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/rental-tracker/internal/lib/sl"
)

func main() {
	issueKey := flag.String("issue-key", "", "Print an API key for the given role (anon or service_role) and exit")
	flag.Parse()

	cfg := config.MustLoad()

	if *issueKey != "" {
		key, err := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL).GenerateToken(*issueKey)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(key)
		return
	}

	logger := sl.New(cfg.Env, os.Stdout)
	logger.Info("starting rental-tracker", slog.String("env", cfg.Env))
	logger.Debug("config loaded", slog.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := server.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("rental-tracker stopped gracefully")
}
