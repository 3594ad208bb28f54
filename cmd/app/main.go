// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ppob-dashboard/internal/config"
	"ppob-dashboard/internal/infra/backend"
	"ppob-dashboard/internal/infra/i18n"
	"ppob-dashboard/internal/infra/logging"
	"ppob-dashboard/internal/infra/metrics"
	"ppob-dashboard/internal/infra/notify"
	red "ppob-dashboard/internal/infra/redis"
	"ppob-dashboard/internal/infra/state"
	"ppob-dashboard/internal/infra/web"
	"ppob-dashboard/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (relaxed cookies, console logs)")
	flag.Parse()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Runtime.Dev {
		log.Printf("[DEV MODE] Enabled")
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()
	sessionRepo := red.NewSessionRepo(redisClient, cfg.Server.SessionTTL)

	// ---- Upstream backend ----
	client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, backend.ContextTokens{}, logger)
	authGW := backend.NewAuthClient(client)
	userGW := backend.NewUserClient(client)
	topupGW := backend.NewTopUpClient(client)
	catalogGW := backend.NewCatalogClient(client)

	// ---- State, toasts, messages ----
	balance := state.NewBalanceContainer(userGW, logger)
	toasts := notify.NewToastQueue(time.Minute)
	translator, err := i18n.NewTranslator(i18n.LocalesFS, "id")
	if err != nil {
		log.Fatalf("i18n: %v", err)
	}

	// ---- Use cases ----
	authUC := usecase.NewAuthUseCase(authGW, balance, toasts, translator, logger)
	userUC := usecase.NewUserUseCase(userGW, balance, toasts, translator)
	topupUC := usecase.NewTopUpUseCase(
		topupGW, balance, toasts, translator,
		cfg.TopUp.PollInterval, cfg.TopUp.SuccessCloseDelay, cfg.TopUp.OptionsCacheTTL,
		logger,
	)
	ppobUC := usecase.NewPPOBUseCase(catalogGW, catalogGW, balance, toasts, translator, cfg.Catalog.CacheTTL, logger)

	// ---- HTTP server ----
	cookies := web.NewSessionManager(cfg.Server.CookieSecret, cfg.Server.SecureCookie, cfg.Server.CookieDomain, cfg.Server.SessionTTL)
	srv := web.NewServer(authUC, userUC, topupUC, ppobUC, sessionRepo, toasts, translator, cookies, cfg.Server.AllowedOrigin, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      srv.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("dashboard gateway listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
	cancel()
}
