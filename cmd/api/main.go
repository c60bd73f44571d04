package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/octobees/outreach-campaigns/api/internal/auth"
	"github.com/octobees/outreach-campaigns/api/internal/config"
	"github.com/octobees/outreach-campaigns/api/internal/handler"
	"github.com/octobees/outreach-campaigns/api/internal/llm"
	"github.com/octobees/outreach-campaigns/api/internal/logging"
	"github.com/octobees/outreach-campaigns/api/internal/repository"
	"github.com/octobees/outreach-campaigns/api/internal/router"
	"github.com/octobees/outreach-campaigns/api/internal/service"
	"github.com/octobees/outreach-campaigns/api/web"
)

func main() {
	startedAt := time.Now()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repos, closeDB, err := repository.Open(ctx, cfg.DatabaseURL, cfg.AutoMigrate)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer closeDB()

	llmClient, err := llm.New(ctx, cfg.LLM)
	if err != nil {
		logger.Fatal("failed to configure llm provider", zap.String("provider", cfg.LLM.Provider), zap.Error(err))
	}

	campaignsService := service.NewCampaignsService(repos.Campaigns, repos.Accounts)
	accountsService := service.NewAccountsService(repos.Accounts)
	messageService := service.NewMessageService(llmClient, repos.Accounts, cfg.Prompt, logger)

	responder := handler.NewResponder(cfg.IsDevelopment(), logger)
	handlers := router.Handlers{
		Campaigns: handler.NewCampaignsHandler(campaignsService, responder),
		Accounts:  handler.NewAccountsHandler(accountsService, responder),
		Messages:  handler.NewMessageHandler(messageService, responder),
		System:    handler.NewSystemHandler(cfg.Environment, startedAt, responder),
	}

	opts := router.Options{Logger: logger}
	if cfg.AuthEnabled() {
		opts.JWT = auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	}
	if dashboard, err := web.Dashboard(); err != nil {
		logger.Warn("dashboard assets unavailable", zap.Error(err))
	} else {
		opts.Dashboard = dashboard
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	router.Register(e, cfg, handlers, opts)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	logger.Info("server started",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.Bool("auth", cfg.AuthEnabled()),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
