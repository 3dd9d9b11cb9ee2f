package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config2 "recruitment-service/pkg/config"

	_ "recruitment-service/docs"
	"recruitment-service/internal/handler"
	"recruitment-service/internal/repository"
	"recruitment-service/internal/router"
	"recruitment-service/internal/service"

	"github.com/go-playground/validator/v10"
)

// @title Cricket Recruitment Service API
// @version 1.0
// @description Team capacity, applications, invitations and mutual-match swipes
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config2.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Configure logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	store, err := repository.Open(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to open storage", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	var pinger handler.Pinger
	if store.Pool != nil {
		pinger = store.Pool
	}

	// Initialize validator
	validate := validator.New()

	// Initialize services
	authService := service.NewAuthService(cfg.JWTSecret)
	userService := service.NewUserService(store.Users)
	teamService := service.NewTeamService(store.Teams, cfg.DefaultMaxPlayers)
	recruitmentService := service.NewRecruitmentService(
		store.Teams,
		store.Applications,
		store.Invitations,
		store.Users,
		service.RecruitmentPolicy{
			InvitationTTL:      cfg.InvitationTTL,
			SwipeInvitationTTL: cfg.SwipeInvitationTTL,
		},
	)

	// Initialize handlers
	handlers := router.Handlers{
		Health:       handler.NewHealthHandler(pinger),
		User:         handler.NewUserHandler(userService, validate),
		Team:         handler.NewTeamHandler(teamService, validate),
		Application:  handler.NewApplicationHandler(recruitmentService, validate),
		Invitation:   handler.NewInvitationHandler(recruitmentService, validate),
		Swipe:        handler.NewSwipeHandler(recruitmentService),
		RequestLimit: cfg.RequestTimeout,
	}

	slog.Info("successfully configured services and handlers")

	r := router.SetupRouter(handlers, authService)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("server stopped")
}
