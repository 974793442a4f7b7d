package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"AdmissionOfficer/internal/config"
	"AdmissionOfficer/internal/qa_service/api"
	"AdmissionOfficer/internal/qa_service/service"
	"AdmissionOfficer/pkg/logger"
	"AdmissionOfficer/pkg/ratelimiter"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(logger.ParseLevel(cfg.Logger.Level))
	appLogger := logger.New("QAService", "", "")
	appLogger.Info("Starting QA Service...")

	ctx := context.Background()
	svc, err := service.NewService(ctx, cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize service: %v", err)
	}
	defer svc.Close()

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	var limiter ratelimiter.RateLimiter
	if cfg.Middleware.RateLimiter.Enabled {
		limiter, err = api.NewRateLimiter(cfg.Middleware.RateLimiter)
		if err != nil {
			log.Fatalf("Failed to create rate limiter: %v", err)
		}
		appLogger.Info(fmt.Sprintf("Rate limiter enabled with algorithm: %s", cfg.Middleware.RateLimiter.Algorithm))
	}

	handler := api.NewHandler(svc, appLogger)
	router := api.SetupRouter(handler, cfg.Auth.JwtSecret, limiter)

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		appLogger.Info(fmt.Sprintf("HTTP server listening at %s", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve HTTP: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(fmt.Sprintf("Server shutdown failed: %v", err))
	}
	appLogger.Info("Server gracefully stopped")
}
