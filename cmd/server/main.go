package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "mindbridge/docs"
	"mindbridge/internal/app"
	"mindbridge/internal/config"
	"mindbridge/internal/logging"
	"mindbridge/internal/resources"
	"mindbridge/internal/transport/rest"
	"mindbridge/internal/transport/rest/handler"
	"mindbridge/internal/transport/ws"
)

// @title MindBridge API
// @version 1.0
// @description Student mental health support: screening, AI companion, peer forum and counselor dashboard.
// @host localhost:8080
// @BasePath /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx := context.Background()

	logger.Info("AI config",
		zap.Strings("models", cfg.AI.Models),
		zap.Bool("apiKeyConfigured", cfg.AI.IsEnabled()),
		zap.Duration("timeout", cfg.AI.Timeout()))
	if cfg.UsingDefaultSecret() {
		logger.Warn("JWT_SECRET not set, using the development default")
	}

	a, err := app.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	// Initialize WebSocket hub
	wsHub := ws.NewHub(logger.Named("ws"))
	defer wsHub.Close()
	logger.Info("WebSocket hub started")

	// Inject broadcaster (wsHub implements service.Broadcaster)
	a.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:       a.Auth,
		SessionService:    a.Sessions,
		AssessmentService: a.Assessments,
		ChatService:       a.Chat,
		ForumService:      a.Forum,
		AdminService:      a.Admin,
		Catalog:           resources.Default(),
		WSHub:             wsHub,
		AuthOptions: handler.AuthOptions{
			SecureCookies: cfg.SecureCookies,
			AdminEmail:    cfg.AdminEmail,
			AdminPassword: cfg.AdminPassword,
		},
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:         logger.Named("http"),
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           rest.NewRouter(container),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		logger.Info("shutting down server", zap.String("signal", sig.String()))
	case err := <-errCh:
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server exited")
	return nil
}
