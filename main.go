package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elyashium/sylvan-web/auth"
	"github.com/elyashium/sylvan-web/config"
	"github.com/elyashium/sylvan-web/controllers"
	"github.com/elyashium/sylvan-web/middlewares"
	"github.com/elyashium/sylvan-web/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "optional yaml config file")
	flag.Parse()

	cfg, v, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	level := new(slog.LevelVar)
	level.Set(config.ParseLevel(cfg.LogLevel))
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if cfg.EphemeralSecret {
		logger.Warn("JWT_SECRET not set, signing sessions with a random key for this run")
	}

	if err := config.Watch(v, *configPath, level, logger); err != nil {
		logger.Warn("config hot reload disabled", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server terminated", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped cleanly")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	var (
		data  store.Provider
		users auth.UserRepository
	)
	switch cfg.DataSource {
	case config.SourcePostgres:
		db, err := config.OpenDatabase(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		p := store.NewGormProvider(db, store.NewFixture())
		if err := p.Migrate(); err != nil {
			return err
		}
		seeded, err := p.Seed(ctx)
		if err != nil {
			return err
		}
		if seeded {
			logger.Info("seeded empty database with demo data")
		}
		data, users = p, auth.NewGormUsers(db)
	default:
		data = store.NewDelayed(store.NewFixture(), cfg.FixtureLatency)
		users = auth.NewMemoryUsers()
	}
	logger.Info("data source ready", "source", cfg.DataSource)

	identity := auth.NewService(users, auth.Config{Secret: []byte(cfg.JWTSecret), SessionTTL: cfg.SessionTTL}, logger)
	if cfg.FederatedSecret != "" {
		identity.RegisterVerifier("google", auth.JWTVerifier{Secret: []byte(cfg.FederatedSecret), Issuer: cfg.FederatedIssuer})
	}

	handler := controllers.NewHandler(data, identity, identity, logger)
	feed := controllers.NewFeed(data, cfg.AllowedOrigins, logger)
	go feed.Run(ctx, cfg.FeedInterval)

	// Set up Gin router with CORS configuration
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	controllers.Register(r, handler, feed, middlewares.AuthMiddleware(identity, logger))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
