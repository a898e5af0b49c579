package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/moseskang00/bookquest/common/constants"
	"github.com/moseskang00/bookquest/internal/app"
	"github.com/moseskang00/bookquest/internal/app/handlers"
	"github.com/moseskang00/bookquest/internal/books"
	"github.com/moseskang00/bookquest/internal/cache"
	"github.com/moseskang00/bookquest/internal/config"
	"github.com/moseskang00/bookquest/internal/logging"
	"github.com/moseskang00/bookquest/internal/redis"
)

func newServeCmd() *cobra.Command {
	v := config.New()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(v)
		},
	}
	if err := config.RegisterFlags(v, cmd.Flags()); err != nil {
		panic(err)
	}
	return cmd
}

func serve(v *viper.Viper) error {
	// Load environment variables from .env file (if it exists)
	if loaded := config.LoadDotEnv(".env", "../.env"); len(loaded) == 0 {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.APIKey == "" {
		logger.Warn("GOOGLE_BOOKS_API_KEY is not set; searches will fail until it is configured")
	}

	store, closeStore, err := newStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	h := handlers.New(handlers.Options{
		Logger: logger,
		Books: books.NewClient(books.Config{
			BaseURL: cfg.BooksAPIURL,
			Timeout: constants.UpstreamTimeoutSecs * time.Second,
		}, logger.Named("books")),
		Store:  store,
		TTL:    constants.CacheTTLSeconds * time.Second,
		APIKey: cfg.APIKey,
	})

	router := app.NewRouter(h, app.RouterOptions{
		Logger:    logger.Named("http"),
		StaticDir: cfg.StaticDir,
	})

	srv := &http.Server{
		Addr:           cfg.Addr(),
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   15 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting BookQuest backend",
			zap.String("addr", srv.Addr),
			zap.String("backend", h.Backend()),
			zap.String("cacheBackend", cfg.CacheBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-quit:
	}

	logger.Info("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("Server exited")
	return nil
}

func newStore(cfg config.Config, logger *zap.Logger) (cache.Store, func(), error) {
	if cfg.CacheBackend != config.BackendRedis {
		return cache.NewMemoryStore(nil), func() {}, nil
	}

	rcfg := redis.DefaultConfig()
	rcfg.Host = cfg.Redis.Host
	rcfg.Port = cfg.Redis.Port
	rcfg.Password = cfg.Redis.Password
	rcfg.DB = cfg.Redis.DB

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := redis.NewClient(ctx, rcfg, logger.Named("redis"))
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Warn("Failed to close Redis client", zap.Error(err))
		}
	}
	return cache.NewRedisStore(client.GetClient(), cfg.CachePrefix, nil), closeFn, nil
}
