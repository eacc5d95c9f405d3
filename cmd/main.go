package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fastfour/schleifchen-system/config"
	"github.com/fastfour/schleifchen-system/db"
	"github.com/fastfour/schleifchen-system/engine"
	"github.com/fastfour/schleifchen-system/handlers"
	"github.com/fastfour/schleifchen-system/repositories"
	api "github.com/fastfour/schleifchen-system/routes"
	"github.com/fastfour/schleifchen-system/services"
	"github.com/fastfour/schleifchen-system/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	if err := db.EnsureSchema(context.Background(), dbConn); err != nil {
		logger.Error("failed to ensure database schema", slog.Any("error", err))
		os.Exit(1)
	}

	// Standings export is optional; without R2 credentials the endpoint
	// reports itself unavailable.
	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Info("Cloudflare R2 not configured, standings export disabled")
	}

	wsHub := engine.NewHub()
	go wsHub.Run()
	logger.Info("websocket hub started")

	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	userRepo := repositories.NewPostgresUserRepository(dbConn)

	generator := engine.NewGroupedShuffleGenerator(nil)
	authService := services.NewAuthService(userRepo)
	tournamentService := services.NewTournamentService(tournamentRepo, generator, uploader, wsHub, logger)
	logger.Info("services initialized", slog.String("generator", generator.GetName()))

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	roundHandler := handlers.NewRoundHandler(tournamentService)
	rankingHandler := handlers.NewRankingHandler(tournamentService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		tournamentHandler,
		roundHandler,
		rankingHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			return server.Close()
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		logger.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}
