package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	restctx "github.com/dtroode/tastebite-server/internal/api/rest/context"
	"github.com/dtroode/tastebite-server/internal/api/rest/middleware"
	"github.com/dtroode/tastebite-server/internal/api/rest/router"
	httpServer "github.com/dtroode/tastebite-server/internal/api/rest/server"
	"github.com/dtroode/tastebite-server/internal/config"
	"github.com/dtroode/tastebite-server/internal/logger"
	"github.com/dtroode/tastebite-server/internal/model"
	"github.com/dtroode/tastebite-server/internal/password"
	"github.com/dtroode/tastebite-server/internal/repository/postgres"
	"github.com/dtroode/tastebite-server/internal/server"
	"github.com/dtroode/tastebite-server/internal/service"
	storage "github.com/dtroode/tastebite-server/internal/storage/minio"
	"github.com/dtroode/tastebite-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	storageClient, err := storage.Dial(ctx, cfg.Storage.Endpoint, cfg.Storage.AccessKey, cfg.Storage.SecretKey, cfg.Storage.Bucket, cfg.Storage.UseSSL)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	hasher := password.NewBcrypt(cfg.BcryptCost)
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	tokenService := service.NewTokenService(tokenManager, db, cfg.JWT.RefreshTTL, logger)
	authService, err := service.NewAuth(db, hasher, tokenService, logger)
	if err != nil {
		logger.Fatal("failed to initialize auth service", "error", err)
	}
	recipeService := service.NewRecipe(db, logger)
	favoriteService := service.NewFavoriteRecipe(db, logger)
	userService := service.NewUser(db, logger)
	imageService := service.NewImage(storageClient, cfg.HTTP.PublicURL, cfg.Storage.MaxUploadSize, logger)

	limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst, logger)
	go limiter.Run(ctx, time.Minute)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := router.New(router.Services{
		Auth:      authService,
		Tokens:    tokenService,
		Recipes:   recipeService,
		Favorites: favoriteService,
		Users:     userService,
		Images:    imageService,
		Health:    db,
	}, router.Options{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		MaxUploadSize:  cfg.Storage.MaxUploadSize,
		RateLimiter:    limiter,
		Registry:       registry,
	}, restctx.NewManager(), logger)

	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port), cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout)
	sl := server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
