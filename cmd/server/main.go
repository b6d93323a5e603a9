// Package main initializes and starts the SecureDoc HTTP server, setting
// up configuration, logging, the database connection, repositories,
// services, and handlers.
package main

import (
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/securedoc/server/internal/config"
	"github.com/securedoc/server/internal/db"
	"github.com/securedoc/server/internal/logger"
	"github.com/securedoc/server/internal/repository"
	"github.com/securedoc/server/internal/server/handler/http"
	"github.com/securedoc/server/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line, .env, and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	buildVersion := version
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	buildTimestamp := buildDate
	if buildTimestamp == "" {
		buildTimestamp = "N/A"
	}
	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildTimestamp)

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize the PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Sweep share records whose document has been deleted.
	db.StartOrphanedShareSweeper(context.Background(), postgresDB,
		time.Hour, // interval
		zapLogger,
	)

	// Initialize repositories for users, documents, and shares.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	docRepo := repository.NewPostgresDocumentRepository(postgresDB)
	shareRepo := repository.NewPostgresShareRepository(postgresDB)

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo)
	tokenService := service.NewTokenService(options.JWTSecret)
	docService := service.NewDocumentService(docRepo)
	accessService := service.NewAccessService(shareRepo, docRepo)

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{
		AuthService:  authService,
		Tokens:       tokenService,
		CookieDomain: options.CookieDomain,
	}
	docHandler := &http.DocumentHandler{DocumentService: docService}
	shareHandler := &http.ShareHandler{AccessService: accessService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, docHandler, shareHandler, tokenService, zapLogger, options.CORSOrigin)

	server := &nethttp.Server{
		Addr:    options.Address,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Address))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
