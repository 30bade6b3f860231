package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/janus-access/janus-server/internal/config"
	"github.com/janus-access/janus-server/internal/db"
	"github.com/janus-access/janus-server/internal/httpapi"
	"github.com/janus-access/janus-server/internal/janus/service"
	"github.com/janus-access/janus-server/internal/janus/store/sqlite"
	"github.com/janus-access/janus-server/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, db.Config{Path: cfg.DBPath, Env: cfg.Env})
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer func() { _ = conn.Close() }()

	if cfg.Env == "dev" {
		if err := db.SeedDev(ctx, conn); err != nil {
			logger.Fatal("seed dev data", zap.Error(err))
		}
	}

	writer := db.NewWorker(conn)
	defer writer.Close()

	// Stores
	keyStore := sqlite.NewControllerKeyStore(conn, writer)
	credentialStore := sqlite.NewCredentialStore(conn)
	accessLogStore := sqlite.NewAccessLogStore(conn, writer)

	// Services
	registry := service.NewControllerRegistry(keyStore)
	accessSvc := service.NewAccessService(credentialStore)
	eventSvc := service.NewEventService(accessLogStore)
	keySvc := service.NewKeyService(keyStore)

	// HTTP
	srv := httpapi.NewServer(httpapi.Dependencies{
		Logger:         logger,
		Addr:           cfg.HTTPAddr,
		AdminToken:     cfg.AdminToken,
		AllowedOrigins: cfg.AllowedOrigins,
		Registry:       registry,
		Access:         accessSvc,
		Events:         eventSvc,
		Keys:           keySvc,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.Env))
		if err := srv.Start(); err != nil {
			logger.Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.ShutdownTimeoutSec)*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
