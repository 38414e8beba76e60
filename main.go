package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"favorites-restful/auth"
	"favorites-restful/config"
	"favorites-restful/controllers"
	"favorites-restful/database"
	grpcserver "favorites-restful/grpc_server"
	"favorites-restful/registry"
	"favorites-restful/repositories"
	"favorites-restful/services"

	"go.uber.org/zap"
)

func newLogger(level string) (*zap.Logger, error) {
	switch level {
	case "debug":
		return zap.NewDevelopment()
	default:
		return zap.NewProduction()
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() // Make sure the buffer is flushed before the program exits

	if cfg.JwtSecret == config.DefaultJwtSecret {
		logger.Warn("Using the default JWT secret; set FAVORITES_JWT_SECRET in production")
	}

	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}
	if cfg.Database.Seed {
		database.SeedCatalog(db, logger)
	}

	userService := services.NewUserService(repositories.NewUserRepository(db))
	catalogService := services.NewCatalogService(
		repositories.NewCharacterRepository(db),
		repositories.NewLocationRepository(db),
	)
	issuer := auth.NewTokenIssuer(cfg.JwtSecret, cfg.TokenTTL, cfg.ServiceName)

	// --- HTTP ---
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           controllers.NewContainer(userService, catalogService, issuer, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- gRPC ---
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		logger.Fatal("Failed to listen", zap.Int("port", cfg.GRPCPort), zap.Error(err))
	}
	grpcServer, healthServer := grpcserver.NewServer(logger.Named("grpc"), issuer, userService, catalogService)

	deregister := func() {}
	if cfg.Consul.Address != "" {
		reg, err := registry.NewConsulRegistry(cfg.Consul.Address, logger.Sugar())
		if err != nil {
			logger.Fatal("Failed to connect to Consul", zap.Error(err))
		}
		deregister, err = registry.Announce(reg, cfg.ServiceName, registry.Endpoints{
			Host:     cfg.Consul.AdvertiseHost,
			HTTPPort: cfg.HTTPPort,
			GRPCPort: cfg.GRPCPort,
		}, cfg.Consul.CheckInterval, logger)
		if err != nil {
			logger.Fatal("Failed to register with Consul", zap.Error(err))
		}
	}

	go func() {
		logger.Info("gRPC server listening", zap.String("addr", lis.Addr().String()))
		if err := grpcServer.Serve(lis); err != nil {
			logger.Fatal("gRPC server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")

	deregister()
	healthServer.Shutdown()
	grpcServer.GracefulStop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
