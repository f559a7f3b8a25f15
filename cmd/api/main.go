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

	"github.com/user/openperf-gateway/internal/adapter/grpcengine"
	"github.com/user/openperf-gateway/internal/delivery/http/handler"
	"github.com/user/openperf-gateway/internal/delivery/http/router"
	"github.com/user/openperf-gateway/internal/usecase"
	"github.com/user/openperf-gateway/pkg/config"
	"github.com/user/openperf-gateway/pkg/logger"
	"github.com/user/openperf-gateway/pkg/metrics"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// --- Logger ---
	logLevel := logger.ParseLevel(cfg.LogLevel)
	logger.Init(os.Stdout, logLevel)
	slog.Info("Logger initialized", "level", logLevel.String())

	// --- Metrics ---
	metrics.Init()
	slog.Info("Metrics initialized")

	// --- Backend Engine ---
	schema, err := grpcengine.LoadSchema(cfg.DescriptorSetPath)
	if err != nil {
		slog.Error("Unable to load backend schema", "path", cfg.DescriptorSetPath, "error", err)
		os.Exit(1)
	}

	// The connection is lazy; an unreachable engine surfaces per request.
	conn, err := grpcengine.Dial(cfg.GRPCAddress)
	if err != nil {
		slog.Error("Unable to create backend client", "address", cfg.GRPCAddress, "error", err)
		os.Exit(1)
	}
	defer conn.Close()
	slog.Info("Backend client created", "address", cfg.GRPCAddress)

	engine := grpcengine.NewClient(conn, schema)

	// --- Use Cases ---
	gateway := usecase.NewGateway(engine)

	// --- HTTP Server ---
	apiHandler := handler.NewHandler(gateway)
	httpRouter := router.New(apiHandler)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      httpRouter,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Starting server", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", "port", cfg.ServerPort, "error", err)
			os.Exit(1)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server", "timeout", cfg.ShutdownTimeout())
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	slog.Info("Server exited")
}
