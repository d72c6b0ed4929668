package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Urjashee/response-formatter/api"
	"github.com/Urjashee/response-formatter/common/auth"
	"github.com/Urjashee/response-formatter/internal/config"
	"github.com/Urjashee/response-formatter/internal/tracing"
	"github.com/Urjashee/response-formatter/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the reference API service",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			serve(configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a config file (default: ./config.yaml or ./configs/config.yaml)")
	return cmd
}

func serve(configPath string) {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	gin.SetMode(cfg.Server.Mode)

	if cfg.Tracing.Enabled {
		shutdownTracing, err := tracing.Setup(cfg.Tracing.ServiceName, os.Stdout)
		if err != nil {
			zapLogger.Fatal("Failed to set up tracing", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := shutdownTracing(ctx); err != nil {
				zapLogger.Error("Failed to flush traces", zap.Error(err))
			}
		}()
	}

	apiServer := api.NewServer(zapLogger, api.Options{
		Auth: auth.Config{
			Secret: []byte(cfg.Auth.Secret),
			Issuer: cfg.Auth.Issuer,
		},
		AllowOrigins: cfg.CORS.AllowOrigins,
		Tracing:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Tracing.ServiceName,
	})

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- apiServer.Start(cfg.Server.Addr)
	}()

	// Wait for interrupt to shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if err != nil {
			zapLogger.Error("API server stopped", zap.Error(err))
		}
		return
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		zapLogger.Error("Failed to shut down API server", zap.Error(err))
	}

	zapLogger.Info("Server exited properly")
}
