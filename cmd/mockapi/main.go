package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/suteetoe/productdesk/internal/mockapi"
	"github.com/suteetoe/productdesk/pkg/config"
	"github.com/suteetoe/productdesk/pkg/jwtutil"
	"github.com/suteetoe/productdesk/pkg/logger"
)

func main() {
	// Load configuration
	appConfig, err := config.Load("mockapi")
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// The mock server logs to stderr
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       appConfig.Log.Level,
		Environment: appConfig.App.Env,
		ServiceName: appConfig.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer logger.Sync()

	log.Info("Starting mockapi", appConfig.LogConfig()...)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	server := mockapi.New(mockapi.Options{
		Logger:   log,
		Registry: registry,
		JWT: &jwtutil.JWTConfig{
			SigningKey:      appConfig.Mock.JWTSigningKey,
			ExpirationHours: appConfig.Mock.JWTExpirationHours,
		},
		RequireAuth: appConfig.Mock.RequireAuth,
	})

	port := appConfig.Mock.Port
	go func() {
		log.Info("Starting server", zap.String("port", port), zap.Bool("require_auth", appConfig.Mock.RequireAuth))
		if err := server.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Echo().Shutdown(ctx); err != nil {
		log.Error("Shutdown error", zap.Error(err))
	}
	log.Info("Server stopped")
}
