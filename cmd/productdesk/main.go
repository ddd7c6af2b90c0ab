package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/suteetoe/productdesk/internal/apiclient"
	"github.com/suteetoe/productdesk/internal/screen"
	"github.com/suteetoe/productdesk/internal/session"
	"github.com/suteetoe/productdesk/internal/tui"
	"github.com/suteetoe/productdesk/pkg/config"
	"github.com/suteetoe/productdesk/pkg/logger"
	"github.com/suteetoe/productdesk/pkg/metrics"
)

func main() {
	serverFlag := flag.String("server", "", "Override API base URL (e.g. http://localhost:5000)")
	flag.Parse()

	// Load configuration
	appConfig, err := config.Load("productdesk")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}
	if *serverFlag != "" {
		appConfig.API.BaseURL = *serverFlag
	}

	// Logs go to a rotated file so they never interleave with the screen
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       appConfig.Log.Level,
		Environment: appConfig.App.Env,
		ServiceName: appConfig.ServiceName,
		File:        appConfig.Log.File,
	}); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		os.Exit(1)
	}
	log := logger.GetLogger()
	defer logger.Sync()

	log.Info("Starting productdesk", appConfig.LogConfig()...)

	registry := prometheus.NewRegistry()
	clientMetrics := metrics.NewClientMetrics(appConfig.Metrics.Prefix, registry)
	if addr := appConfig.Metrics.Addr; addr != "" {
		srv := &http.Server{Addr: addr, Handler: metrics.Handler(registry), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			log.Info("Serving metrics", zap.String("addr", addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Metrics server error", zap.Error(err))
			}
		}()
		defer srv.Close()
	}

	client := apiclient.NewFromConfig(&appConfig.API,
		apiclient.WithLogger(log.Named("api")),
		apiclient.WithMetrics(clientMetrics),
	)

	ui := tui.New(os.Stdin, os.Stdout,
		tui.WithTerminal(int(os.Stdin.Fd())),
		tui.WithLogger(log.Named("tui")),
	)
	app := screen.NewApp(session.New(client, log.Named("session")), client, client, ui, screen.Options{
		Placeholder: appConfig.API.PlaceholderImage,
		Logger:      log,
	})
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := ui.Run(ctx, app); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Terminal session ended with error", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	log.Info("productdesk stopped")
}
