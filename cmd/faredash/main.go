package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"faredash/config"
	v1 "faredash/internal/controllers/http/v1"
	"faredash/internal/repositories"
	"faredash/internal/services/analysis"
	"faredash/pkg/httpserver"
	"faredash/pkg/logger"
	"faredash/pkg/observe"
)

// @title Faredash API
// @version 1.0.0
// @description Flight-fare dashboard backend. Loads fare-quote datasets from static JSON hosting,
// @description filters them by user criteria and serves chart-ready series, summary tables, CSV
// @description exports and server-rendered charts.

// @host localhost:8080
// @BasePath /
// @schemes http

// @tag.name Analysis
// @tag.description Fare filtering and aggregation
// @tag.name Export
// @tag.description CSV table exports
// @tag.name Charts
// @tag.description Server-rendered PNG charts
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	_ = godotenv.Load()

	cnf, err := config.NewConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	hook := observe.NewSentryHook(cnf.AppName, cnf.SentryDSN, false)
	l := logger.NewZapLogger(cnf.AppName, os.Stdout, hook)

	if _, err := cnf.SeasonEnd(); err != nil {
		l.Fatal("invalid season end date", map[string]any{"err": err.Error()})
	}

	app := httpserver.InitFiberServer(cnf.AppName)

	repo := repositories.InitFareRepository(cnf, l)
	service := analysis.NewAnalysisService(repo, l)

	v1.NewRouter(app, service, cnf, l)

	// Initial load; the dashboard serves empty results until it completes.
	go service.Refresh(ctx)

	if cnf.Data.RefreshMinutes > 0 {
		go func() {
			ticker := time.NewTicker(time.Duration(cnf.Data.RefreshMinutes) * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					service.Refresh(ctx)
				}
			}
		}()
	}

	go func() {
		if err := app.Listen(":" + cnf.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err})
		}
	}()

	l.Info("application started successfully", map[string]any{"port": cnf.Port})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		hook.Stop()
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}
