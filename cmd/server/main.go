package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/wellpath/portal/internal/app"
	"github.com/wellpath/portal/internal/config"
	"github.com/wellpath/portal/internal/logger"
	"github.com/wellpath/portal/internal/routes"
)

func main() {
	cfg := config.Load()

	logger.Init(logger.Options{
		AppName:   cfg.AppName,
		AppEnv:    cfg.AppEnv,
		SentryDSN: cfg.SentryDSN,
	})

	app, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		panic(err)
	}
	defer func() {
		closeErr := app.Close()
		if closeErr != nil {
			slog.Error("failed to close app", "error", closeErr)
		}
	}()

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.SetupRoutes(app),
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv, "api_prefix", cfg.APIPrefix)

	err = server.ListenAndServe()
	if err != nil {
		slog.Error("server failed", "error", err)
		panic(err)
	}
}
