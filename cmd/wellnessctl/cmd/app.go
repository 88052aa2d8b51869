package cmd

import (
	"github.com/wellpath/portal/internal/app"
	"github.com/wellpath/portal/internal/config"
	"github.com/wellpath/portal/internal/logger"
)

func loadConfig() *config.Config {
	cfg := config.Load()
	logger.Init(logger.Options{
		AppName:   cfg.AppName,
		AppEnv:    cfg.AppEnv,
		SentryDSN: cfg.SentryDSN,
	})
	return cfg
}

// openApp connects to the configured database, migrating it up first.
func openApp() (*app.App, error) {
	return app.New(loadConfig())
}
