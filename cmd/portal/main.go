package main

import (
	"os"

	"github.com/01moynul/pedidos-portal/internal/config"
	"github.com/01moynul/pedidos-portal/internal/logging"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "portal",
		Usage: "order portal for the store's customers and administrators",
		Commands: []*cli.Command{
			serveCommand(),
			ordersCommand(),
			tokenCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("portal stopped")
	}
}

// loadConfig reads the environment and lets flags override it.
func loadConfig(c *cli.Context) (*config.Config, error) {
	// 1. --- Environment ---
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	// 2. --- Flag overrides ---
	if c.IsSet("address") {
		cfg.Address = c.String("address")
	}
	if c.IsSet("api") {
		cfg.APIBaseURL = c.String("api")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("db-driver") {
		cfg.DBDriver = c.String("db-driver")
	}
	if c.IsSet("db-dsn") {
		cfg.DBDSN = c.String("db-dsn")
	}

	// 3. --- Validate & logging ---
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := logging.Initialize(cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, err
	}
	return cfg, nil
}

var apiFlag = &cli.StringFlag{Name: "api", Usage: "base URL of the store API (API_BASE_URL)"}

var logLevelFlag = &cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Usage: "log level (LOG_LEVEL)"}
