package main

import (
	"fmt"
	"log/slog"

	"github.com/amirasaad/commission/infra/initializer"
	"github.com/amirasaad/commission/pkg/app"
	"github.com/amirasaad/commission/pkg/config"
	"github.com/amirasaad/commission/pkg/jobs"
	"github.com/amirasaad/commission/webapi"
	log "github.com/charmbracelet/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	logger := slog.Default()

	a := app.New(deps, cfg)

	if cfg.Sweeper.Enabled {
		sweeper := jobs.NewSweeper(a.PayoutService, deps.Logger)
		if err := sweeper.Start(cfg.Sweeper.Schedule); err != nil {
			return fmt.Errorf("failed to start auto-settlement sweeper: %w", err)
		}
		defer sweeper.Stop()
	}

	fiberApp := webapi.SetupApp(a)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
		"timezone", cfg.Business.Timezone,
	)
	return fiberApp.Listen(addr)
}
