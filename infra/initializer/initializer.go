// Package initializer builds the application's dependency graph from
// configuration: logger, database connection, schema, and unit of work.
package initializer

import (
	"fmt"
	"time"

	"github.com/amirasaad/commission/infra"
	infrarepo "github.com/amirasaad/commission/infra/repository"
	"github.com/amirasaad/commission/pkg/app"
	"github.com/amirasaad/commission/pkg/config"
)

// InitializeDependencies prepares everything app.New needs.
func InitializeDependencies(cfg *config.App) (*app.Deps, error) {
	logger := setupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&infrarepo.Transaction{},
		&infrarepo.CommissionPayout{},
		&infrarepo.TransactionEvent{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Business.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid business timezone %q: %w", cfg.Business.Timezone, err)
	}

	return &app.Deps{
		Uow:              infrarepo.NewUoW(db),
		BusinessLocation: loc,
		Logger:           logger,
	}, nil
}
