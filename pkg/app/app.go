// Package app assembles the services from their dependencies.
package app

import (
	"log/slog"
	"time"

	"github.com/amirasaad/commission/pkg/config"
	"github.com/amirasaad/commission/pkg/repository"
	"github.com/amirasaad/commission/pkg/service/audit"
	"github.com/amirasaad/commission/pkg/service/payout"
)

// Deps contains the external collaborators the services are built from.
type Deps struct {
	Uow              repository.UnitOfWork
	BusinessLocation *time.Location
	Logger           *slog.Logger
}

// App holds the wired services and configuration.
type App struct {
	Deps          *Deps
	Config        *config.App
	PayoutService *payout.Service
	AuditRecorder *audit.Recorder
}

// New wires the services.
func New(deps *Deps, cfg *config.App) *App {
	recorder := audit.New(deps.Uow, deps.Logger)
	return &App{
		Deps:          deps,
		Config:        cfg,
		AuditRecorder: recorder,
		PayoutService: payout.New(deps.Uow, recorder, deps.BusinessLocation, deps.Logger),
	}
}
