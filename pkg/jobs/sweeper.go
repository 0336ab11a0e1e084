// Package jobs runs background maintenance for the payout lifecycle.
package jobs

import (
	"context"
	"log/slog"

	"github.com/amirasaad/commission/pkg/service/payout"
	"github.com/robfig/cron/v3"
)

// sweeperActor identifies auto-settlements in the audit trail.
const sweeperActor = "system:auto-settle"

// Sweeper settles scheduled auto-settle payouts once their scheduled date
// arrives. Each settlement goes through the lifecycle service, so the state
// machine and audit invariants hold exactly as for manual settlements.
type Sweeper struct {
	svc    *payout.Service
	logger *slog.Logger
	cron   *cron.Cron
}

// NewSweeper creates a Sweeper over the payout service.
func NewSweeper(svc *payout.Service, logger *slog.Logger) *Sweeper {
	return &Sweeper{svc: svc, logger: logger}
}

// Start schedules the sweep on the given cron expression and starts the
// cron runner.
func (s *Sweeper) Start(schedule string) error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(schedule, s.Run); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("auto-settlement sweeper started", "schedule", schedule)
	return nil
}

// Stop stops the cron runner. Running sweeps finish.
func (s *Sweeper) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Run performs one sweep. Failures on individual payouts are logged and do
// not stop the sweep; the payout stays scheduled and is retried next run.
func (s *Sweeper) Run() {
	ctx := context.Background()
	due, err := s.svc.ListDueAutoSettle(ctx)
	if err != nil {
		s.logger.Error("sweep failed to list due payouts", "error", err)
		return
	}
	if len(due) == 0 {
		return
	}
	s.logger.Info("sweeping due auto-settle payouts", "count", len(due))
	for _, p := range due {
		if _, err := s.svc.SettlePayout(ctx, p.ID, payout.OutcomePaid, "", sweeperActor); err != nil {
			s.logger.Error("auto-settlement failed", "payoutID", p.ID, "error", err)
		}
	}
}
