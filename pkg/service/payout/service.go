// Package payout implements the commission payout lifecycle: approval of a
// transaction with exactly-once payout creation, bulk scheduling with
// per-item outcomes, and terminal settlement.
//
// State machine: ready → scheduled → paid, with ready → failed and
// scheduled → failed as alternate terminal paths. Every state change is
// guarded by a conditional write on the current status and paired with an
// audit event inside the same unit of work.
package payout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/commission/pkg/commission"
	"github.com/amirasaad/commission/pkg/domain"
	"github.com/amirasaad/commission/pkg/dto"
	"github.com/amirasaad/commission/pkg/repository"
	"github.com/amirasaad/commission/pkg/service/audit"
	"github.com/google/uuid"
)

const scheduledDateLayout = "2006-01-02"

// Service is the payout lifecycle manager. It is the sole writer of
// transaction status and all payout fields.
type Service struct {
	uow    repository.UnitOfWork
	audit  *audit.Recorder
	logger *slog.Logger
	loc    *time.Location
	now    func() time.Time
}

// New creates a Service. loc is the canonical business time zone in which
// scheduled dates are validated.
func New(
	uow repository.UnitOfWork,
	recorder *audit.Recorder,
	loc *time.Location,
	logger *slog.Logger,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		uow:    uow,
		audit:  recorder,
		logger: logger,
		loc:    loc,
		now:    time.Now,
	}
}

// ApproveTransaction locks in the final deal terms, computes the commission,
// and creates the payout in state ready. The transaction update, payout
// creation, and both audit events commit atomically: a failure at any step
// leaves no partial state.
//
// Idempotency key is the transaction ID: a second approval attempt fails
// with domain.ErrAlreadyApproved and creates no duplicate payout.
func (s *Service) ApproveTransaction(
	ctx context.Context,
	transactionID uuid.UUID,
	final FinalData,
	checklistResponses json.RawMessage,
	actorID string,
) (result *ApprovalResult, err error) {
	logger := s.logger.With("transactionID", transactionID, "actorID", actorID)
	if actorID == "" {
		return nil, fmt.Errorf("%w: actor ID is required", domain.ErrValidation)
	}
	if final.BrokerAgentName == "" {
		return nil, fmt.Errorf("%w: broker agent name is required", domain.ErrValidation)
	}

	// Validate and compute before touching state; the calculator is pure.
	figures, err := commission.Compute(commission.Inputs{
		SalePrice:         final.SalePrice,
		CommissionPercent: final.ListingCommissionPercent,
		AgentSplitPercent: final.AgentSplitPercent,
		Deductions:        final.Deductions,
	})
	if err != nil {
		logger.Warn("approval rejected by calculator", "error", err)
		return nil, err
	}
	if final.BuyerCommissionPercent < 0 || final.BuyerCommissionPercent > 100 {
		return nil, fmt.Errorf(
			"%w: buyer commission percent must be between 0 and 100",
			domain.ErrValidation,
		)
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		txRepo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		payoutRepo, err := uow.PayoutRepository()
		if err != nil {
			return err
		}

		// Re-read inside the transaction; never trust state cached across requests.
		current, err := txRepo.Get(ctx, transactionID)
		if err != nil {
			return err
		}
		if current.Status == domain.TransactionApproved.String() {
			return fmt.Errorf("%w: transaction %s", domain.ErrAlreadyApproved, transactionID)
		}

		update := dto.TransactionApprove{
			BrokerAgentName:      final.BrokerAgentName,
			PropertyAddress:      final.PropertyAddress,
			SalePrice:            final.SalePrice.Amount(),
			Currency:             final.SalePrice.CurrencyCode().String(),
			ListingCommissionBps: percentBps(final.ListingCommissionPercent),
			BuyerCommissionBps:   percentBps(final.BuyerCommissionPercent),
			AgentSplitBps:        percentBps(final.AgentSplitPercent),
			CoBrokerAgentName:    final.CoBrokerAgentName,
			CoBrokerageFirmName:  final.CoBrokerageFirmName,
			ChecklistResponses:   checklistResponses,
		}
		if err := txRepo.Approve(ctx, transactionID, update); err != nil {
			return err
		}

		payoutID := uuid.New()
		create := dto.PayoutCreate{
			ID:            payoutID,
			TransactionID: transactionID,
			Amount:        figures.AgentNetPayout.Amount(),
			Currency:      figures.AgentNetPayout.CurrencyCode().String(),
			Status:        domain.PayoutReady.String(),
		}
		if err := payoutRepo.Create(ctx, create); err != nil {
			// A lost insert race on the transaction_id uniqueness
			// constraint means another approval already succeeded.
			if errors.Is(err, domain.ErrConflict) {
				return fmt.Errorf("%w: transaction %s", domain.ErrAlreadyApproved, transactionID)
			}
			return err
		}

		approvalMeta, err := json.Marshal(map[string]any{
			"final_data": map[string]any{
				"final_broker_agent_name":          update.BrokerAgentName,
				"property_address":                 update.PropertyAddress,
				"final_sale_price":                 update.SalePrice,
				"currency":                         update.Currency,
				"final_listing_commission_percent": final.ListingCommissionPercent,
				"final_buyer_commission_percent":   final.BuyerCommissionPercent,
				"final_agent_split_percent":        final.AgentSplitPercent,
				"final_co_broker_agent_name":       update.CoBrokerAgentName,
				"final_co_brokerage_firm_name":     update.CoBrokerageFirmName,
			},
			"checklist_responses": checklistResponses,
		})
		if err != nil {
			return err
		}
		if _, err := s.audit.Record(ctx, uow, dto.EventCreate{
			TransactionID: transactionID,
			EventType:     domain.EventManualApproval.String(),
			ActorID:       actorID,
			Metadata:      approvalMeta,
		}); err != nil {
			return err
		}

		payoutMeta, err := json.Marshal(map[string]any{
			"gross_commission_income": figures.GrossCommissionIncome,
			"agent_gross":             figures.AgentGross,
			"agent_net_payout":        figures.AgentNetPayout,
			"clamped":                 figures.Clamped,
		})
		if err != nil {
			return err
		}
		if _, err := s.audit.Record(ctx, uow, dto.EventCreate{
			TransactionID: transactionID,
			PayoutID:      &payoutID,
			EventType:     domain.EventPayoutCreated.String(),
			ActorID:       actorID,
			Metadata:      payoutMeta,
		}); err != nil {
			return err
		}

		txRead, err := txRepo.Get(ctx, transactionID)
		if err != nil {
			return err
		}
		payoutRead, err := payoutRepo.Get(ctx, payoutID)
		if err != nil {
			return err
		}
		result = &ApprovalResult{
			Transaction: txRead,
			Payout:      payoutRead,
			Figures:     figures,
		}
		if figures.Clamped {
			result.Warning = "deductions exceed agent gross; payout clamped to zero"
		}
		return nil
	})
	if err != nil {
		logger.Error("approval failed", "error", err)
		return nil, err
	}
	logger.Info(
		"transaction approved",
		"payoutID", result.Payout.ID,
		"agentNetPayout", figures.AgentNetPayout.String(),
		"clamped", figures.Clamped,
	)
	return result, nil
}

// SchedulePayouts transitions each payout from ready to scheduled. The
// request is evaluated per payout: an invalid id among many yields a failed
// item without rolling back the others. The scheduled date is validated once,
// in the business time zone; a date in the past fails the whole request with
// domain.ErrInvalidDate before any payout is touched.
func (s *Service) SchedulePayouts(
	ctx context.Context,
	req ScheduleRequest,
	actorID string,
) ([]ScheduleItemResult, error) {
	if actorID == "" {
		return nil, fmt.Errorf("%w: actor ID is required", domain.ErrValidation)
	}
	if len(req.PayoutIDs) == 0 {
		return nil, fmt.Errorf("%w: payout IDs must not be empty", domain.ErrValidation)
	}
	if req.PaymentMethod == "" {
		return nil, fmt.Errorf("%w: payment method is required", domain.ErrValidation)
	}
	scheduledDate, err := s.parseScheduledDate(req.ScheduledDate)
	if err != nil {
		return nil, err
	}

	results := make([]ScheduleItemResult, 0, len(req.PayoutIDs))
	for _, id := range req.PayoutIDs {
		read, err := s.scheduleOne(ctx, id, scheduledDate, req.PaymentMethod, req.AutoSettle, actorID)
		results = append(results, ScheduleItemResult{PayoutID: id, Payout: read, Err: err})
		if err != nil {
			s.logger.Warn("payout scheduling failed", "payoutID", id, "error", err)
		}
	}
	return results, nil
}

// scheduleOne runs a single payout transition in its own unit of work so a
// failure does not poison sibling items.
func (s *Service) scheduleOne(
	ctx context.Context,
	id uuid.UUID,
	scheduledDate time.Time,
	paymentMethod string,
	autoSettle bool,
	actorID string,
) (read *dto.PayoutRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		payoutRepo, err := uow.PayoutRepository()
		if err != nil {
			return err
		}
		current, err := payoutRepo.Get(ctx, id)
		if err != nil {
			return err
		}
		if current.Status != domain.PayoutReady.String() {
			return fmt.Errorf(
				"%w: payout %s is %s, want %s",
				domain.ErrInvalidState, id, current.Status, domain.PayoutReady,
			)
		}

		status := domain.PayoutScheduled.String()
		update := dto.PayoutUpdate{
			Status:        &status,
			ScheduledDate: &scheduledDate,
			PaymentMethod: &paymentMethod,
			AutoSettle:    &autoSettle,
		}
		if err := payoutRepo.UpdateStatus(ctx, id, domain.PayoutReady, update); err != nil {
			return err
		}

		meta, err := json.Marshal(map[string]any{
			"scheduled_date": scheduledDate.Format(scheduledDateLayout),
			"payment_method": paymentMethod,
			"auto_settle":    autoSettle,
		})
		if err != nil {
			return err
		}
		if _, err := s.audit.Record(ctx, uow, dto.EventCreate{
			TransactionID: current.TransactionID,
			PayoutID:      &id,
			EventType:     domain.EventPayoutScheduled.String(),
			ActorID:       actorID,
			Metadata:      meta,
		}); err != nil {
			return err
		}

		read, err = payoutRepo.Get(ctx, id)
		return err
	})
	if err != nil {
		read = nil
	}
	return
}

// SettlePayout closes the lifecycle: scheduled → paid or scheduled → failed.
// reason is recorded on failed settlements.
func (s *Service) SettlePayout(
	ctx context.Context,
	id uuid.UUID,
	outcome Outcome,
	reason string,
	actorID string,
) (read *dto.PayoutRead, err error) {
	if actorID == "" {
		return nil, fmt.Errorf("%w: actor ID is required", domain.ErrValidation)
	}
	var next domain.PayoutStatus
	var eventType domain.EventType
	switch outcome {
	case OutcomePaid:
		next, eventType = domain.PayoutPaid, domain.EventPayoutPaid
	case OutcomeFailed:
		next, eventType = domain.PayoutFailed, domain.EventPayoutFailed
	default:
		return nil, fmt.Errorf("%w: outcome must be paid or failed, got %q", domain.ErrValidation, outcome)
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		payoutRepo, err := uow.PayoutRepository()
		if err != nil {
			return err
		}
		current, err := payoutRepo.Get(ctx, id)
		if err != nil {
			return err
		}
		if !domain.PayoutStatus(current.Status).CanTransition(next) ||
			current.Status != domain.PayoutScheduled.String() {
			return fmt.Errorf(
				"%w: payout %s is %s, want %s",
				domain.ErrInvalidState, id, current.Status, domain.PayoutScheduled,
			)
		}

		status := next.String()
		update := dto.PayoutUpdate{Status: &status}
		if outcome == OutcomeFailed && reason != "" {
			update.FailureReason = &reason
		}
		if err := payoutRepo.UpdateStatus(ctx, id, domain.PayoutScheduled, update); err != nil {
			return err
		}

		meta, err := json.Marshal(map[string]any{
			"outcome": string(outcome),
			"reason":  reason,
		})
		if err != nil {
			return err
		}
		if _, err := s.audit.Record(ctx, uow, dto.EventCreate{
			TransactionID: current.TransactionID,
			PayoutID:      &id,
			EventType:     eventType.String(),
			ActorID:       actorID,
			Metadata:      meta,
		}); err != nil {
			return err
		}

		read, err = payoutRepo.Get(ctx, id)
		return err
	})
	if err != nil {
		s.logger.Error("settlement failed", "payoutID", id, "outcome", outcome, "error", err)
		return nil, err
	}
	s.logger.Info("payout settled", "payoutID", id, "outcome", outcome, "actorID", actorID)
	return read, nil
}

// GetPayout retrieves a payout by ID.
func (s *Service) GetPayout(ctx context.Context, id uuid.UUID) (read *dto.PayoutRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		payoutRepo, err := uow.PayoutRepository()
		if err != nil {
			return err
		}
		read, err = payoutRepo.Get(ctx, id)
		return err
	})
	if err != nil {
		read = nil
	}
	return
}

// ListDueAutoSettle lists scheduled auto-settle payouts whose scheduled date
// has arrived as of now in the business time zone. Used by the sweeper.
func (s *Service) ListDueAutoSettle(ctx context.Context) (due []*dto.PayoutRead, err error) {
	asOf := s.now().In(s.loc)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		payoutRepo, err := uow.PayoutRepository()
		if err != nil {
			return err
		}
		due, err = payoutRepo.ListScheduledDue(ctx, asOf, true)
		return err
	})
	if err != nil {
		due = nil
	}
	return
}

// parseScheduledDate parses a YYYY-MM-DD date and rejects dates before today
// in the business time zone. The zone is fixed per deployment, so "is this
// date in the past" has one answer regardless of the caller's locale.
func (s *Service) parseScheduledDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(scheduledDateLayout, value, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a valid YYYY-MM-DD date", domain.ErrInvalidDate, value)
	}
	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	if t.Before(today) {
		return time.Time{}, fmt.Errorf("%w: %s is in the past", domain.ErrInvalidDate, value)
	}
	return t, nil
}

// percentBps converts a percentage to basis points for storage.
func percentBps(p float64) int64 {
	return int64(p*100 + 0.5)
}
