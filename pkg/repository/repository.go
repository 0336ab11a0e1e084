// Package repository defines the persistence contracts consumed by the
// commission services. Implementations live in infra/repository.
package repository

import (
	"context"
	"time"

	"github.com/amirasaad/commission/pkg/domain"
	"github.com/amirasaad/commission/pkg/dto"
	"github.com/google/uuid"
)

// TransactionRepository provides data access for transactions.
type TransactionRepository interface {
	// Get retrieves a transaction by its ID as a read-optimized DTO.
	// Returns domain.ErrNotFound when no such transaction exists.
	Get(ctx context.Context, id uuid.UUID) (*dto.TransactionRead, error)

	// Create inserts a new transaction record at intake.
	Create(ctx context.Context, create dto.TransactionCreate) error

	// Approve writes the final deal terms and flips status to approved,
	// conditional on the transaction currently being pending (compare-and-
	// swap on status). Returns domain.ErrAlreadyApproved when the condition
	// does not hold.
	Approve(ctx context.Context, id uuid.UUID, update dto.TransactionApprove) error
}

// PayoutRepository provides data access for commission payouts.
type PayoutRepository interface {
	// Get retrieves a payout by its ID. Returns domain.ErrNotFound when missing.
	Get(ctx context.Context, id uuid.UUID) (*dto.PayoutRead, error)

	// GetByTransaction retrieves the payout owned by a transaction, used for
	// idempotency checks. Returns domain.ErrNotFound when none exists.
	GetByTransaction(ctx context.Context, transactionID uuid.UUID) (*dto.PayoutRead, error)

	// Create inserts a new payout. The store enforces a uniqueness
	// constraint on transaction ID; losing a creation race returns
	// domain.ErrConflict, never a duplicate row.
	Create(ctx context.Context, create dto.PayoutCreate) error

	// UpdateStatus applies the update conditional on the payout currently
	// having status from (optimistic concurrency). Returns
	// domain.ErrInvalidState when zero rows match.
	UpdateStatus(ctx context.Context, id uuid.UUID, from domain.PayoutStatus, update dto.PayoutUpdate) error

	// ListScheduledDue lists payouts in status scheduled whose scheduled
	// date is on or before asOf, optionally restricted to auto-settle payouts.
	ListScheduledDue(ctx context.Context, asOf time.Time, autoOnly bool) ([]*dto.PayoutRead, error)
}

// EventRepository provides append-only access to the audit trail.
type EventRepository interface {
	// Append inserts a new audit event. Prior events are never mutated.
	Append(ctx context.Context, create dto.EventCreate) error

	// ListByTransaction lists all events for a transaction, newest first.
	// The listing is restartable: re-issuing it reflects the current log.
	ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]*dto.EventRead, error)
}
