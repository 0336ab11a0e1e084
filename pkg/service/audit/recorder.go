// Package audit records the immutable trail of state-changing actions.
//
// The recorder is the sole writer of transaction events. Record participates
// in the caller's unit of work, so every lifecycle mutation and its audit
// event commit or roll back together without the lifecycle service knowing
// how the log is persisted.
package audit

import (
	"context"
	"log/slog"

	"github.com/amirasaad/commission/pkg/dto"
	"github.com/amirasaad/commission/pkg/repository"
	"github.com/google/uuid"
)

// Recorder appends and lists audit events.
type Recorder struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a Recorder. The unit of work is used for reads; writes go
// through the unit of work the caller passes to Record.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Recorder {
	return &Recorder{uow: uow, logger: logger}
}

// Record appends an audit event inside the caller's unit of work and returns
// the event ID. It never mutates prior events.
func (r *Recorder) Record(
	ctx context.Context,
	uow repository.UnitOfWork,
	create dto.EventCreate,
) (uuid.UUID, error) {
	repo, err := uow.EventRepository()
	if err != nil {
		return uuid.Nil, err
	}
	if create.ID == uuid.Nil {
		create.ID = uuid.New()
	}
	if err := repo.Append(ctx, create); err != nil {
		return uuid.Nil, err
	}
	r.logger.Info(
		"audit event recorded",
		"eventID", create.ID,
		"transactionID", create.TransactionID,
		"eventType", create.EventType,
		"actorID", create.ActorID,
	)
	return create.ID, nil
}

// ListEvents lists all events for a transaction, newest first. The listing
// is restartable and reflects the current append-only log.
func (r *Recorder) ListEvents(
	ctx context.Context,
	transactionID uuid.UUID,
) (events []*dto.EventRead, err error) {
	err = r.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.EventRepository()
		if err != nil {
			return err
		}
		events, err = repo.ListByTransaction(ctx, transactionID)
		return err
	})
	if err != nil {
		events = nil
	}
	return
}
