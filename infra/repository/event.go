package repository

import (
	"context"

	"github.com/amirasaad/commission/pkg/dto"
	repo "github.com/amirasaad/commission/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates an append-only audit event repository using the
// provided *gorm.DB.
func NewEventRepository(db *gorm.DB) repo.EventRepository {
	return &eventRepository{db: db}
}

// Append implements repository.EventRepository. There is no update or delete
// path; the audit trail's integrity depends on that.
func (r *eventRepository) Append(
	ctx context.Context,
	create dto.EventCreate,
) error {
	ev := TransactionEvent{
		ID:            create.ID,
		TransactionID: create.TransactionID,
		PayoutID:      create.PayoutID,
		EventType:     create.EventType,
		ActorID:       create.ActorID,
		Metadata:      []byte(create.Metadata),
	}
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(&ev).Error; err != nil {
		return MapGormErrorToDomain(err)
	}
	return nil
}

// ListByTransaction implements repository.EventRepository, newest first.
func (r *eventRepository) ListByTransaction(
	ctx context.Context,
	transactionID uuid.UUID,
) ([]*dto.EventRead, error) {
	var events []TransactionEvent
	if err := r.db.WithContext(
		ctx,
	).Where(
		"transaction_id = ?",
		transactionID,
	).Order(
		"created_at desc, id desc",
	).Find(
		&events,
	).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	reads := make([]*dto.EventRead, 0, len(events))
	for i := range events {
		ev := &events[i]
		reads = append(reads, &dto.EventRead{
			ID:            ev.ID,
			TransactionID: ev.TransactionID,
			PayoutID:      ev.PayoutID,
			EventType:     ev.EventType,
			ActorID:       ev.ActorID,
			Metadata:      ev.Metadata,
			CreatedAt:     ev.CreatedAt,
		})
	}
	return reads, nil
}
