package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/amirasaad/commission/pkg/domain"
	"github.com/amirasaad/commission/pkg/dto"
	repo "github.com/amirasaad/commission/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type payoutRepository struct {
	db *gorm.DB
}

// NewPayoutRepository creates a commission payout repository using the
// provided *gorm.DB.
func NewPayoutRepository(db *gorm.DB) repo.PayoutRepository {
	return &payoutRepository{db: db}
}

// Get implements repository.PayoutRepository.
func (r *payoutRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.PayoutRead, error) {
	var p CommissionPayout
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapPayoutToReadDTO(&p), nil
}

// GetByTransaction implements repository.PayoutRepository.
func (r *payoutRepository) GetByTransaction(
	ctx context.Context,
	transactionID uuid.UUID,
) (*dto.PayoutRead, error) {
	var p CommissionPayout
	if err := r.db.WithContext(
		ctx,
	).Where(
		"transaction_id = ?",
		transactionID,
	).First(
		&p,
	).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapPayoutToReadDTO(&p), nil
}

// Create implements repository.PayoutRepository. The unique index on
// transaction_id turns a lost creation race into domain.ErrConflict.
func (r *payoutRepository) Create(
	ctx context.Context,
	create dto.PayoutCreate,
) error {
	p := CommissionPayout{
		ID:            create.ID,
		TransactionID: create.TransactionID,
		Amount:        create.Amount,
		Currency:      create.Currency,
		Status:        create.Status,
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = domain.PayoutReady.String()
	}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return MapGormErrorToDomain(err)
	}
	return nil
}

// UpdateStatus implements repository.PayoutRepository. The write is
// conditional on the current status so concurrent writers serialize: only
// one observes the payout in the source state, the loser gets zero rows.
func (r *payoutRepository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	from domain.PayoutStatus,
	update dto.PayoutUpdate,
) error {
	updates := map[string]any{}
	if update.Status != nil {
		updates["status"] = *update.Status
	}
	if update.ScheduledDate != nil {
		updates["scheduled_date"] = *update.ScheduledDate
	}
	if update.PaymentMethod != nil {
		updates["payment_method"] = *update.PaymentMethod
	}
	if update.AutoSettle != nil {
		updates["auto_settle"] = *update.AutoSettle
	}
	if update.FailureReason != nil {
		updates["failure_reason"] = *update.FailureReason
	}
	res := r.db.WithContext(
		ctx,
	).Model(
		&CommissionPayout{},
	).Where(
		"id = ? AND status = ?",
		id,
		from.String(),
	).Updates(
		updates,
	)
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: payout %s is not %s", domain.ErrInvalidState, id, from)
	}
	return nil
}

// ListScheduledDue implements repository.PayoutRepository.
func (r *payoutRepository) ListScheduledDue(
	ctx context.Context,
	asOf time.Time,
	autoOnly bool,
) ([]*dto.PayoutRead, error) {
	q := r.db.WithContext(
		ctx,
	).Where(
		"status = ? AND scheduled_date <= ?",
		domain.PayoutScheduled.String(),
		asOf,
	)
	if autoOnly {
		q = q.Where("auto_settle = ?", true)
	}
	var payouts []CommissionPayout
	if err := q.Order("scheduled_date asc").Find(&payouts).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	reads := make([]*dto.PayoutRead, 0, len(payouts))
	for i := range payouts {
		reads = append(reads, mapPayoutToReadDTO(&payouts[i]))
	}
	return reads, nil
}

func mapPayoutToReadDTO(p *CommissionPayout) *dto.PayoutRead {
	return &dto.PayoutRead{
		ID:            p.ID,
		TransactionID: p.TransactionID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Status:        p.Status,
		ScheduledDate: p.ScheduledDate,
		PaymentMethod: p.PaymentMethod,
		AutoSettle:    p.AutoSettle,
		FailureReason: p.FailureReason,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
