package repository

import (
	"context"
	"fmt"

	"github.com/amirasaad/commission/pkg/domain"
	"github.com/amirasaad/commission/pkg/dto"
	repo "github.com/amirasaad/commission/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a CQRS-style transaction repository using
// the provided *gorm.DB.
func NewTransactionRepository(db *gorm.DB) repo.TransactionRepository {
	return &transactionRepository{db: db}
}

// Get implements repository.TransactionRepository.
func (r *transactionRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.TransactionRead, error) {
	var tx Transaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapTransactionToReadDTO(&tx), nil
}

// Create implements repository.TransactionRepository.
func (r *transactionRepository) Create(
	ctx context.Context,
	create dto.TransactionCreate,
) error {
	tx := Transaction{
		ID:                   create.ID,
		BrokerAgentName:      create.BrokerAgentName,
		PropertyAddress:      create.PropertyAddress,
		SalePrice:            create.SalePrice,
		Currency:             create.Currency,
		ListingCommissionBps: create.ListingCommissionBps,
		BuyerCommissionBps:   create.BuyerCommissionBps,
		AgentSplitBps:        create.AgentSplitBps,
		CoBrokerAgentName:    create.CoBrokerAgentName,
		CoBrokerageFirmName:  create.CoBrokerageFirmName,
		Status:               create.Status,
	}
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	if tx.Status == "" {
		tx.Status = domain.TransactionPending.String()
	}
	if err := r.db.WithContext(ctx).Create(&tx).Error; err != nil {
		return MapGormErrorToDomain(err)
	}
	return nil
}

// Approve implements repository.TransactionRepository. The update is
// conditional on status still being pending; zero affected rows means some
// other writer approved first.
func (r *transactionRepository) Approve(
	ctx context.Context,
	id uuid.UUID,
	update dto.TransactionApprove,
) error {
	res := r.db.WithContext(
		ctx,
	).Model(
		&Transaction{},
	).Where(
		"id = ? AND status = ?",
		id,
		domain.TransactionPending.String(),
	).Updates(map[string]any{
		"broker_agent_name":      update.BrokerAgentName,
		"property_address":       update.PropertyAddress,
		"sale_price":             update.SalePrice,
		"currency":               update.Currency,
		"listing_commission_bps": update.ListingCommissionBps,
		"buyer_commission_bps":   update.BuyerCommissionBps,
		"agent_split_bps":        update.AgentSplitBps,
		"co_broker_agent_name":   update.CoBrokerAgentName,
		"co_brokerage_firm_name": update.CoBrokerageFirmName,
		"checklist_responses":    []byte(update.ChecklistResponses),
		"status":                 domain.TransactionApproved.String(),
	})
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: transaction %s", domain.ErrAlreadyApproved, id)
	}
	return nil
}

func mapTransactionToReadDTO(tx *Transaction) *dto.TransactionRead {
	return &dto.TransactionRead{
		ID:                   tx.ID,
		BrokerAgentName:      tx.BrokerAgentName,
		PropertyAddress:      tx.PropertyAddress,
		SalePrice:            tx.SalePrice,
		Currency:             tx.Currency,
		ListingCommissionBps: tx.ListingCommissionBps,
		BuyerCommissionBps:   tx.BuyerCommissionBps,
		AgentSplitBps:        tx.AgentSplitBps,
		CoBrokerAgentName:    tx.CoBrokerAgentName,
		CoBrokerageFirmName:  tx.CoBrokerageFirmName,
		Status:               tx.Status,
		CreatedAt:            tx.CreatedAt,
		UpdatedAt:            tx.UpdatedAt,
	}
}
