package repository

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is the persisted real-estate transaction record. Financial
// amounts are stored in the smallest currency unit and percentages in basis
// points, so recomputation over stored fields is exact.
type Transaction struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	BrokerAgentName      string    `gorm:"size:255;not null"`
	PropertyAddress      string    `gorm:"size:512;not null"`
	SalePrice            int64     `gorm:"not null"`
	Currency             string    `gorm:"type:varchar(3);not null;default:'USD'"`
	ListingCommissionBps int64     `gorm:"not null;default:0"`
	BuyerCommissionBps   int64     `gorm:"not null;default:0"`
	AgentSplitBps        int64     `gorm:"not null;default:0"`
	CoBrokerAgentName    string    `gorm:"size:255"`
	CoBrokerageFirmName  string    `gorm:"size:255"`
	Status               string    `gorm:"type:varchar(16);not null;default:'pending';index"`
	ChecklistResponses   []byte    `gorm:"type:jsonb"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// CommissionPayout is the persisted disbursement owed to an agent. The
// unique index on TransactionID enforces exactly one payout per transaction;
// a concurrent second approval loses the insert race at the database.
// Payout rows are never deleted; terminal states are retained for audit.
type CommissionPayout struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TransactionID uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null"`
	Amount        int64      `gorm:"not null"`
	Currency      string     `gorm:"type:varchar(3);not null;default:'USD'"`
	Status        string     `gorm:"type:varchar(16);not null;default:'ready';index"`
	ScheduledDate *time.Time `gorm:"type:date"`
	PaymentMethod string     `gorm:"size:32"`
	AutoSettle    bool       `gorm:"not null;default:false"`
	FailureReason string     `gorm:"size:512"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TransactionEvent is one immutable entry of the audit trail. Rows are
// appended by the audit recorder and never updated or deleted.
type TransactionEvent struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TransactionID uuid.UUID  `gorm:"type:uuid;not null;index"`
	PayoutID      *uuid.UUID `gorm:"type:uuid"`
	EventType     string     `gorm:"type:varchar(32);not null"`
	ActorID       string     `gorm:"size:128;not null"`
	Metadata      []byte     `gorm:"type:jsonb"`
	CreatedAt     time.Time  `gorm:"index"`
}
