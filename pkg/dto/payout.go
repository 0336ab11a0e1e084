package dto

import (
	"time"

	"github.com/google/uuid"
)

// PayoutRead is a read-optimized DTO for commission payout queries.
type PayoutRead struct {
	ID            uuid.UUID  `json:"id"`
	TransactionID uuid.UUID  `json:"transaction_id"`
	Amount        int64      `json:"amount"` // smallest currency unit
	Currency      string     `json:"currency"`
	Status        string     `json:"status"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	AutoSettle    bool       `json:"auto_settle"`
	FailureReason string     `json:"failure_reason,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// PayoutCreate is a DTO for creating a new commission payout. The repository
// enforces a uniqueness constraint on TransactionID: a second create for the
// same transaction fails rather than producing a duplicate row.
type PayoutCreate struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	Amount        int64
	Currency      string
	Status        string
}

// PayoutUpdate is a DTO for updating one or more fields of a payout. All
// status updates go through conditional writes keyed on the current status.
type PayoutUpdate struct {
	Status        *string
	ScheduledDate *time.Time
	PaymentMethod *string
	AutoSettle    *bool
	FailureReason *string
}
