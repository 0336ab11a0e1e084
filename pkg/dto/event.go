package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventRead is a read-optimized DTO for audit trail queries.
type EventRead struct {
	ID            uuid.UUID       `json:"id"`
	TransactionID uuid.UUID       `json:"transaction_id"`
	PayoutID      *uuid.UUID      `json:"payout_id,omitempty"`
	EventType     string          `json:"event_type"`
	ActorID       string          `json:"actor_id"`
	Metadata      json.RawMessage `json:"metadata,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// EventCreate is a DTO for appending an audit event. Events are append-only;
// there is no update or delete DTO by design of the audit trail.
type EventCreate struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	PayoutID      *uuid.UUID
	EventType     string
	ActorID       string
	Metadata      json.RawMessage
}
