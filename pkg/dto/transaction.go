// Package dto defines the data-transfer objects exchanged between services
// and repositories, following CQRS conventions: read-optimized structs for
// queries, create/update structs for commands. Repositories never leak
// persistence models.
package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TransactionRead is a read-optimized DTO for transaction queries and API responses.
type TransactionRead struct {
	ID                   uuid.UUID `json:"id"`
	BrokerAgentName      string    `json:"broker_agent_name"`
	PropertyAddress      string    `json:"property_address"`
	SalePrice            int64     `json:"sale_price"` // smallest currency unit
	Currency             string    `json:"currency"`
	ListingCommissionBps int64     `json:"listing_commission_bps"`
	BuyerCommissionBps   int64     `json:"buyer_commission_bps"`
	AgentSplitBps        int64     `json:"agent_split_bps"`
	CoBrokerAgentName    string    `json:"co_broker_agent_name,omitempty"`
	CoBrokerageFirmName  string    `json:"co_brokerage_firm_name,omitempty"`
	Status               string    `json:"status"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// TransactionCreate is a DTO for creating a new transaction at intake.
type TransactionCreate struct {
	ID                   uuid.UUID
	BrokerAgentName      string
	PropertyAddress      string
	SalePrice            int64
	Currency             string
	ListingCommissionBps int64
	BuyerCommissionBps   int64
	AgentSplitBps        int64
	CoBrokerAgentName    string
	CoBrokerageFirmName  string
	Status               string
}

// TransactionApprove is a DTO carrying the final deal terms written when a
// transaction is approved. The write is conditional on the transaction still
// being pending; approval stamps the update timestamp.
type TransactionApprove struct {
	BrokerAgentName      string
	PropertyAddress      string
	SalePrice            int64
	Currency             string
	ListingCommissionBps int64
	BuyerCommissionBps   int64
	AgentSplitBps        int64
	CoBrokerAgentName    string
	CoBrokerageFirmName  string
	ChecklistResponses   json.RawMessage
}
