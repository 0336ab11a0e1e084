package payout

import (
	"encoding/json"

	"github.com/amirasaad/commission/pkg/dto"
)

// ScheduleRequest is the request body for scheduling a batch of payouts.
type ScheduleRequest struct {
	PayoutIDs       []string        `json:"payout_ids" validate:"required,min=1"`
	ScheduledDate   string          `json:"scheduled_date" validate:"required"`
	PaymentMethod   string          `json:"payment_method" validate:"required"`
	AutoACH         bool            `json:"auto_ach"`
	ProviderDetails json.RawMessage `json:"provider_details"`
}

// ScheduleItemResponse is the per-payout outcome of a scheduling request.
type ScheduleItemResponse struct {
	PayoutID string          `json:"payout_id"`
	Success  bool            `json:"success"`
	Payout   *dto.PayoutRead `json:"payout,omitempty"`
	Error    *ItemError      `json:"error,omitempty"`
}

// ItemError is a structured error for one item of a bulk operation.
type ItemError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// SettleRequest is the request body for settling a scheduled payout.
type SettleRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=paid failed"`
	Reason  string `json:"reason"`
}
