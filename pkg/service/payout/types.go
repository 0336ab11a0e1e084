package payout

import (
	"github.com/amirasaad/commission/pkg/commission"
	"github.com/amirasaad/commission/pkg/dto"
	"github.com/amirasaad/commission/pkg/money"
	"github.com/google/uuid"
)

// FinalData carries the final deal terms submitted with an approval request.
// Once the transaction is approved these fields are immutable inputs to the
// commission computation.
type FinalData struct {
	BrokerAgentName          string
	PropertyAddress          string
	SalePrice                *money.Money
	ListingCommissionPercent float64
	BuyerCommissionPercent   float64
	AgentSplitPercent        float64
	CoBrokerAgentName        string
	CoBrokerageFirmName      string
	Deductions               commission.Deductions
}

// ApprovalResult is the outcome of a successful approval.
type ApprovalResult struct {
	Transaction *dto.TransactionRead
	Payout      *dto.PayoutRead
	Figures     *commission.Result
	// Warning is set when the computed net payout was clamped to zero
	// because deductions exceeded the agent gross.
	Warning string
}

// ScheduleRequest carries a bulk scheduling request. ScheduledDate is a
// calendar date in "YYYY-MM-DD" form, interpreted in the business time zone.
type ScheduleRequest struct {
	PayoutIDs     []uuid.UUID
	ScheduledDate string
	PaymentMethod string
	AutoSettle    bool
}

// ScheduleItemResult is the per-payout outcome of a bulk scheduling request.
// Scheduling is evaluated per payout: one invalid item does not roll back
// the others.
type ScheduleItemResult struct {
	PayoutID uuid.UUID
	Payout   *dto.PayoutRead
	Err      error
}

// Outcome is the terminal result of settling a scheduled payout.
type Outcome string

const (
	// OutcomePaid settles the payout as paid.
	OutcomePaid Outcome = "paid"
	// OutcomeFailed settles the payout as failed.
	OutcomeFailed Outcome = "failed"
)
