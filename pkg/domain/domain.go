// Package domain defines the core value types and error taxonomy shared by
// the commission services.
//
// Invariants:
//   - A transaction has at most one payout; the payout amount is a pure
//     function of the transaction's financial fields at approval time.
//   - Payout status only ever moves ready → scheduled → paid, with
//     ready → failed and scheduled → failed as alternate terminal paths.
//   - Audit events are append-only.
package domain

// TransactionStatus is the lifecycle status of a transaction.
type TransactionStatus string

const (
	// TransactionPending is the intake status; financial fields are still editable.
	TransactionPending TransactionStatus = "pending"
	// TransactionApproved means final deal terms are locked in and a payout exists.
	TransactionApproved TransactionStatus = "approved"
)

// String returns the status as a string.
func (s TransactionStatus) String() string { return string(s) }

// PayoutStatus is the lifecycle status of a commission payout.
type PayoutStatus string

const (
	// PayoutReady is the initial status, set when the owning transaction is approved.
	PayoutReady PayoutStatus = "ready"
	// PayoutScheduled means a disbursement date and payment method are recorded.
	PayoutScheduled PayoutStatus = "scheduled"
	// PayoutPaid is terminal.
	PayoutPaid PayoutStatus = "paid"
	// PayoutFailed is terminal.
	PayoutFailed PayoutStatus = "failed"
)

// payoutTransitions is the full set of legal payout status transitions.
var payoutTransitions = map[PayoutStatus][]PayoutStatus{
	PayoutReady:     {PayoutScheduled, PayoutFailed},
	PayoutScheduled: {PayoutPaid, PayoutFailed},
}

// CanTransition reports whether a payout may move from its current status to next.
func (s PayoutStatus) CanTransition(next PayoutStatus) bool {
	for _, allowed := range payoutTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
func (s PayoutStatus) IsTerminal() bool {
	return len(payoutTransitions[s]) == 0
}

// String returns the status as a string.
func (s PayoutStatus) String() string { return string(s) }

// EventType enumerates the audit event types emitted by state-changing operations.
type EventType string

const (
	EventManualApproval  EventType = "manual_approval"
	EventPayoutCreated   EventType = "payout_created"
	EventPayoutScheduled EventType = "payout_scheduled"
	EventPayoutPaid      EventType = "payout_paid"
	EventPayoutFailed    EventType = "payout_failed"
)

// String returns the event type as a string.
func (e EventType) String() string { return string(e) }
