package repository

import (
	"context"
	"reflect"
)

// UnitOfWork defines the contract for transactional work and type-safe
// repository access.
//
// Why is GetRepository part of UnitOfWork?
// - Ensures all repositories use the same DB session/transaction for true atomicity.
// - Keeps service code focused on business logic.
// - Prevents accidental use of the wrong DB session (which would break transactionality).
//
// Do runs the given function in a transaction boundary, providing a
// UnitOfWork bound to that transaction for repository access. The
// approve-transaction flow relies on this: transaction update, payout
// creation, and audit events commit or roll back together.
type UnitOfWork interface {
	// Do executes the given function within a transaction boundary.
	// If the function returns an error, the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// GetRepository returns a repository of the requested interface type,
	// bound to the current transaction/session.
	// Example:
	//   repoAny, err := uow.GetRepository(reflect.TypeOf((*PayoutRepository)(nil)).Elem())
	//   repo := repoAny.(PayoutRepository)
	GetRepository(repoType reflect.Type) (any, error)

	// Type-safe repository access methods (convenience methods).
	TransactionRepository() (TransactionRepository, error)
	PayoutRepository() (PayoutRepository, error)
	EventRepository() (EventRepository, error)
}
