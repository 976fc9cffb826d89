// Package tx defines the transaction management contract.
package tx

import (
	"context"
)

// TxFunc is a function executed within a transaction.
type TxFunc func(ctx context.Context) error

// Manager manages database transactions. The active transaction travels
// in the context so repositories stay transaction-agnostic.
type Manager interface {
	// RunInTransaction executes fn within a transaction. The transaction
	// commits if fn returns nil and rolls back otherwise.
	RunInTransaction(ctx context.Context, fn TxFunc) error

	// RunInTransactionWithRetry retries fn on serialization failures.
	RunInTransactionWithRetry(ctx context.Context, maxRetries int, fn TxFunc) error
}
