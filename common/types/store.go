package types

import "context"

// TransactionStore persists bridge transactions. The tracker owns the state
// machine; stores only hold records and apply compare-and-swap status
// updates so concurrent pollers cannot clobber each other.
type TransactionStore interface {
	// Insert stores a new transaction record.
	//
	// Returns:
	// - error: ErrDuplicateTransaction if the id already exists.
	Insert(ctx context.Context, tx *BridgeTransaction) error

	// Get retrieves a transaction by id.
	//
	// Returns:
	// - *BridgeTransaction: a copy of the stored record.
	// - error: ErrTransactionNotFound if the id is unknown.
	Get(ctx context.Context, transactionID string) (*BridgeTransaction, error)

	// UpdateStatus applies the transition from -> to iff the stored status
	// still equals from.
	//
	// Returns:
	// - bool: true if the update was applied, false if the stored status no
	//   longer matched from.
	// - error: ErrTransactionNotFound if the id is unknown.
	UpdateStatus(ctx context.Context, transactionID string, from, to BridgeStatus, failureReason *string) (bool, error)
}
