package tracker

import (
	"context"
	"sync"
	"time"

	commonerrors "github.com/ClipFinance/bridge-lib/common/errors"
	"github.com/ClipFinance/bridge-lib/common/types"
	"github.com/pkg/errors"
)

// memoryStore is the default in-process TransactionStore. Records are copied
// on the way in and out so callers can never mutate stored state directly.
type memoryStore struct {
	transactions      map[string]*types.BridgeTransaction
	transactionsMutex sync.RWMutex
}

// NewInMemoryStore creates an in-memory transaction store.
func NewInMemoryStore() types.TransactionStore {
	return &memoryStore{
		transactions: make(map[string]*types.BridgeTransaction),
	}
}

func (s *memoryStore) Insert(_ context.Context, tx *types.BridgeTransaction) error {
	s.transactionsMutex.Lock()
	defer s.transactionsMutex.Unlock()

	if _, exists := s.transactions[tx.TransactionID]; exists {
		return errors.Wrapf(commonerrors.ErrDuplicateTransaction, "transaction %s", tx.TransactionID)
	}

	record := *tx
	s.transactions[tx.TransactionID] = &record
	return nil
}

func (s *memoryStore) Get(_ context.Context, transactionID string) (*types.BridgeTransaction, error) {
	s.transactionsMutex.RLock()
	defer s.transactionsMutex.RUnlock()

	record, ok := s.transactions[transactionID]
	if !ok {
		return nil, errors.Wrapf(commonerrors.ErrTransactionNotFound, "transaction %s", transactionID)
	}

	copied := *record
	return &copied, nil
}

func (s *memoryStore) UpdateStatus(_ context.Context, transactionID string, from, to types.BridgeStatus, failureReason *string) (bool, error) {
	s.transactionsMutex.Lock()
	defer s.transactionsMutex.Unlock()

	record, ok := s.transactions[transactionID]
	if !ok {
		return false, errors.Wrapf(commonerrors.ErrTransactionNotFound, "transaction %s", transactionID)
	}

	// Compare-and-swap: the transition applies only if no concurrent caller
	// moved the record first.
	if record.Status != from {
		return false, nil
	}

	record.Status = to
	record.UpdatedAt = time.Now()
	if failureReason != nil {
		reason := *failureReason
		record.FailureReason = &reason
	}
	return true, nil
}
