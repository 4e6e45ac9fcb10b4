package tracker

import (
	"context"
	"time"

	commonerrors "github.com/ClipFinance/bridge-lib/common/errors"
	"github.com/ClipFinance/bridge-lib/common/types"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Tracker is the authoritative state machine store for bridge transactions.
// It is the only writer of BridgeTransaction.Status: every change goes
// through the transition graph check, applied as a compare-and-swap against
// the backing store so concurrent pollers cannot clobber each other.
type Tracker struct {
	logger *logrus.Logger
	store  types.TransactionStore
}

// New creates a tracker backed by the given store. A nil store falls back to
// the in-memory store.
//
// Parameters:
// - store: the transaction store, or nil for in-memory.
// - logger: the logger for logging events.
//
// Returns:
// - *Tracker: the new tracker instance.
func New(store types.TransactionStore, logger *logrus.Logger) *Tracker {
	if store == nil {
		store = NewInMemoryStore()
	}

	return &Tracker{
		logger: logger,
		store:  store,
	}
}

// Record creates a new tracked transaction in INITIATED.
//
// Parameters:
// - ctx: the context for managing the request.
// - transactionID: the unique id assigned at initiation.
// - route: the route the transfer runs over.
// - providerRef: the provider-side transfer reference.
// - amount: the transfer input amount.
// - senderAddress: the sending address on the source network.
// - recipientAddress: the receiving address on the destination network.
//
// Returns:
// - error: ErrDuplicateTransaction if the id already exists.
func (t *Tracker) Record(ctx context.Context, transactionID string, route types.BridgeRoute, providerRef string, amount decimal.Decimal, senderAddress, recipientAddress string) error {
	now := time.Now()
	tx := &types.BridgeTransaction{
		TransactionID:    transactionID,
		SourceNetwork:    route.SourceNetwork,
		DestNetwork:      route.DestNetwork,
		Token:            route.Token,
		Amount:           amount,
		Provider:         route.Provider,
		ProviderRef:      providerRef,
		SenderAddress:    senderAddress,
		RecipientAddress: recipientAddress,
		Status:           types.StatusInitiated,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := t.store.Insert(ctx, tx); err != nil {
		return err
	}

	t.logger.WithFields(logrus.Fields{
		"transactionID": transactionID,
		"provider":      route.Provider,
		"source":        route.SourceNetwork,
		"dest":          route.DestNetwork,
	}).Info("Recorded bridge transaction")

	return nil
}

// UpdateStatus applies a status transition. Repeating the current status is
// an idempotent no-op. Any transition not in the graph fails with
// ErrIllegalTransition and leaves the record unchanged.
func (t *Tracker) UpdateStatus(ctx context.Context, transactionID string, newStatus types.BridgeStatus) error {
	return t.applyTransition(ctx, transactionID, newStatus, nil)
}

// UpdateStatusWithReason applies a status transition into FAILED or REFUNDED
// and records the failure reason.
func (t *Tracker) UpdateStatusWithReason(ctx context.Context, transactionID string, newStatus types.BridgeStatus, reason string) error {
	return t.applyTransition(ctx, transactionID, newStatus, &reason)
}

// applyTransition performs the atomic check-and-apply. On a lost
// compare-and-swap race it re-reads once: a racer that applied the same
// transition makes this call an idempotent success, anything else is an
// illegal transition for exactly one of the racers.
func (t *Tracker) applyTransition(ctx context.Context, transactionID string, newStatus types.BridgeStatus, reason *string) error {
	current, err := t.store.Get(ctx, transactionID)
	if err != nil {
		return err
	}

	// Idempotent repeat of the same poll result.
	if current.Status == newStatus {
		return nil
	}

	if !current.Status.CanTransitionTo(newStatus) {
		return errors.Wrapf(commonerrors.ErrIllegalTransition, "transaction %s: %s -> %s", transactionID, current.Status, newStatus)
	}

	applied, err := t.store.UpdateStatus(ctx, transactionID, current.Status, newStatus, reason)
	if err != nil {
		return err
	}

	if !applied {
		latest, err := t.store.Get(ctx, transactionID)
		if err != nil {
			return err
		}

		if latest.Status == newStatus {
			return nil
		}

		return errors.Wrapf(commonerrors.ErrIllegalTransition, "transaction %s: lost transition race, status is %s, wanted %s", transactionID, latest.Status, newStatus)
	}

	t.logger.WithFields(logrus.Fields{
		"transactionID": transactionID,
		"from":          current.Status,
		"to":            newStatus,
	}).Info("Bridge transaction status updated")

	return nil
}

// StatusOf returns the tracked transaction.
//
// Returns:
// - *types.BridgeTransaction: a copy of the tracked record.
// - error: ErrTransactionNotFound if the id is unknown.
func (t *Tracker) StatusOf(ctx context.Context, transactionID string) (*types.BridgeTransaction, error) {
	return t.store.Get(ctx, transactionID)
}

// Refresh polls the adapter for the provider-side status, applies the legal
// transition and returns the resulting status. A poll result that would be
// an illegal transition (a stale or out-of-order report) is discarded and
// the current status returned.
func (t *Tracker) Refresh(ctx context.Context, transactionID string, adapter types.BridgeAdapter) (types.BridgeStatus, error) {
	tx, err := t.store.Get(ctx, transactionID)
	if err != nil {
		return "", err
	}

	if tx.Status.IsTerminal() {
		return tx.Status, nil
	}

	polled, err := adapter.PollStatus(ctx, tx.ProviderRef)
	if err != nil {
		return tx.Status, errors.Wrap(err, "failed to poll provider status")
	}

	if polled == tx.Status {
		return tx.Status, nil
	}

	if err := t.UpdateStatus(ctx, transactionID, polled); err != nil {
		if errors.Is(err, commonerrors.ErrIllegalTransition) {
			t.logger.WithFields(logrus.Fields{
				"transactionID": transactionID,
				"current":       tx.Status,
				"polled":        polled,
			}).Warn("Discarding out-of-order provider status")

			latest, getErr := t.store.Get(ctx, transactionID)
			if getErr != nil {
				return "", getErr
			}
			return latest.Status, nil
		}
		return tx.Status, err
	}

	return polled, nil
}
