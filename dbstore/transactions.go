package dbstore

import (
	"context"
	"database/sql"
	"time"

	commonerrors "github.com/ClipFinance/bridge-lib/common/errors"
	"github.com/ClipFinance/bridge-lib/common/types"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Insert stores a new bridge transaction record.
//
// Parameters:
// - ctx: the context for managing the request.
// - tx: the transaction record to store.
//
// Returns:
// - error: ErrDuplicateTransaction if the id already exists, or an error if
//   the database operation fails.
func (s *Store) Insert(ctx context.Context, tx *types.BridgeTransaction) error {
	db, err := sql.Open("postgres", s.dbConnStr)
	if err != nil {
		return commonerrors.ErrDatabaseConnect
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `
       INSERT INTO bridge_transaction (
           transaction_id,
           source_network,
           dest_network,
           token,
           amount,
           provider,
           provider_ref,
           sender_address,
           recipient_address,
           status,
           failure_reason,
           created_at,
           updated_at
       ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		tx.TransactionID,
		tx.SourceNetwork.String(),
		tx.DestNetwork.String(),
		tx.Token,
		tx.Amount.String(),
		tx.Provider.String(),
		tx.ProviderRef,
		tx.SenderAddress,
		tx.RecipientAddress,
		tx.Status.String(),
		tx.FailureReason,
		tx.CreatedAt,
		tx.UpdatedAt,
	)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
		return errors.Wrapf(commonerrors.ErrDuplicateTransaction, "transaction %s", tx.TransactionID)
	}

	return err
}

// Get retrieves a bridge transaction by id.
//
// Returns:
// - *types.BridgeTransaction: the stored record.
// - error: ErrTransactionNotFound if the id is unknown, or an error if the
//   database operation fails.
func (s *Store) Get(ctx context.Context, transactionID string) (*types.BridgeTransaction, error) {
	db, err := sql.Open("postgres", s.dbConnStr)
	if err != nil {
		return nil, commonerrors.ErrDatabaseConnect
	}
	defer db.Close()

	row := db.QueryRowContext(ctx, `
       SELECT transaction_id,
              source_network,
              dest_network,
              token,
              amount,
              provider,
              provider_ref,
              sender_address,
              recipient_address,
              status,
              failure_reason,
              created_at,
              updated_at
       FROM bridge_transaction
       WHERE transaction_id = $1`,
		transactionID,
	)

	var tx types.BridgeTransaction
	var sourceNetwork, destNetwork, amount, provider, status string

	err = row.Scan(
		&tx.TransactionID,
		&sourceNetwork,
		&destNetwork,
		&tx.Token,
		&amount,
		&provider,
		&tx.ProviderRef,
		&tx.SenderAddress,
		&tx.RecipientAddress,
		&status,
		&tx.FailureReason,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(commonerrors.ErrTransactionNotFound, "transaction %s", transactionID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan bridge transaction")
	}

	tx.SourceNetwork = types.Network(sourceNetwork)
	tx.DestNetwork = types.Network(destNetwork)
	tx.Provider = types.Provider(provider)
	tx.Status = types.BridgeStatus(status)

	tx.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse stored amount")
	}

	return &tx, nil
}

// UpdateStatus applies the transition from -> to iff the stored status still
// equals from, as a single conditional update.
//
// Returns:
// - bool: true if the update was applied.
// - error: ErrTransactionNotFound if the id is unknown, or an error if the
//   database operation fails.
func (s *Store) UpdateStatus(ctx context.Context, transactionID string, from, to types.BridgeStatus, failureReason *string) (bool, error) {
	db, err := sql.Open("postgres", s.dbConnStr)
	if err != nil {
		return false, commonerrors.ErrDatabaseConnect
	}
	defer db.Close()

	result, err := db.ExecContext(ctx, `
       UPDATE bridge_transaction
          SET status = $1,
              failure_reason = COALESCE($2, failure_reason),
              updated_at = $3
        WHERE transaction_id = $4
          AND status = $5`,
		to.String(),
		failureReason,
		time.Now(),
		transactionID,
		from.String(),
	)
	if err != nil {
		return false, errors.Wrap(err, "failed to update bridge transaction status")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "failed to read affected rows")
	}

	if affected == 0 {
		// Distinguish a lost compare-and-swap from an unknown id.
		if _, getErr := s.Get(ctx, transactionID); getErr != nil {
			return false, getErr
		}
		return false, nil
	}

	return true, nil
}
