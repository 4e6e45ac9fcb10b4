package dbstore

import (
	_ "github.com/lib/pq"
)

// Store is a Postgres-backed transaction store for tracked bridge
// transactions. It satisfies types.TransactionStore; the tracker stays the
// only component applying the state machine.
type Store struct {
	dbConnStr string
}

// Schema is the table the store expects. Applying it is left to the
// surrounding application's migration tooling.
const Schema = `
CREATE TABLE IF NOT EXISTS bridge_transaction (
    transaction_id    TEXT PRIMARY KEY,
    source_network    TEXT        NOT NULL,
    dest_network      TEXT        NOT NULL,
    token             TEXT        NOT NULL,
    amount            NUMERIC     NOT NULL,
    provider          TEXT        NOT NULL,
    provider_ref      TEXT        NOT NULL,
    sender_address    TEXT        NOT NULL,
    recipient_address TEXT        NOT NULL,
    status            TEXT        NOT NULL,
    failure_reason    TEXT,
    created_at        TIMESTAMPTZ NOT NULL,
    updated_at        TIMESTAMPTZ NOT NULL
);`

// NewStore creates a new Store instance with the provided connection string.
//
// Parameters:
// - connStr: the database connection string.
//
// Returns:
// - *Store: a pointer to the newly created Store instance.
// - error: an error if the creation of the Store instance fails.
func NewStore(connStr string) (*Store, error) {
	return &Store{
		dbConnStr: connStr,
	}, nil
}
