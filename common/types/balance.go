package types

import (
	"context"

	"github.com/shopspring/decimal"
)

// MultiChainBalance is a read-only reporting value for a token balance on a
// single network, with its USD equivalent.
type MultiChainBalance struct {
	Network  Network
	Token    string
	Balance  decimal.Decimal
	USDValue decimal.Decimal
}

// BalanceProvider supplies token balances for an address on a network.
// Implementations query chain RPCs or indexers and are supplied by the
// surrounding application.
type BalanceProvider interface {
	// Balances returns all known token balances for the address.
	Balances(ctx context.Context, network Network, address string) ([]MultiChainBalance, error)
}
