package types

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SwapQuote represents a priced on-chain swap on a single network.
type SwapQuote struct {
	QuoteID              string
	Network              Network
	FromToken            string
	ToToken              string
	InputAmount          decimal.Decimal
	OutputAmount         decimal.Decimal
	Fee                  decimal.Decimal
	FeeCurrency          string
	SlippageTolerance    decimal.Decimal
	EstimatedTimeSeconds int64
	ExpiresAt            time.Time
}

// IsExpired reports whether the swap quote expiry has passed.
func (q *SwapQuote) IsExpired() bool {
	return time.Now().After(q.ExpiresAt)
}

// SwapResult holds the outcome of an executed on-chain swap.
type SwapResult struct {
	TxHash       string
	InputAmount  decimal.Decimal
	OutputAmount decimal.Decimal
	PriceImpact  decimal.Decimal
}

// SwapRouter provides on-chain swap quoting and execution for a single
// network. Implementations wrap concrete DEX connectors and are supplied by
// the surrounding application.
type SwapRouter interface {
	// FindBestRoute returns the best available swap quote for the token pair.
	//
	// Parameters:
	// - ctx: the context for managing the request.
	// - network: the network to swap on.
	// - fromToken: the token to swap from.
	// - toToken: the token to swap to.
	// - amount: the input amount.
	// - slippageTolerance: the maximum acceptable slippage.
	//
	// Returns:
	// - *SwapQuote: the best swap quote found.
	// - error: an error if no route exists or the upstream quoting fails.
	FindBestRoute(ctx context.Context, network Network, fromToken, toToken string, amount decimal.Decimal, slippageTolerance decimal.Decimal) (*SwapQuote, error)

	// ExecuteSwap executes a previously obtained swap quote.
	//
	// Parameters:
	// - ctx: the context for managing the request.
	// - quote: the swap quote to execute.
	// - walletAddress: the wallet receiving the swapped tokens.
	//
	// Returns:
	// - *SwapResult: the executed swap details.
	// - error: an error if the swap execution fails.
	ExecuteSwap(ctx context.Context, quote *SwapQuote, walletAddress string) (*SwapResult, error)
}
