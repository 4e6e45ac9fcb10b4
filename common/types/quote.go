package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// BridgeRoute describes one possible path for a bridge transfer. Many routes
// may exist per (source, dest, token) triple, one per eligible provider.
type BridgeRoute struct {
	SourceNetwork        Network
	DestNetwork          Network
	Token                string
	Provider             Provider
	EstimatedTimeSeconds int64
	BaseFee              decimal.Decimal
}

// BridgeQuote represents a priced, time-boxed offer to execute a bridge
// transfer over a specific route. A quote is a value object and is never
// mutated after creation.
//
// Fields:
// - QuoteID: the unique identifier generated for this quote.
// - Route: the route this quote prices.
// - InputAmount: the amount sent on the source network.
// - OutputAmount: the amount received on the destination network.
// - Fee: the total provider fee for the transfer.
// - FeeCurrency: the currency the fee is denominated in.
// - EstimatedTimeSeconds: the estimated transfer duration.
// - ExpiresAt: the absolute timestamp after which the quote is invalid.
type BridgeQuote struct {
	QuoteID              string
	Route                BridgeRoute
	InputAmount          decimal.Decimal
	OutputAmount         decimal.Decimal
	Fee                  decimal.Decimal
	FeeCurrency          string
	EstimatedTimeSeconds int64
	ExpiresAt            time.Time
}

// IsExpired reports whether the quote expiry has passed. Consumers must
// reject execution of an expired quote.
func (q *BridgeQuote) IsExpired() bool {
	return time.Now().After(q.ExpiresAt)
}

// EffectiveValue returns the output amount net of the fee, denominated in
// the quote's own fee currency. Used for deterministic quote ranking.
func (q *BridgeQuote) EffectiveValue() decimal.Decimal {
	return q.OutputAmount.Sub(q.Fee)
}

// FeeComponent is a single fee denominated in one currency. Totals spanning
// multiple currencies are reported as a list of components rather than being
// silently converted.
type FeeComponent struct {
	Amount   decimal.Decimal
	Currency string
}

// CrossChainSwapQuote prices a composed bridge-then-swap operation. The swap
// quote is absent when the input and output tokens are the same asset.
type CrossChainSwapQuote struct {
	QuoteID               string
	SourceNetwork         Network
	DestNetwork           Network
	InputToken            string
	OutputToken           string
	InputAmount           decimal.Decimal
	EstimatedOutputAmount decimal.Decimal
	BridgeQuote           *BridgeQuote
	SwapQuote             *SwapQuote
	TotalFees             []FeeComponent
	EstimatedTimeSeconds  int64
}

// RequiresSwap reports whether the operation includes a post-bridge swap step.
func (q *CrossChainSwapQuote) RequiresSwap() bool {
	return q.SwapQuote != nil
}
