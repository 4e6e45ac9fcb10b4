package saga

import (
	"context"

	commonerrors "github.com/ClipFinance/bridge-lib/common/errors"
	"github.com/ClipFinance/bridge-lib/common/types"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// BuildQuote composes a cross-chain swap quote: the best bridge quote for
// the token, plus a destination-side swap quote when the requested output
// token differs from the bridged token. The swap's input amount is the
// bridge quote's output amount. Fees in the same currency are summed; fees
// in different currencies are reported as separate components, never
// silently converted.
//
// Parameters:
// - ctx: the context for managing the request.
// - source: the source network.
// - dest: the destination network.
// - fromToken: the token sent on the source network.
// - toToken: the token requested on the destination network.
// - amount: the input amount.
//
// Returns:
// - *types.CrossChainSwapQuote: the composed quote.
// - error: ErrNoRouteAvailable if no adapter serves the pair,
//   ErrQuoteUnavailable if every eligible adapter failed to quote, or a swap
//   router error when a swap step is required and cannot be priced.
func (c *Coordinator) BuildQuote(ctx context.Context, source, dest types.Network, fromToken, toToken string, amount decimal.Decimal) (*types.CrossChainSwapQuote, error) {
	quotes, quoteErrs, err := c.orchestrator.QuotesFor(ctx, source, dest, fromToken, amount)
	if err != nil {
		return nil, err
	}

	if len(quotes) == 0 {
		err := errors.Wrapf(commonerrors.ErrQuoteUnavailable, "no adapter quoted %s -> %s", source, dest)
		for _, quoteErr := range quoteErrs {
			err = errors.Wrapf(err, "%s: %v", quoteErr.Provider, quoteErr.Err)
		}
		return nil, err
	}

	bridgeQuote := quotes[0]

	quote := &types.CrossChainSwapQuote{
		QuoteID:               uuid.NewString(),
		SourceNetwork:         source,
		DestNetwork:           dest,
		InputToken:            fromToken,
		OutputToken:           toToken,
		InputAmount:           amount,
		EstimatedOutputAmount: bridgeQuote.OutputAmount,
		BridgeQuote:           bridgeQuote,
		TotalFees: []types.FeeComponent{
			{Amount: bridgeQuote.Fee, Currency: bridgeQuote.FeeCurrency},
		},
		EstimatedTimeSeconds: bridgeQuote.EstimatedTimeSeconds,
	}

	if fromToken == toToken {
		return quote, nil
	}

	if c.swapRouter == nil {
		return nil, errors.Wrapf(commonerrors.ErrRouteUnsupported, "no swap router configured for %s -> %s swap", fromToken, toToken)
	}

	swapQuote, err := c.swapRouter.FindBestRoute(ctx, dest, fromToken, toToken, bridgeQuote.OutputAmount, c.slippageTolerance)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to quote %s -> %s swap on %s", fromToken, toToken, dest)
	}

	quote.SwapQuote = swapQuote
	quote.EstimatedOutputAmount = swapQuote.OutputAmount
	quote.EstimatedTimeSeconds = bridgeQuote.EstimatedTimeSeconds + swapQuote.EstimatedTimeSeconds
	quote.TotalFees = combineFees(quote.TotalFees, types.FeeComponent{Amount: swapQuote.Fee, Currency: swapQuote.FeeCurrency})

	return quote, nil
}

// combineFees appends a fee component, folding it into an existing component
// when the currencies match.
func combineFees(fees []types.FeeComponent, next types.FeeComponent) []types.FeeComponent {
	for i := range fees {
		if fees[i].Currency == next.Currency {
			fees[i].Amount = fees[i].Amount.Add(next.Amount)
			return fees
		}
	}
	return append(fees, next)
}
