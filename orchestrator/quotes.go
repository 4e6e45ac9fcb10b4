package orchestrator

import (
	"context"
	"sort"
	"time"

	commonerrors "github.com/ClipFinance/bridge-lib/common/errors"
	"github.com/ClipFinance/bridge-lib/common/types"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// QuoteError reports an adapter that failed to quote alongside the quotes
// that did succeed. Partial success is not itself an error.
type QuoteError struct {
	Provider types.Provider
	Err      error
}

// quoteResult carries one adapter's outcome across the fan-out join.
type quoteResult struct {
	provider types.Provider
	quote    *types.BridgeQuote
	err      error
}

// QuotesFor aggregates quotes from every eligible registered adapter,
// concurrently with a bounded per-adapter timeout, and returns them sorted
// by descending effective value (outputAmount - fee), ties broken by
// ascending estimated time then provider id for full determinism.
//
// Adapters that report ErrRouteUnsupported are silently skipped; all other
// adapter errors are collected and returned alongside the successful quotes.
//
// Returns:
// - []*types.BridgeQuote: the sorted quotes.
// - []QuoteError: adapter failures, if any.
// - error: ErrNoRouteAvailable if no eligible adapter is registered,
//   ErrUnknownNetwork for an unsupported network.
func (o *Orchestrator) QuotesFor(ctx context.Context, source, dest types.Network, token string, amount decimal.Decimal) ([]*types.BridgeQuote, []QuoteError, error) {
	adapters, err := o.eligibleAdapters(source, dest)
	if err != nil {
		return nil, nil, err
	}

	if len(adapters) == 0 {
		return nil, nil, errors.Wrapf(commonerrors.ErrNoRouteAvailable, "no registered adapter serves %s -> %s", source, dest)
	}

	if quotes, quoteErrs, ok := o.cache.get(source, dest, token, amount); ok {
		return quotes, quoteErrs, nil
	}

	results := make(chan quoteResult, len(adapters))
	pending := make(map[types.Provider]struct{}, len(adapters))
	for _, adapter := range adapters {
		pending[adapter.Provider().ID] = struct{}{}

		go func(adapter types.BridgeAdapter) {
			quoteCtx, cancel := context.WithTimeout(ctx, o.quoteTimeout)
			defer cancel()

			quote, err := adapter.Quote(quoteCtx, source, dest, token, amount)
			results <- quoteResult{
				provider: adapter.Provider().ID,
				quote:    quote,
				err:      err,
			}
		}(adapter)
	}

	// The join itself is bounded: an adapter that ignores its context is
	// reported as timed out rather than blocking the aggregation. The
	// results channel is buffered so stragglers never leak goroutines.
	joinDeadline := time.After(o.quoteTimeout + 100*time.Millisecond)

	var quotes []*types.BridgeQuote
	var quoteErrs []QuoteError
join:
	for range adapters {
		var result quoteResult
		select {
		case result = <-results:
		case <-joinDeadline:
			for provider := range pending {
				quoteErrs = append(quoteErrs, QuoteError{
					Provider: provider,
					Err:      errors.Wrapf(commonerrors.ErrQuoteUnavailable, "adapter %s did not respond within %s", provider, o.quoteTimeout),
				})
			}
			break join
		}

		delete(pending, result.provider)

		switch {
		case result.err == nil:
			quotes = append(quotes, result.quote)

		case errors.Is(result.err, commonerrors.ErrRouteUnsupported):
			// The adapter does not serve this triple; not an error.

		default:
			o.logger.WithFields(logrus.Fields{
				"provider": result.provider,
				"source":   source,
				"dest":     dest,
			}).WithError(result.err).Warn("Adapter failed to quote")

			quoteErrs = append(quoteErrs, QuoteError{Provider: result.provider, Err: result.err})
		}
	}

	sortQuotes(quotes)
	o.cache.put(source, dest, token, amount, quotes, quoteErrs)

	return quotes, quoteErrs, nil
}

// sortQuotes orders quotes by descending effective value, then ascending
// estimated time, then provider id.
func sortQuotes(quotes []*types.BridgeQuote) {
	sort.SliceStable(quotes, func(i, j int) bool {
		valueI := quotes[i].EffectiveValue()
		valueJ := quotes[j].EffectiveValue()
		if !valueI.Equal(valueJ) {
			return valueI.GreaterThan(valueJ)
		}

		if quotes[i].EstimatedTimeSeconds != quotes[j].EstimatedTimeSeconds {
			return quotes[i].EstimatedTimeSeconds < quotes[j].EstimatedTimeSeconds
		}

		return quotes[i].Route.Provider < quotes[j].Route.Provider
	})
}
