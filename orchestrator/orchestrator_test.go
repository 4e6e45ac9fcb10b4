package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/ClipFinance/bridge-lib/catalog"
	commonerrors "github.com/ClipFinance/bridge-lib/common/errors"
	"github.com/ClipFinance/bridge-lib/common/types"
	"github.com/ClipFinance/bridge-lib/tracker"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAdapter is a configurable BridgeAdapter for orchestrator tests.
type stubAdapter struct {
	provider    types.Provider
	fee         string
	timeSeconds int64
	quoteErr    error
	initiateErr error
	pollStatus  types.BridgeStatus
	quoteDelay  time.Duration
	initiated   int
}

func (a *stubAdapter) Provider() types.BridgeProvider {
	return types.BridgeProvider{ID: a.provider, Name: string(a.provider), AvgTransferTimeSeconds: a.timeSeconds}
}

func (a *stubAdapter) Quote(ctx context.Context, source, dest types.Network, token string, amount decimal.Decimal) (*types.BridgeQuote, error) {
	if a.quoteDelay > 0 {
		select {
		case <-ctx.Done():
			return nil, errors.Wrap(commonerrors.ErrQuoteUnavailable, ctx.Err().Error())
		case <-time.After(a.quoteDelay):
		}
	}

	if a.quoteErr != nil {
		return nil, a.quoteErr
	}

	fee := decimal.RequireFromString(a.fee)
	return &types.BridgeQuote{
		QuoteID: uuid.NewString(),
		Route: types.BridgeRoute{
			SourceNetwork:        source,
			DestNetwork:          dest,
			Token:                token,
			Provider:             a.provider,
			EstimatedTimeSeconds: a.timeSeconds,
			BaseFee:              fee,
		},
		InputAmount:          amount,
		OutputAmount:         amount.Sub(fee),
		Fee:                  fee,
		FeeCurrency:          token,
		EstimatedTimeSeconds: a.timeSeconds,
		ExpiresAt:            time.Now().Add(30 * time.Second),
	}, nil
}

func (a *stubAdapter) InitiateTransfer(_ context.Context, quote *types.BridgeQuote, _, _ string) (string, error) {
	if a.initiateErr != nil {
		return "", a.initiateErr
	}
	a.initiated++
	return "ref-" + quote.QuoteID, nil
}

func (a *stubAdapter) PollStatus(context.Context, string) (types.BridgeStatus, error) {
	return a.pollStatus, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newTestOrchestrator(opts ...Option) (*Orchestrator, *tracker.Tracker) {
	trk := tracker.New(nil, testLogger())
	return New(trk, testLogger(), opts...), trk
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestQuotesForNoAdapterRegistered(t *testing.T) {
	orch, _ := newTestOrchestrator()

	_, _, err := orch.QuotesFor(context.Background(), types.NetworkEthereum, types.NetworkPolygon, "USDC", amount("1000.00"))
	assert.True(t, errors.Is(err, commonerrors.ErrNoRouteAvailable))
}

func TestQuotesForUnknownNetwork(t *testing.T) {
	orch, _ := newTestOrchestrator()
	orch.RegisterAdapter(&stubAdapter{provider: types.ProviderLayerZero, fee: "0.5", timeSeconds: 300})

	_, _, err := orch.QuotesFor(context.Background(), types.Network("dogecoin"), types.NetworkPolygon, "USDC", amount("1000.00"))
	assert.True(t, errors.Is(err, commonerrors.ErrUnknownNetwork))
}

func TestQuotesForOnlyEligibleProviders(t *testing.T) {
	orch, _ := newTestOrchestrator(WithCacheTTL(0))
	// LayerZero does not serve Solana in the catalog.
	orch.RegisterAdapter(&stubAdapter{provider: types.ProviderLayerZero, fee: "0.5", timeSeconds: 300})
	orch.RegisterAdapter(&stubAdapter{provider: types.ProviderWormhole, fee: "0.8", timeSeconds: 900})

	quotes, quoteErrs, err := orch.QuotesFor(context.Background(), types.NetworkEthereum, types.NetworkSolana, "USDC", amount("1000.00"))
	require.NoError(t, err)
	assert.Empty(t, quoteErrs)
	require.Len(t, quotes, 1)
	assert.Equal(t, types.ProviderWormhole, quotes[0].Route.Provider)

	// A returned quote's provider is eligible on both networks.
	for _, quote := range quotes {
		for _, network := range []types.Network{types.NetworkEthereum, types.NetworkSolana} {
			providers, err := catalog.SupportedBridgeProviders(network)
			require.NoError(t, err)
			assert.Contains(t, providers, quote.Route.Provider)
		}
	}
}

func TestQuotesForDeterministicOrder(t *testing.T) {
	orch, _ := newTestOrchestrator(WithCacheTTL(0))
	// Same effective value for LayerZero and Axelar via equal fees; LayerZero
	// is faster and must rank first. Wormhole has the highest fee and ranks
	// last.
	orch.RegisterAdapter(&stubAdapter{provider: types.ProviderWormhole, fee: "0.8", timeSeconds: 900})
	orch.RegisterAdapter(&stubAdapter{provider: types.ProviderAxelar, fee: "0.5", timeSeconds: 600})
	orch.RegisterAdapter(&stubAdapter{provider: types.ProviderLayerZero, fee: "0.5", timeSeconds: 300})

	quotes, quoteErrs, err := orch.QuotesFor(context.Background(), types.NetworkEthereum, types.NetworkPolygon, "USDC", amount("1000.00"))
	require.NoError(t, err)
	assert.Empty(t, quoteErrs)
	require.Len(t, quotes, 3)

	assert.Equal(t, types.ProviderLayerZero, quotes[0].Route.Provider)
	assert.Equal(t, types.ProviderAxelar, quotes[1].Route.Provider)
	assert.Equal(t, types.ProviderWormhole, quotes[2].Route.Provider)
}

func TestQuotesForPartialFailure(t *testing.T) {
	orch, _ := newTestOrchestrator(WithCacheTTL(0))
	orch.RegisterAdapter(&stubAdapter{provider: types.ProviderLayerZero, fee: "0.5", timeSeconds: 300})
	orch.RegisterAdapter(&stubAdapter{provider: types.ProviderAxelar, quoteErr: errors.Wrap(commonerrors.ErrQuoteUnavailable, "pricing api down")})

	quotes, quoteErrs, err := orch.QuotesFor(context.Background(), types.NetworkEthereum, types.NetworkPolygon, "USDC", amount("1000.00"))
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	require.Len(t, quoteErrs, 1)
	assert.Equal(t, types.ProviderAxelar, quoteErrs[0].Provider)
	assert.True(t, errors.Is(quoteErrs[0].Err, commonerrors.ErrQuoteUnavailable))
}

func TestQuotesForRouteUnsupportedSkippedSilently(t *testing.T) {
	orch, _ := newTestOrchestrator(WithCacheTTL(0))
	orch.RegisterAdapter(&stubAdapter{provider: types.ProviderLayerZero, fee: "0.5", timeSeconds: 300})
	orch.RegisterAdapter(&stubAdapter{provider: types.ProviderAxelar, quoteErr: errors.Wrap(commonerrors.ErrRouteUnsupported, "token not listed")})

	quotes, quoteErrs, err := orch.QuotesFor(context.Background(), types.NetworkEthereum, types.NetworkPolygon, "USDC", amount("1000.00"))
	require.NoError(t, err)
	assert.Len(t, quotes, 1)
	assert.Empty(t, quoteErrs)
}

func TestQuotesForSlowAdapterOmitted(t *testing.T) {
	orch, _ := newTestOrchestrator(WithCacheTTL(0), WithQuoteTimeout(50*time.Millisecond))
	orch.RegisterAdapter(&stubAdapter{provider: types.ProviderLayerZero, fee: "0.5", timeSeconds: 300})
	orch.RegisterAdapter(&stubAdapter{provider: types.ProviderAxelar, fee: "0.65", timeSeconds: 600, quoteDelay: 500 * time.Millisecond})

	quotes, quoteErrs, err := orch.QuotesFor(context.Background(), types.NetworkEthereum, types.NetworkPolygon, "USDC", amount("1000.00"))
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, types.ProviderLayerZero, quotes[0].Route.Provider)
	require.Len(t, quoteErrs, 1)
	assert.Equal(t, types.ProviderAxelar, quoteErrs[0].Provider)
}

func TestQuotesForCachesAggregation(t *testing.T) {
	orch, _ := newTestOrchestrator(WithCacheTTL(time.Minute))
	orch.RegisterAdapter(&stubAdapter{provider: types.ProviderLayerZero, fee: "0.5", timeSeconds: 300})

	first, _, err := orch.QuotesFor(context.Background(), types.NetworkEthereum, types.NetworkPolygon, "USDC", amount("1000.00"))
	require.NoError(t, err)

	second, _, err := orch.QuotesFor(context.Background(), types.NetworkEthereum, types.NetworkPolygon, "USDC", amount("1000.00"))
	require.NoError(t, err)
	assert.Equal(t, first[0].QuoteID, second[0].QuoteID)

	// A different amount is a different cache key.
	third, _, err := orch.QuotesFor(context.Background(), types.NetworkEthereum, types.NetworkPolygon, "USDC", amount("2000.00"))
	require.NoError(t, err)
	assert.NotEqual(t, first[0].QuoteID, third[0].QuoteID)
}

func TestQuotesForCacheHandsOutIsolatedCopies(t *testing.T) {
	orch, _ := newTestOrchestrator(WithCacheTTL(time.Minute))
	orch.RegisterAdapter(&stubAdapter{provider: types.ProviderLayerZero, fee: "0.5", timeSeconds: 300})

	first, _, err := orch.QuotesFor(context.Background(), types.NetworkEthereum, types.NetworkPolygon, "USDC", amount("1000.00"))
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Mutating a returned quote must not edit the cached one.
	first[0].ExpiresAt = time.Now().Add(-time.Second)

	second, _, err := orch.QuotesFor(context.Background(), types.NetworkEthereum, types.NetworkPolygon, "USDC", amount("1000.00"))
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].QuoteID, second[0].QuoteID)
	assert.False(t, second[0].IsExpired())
}

func TestInitiateBridgeRejectsExpiredQuote(t *testing.T) {
	orch, _ := newTestOrchestrator()
	adapter := &stubAdapter{provider: types.ProviderLayerZero, fee: "0.5", timeSeconds: 300}
	orch.RegisterAdapter(adapter)

	quote, err := adapter.Quote(context.Background(), types.NetworkEthereum, types.NetworkPolygon, "USDC", amount("1000.00"))
	require.NoError(t, err)
	quote.ExpiresAt = time.Now().Add(-time.Second)

	_, err = orch.InitiateBridge(context.Background(), quote, "0xsender", "0xrecipient")
	assert.True(t, errors.Is(err, commonerrors.ErrQuoteExpired))
	assert.Zero(t, adapter.initiated)
}

func TestInitiateBridgeRecordsTransaction(t *testing.T) {
	orch, trk := newTestOrchestrator()
	adapter := &stubAdapter{provider: types.ProviderLayerZero, fee: "0.5", timeSeconds: 300}
	orch.RegisterAdapter(adapter)

	quote, err := adapter.Quote(context.Background(), types.NetworkEthereum, types.NetworkPolygon, "USDC", amount("1000.00"))
	require.NoError(t, err)

	transactionID, err := orch.InitiateBridge(context.Background(), quote, "0xsender", "0xrecipient")
	require.NoError(t, err)
	require.NotEmpty(t, transactionID)

	tx, err := trk.StatusOf(context.Background(), transactionID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusInitiated, tx.Status)
	assert.Equal(t, types.ProviderLayerZero, tx.Provider)
	assert.Equal(t, "0xsender", tx.SenderAddress)
	assert.Equal(t, "0xrecipient", tx.RecipientAddress)
}

func TestInitiateBridgeAdapterFailureLeavesNoRecord(t *testing.T) {
	orch, trk := newTestOrchestrator()
	adapter := &stubAdapter{provider: types.ProviderLayerZero, fee: "0.5", timeSeconds: 300}
	orch.RegisterAdapter(adapter)

	quote, err := adapter.Quote(context.Background(), types.NetworkEthereum, types.NetworkPolygon, "USDC", amount("1000.00"))
	require.NoError(t, err)

	adapter.initiateErr = errors.Wrap(commonerrors.ErrProviderExecution, "node unreachable")

	_, err = orch.InitiateBridge(context.Background(), quote, "0xsender", "0xrecipient")
	assert.True(t, errors.Is(err, commonerrors.ErrProviderExecution))

	// No partial record exists for an operation that never began.
	_, err = trk.StatusOf(context.Background(), quote.QuoteID)
	assert.True(t, errors.Is(err, commonerrors.ErrTransactionNotFound))
}

func TestInitiateBridgeUnregisteredProvider(t *testing.T) {
	orch, _ := newTestOrchestrator()
	adapter := &stubAdapter{provider: types.ProviderLayerZero, fee: "0.5", timeSeconds: 300}

	quote, err := adapter.Quote(context.Background(), types.NetworkEthereum, types.NetworkPolygon, "USDC", amount("1000.00"))
	require.NoError(t, err)

	_, err = orch.InitiateBridge(context.Background(), quote, "0xsender", "0xrecipient")
	assert.True(t, errors.Is(err, commonerrors.ErrAdapterNotRegistered))
}

func TestRegisterAdapterOverwrites(t *testing.T) {
	orch, _ := newTestOrchestrator()
	first := &stubAdapter{provider: types.ProviderLayerZero, fee: "0.5", timeSeconds: 300}
	second := &stubAdapter{provider: types.ProviderLayerZero, fee: "0.4", timeSeconds: 200}

	orch.RegisterAdapter(first)
	orch.RegisterAdapter(second)

	resolved, err := orch.Adapter(types.ProviderLayerZero)
	require.NoError(t, err)
	assert.Same(t, second, resolved)
}
