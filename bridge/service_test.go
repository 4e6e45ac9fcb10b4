package bridge

import (
	"context"
	"testing"
	"time"

	"github.com/ClipFinance/bridge-lib/adapters/demo"
	commonerrors "github.com/ClipFinance/bridge-lib/common/errors"
	"github.com/ClipFinance/bridge-lib/common/types"
	"github.com/ClipFinance/bridge-lib/orchestrator"
	"github.com/ClipFinance/bridge-lib/saga"
	"github.com/ClipFinance/bridge-lib/tracker"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const walletAddress = "0x90F8bf6A479f320ead074411a4B0e7944Ea8c9C1"

// staticBalances is a BalanceProvider stub.
type staticBalances struct {
	balances []types.MultiChainBalance
}

func (p *staticBalances) Balances(_ context.Context, network types.Network, _ string) ([]types.MultiChainBalance, error) {
	var out []types.MultiChainBalance
	for _, balance := range p.balances {
		if balance.Network == network {
			out = append(out, balance)
		}
	}
	return out, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newTestService(balances types.BalanceProvider) *Service {
	trk := tracker.New(nil, testLogger())
	orch := orchestrator.New(trk, testLogger(), orchestrator.WithCacheTTL(0))
	orch.RegisterAdapter(demo.New(testLogger(), demo.WithCompletionDelay(60*time.Millisecond)))

	coordinator := saga.NewCoordinator(orch, trk, nil, testLogger(),
		saga.WithPollIntervals(10*time.Millisecond, 20*time.Millisecond),
		saga.WithPollTimeout(2*time.Second),
	)
	return NewService(orch, trk, coordinator, balances, testLogger())
}

func TestListSupportedChains(t *testing.T) {
	service := newTestService(nil)

	chains := service.ListSupportedChains()
	require.NotEmpty(t, chains)
	assert.Equal(t, types.NetworkEthereum, chains[0].Network)
}

func TestBridgeLifecycleThroughService(t *testing.T) {
	service := newTestService(nil)
	ctx := context.Background()

	quotes, quoteErrs, err := service.GetBridgeQuotes(ctx, types.NetworkEthereum, types.NetworkPolygon, "USDC", decimal.RequireFromString("1000.00"))
	require.NoError(t, err)
	assert.Empty(t, quoteErrs)
	require.Len(t, quotes, 1)
	assert.Equal(t, types.ProviderDemo, quotes[0].Route.Provider)

	transactionID, err := service.InitiateBridge(ctx, quotes[0], walletAddress, walletAddress)
	require.NoError(t, err)

	// Before the simulated delay the status is pending.
	tx, err := service.GetBridgeStatus(ctx, transactionID)
	require.NoError(t, err)
	assert.True(t, tx.Status.IsPending())

	require.Eventually(t, func() bool {
		tx, err := service.GetBridgeStatus(ctx, transactionID)
		return err == nil && tx.Status == types.StatusCompleted
	}, time.Second, 10*time.Millisecond)
}

func TestGetBridgeStatusUnknownTransaction(t *testing.T) {
	service := newTestService(nil)

	_, err := service.GetBridgeStatus(context.Background(), "missing")
	assert.True(t, errors.Is(err, commonerrors.ErrTransactionNotFound))
}

func TestExecuteCrossChainSwapBridgeOnly(t *testing.T) {
	service := newTestService(nil)
	ctx := context.Background()

	quote, err := service.GetCrossChainSwapQuote(ctx, types.NetworkEthereum, types.NetworkPolygon, "USDC", "USDC", decimal.RequireFromString("1000.00"))
	require.NoError(t, err)
	assert.False(t, quote.RequiresSwap())

	_, outcome, err := service.ExecuteCrossChainSwap(ctx, quote, walletAddress)
	require.NoError(t, err)
	assert.Equal(t, saga.StateDone, outcome.State)
	assert.NotEmpty(t, outcome.BridgeTransactionID)
}

func TestBalances(t *testing.T) {
	provider := &staticBalances{balances: []types.MultiChainBalance{
		{
			Network:  types.NetworkEthereum,
			Token:    "USDC",
			Balance:  decimal.RequireFromString("1500.25"),
			USDValue: decimal.RequireFromString("1500.25"),
		},
		{
			Network: types.NetworkPolygon,
			Token:   "POL",
			Balance: decimal.RequireFromString("12"),
		},
	}}
	service := newTestService(provider)

	balances, err := service.Balances(context.Background(), types.NetworkEthereum, walletAddress)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, "USDC", balances[0].Token)
}

func TestBalancesInvalidAddress(t *testing.T) {
	service := newTestService(&staticBalances{})

	_, err := service.Balances(context.Background(), types.NetworkEthereum, "not-an-address")
	assert.True(t, errors.Is(err, commonerrors.ErrInvalidAddress))
}

func TestBalancesWithoutProvider(t *testing.T) {
	service := newTestService(nil)

	_, err := service.Balances(context.Background(), types.NetworkEthereum, walletAddress)
	assert.True(t, errors.Is(err, commonerrors.ErrInvalidConfig))
}
