package bridge

import (
	"context"

	"github.com/ClipFinance/bridge-lib/catalog"
	commonerrors "github.com/ClipFinance/bridge-lib/common/errors"
	"github.com/ClipFinance/bridge-lib/common/types"
	"github.com/ClipFinance/bridge-lib/orchestrator"
	"github.com/ClipFinance/bridge-lib/saga"
	"github.com/ClipFinance/bridge-lib/tracker"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Service is the synchronous call surface of the bridge and swap
// orchestration engine. Any RPC or HTTP layer built on top simply marshals
// these operations.
type Service struct {
	logger          *logrus.Logger
	orchestrator    *orchestrator.Orchestrator
	tracker         *tracker.Tracker
	coordinator     *saga.Coordinator
	balanceProvider types.BalanceProvider
}

// NewService wires the orchestration engine together.
//
// Parameters:
// - orch: the bridge orchestrator.
// - trk: the bridge transaction tracker.
// - coordinator: the cross-chain swap saga coordinator.
// - balanceProvider: the balance read surface; may be nil.
// - logger: the logger for logging events.
//
// Returns:
// - *Service: the new service instance.
func NewService(orch *orchestrator.Orchestrator, trk *tracker.Tracker, coordinator *saga.Coordinator, balanceProvider types.BalanceProvider, logger *logrus.Logger) *Service {
	return &Service{
		logger:          logger,
		orchestrator:    orch,
		tracker:         trk,
		coordinator:     coordinator,
		balanceProvider: balanceProvider,
	}
}

// ListSupportedChains returns the configurations of all supported networks.
func (s *Service) ListSupportedChains() []types.NetworkConfig {
	return catalog.Networks()
}

// GetBridgeQuotes aggregates bridge quotes for the route, best first.
// Adapter failures are returned alongside any quotes that did succeed.
func (s *Service) GetBridgeQuotes(ctx context.Context, source, dest types.Network, token string, amount decimal.Decimal) ([]*types.BridgeQuote, []orchestrator.QuoteError, error) {
	return s.orchestrator.QuotesFor(ctx, source, dest, token, amount)
}

// InitiateBridge executes a bridge quote and returns the new transaction id.
func (s *Service) InitiateBridge(ctx context.Context, quote *types.BridgeQuote, senderAddress, recipientAddress string) (string, error) {
	return s.orchestrator.InitiateBridge(ctx, quote, senderAddress, recipientAddress)
}

// GetBridgeStatus refreshes and returns the tracked transaction. The
// provider is polled when the transaction is still pending and its adapter
// is registered; otherwise the stored record is returned as is.
func (s *Service) GetBridgeStatus(ctx context.Context, transactionID string) (*types.BridgeTransaction, error) {
	tx, err := s.tracker.StatusOf(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if tx.Status.IsTerminal() {
		return tx, nil
	}

	adapter, err := s.orchestrator.Adapter(tx.Provider)
	if err != nil {
		return tx, nil
	}

	if _, err := s.tracker.Refresh(ctx, transactionID, adapter); err != nil {
		s.logger.WithField("transactionID", transactionID).WithError(err).Warn("Failed to refresh bridge status")
	}

	return s.tracker.StatusOf(ctx, transactionID)
}

// GetCrossChainSwapQuote composes a bridge quote with an optional
// destination-side swap quote.
func (s *Service) GetCrossChainSwapQuote(ctx context.Context, source, dest types.Network, fromToken, toToken string, amount decimal.Decimal) (*types.CrossChainSwapQuote, error) {
	return s.coordinator.BuildQuote(ctx, source, dest, fromToken, toToken, amount)
}

// ExecuteCrossChainSwap runs the saga for a composed quote and returns its
// outcome. A non-terminal outcome means polling gave out while the bridge
// was still pending; ResumeCrossChainSwap continues it.
func (s *Service) ExecuteCrossChainSwap(ctx context.Context, quote *types.CrossChainSwapQuote, walletAddress string) (*saga.Execution, *saga.Outcome, error) {
	exec, err := s.coordinator.Execute(ctx, quote, walletAddress)
	if err != nil {
		return nil, nil, err
	}
	return exec, exec.Outcome(), nil
}

// ResumeCrossChainSwap continues a saga left in a pending state.
func (s *Service) ResumeCrossChainSwap(ctx context.Context, exec *saga.Execution) (*saga.Outcome, error) {
	if err := s.coordinator.Resume(ctx, exec); err != nil {
		return exec.Outcome(), err
	}
	return exec.Outcome(), nil
}

// Balances returns the token balances of an address on a network.
func (s *Service) Balances(ctx context.Context, network types.Network, address string) ([]types.MultiChainBalance, error) {
	if s.balanceProvider == nil {
		return nil, errors.Wrap(commonerrors.ErrInvalidConfig, "no balance provider configured")
	}

	canonical, err := catalog.ValidateAddress(network, address)
	if err != nil {
		return nil, err
	}

	return s.balanceProvider.Balances(ctx, network, canonical)
}
