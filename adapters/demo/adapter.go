package demo

import (
	"context"
	"sync"
	"time"

	"github.com/ClipFinance/bridge-lib/catalog"
	commonerrors "github.com/ClipFinance/bridge-lib/common/errors"
	"github.com/ClipFinance/bridge-lib/common/types"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	// defaultQuoteTTL is the validity window of a demo quote.
	defaultQuoteTTL = 30 * time.Second
	// defaultCompletionDelay is the simulated transfer duration. Transfers
	// report a pending status until the delay elapses, then COMPLETED.
	defaultCompletionDelay = 2 * time.Second
)

// transfer holds the simulated state of one in-flight demo transfer.
type transfer struct {
	startedAt     time.Time
	completeAfter time.Duration
}

// Adapter is the reference bridge adapter. It prices quotes from the catalog
// base fee table and simulates transfers that always complete after a fixed
// short delay. Useful as the reference implementation and in tests.
type Adapter struct {
	logger          *logrus.Logger
	quoteTTL        time.Duration
	completionDelay time.Duration

	transfersMutex sync.RWMutex
	transfers      map[string]*transfer
}

// Option configures the demo adapter.
type Option func(*Adapter)

// WithQuoteTTL overrides the quote validity window.
func WithQuoteTTL(ttl time.Duration) Option {
	return func(a *Adapter) { a.quoteTTL = ttl }
}

// WithCompletionDelay overrides the simulated transfer duration.
func WithCompletionDelay(delay time.Duration) Option {
	return func(a *Adapter) { a.completionDelay = delay }
}

// New creates a demo adapter.
//
// Parameters:
// - logger: the logger for logging events.
// - opts: optional overrides for quote TTL and completion delay.
//
// Returns:
// - *Adapter: the new demo adapter instance.
func New(logger *logrus.Logger, opts ...Option) *Adapter {
	adapter := &Adapter{
		logger:          logger,
		quoteTTL:        defaultQuoteTTL,
		completionDelay: defaultCompletionDelay,
		transfers:       make(map[string]*transfer),
	}

	for _, opt := range opts {
		opt(adapter)
	}
	return adapter
}

// Provider returns the demo provider description.
func (a *Adapter) Provider() types.BridgeProvider {
	info, _ := catalog.BridgeProvider(types.ProviderDemo)
	return *info
}

// Quote prices a transfer using the catalog's configured base fee and the
// demo provider's average transfer time.
func (a *Adapter) Quote(_ context.Context, source, dest types.Network, token string, amount decimal.Decimal) (*types.BridgeQuote, error) {
	routes, err := catalog.RoutesFor(source, dest, token)
	if err != nil {
		return nil, err
	}

	var route *types.BridgeRoute
	for i := range routes {
		if routes[i].Provider == types.ProviderDemo {
			route = &routes[i]
			break
		}
	}

	if route == nil {
		return nil, errors.Wrapf(commonerrors.ErrRouteUnsupported, "demo provider does not serve %s -> %s", source, dest)
	}

	if amount.LessThanOrEqual(route.BaseFee) {
		return nil, errors.Wrapf(commonerrors.ErrQuoteUnavailable, "amount %s does not cover base fee %s", amount, route.BaseFee)
	}

	return &types.BridgeQuote{
		QuoteID:              uuid.NewString(),
		Route:                *route,
		InputAmount:          amount,
		OutputAmount:         amount.Sub(route.BaseFee),
		Fee:                  route.BaseFee,
		FeeCurrency:          token,
		EstimatedTimeSeconds: route.EstimatedTimeSeconds,
		ExpiresAt:            time.Now().Add(a.quoteTTL),
	}, nil
}

// InitiateTransfer validates the quote and recipient address and starts a
// simulated transfer.
func (a *Adapter) InitiateTransfer(_ context.Context, quote *types.BridgeQuote, senderAddress, recipientAddress string) (string, error) {
	if quote.IsExpired() {
		return "", errors.Wrapf(commonerrors.ErrQuoteExpired, "quote %s expired at %s", quote.QuoteID, quote.ExpiresAt)
	}

	if _, err := catalog.ValidateAddress(quote.Route.SourceNetwork, senderAddress); err != nil {
		return "", err
	}

	if _, err := catalog.ValidateAddress(quote.Route.DestNetwork, recipientAddress); err != nil {
		return "", err
	}

	ref := uuid.NewString()

	a.transfersMutex.Lock()
	a.transfers[ref] = &transfer{
		startedAt:     time.Now(),
		completeAfter: a.completionDelay,
	}
	a.transfersMutex.Unlock()

	a.logger.WithFields(logrus.Fields{
		"ref":    ref,
		"source": quote.Route.SourceNetwork,
		"dest":   quote.Route.DestNetwork,
		"amount": quote.InputAmount,
	}).Info("Demo transfer initiated")

	return ref, nil
}

// PollStatus reports the simulated transfer status: BRIDGING for the first
// half of the delay, CONFIRMING for the second half, COMPLETED afterwards.
func (a *Adapter) PollStatus(_ context.Context, providerRef string) (types.BridgeStatus, error) {
	a.transfersMutex.RLock()
	tr, ok := a.transfers[providerRef]
	a.transfersMutex.RUnlock()

	if !ok {
		return "", errors.Wrapf(commonerrors.ErrProviderExecution, "unknown transfer ref %s", providerRef)
	}

	elapsed := time.Since(tr.startedAt)
	switch {
	case elapsed >= tr.completeAfter:
		return types.StatusCompleted, nil
	case elapsed >= tr.completeAfter/2:
		return types.StatusConfirming, nil
	default:
		return types.StatusBridging, nil
	}
}
