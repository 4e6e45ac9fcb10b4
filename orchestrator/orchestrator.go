package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/ClipFinance/bridge-lib/catalog"
	commonerrors "github.com/ClipFinance/bridge-lib/common/errors"
	"github.com/ClipFinance/bridge-lib/common/types"
	"github.com/ClipFinance/bridge-lib/tracker"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// defaultQuoteTimeout bounds each adapter's quote call so one slow
	// provider cannot block quotes from the others.
	defaultQuoteTimeout = 5 * time.Second
	// defaultCacheTTL bounds how long aggregated quotes are reused.
	defaultCacheTTL = 10 * time.Second
)

// Orchestrator hides the registered bridge adapters behind one call surface
// and picks the best quote deterministically. The adapter registry and the
// quote cache are the only state it owns.
type Orchestrator struct {
	logger  *logrus.Logger
	tracker *tracker.Tracker

	adaptersMutex sync.RWMutex
	adapters      map[types.Provider]types.BridgeAdapter

	quoteTimeout time.Duration
	cache        *quoteCache
}

// Option configures the orchestrator.
type Option func(*Orchestrator)

// WithQuoteTimeout overrides the per-adapter quote timeout.
func WithQuoteTimeout(timeout time.Duration) Option {
	return func(o *Orchestrator) { o.quoteTimeout = timeout }
}

// WithCacheTTL overrides the quote cache TTL. A zero TTL disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(o *Orchestrator) { o.cache = newQuoteCache(ttl) }
}

// New creates an orchestrator.
//
// Parameters:
// - trk: the tracker that owns transaction lifecycle state.
// - logger: the logger for logging events.
// - opts: optional tuning overrides.
//
// Returns:
// - *Orchestrator: the new orchestrator instance.
func New(trk *tracker.Tracker, logger *logrus.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		logger:       logger,
		tracker:      trk,
		adapters:     make(map[types.Provider]types.BridgeAdapter),
		quoteTimeout: defaultQuoteTimeout,
		cache:        newQuoteCache(defaultCacheTTL),
	}

	for _, opt := range opts {
		opt(o)
	}
	return o
}

// RegisterAdapter adds or overwrites the adapter keyed by its provider.
// Safe to call multiple times.
func (o *Orchestrator) RegisterAdapter(adapter types.BridgeAdapter) {
	provider := adapter.Provider().ID

	o.adaptersMutex.Lock()
	o.adapters[provider] = adapter
	o.adaptersMutex.Unlock()

	o.logger.WithField("provider", provider).Info("Bridge adapter registered")
}

// Adapter resolves the registered adapter for a provider.
//
// Returns:
// - types.BridgeAdapter: the registered adapter.
// - error: ErrAdapterNotRegistered if no adapter serves the provider.
func (o *Orchestrator) Adapter(provider types.Provider) (types.BridgeAdapter, error) {
	o.adaptersMutex.RLock()
	adapter, ok := o.adapters[provider]
	o.adaptersMutex.RUnlock()

	if !ok {
		return nil, errors.Wrapf(commonerrors.ErrAdapterNotRegistered, "provider %s", provider)
	}
	return adapter, nil
}

// eligibleAdapters returns the registered adapters whose provider the
// catalog lists for both networks of the pair.
func (o *Orchestrator) eligibleAdapters(source, dest types.Network) ([]types.BridgeAdapter, error) {
	providers, err := catalog.EligibleProviders(source, dest)
	if err != nil {
		return nil, err
	}

	o.adaptersMutex.RLock()
	defer o.adaptersMutex.RUnlock()

	var eligible []types.BridgeAdapter
	for _, provider := range providers {
		if adapter, ok := o.adapters[provider]; ok {
			eligible = append(eligible, adapter)
		}
	}
	return eligible, nil
}

// InitiateBridge executes a quote through the adapter of its route and
// registers the resulting transaction with the tracker in INITIATED.
//
// Parameters:
// - ctx: the context for managing the request.
// - quote: the quote to execute.
// - senderAddress: the sending address on the source network.
// - recipientAddress: the receiving address on the destination network.
//
// Returns:
// - string: the new transaction id.
// - error: ErrQuoteExpired for a stale quote, ErrAdapterNotRegistered if the
//   route's provider has no adapter; adapter failures propagate without a
//   tracked transaction being created.
func (o *Orchestrator) InitiateBridge(ctx context.Context, quote *types.BridgeQuote, senderAddress, recipientAddress string) (string, error) {
	if quote.IsExpired() {
		return "", errors.Wrapf(commonerrors.ErrQuoteExpired, "quote %s expired at %s", quote.QuoteID, quote.ExpiresAt)
	}

	adapter, err := o.Adapter(quote.Route.Provider)
	if err != nil {
		return "", err
	}

	providerRef, err := adapter.InitiateTransfer(ctx, quote, senderAddress, recipientAddress)
	if err != nil {
		return "", errors.Wrapf(err, "failed to initiate transfer via %s", quote.Route.Provider)
	}

	transactionID := uuid.NewString()
	if err := o.tracker.Record(ctx, transactionID, quote.Route, providerRef, quote.InputAmount, senderAddress, recipientAddress); err != nil {
		return "", errors.Wrap(err, "failed to record bridge transaction")
	}

	o.logger.WithFields(logrus.Fields{
		"transactionID": transactionID,
		"provider":      quote.Route.Provider,
		"quoteID":       quote.QuoteID,
	}).Info("Bridge transfer initiated")

	return transactionID, nil
}
