package saga

import (
	"time"

	"github.com/ClipFinance/bridge-lib/common/types"
	"github.com/ClipFinance/bridge-lib/orchestrator"
	"github.com/ClipFinance/bridge-lib/tracker"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	// defaultPollInitialInterval is the first polling interval after the
	// bridge transfer is initiated.
	defaultPollInitialInterval = 500 * time.Millisecond
	// defaultPollMaxInterval caps the exponential backoff.
	defaultPollMaxInterval = 8 * time.Second
	// defaultPollTimeout bounds the overall wait for a terminal bridge
	// status. On timeout the saga stays in its last observed non-terminal
	// state so a later caller can resume polling.
	defaultPollTimeout = 10 * time.Minute
	// defaultSlippageTolerance is the slippage passed to the swap router
	// when composing quotes, in percent.
	defaultSlippageTolerance = "0.5"
)

// Coordinator runs cross-chain swap sagas: a bridge transfer through the
// orchestrator composed with an optional destination-side swap through the
// swap router, with explicit compensation rules for partial failure.
type Coordinator struct {
	logger       *logrus.Logger
	orchestrator *orchestrator.Orchestrator
	tracker      *tracker.Tracker
	swapRouter   types.SwapRouter

	pollInitialInterval time.Duration
	pollMaxInterval     time.Duration
	pollTimeout         time.Duration
	slippageTolerance   decimal.Decimal
}

// Option configures the coordinator.
type Option func(*Coordinator)

// WithPollIntervals overrides the polling backoff bounds.
func WithPollIntervals(initial, max time.Duration) Option {
	return func(c *Coordinator) {
		c.pollInitialInterval = initial
		c.pollMaxInterval = max
	}
}

// WithPollTimeout overrides the overall polling timeout.
func WithPollTimeout(timeout time.Duration) Option {
	return func(c *Coordinator) { c.pollTimeout = timeout }
}

// WithSlippageTolerance overrides the slippage tolerance used for swap
// quotes, in percent.
func WithSlippageTolerance(tolerance decimal.Decimal) Option {
	return func(c *Coordinator) { c.slippageTolerance = tolerance }
}

// NewCoordinator creates a saga coordinator.
//
// Parameters:
// - orch: the bridge orchestrator executing the bridge step.
// - trk: the tracker owning bridge transaction state.
// - swapRouter: the swap router executing the swap step; may be nil when
//   only bridge-only operations are run.
// - logger: the logger for logging events.
// - opts: optional tuning overrides.
//
// Returns:
// - *Coordinator: the new coordinator instance.
func NewCoordinator(orch *orchestrator.Orchestrator, trk *tracker.Tracker, swapRouter types.SwapRouter, logger *logrus.Logger, opts ...Option) *Coordinator {
	c := &Coordinator{
		logger:              logger,
		orchestrator:        orch,
		tracker:             trk,
		swapRouter:          swapRouter,
		pollInitialInterval: defaultPollInitialInterval,
		pollMaxInterval:     defaultPollMaxInterval,
		pollTimeout:         defaultPollTimeout,
		slippageTolerance:   decimal.RequireFromString(defaultSlippageTolerance),
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}
