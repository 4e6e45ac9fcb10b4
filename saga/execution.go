package saga

import (
	"sync"

	"github.com/ClipFinance/bridge-lib/common/types"
	"github.com/shopspring/decimal"
)

// Execution is one running (or finished) cross-chain swap saga. It is the
// explicit state machine for the operation: every step advance goes through
// setState, so the sequence of steps is auditable and a timed-out execution
// can be resumed without losing history.
type Execution struct {
	mu sync.Mutex

	quote         *types.CrossChainSwapQuote
	walletAddress string

	state               State
	bridgeTransactionID string
	bridgeStatus        types.BridgeStatus
	swapResult          *types.SwapResult
	swapErr             error
	bridgeErr           error
}

// Outcome is a point-in-time report of a saga. In addition to the state it
// carries the last completed step and any partial artifacts (the bridge
// transaction id, the bridged amount) so an operator can reconcile a failed
// or partial saga manually.
type Outcome struct {
	State               State
	LastCompletedStep   string
	BridgeTransactionID string
	BridgeStatus        types.BridgeStatus
	BridgedAmount       decimal.Decimal
	SwapResult          *types.SwapResult
	BridgeErr           error
	SwapErr             error
}

// Steps reported in Outcome.LastCompletedStep.
const (
	StepNone          = "NONE"
	StepBridgeStarted = "BRIDGE_STARTED"
	StepBridge        = "BRIDGE"
	StepSwap          = "SWAP"
)

func newExecution(quote *types.CrossChainSwapQuote, walletAddress string) *Execution {
	return &Execution{
		quote:         quote,
		walletAddress: walletAddress,
		state:         StateStarted,
	}
}

// State returns the current saga state.
func (e *Execution) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// BridgeTransactionID returns the id of the bridge transaction created for
// this saga, empty until the bridge step has been initiated.
func (e *Execution) BridgeTransactionID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bridgeTransactionID
}

// Outcome returns a snapshot of the saga's progress.
func (e *Execution) Outcome() *Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	outcome := &Outcome{
		State:               e.state,
		LastCompletedStep:   StepNone,
		BridgeTransactionID: e.bridgeTransactionID,
		BridgeStatus:        e.bridgeStatus,
		SwapResult:          e.swapResult,
		BridgeErr:           e.bridgeErr,
		SwapErr:             e.swapErr,
	}

	if e.bridgeTransactionID != "" {
		outcome.LastCompletedStep = StepBridgeStarted
	}

	if e.bridgeStatus == types.StatusCompleted {
		outcome.LastCompletedStep = StepBridge
		outcome.BridgedAmount = e.quote.BridgeQuote.OutputAmount
	}

	if e.swapResult != nil {
		outcome.LastCompletedStep = StepSwap
	}

	return outcome
}

func (e *Execution) setState(state State) {
	e.mu.Lock()
	e.state = state
	e.mu.Unlock()
}

func (e *Execution) setBridgeTransaction(transactionID string) {
	e.mu.Lock()
	e.bridgeTransactionID = transactionID
	e.mu.Unlock()
}

func (e *Execution) setBridgeStatus(status types.BridgeStatus) {
	e.mu.Lock()
	e.bridgeStatus = status
	e.mu.Unlock()
}

func (e *Execution) setBridgeErr(err error) {
	e.mu.Lock()
	e.bridgeErr = err
	e.mu.Unlock()
}

func (e *Execution) setSwapErr(err error) {
	e.mu.Lock()
	e.swapErr = err
	e.mu.Unlock()
}

func (e *Execution) setSwapResult(result *types.SwapResult) {
	e.mu.Lock()
	e.swapResult = result
	e.mu.Unlock()
}
