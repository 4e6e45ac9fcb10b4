package saga

// State represents the lifecycle state of a cross-chain swap saga.
type State string

const (
	// StateStarted is the initial saga state before the bridge step begins.
	StateStarted State = "STARTED"
	// StateBridgeInProgress is set once the bridge transfer has been initiated.
	StateBridgeInProgress State = "BRIDGE_IN_PROGRESS"
	// StateBridgeComplete is set when the bridge transaction reaches COMPLETED.
	StateBridgeComplete State = "BRIDGE_COMPLETE"
	// StateBridgeFailed is set when the bridge transaction reaches FAILED or
	// REFUNDED. No compensation is attempted: no destination-side funds exist.
	StateBridgeFailed State = "BRIDGE_FAILED"
	// StateSwapInProgress is set while the post-bridge swap executes. Skipped
	// entirely for bridge-only operations.
	StateSwapInProgress State = "SWAP_IN_PROGRESS"
	// StateSwapComplete is set when the post-bridge swap succeeds.
	StateSwapComplete State = "SWAP_COMPLETE"
	// StateSwapFailed is set when the post-bridge swap fails. The bridged
	// funds stay at the destination address; reversing a settled bridge
	// transfer is not guaranteed to be possible across providers.
	StateSwapFailed State = "SWAP_FAILED"
	// StateDone is the terminal state of a fully successful saga.
	StateDone State = "DONE"
	// StateDoneFailed is the terminal state of a saga whose bridge step failed.
	StateDoneFailed State = "DONE_FAILED"
	// StateDonePartial is the terminal state of a saga whose bridge step
	// succeeded but whose swap step failed.
	StateDonePartial State = "DONE_PARTIAL"
)

// String converts State to string representation.
func (s State) String() string {
	return string(s)
}

// IsTerminal reports whether the saga has finished, successfully or not.
func (s State) IsTerminal() bool {
	switch s {
	case StateDone, StateDoneFailed, StateDonePartial:
		return true
	default:
		return false
	}
}
