package types

// BridgeStatus represents the lifecycle status of a bridge transaction.
type BridgeStatus string

const (
	// StatusInitiated is the status of a transaction that has been accepted
	// by a provider but not yet submitted on chain.
	StatusInitiated BridgeStatus = "INITIATED"
	// StatusBridging is the status of a transaction whose source-chain leg is
	// in flight.
	StatusBridging BridgeStatus = "BRIDGING"
	// StatusConfirming is the status of a transaction waiting for
	// destination-chain confirmations.
	StatusConfirming BridgeStatus = "CONFIRMING"
	// StatusCompleted indicates that the transfer was successful.
	StatusCompleted BridgeStatus = "COMPLETED"
	// StatusFailed indicates that the transfer failed.
	StatusFailed BridgeStatus = "FAILED"
	// StatusRefunded indicates that the transfer was not successful and
	// tokens were refunded on the source network.
	StatusRefunded BridgeStatus = "REFUNDED"
)

// String converts BridgeStatus to string representation.
func (s BridgeStatus) String() string {
	return string(s)
}

// legalTransitions is the authoritative transition graph:
// INITIATED -> BRIDGING -> CONFIRMING -> {COMPLETED | FAILED | REFUNDED}.
// Failure and refund are reachable from every pending status.
var legalTransitions = map[BridgeStatus][]BridgeStatus{
	StatusInitiated:  {StatusBridging, StatusFailed, StatusRefunded},
	StatusBridging:   {StatusConfirming, StatusFailed, StatusRefunded},
	StatusConfirming: {StatusCompleted, StatusFailed, StatusRefunded},
	StatusCompleted:  {},
	StatusFailed:     {},
	StatusRefunded:   {},
}

// IsTerminal reports whether no further transition is permitted.
func (s BridgeStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusRefunded:
		return true
	default:
		return false
	}
}

// IsPending reports whether the status is a known non-terminal status.
func (s BridgeStatus) IsPending() bool {
	switch s {
	case StatusInitiated, StatusBridging, StatusConfirming:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether moving from s to next is a legal
// transition. Repeating the current status is not a transition and returns
// false; callers treat it as an idempotent no-op.
func (s BridgeStatus) CanTransitionTo(next BridgeStatus) bool {
	for _, allowed := range legalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
