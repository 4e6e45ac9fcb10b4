package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// BridgeTransaction represents a tracked bridge transfer.
//
// Fields:
// - TransactionID: the unique identifier assigned at initiation, never reused.
// - SourceNetwork: the network the funds leave from.
// - DestNetwork: the network the funds arrive on.
// - Token: the bridged token symbol.
// - Amount: the input amount of the transfer.
// - Provider: the bridge provider executing the transfer.
// - ProviderRef: the provider-side reference for the transfer.
// - SenderAddress: the sending address on the source network.
// - RecipientAddress: the receiving address on the destination network.
// - Status: the current lifecycle status.
// - FailureReason: an optional reason set when moving into FAILED or REFUNDED.
// - CreatedAt: when the transaction was recorded.
// - UpdatedAt: when the transaction was last updated.
//
// The status is mutable only through the tracker, which is the single source
// of truth for lifecycle state.
type BridgeTransaction struct {
	TransactionID    string
	SourceNetwork    Network
	DestNetwork      Network
	Token            string
	Amount           decimal.Decimal
	Provider         Provider
	ProviderRef      string
	SenderAddress    string
	RecipientAddress string
	Status           BridgeStatus
	FailureReason    *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
