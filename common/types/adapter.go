package types

import (
	"context"

	"github.com/shopspring/decimal"
)

// BridgeAdapter is implemented by every concrete bridge integration. The
// orchestrator resolves adapters by provider at runtime; implementations are
// registered at startup.
type BridgeAdapter interface {
	// Provider returns the static description of the bridge provider this
	// adapter integrates.
	Provider() BridgeProvider

	// Quote prices a transfer over this provider.
	//
	// Parameters:
	// - ctx: the context for managing the request.
	// - source: the source network.
	// - dest: the destination network.
	// - token: the token to bridge.
	// - amount: the input amount.
	//
	// Returns:
	// - *BridgeQuote: the priced quote.
	// - error: ErrRouteUnsupported if the adapter does not serve this triple,
	//   ErrQuoteUnavailable on upstream pricing failure.
	Quote(ctx context.Context, source, dest Network, token string, amount decimal.Decimal) (*BridgeQuote, error)

	// InitiateTransfer executes a previously obtained quote.
	//
	// Parameters:
	// - ctx: the context for managing the request.
	// - quote: the quote to execute.
	// - senderAddress: the sending address on the source network.
	// - recipientAddress: the receiving address on the destination network.
	//
	// Returns:
	// - string: the provider-side transfer reference.
	// - error: ErrQuoteExpired if the quote expiry has passed,
	//   ErrInvalidAddress if an address does not match the destination
	//   network's address family, ErrProviderExecution for other upstream
	//   failures.
	InitiateTransfer(ctx context.Context, quote *BridgeQuote, senderAddress, recipientAddress string) (string, error)

	// PollStatus returns the provider-side status of a transfer. Best effort:
	// on adapter-side ambiguity it returns the last known pending status
	// rather than guessing a terminal one.
	PollStatus(ctx context.Context, providerRef string) (BridgeStatus, error)
}
