package errors

import "github.com/pkg/errors"

var (
	ErrUnknownNetwork       = errors.New("unknown network")
	ErrRouteUnsupported     = errors.New("route not supported by provider")
	ErrQuoteUnavailable     = errors.New("quote unavailable from provider")
	ErrQuoteExpired         = errors.New("quote has expired")
	ErrInvalidAddress       = errors.New("address does not match network address family")
	ErrProviderExecution    = errors.New("provider execution failed")
	ErrNoRouteAvailable     = errors.New("no bridge route available")
	ErrAdapterNotRegistered = errors.New("adapter not registered for provider")
	ErrDuplicateTransaction = errors.New("transaction already exists")
	ErrIllegalTransition    = errors.New("illegal bridge status transition")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrDatabaseConnect      = errors.New("failed to connect to database")
	ErrInvalidConfig        = errors.New("invalid configuration")
)
