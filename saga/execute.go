package saga

import (
	"context"
	"time"

	commonerrors "github.com/ClipFinance/bridge-lib/common/errors"
	"github.com/ClipFinance/bridge-lib/common/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Execute runs a saga for a previously built quote. The bridge step is
// initiated through the orchestrator, the tracker is polled with bounded
// exponential backoff until the bridge transaction reaches a terminal
// status or the poll timeout elapses, then the swap step runs if one is
// required.
//
// On bridge failure the saga terminates as DONE_FAILED with no compensation:
// no destination-side funds exist yet. On swap failure the saga terminates
// as DONE_PARTIAL and the bridged funds stay at the destination address. On
// poll timeout or context cancellation the execution is returned in its last
// observed non-terminal state; Resume continues it.
//
// Parameters:
// - ctx: the context for managing the request; cancellation stops polling
//   cooperatively without altering on-chain state.
// - quote: the composed quote to execute.
// - walletAddress: the caller's wallet, used as sender and recipient.
//
// Returns:
// - *Execution: the saga execution, terminal or resumable.
// - error: ErrQuoteExpired for a stale bridge quote, ErrInvalidConfig when
//   the quote includes a swap step and no router is configured, or the
//   initiation error if the bridge step never began (no execution exists in
//   either case).
func (c *Coordinator) Execute(ctx context.Context, quote *types.CrossChainSwapQuote, walletAddress string) (*Execution, error) {
	if quote.BridgeQuote == nil {
		return nil, errors.Wrap(commonerrors.ErrInvalidConfig, "quote has no bridge step")
	}

	if quote.BridgeQuote.IsExpired() {
		return nil, errors.Wrapf(commonerrors.ErrQuoteExpired, "bridge quote %s expired at %s", quote.BridgeQuote.QuoteID, quote.BridgeQuote.ExpiresAt)
	}

	if quote.RequiresSwap() && c.swapRouter == nil {
		return nil, errors.Wrap(commonerrors.ErrInvalidConfig, "quote includes a swap step but no swap router is configured")
	}

	exec := newExecution(quote, walletAddress)

	transactionID, err := c.orchestrator.InitiateBridge(ctx, quote.BridgeQuote, walletAddress, walletAddress)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initiate bridge step")
	}

	exec.setBridgeTransaction(transactionID)
	exec.setState(StateBridgeInProgress)

	c.logger.WithFields(logrus.Fields{
		"quoteID":       quote.QuoteID,
		"transactionID": transactionID,
	}).Info("Saga bridge step initiated")

	return exec, c.advance(ctx, exec)
}

// Resume continues a saga whose previous Execute or Resume call returned
// while the bridge step was still pending. It is a no-op on a terminal saga.
func (c *Coordinator) Resume(ctx context.Context, exec *Execution) error {
	if exec.State().IsTerminal() {
		return nil
	}
	return c.advance(ctx, exec)
}

// advance drives the saga from its current state to a terminal state or to
// the point where polling gave out.
func (c *Coordinator) advance(ctx context.Context, exec *Execution) error {
	if exec.State() == StateBridgeInProgress {
		status, err := c.pollBridge(ctx, exec)
		if err != nil {
			return err
		}

		switch status {
		case types.StatusCompleted:
			exec.setState(StateBridgeComplete)

		case types.StatusFailed, types.StatusRefunded:
			exec.setBridgeErr(errors.Wrapf(commonerrors.ErrProviderExecution, "bridge transaction %s ended %s", exec.BridgeTransactionID(), status))
			exec.setState(StateBridgeFailed)
			exec.setState(StateDoneFailed)

			c.logger.WithFields(logrus.Fields{
				"transactionID": exec.BridgeTransactionID(),
				"status":        status,
			}).Warn("Saga bridge step failed")

			return nil

		default:
			// Still pending after the poll window; stay resumable.
			return nil
		}
	}

	if exec.State() == StateBridgeComplete {
		if !exec.quote.RequiresSwap() {
			exec.setState(StateDone)
			return nil
		}
		exec.setState(StateSwapInProgress)
	}

	if exec.State() == StateSwapInProgress {
		c.runSwapStep(ctx, exec)
	}

	return nil
}

// pollBridge polls the tracker with bounded exponential backoff until the
// bridge transaction reaches a terminal status, the poll timeout elapses or
// the context is cancelled. Transient poll errors are retried; the last
// observed status is always recorded on the execution.
func (c *Coordinator) pollBridge(ctx context.Context, exec *Execution) (types.BridgeStatus, error) {
	transactionID := exec.BridgeTransactionID()

	adapter, err := c.orchestrator.Adapter(exec.quote.BridgeQuote.Route.Provider)
	if err != nil {
		return "", err
	}

	deadline := time.Now().Add(c.pollTimeout)
	interval := c.pollInitialInterval

	for {
		status, err := c.tracker.Refresh(ctx, transactionID, adapter)
		if err != nil {
			if errors.Is(err, commonerrors.ErrTransactionNotFound) {
				return "", err
			}

			// Transient provider error; keep the last known status and retry.
			c.logger.WithField("transactionID", transactionID).WithError(err).Warn("Bridge status poll failed")
		} else {
			exec.setBridgeStatus(status)
			if status.IsTerminal() {
				return status, nil
			}
		}

		if time.Now().After(deadline) {
			c.logger.WithFields(logrus.Fields{
				"transactionID": transactionID,
				"lastStatus":    exec.Outcome().BridgeStatus,
			}).Warn("Bridge status poll timed out; saga left resumable")
			return exec.Outcome().BridgeStatus, nil
		}

		select {
		case <-ctx.Done():
			// Cooperative cancellation: stop polling, keep the last state.
			return exec.Outcome().BridgeStatus, nil
		case <-time.After(interval):
		}

		interval *= 2
		if interval > c.pollMaxInterval {
			interval = c.pollMaxInterval
		}
	}
}

// runSwapStep executes the destination-side swap. Failure is terminal but
// deliberately uncompensated: the bridged funds stay at the destination
// address and the outcome reports the swap error for manual reconciliation.
func (c *Coordinator) runSwapStep(ctx context.Context, exec *Execution) {
	result, err := c.swapRouter.ExecuteSwap(ctx, exec.quote.SwapQuote, exec.walletAddress)
	if err != nil {
		exec.setSwapErr(err)
		exec.setState(StateSwapFailed)
		exec.setState(StateDonePartial)

		c.logger.WithFields(logrus.Fields{
			"transactionID": exec.BridgeTransactionID(),
			"fromToken":     exec.quote.InputToken,
			"toToken":       exec.quote.OutputToken,
		}).WithError(err).Warn("Saga swap step failed; bridged funds left at destination")

		return
	}

	exec.setSwapResult(result)
	exec.setState(StateSwapComplete)
	exec.setState(StateDone)

	c.logger.WithFields(logrus.Fields{
		"transactionID": exec.BridgeTransactionID(),
		"txHash":        result.TxHash,
	}).Info("Saga completed")
}
