package gateway

import (
	"context"
	"time"

	"pago/internal/payments"
)

// dispatch invokes the provider through the retry orchestrator: up to
// RetryAttempts calls with a fixed RetryDelay between them. The last
// failure is propagated unchanged, and the returned count is the number
// of attempts actually made (1 on first-try success).
func (g *Gateway) dispatch(ctx context.Context, provider payments.Provider, req payments.PaymentRequest) (payments.Result, int, error) {
	attempts := 0
	for {
		attempts++

		result, err := provider.Process(ctx, req)
		if err == nil {
			return result, attempts, nil
		}

		if attempts >= g.cfg.RetryAttempts {
			return payments.Result{}, attempts, err
		}

		g.logger.Warnw("provider call failed, retrying",
			"provider", provider.Name(),
			"attempt", attempts,
			"max_attempts", g.cfg.RetryAttempts,
			"error", err,
		)

		if err := g.sleep(ctx, g.cfg.RetryDelay); err != nil {
			return payments.Result{}, attempts, err
		}
	}
}

// sleepContext waits d without blocking other in-flight payments, and
// returns early if ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
