package payments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// stripeAmountLimit is the simulated per-transaction cap.
const stripeAmountLimit = 50000

// StripeAdapter simulates a card acquirer that settles synchronously.
type StripeAdapter struct {
	// Latency approximates the backend round trip. Zero disables it.
	Latency time.Duration
}

func NewStripeAdapter() *StripeAdapter {
	return &StripeAdapter{Latency: 500 * time.Millisecond}
}

func (s *StripeAdapter) Name() string { return "stripe" }

func (s *StripeAdapter) Process(ctx context.Context, req PaymentRequest) (Result, error) {
	if err := simulateLatency(ctx, s.Latency); err != nil {
		return Result{}, err
	}

	if req.Amount > stripeAmountLimit {
		return Result{}, fmt.Errorf("amount exceeds stripe limit of %d", stripeAmountLimit)
	}

	return Result{
		Provider:      s.Name(),
		Status:        ResultCompleted,
		TransactionID: refID("STR"),
		Extra: map[string]any{
			"authorization_code": strings.ToUpper(shortCode(8)),
		},
	}, nil
}

// refID builds a provider-assigned transaction reference.
func refID(prefix string) string {
	return prefix + "_" + shortCode(12)
}

// shortCode returns n hex characters of a fresh uuid.
func shortCode(n int) string {
	code := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n > len(code) {
		n = len(code)
	}
	return code[:n]
}

// simulateLatency waits d or until ctx is done.
func simulateLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
