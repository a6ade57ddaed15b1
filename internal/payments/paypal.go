package payments

import (
	"context"
	"time"
)

// PayPalAdapter simulates a wallet backend that settles synchronously.
type PayPalAdapter struct {
	Latency time.Duration
}

func NewPayPalAdapter() *PayPalAdapter {
	return &PayPalAdapter{Latency: 800 * time.Millisecond}
}

func (p *PayPalAdapter) Name() string { return "paypal" }

func (p *PayPalAdapter) Process(ctx context.Context, req PaymentRequest) (Result, error) {
	if err := simulateLatency(ctx, p.Latency); err != nil {
		return Result{}, err
	}

	return Result{
		Provider:      p.Name(),
		Status:        ResultCompleted,
		TransactionID: refID("PYP"),
		Extra: map[string]any{
			"payer_id": "PAYER_" + shortCode(8),
		},
	}, nil
}
