package payments

import (
	"context"
	"time"
)

// pixExpiry is how long a generated QR code stays payable.
const pixExpiry = time.Hour

// PixAdapter simulates the Brazilian instant-payment rail. It hands back
// a QR code and reports pending: settlement arrives out-of-band once the
// customer scans it.
type PixAdapter struct {
	Latency time.Duration
}

func NewPixAdapter() *PixAdapter {
	return &PixAdapter{Latency: 300 * time.Millisecond}
}

func (p *PixAdapter) Name() string { return "pix" }

func (p *PixAdapter) Process(ctx context.Context, req PaymentRequest) (Result, error) {
	if err := simulateLatency(ctx, p.Latency); err != nil {
		return Result{}, err
	}

	code := shortCode(20)
	return Result{
		Provider:      p.Name(),
		Status:        ResultPending,
		TransactionID: refID("PIX"),
		Extra: map[string]any{
			"qr_code":      "PIX:" + code,
			"qr_code_text": code,
			"expires_at":   time.Now().Add(pixExpiry),
		},
	}, nil
}
