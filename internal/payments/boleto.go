package payments

import (
	"context"
	"math/rand"
	"time"
)

// boletoDueDays is the payment window printed on the slip.
const boletoDueDays = 3

// BoletoAdapter simulates the Brazilian bank-slip rail. Like pix it
// reports pending; the slip is paid at a bank within the due window.
type BoletoAdapter struct {
	Latency time.Duration
}

func NewBoletoAdapter() *BoletoAdapter {
	return &BoletoAdapter{Latency: 400 * time.Millisecond}
}

func (b *BoletoAdapter) Name() string { return "boleto" }

func (b *BoletoAdapter) Process(ctx context.Context, req PaymentRequest) (Result, error) {
	if err := simulateLatency(ctx, b.Latency); err != nil {
		return Result{}, err
	}

	return Result{
		Provider:      b.Name(),
		Status:        ResultPending,
		TransactionID: refID("BOL"),
		Extra: map[string]any{
			"barcode":  boletoBarcode(),
			"due_date": time.Now().AddDate(0, 0, boletoDueDays),
		},
	}, nil
}

// boletoBarcode fabricates the 47-digit numeric line of a slip.
func boletoBarcode() string {
	digits := make([]byte, 47)
	for i := range digits {
		digits[i] = byte('0' + rand.Intn(10))
	}
	return string(digits)
}
