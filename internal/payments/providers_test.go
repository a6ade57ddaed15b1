package payments

import (
	"context"
	"testing"
)

func TestStripeAdapter(t *testing.T) {
	ctx := context.Background()
	stripe := &StripeAdapter{}

	t.Run("completes within limit", func(t *testing.T) {
		res, err := stripe.Process(ctx, PaymentRequest{Amount: 100})
		if err != nil {
			t.Fatalf("Process failed: %v", err)
		}
		if res.Status != ResultCompleted {
			t.Errorf("expected status %s, got %s", ResultCompleted, res.Status)
		}
		if res.Provider != "stripe" {
			t.Errorf("expected provider stripe, got %s", res.Provider)
		}
		if res.TransactionID == "" {
			t.Error("expected a provider transaction id")
		}
		if _, ok := res.Extra["authorization_code"]; !ok {
			t.Error("expected an authorization code")
		}
	})

	t.Run("errors above limit", func(t *testing.T) {
		if _, err := stripe.Process(ctx, PaymentRequest{Amount: 60000}); err == nil {
			t.Fatal("expected an error above the stripe limit")
		}
	})
}

func TestAsyncAdaptersReportPending(t *testing.T) {
	ctx := context.Background()

	t.Run("pix", func(t *testing.T) {
		res, err := (&PixAdapter{}).Process(ctx, PaymentRequest{Amount: 50})
		if err != nil {
			t.Fatalf("Process failed: %v", err)
		}
		if res.Status != ResultPending {
			t.Errorf("expected status %s, got %s", ResultPending, res.Status)
		}
		if _, ok := res.Extra["qr_code"]; !ok {
			t.Error("expected a qr code")
		}
	})

	t.Run("boleto", func(t *testing.T) {
		res, err := (&BoletoAdapter{}).Process(ctx, PaymentRequest{Amount: 50})
		if err != nil {
			t.Fatalf("Process failed: %v", err)
		}
		if res.Status != ResultPending {
			t.Errorf("expected status %s, got %s", ResultPending, res.Status)
		}
		barcode, ok := res.Extra["barcode"].(string)
		if !ok || len(barcode) != 47 {
			t.Errorf("expected a 47 digit barcode, got %v", res.Extra["barcode"])
		}
	})
}
