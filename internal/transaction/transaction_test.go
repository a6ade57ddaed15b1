package transaction

import (
	"errors"
	"math"
	"testing"
	"time"

	"pago/internal/payments"
)

var (
	t0 = time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	t1 = t0.Add(1500 * time.Millisecond)
)

func newTestRequest() payments.PaymentRequest {
	return payments.PaymentRequest{
		Amount:        199.90,
		Currency:      payments.CurrencyBRL,
		Provider:      "stripe",
		PaymentMethod: payments.MethodPix,
		CustomerEmail: "customer@example.com",
	}
}

func TestNew(t *testing.T) {
	tx := New(NewID(), newTestRequest(), t0)

	if tx.Status != StatusPending {
		t.Errorf("expected status pending, got %s", tx.Status)
	}
	if !tx.CreatedAt.Equal(t0) {
		t.Errorf("expected created_at %v, got %v", t0, tx.CreatedAt)
	}
	if tx.ProcessedAt != nil {
		t.Error("expected no processed_at on a fresh transaction")
	}
	if tx.ID == "" {
		t.Error("expected a generated id")
	}

	other := New(NewID(), newTestRequest(), t0)
	if other.ID == tx.ID {
		t.Error("expected unique ids")
	}
}

func TestTransition(t *testing.T) {
	t.Run("legal path pending to completed", func(t *testing.T) {
		tx := New(NewID(), newTestRequest(), t0)
		if err := tx.MarkProcessing(); err != nil {
			t.Fatalf("MarkProcessing failed: %v", err)
		}
		if err := tx.Transition(StatusCompleted); err != nil {
			t.Fatalf("Transition failed: %v", err)
		}
	})

	t.Run("pending may fail directly", func(t *testing.T) {
		tx := New(NewID(), newTestRequest(), t0)
		if err := tx.Fail("invalid request", 0, t1); err != nil {
			t.Fatalf("Fail failed: %v", err)
		}
		if tx.Status != StatusFailed {
			t.Errorf("expected failed, got %s", tx.Status)
		}
	})

	t.Run("pending cannot complete directly", func(t *testing.T) {
		tx := New(NewID(), newTestRequest(), t0)
		if err := tx.Transition(StatusCompleted); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("terminal statuses are immutable", func(t *testing.T) {
		for _, terminal := range []Status{StatusCompleted, StatusPaid, StatusFailed, StatusCanceled} {
			tx := New(NewID(), newTestRequest(), t0)
			tx.Status = terminal
			if err := tx.Transition(StatusProcessing); !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("%s: expected ErrInvalidTransition, got %v", terminal, err)
			}
			if err := tx.Transition(terminal); !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("%s self transition: expected ErrInvalidTransition, got %v", terminal, err)
			}
		}
	})
}

func TestSettle(t *testing.T) {
	t.Run("completed result", func(t *testing.T) {
		tx := New(NewID(), newTestRequest(), t0)
		if err := tx.MarkProcessing(); err != nil {
			t.Fatalf("MarkProcessing failed: %v", err)
		}

		res := payments.Result{Provider: "stripe", Status: payments.ResultCompleted, TransactionID: "STR_1"}
		if err := tx.Settle(res, 2, t1); err != nil {
			t.Fatalf("Settle failed: %v", err)
		}

		if tx.Status != StatusCompleted {
			t.Errorf("expected completed, got %s", tx.Status)
		}
		if tx.Attempts != 2 {
			t.Errorf("expected 2 attempts, got %d", tx.Attempts)
		}
		if tx.ProcessedAt == nil || !tx.ProcessedAt.Equal(t1) {
			t.Errorf("expected processed_at %v, got %v", t1, tx.ProcessedAt)
		}
		if tx.ProcessingMS != 1500 {
			t.Errorf("expected 1500ms, got %d", tx.ProcessingMS)
		}
		if tx.ProviderResponse == nil || tx.ProviderResponse.TransactionID != "STR_1" {
			t.Errorf("expected provider response kept, got %+v", tx.ProviderResponse)
		}
	})

	t.Run("pending result stays pending", func(t *testing.T) {
		tx := New(NewID(), newTestRequest(), t0)
		if err := tx.MarkProcessing(); err != nil {
			t.Fatalf("MarkProcessing failed: %v", err)
		}

		res := payments.Result{Provider: "pix", Status: payments.ResultPending, TransactionID: "PIX_1"}
		if err := tx.Settle(res, 1, t1); err != nil {
			t.Fatalf("Settle failed: %v", err)
		}
		if tx.Status != StatusPending {
			t.Errorf("expected pending, got %s", tx.Status)
		}
	})

	t.Run("unknown result status rejected", func(t *testing.T) {
		tx := New(NewID(), newTestRequest(), t0)
		if err := tx.MarkProcessing(); err != nil {
			t.Fatalf("MarkProcessing failed: %v", err)
		}
		res := payments.Result{Provider: "stripe", Status: "failed"}
		if err := tx.Settle(res, 1, t1); err == nil {
			t.Fatal("expected an error for unknown provider status")
		}
	})
}

func TestFail(t *testing.T) {
	tx := New(NewID(), newTestRequest(), t0)
	if err := tx.MarkProcessing(); err != nil {
		t.Fatalf("MarkProcessing failed: %v", err)
	}

	if err := tx.Fail("provider unavailable", 3, t1); err != nil {
		t.Fatalf("Fail failed: %v", err)
	}

	if tx.Error != "provider unavailable" {
		t.Errorf("expected error message kept, got %q", tx.Error)
	}
	if tx.Attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", tx.Attempts)
	}
	if tx.ProcessedAt == nil {
		t.Error("expected processed_at set on failure")
	}

	if err := tx.Fail("again", 3, t1); err == nil {
		t.Fatal("expected failing a failed transaction to error")
	}
}

func TestSummarize(t *testing.T) {
	t.Run("empty set yields zeros", func(t *testing.T) {
		s := Summarize(nil)
		if s.Total != 0 || s.TotalAmount != 0 || s.AverageProcessingMS != 0 {
			t.Errorf("expected zero summary, got %+v", s)
		}
	})

	t.Run("averages only measured durations", func(t *testing.T) {
		completed := New(NewID(), newTestRequest(), t0)
		completed.MarkProcessing()
		completed.Settle(payments.Result{Provider: "stripe", Status: payments.ResultCompleted}, 1, t0.Add(100*time.Millisecond))

		failed := New(NewID(), newTestRequest(), t0)
		failed.Fail("boom", 1, t0.Add(300*time.Millisecond))

		unresolved := New(NewID(), newTestRequest(), t0)

		s := Summarize([]*Transaction{completed, failed, unresolved})

		if s.Total != 3 {
			t.Errorf("expected total 3, got %d", s.Total)
		}
		if s.Successful != 1 || s.Failed != 1 || s.Pending != 1 {
			t.Errorf("unexpected status counts: %+v", s)
		}
		if s.ByProvider["stripe"] != 3 {
			t.Errorf("expected 3 stripe transactions, got %d", s.ByProvider["stripe"])
		}
		if s.ByStatus[StatusFailed] != 1 {
			t.Errorf("expected 1 failed in by_status, got %d", s.ByStatus[StatusFailed])
		}
		// (100 + 300) / 2, the unresolved record carries no duration
		if s.AverageProcessingMS != 200 {
			t.Errorf("expected average 200ms, got %v", s.AverageProcessingMS)
		}
		if math.Abs(s.TotalAmount-599.70) > 0.001 {
			t.Errorf("expected total amount 599.70, got %v", s.TotalAmount)
		}
	})
}
