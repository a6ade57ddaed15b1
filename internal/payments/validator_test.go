package payments

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

func validCard() *CardDetails {
	return &CardDetails{
		Number:      "4111111111111111",
		HolderName:  "Joao Silva",
		ExpiryMonth: 12,
		ExpiryYear:  2027,
		CVV:         "123",
	}
}

func validRequest() PaymentRequest {
	return PaymentRequest{
		Amount:        199.90,
		Currency:      CurrencyBRL,
		Provider:      "stripe",
		PaymentMethod: MethodCreditCard,
		CustomerEmail: "customer@example.com",
		CardDetails:   validCard(),
	}
}

func assertValidationError(t *testing.T, err error, fragment string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected validation error containing %q, got nil", fragment)
	}
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if perr.Kind != KindValidation {
		t.Errorf("expected kind %s, got %s", KindValidation, perr.Kind)
	}
	if !strings.Contains(perr.Message, fragment) {
		t.Errorf("expected message containing %q, got %q", fragment, perr.Message)
	}
}

func TestValidateRequest_RequiredFields(t *testing.T) {
	t.Run("missing amount", func(t *testing.T) {
		req := validRequest()
		req.Amount = 0
		assertValidationError(t, ValidateRequest(req, testNow), "amount")
	})

	t.Run("missing currency", func(t *testing.T) {
		req := validRequest()
		req.Currency = ""
		assertValidationError(t, ValidateRequest(req, testNow), "currency")
	})

	t.Run("missing provider", func(t *testing.T) {
		req := validRequest()
		req.Provider = ""
		assertValidationError(t, ValidateRequest(req, testNow), "provider")
	})

	t.Run("missing payment method", func(t *testing.T) {
		req := validRequest()
		req.PaymentMethod = ""
		assertValidationError(t, ValidateRequest(req, testNow), "payment_method")
	})
}

func TestValidateRequest_Amount(t *testing.T) {
	t.Run("negative amount rejected", func(t *testing.T) {
		req := validRequest()
		req.Amount = -10
		assertValidationError(t, ValidateRequest(req, testNow), "greater than zero")
	})

	t.Run("one cent accepted", func(t *testing.T) {
		req := validRequest()
		req.Amount = 0.01
		if err := ValidateRequest(req, testNow); err != nil {
			t.Fatalf("expected 0.01 to pass, got %v", err)
		}
	})
}

func TestValidateRequest_Enums(t *testing.T) {
	t.Run("unsupported currency", func(t *testing.T) {
		req := validRequest()
		req.Currency = "GBP"
		assertValidationError(t, ValidateRequest(req, testNow), "currency")
	})

	t.Run("unsupported method", func(t *testing.T) {
		req := validRequest()
		req.PaymentMethod = "crypto"
		assertValidationError(t, ValidateRequest(req, testNow), "payment method")
	})

	t.Run("non-card method needs no card details", func(t *testing.T) {
		req := validRequest()
		req.PaymentMethod = MethodPix
		req.CardDetails = nil
		if err := ValidateRequest(req, testNow); err != nil {
			t.Fatalf("expected pix without card to pass, got %v", err)
		}
	})
}

func TestValidateRequest_Card(t *testing.T) {
	t.Run("card details required for card methods", func(t *testing.T) {
		req := validRequest()
		req.CardDetails = nil
		assertValidationError(t, ValidateRequest(req, testNow), "card details")
	})

	t.Run("15 digit number rejected", func(t *testing.T) {
		req := validRequest()
		req.CardDetails.Number = "411111111111111"
		assertValidationError(t, ValidateRequest(req, testNow), "card number")
	})

	t.Run("16 digit number accepted", func(t *testing.T) {
		req := validRequest()
		req.CardDetails.Number = "4111111111111111"
		if err := ValidateRequest(req, testNow); err != nil {
			t.Fatalf("expected 16 digits to pass, got %v", err)
		}
	})

	t.Run("missing holder name", func(t *testing.T) {
		req := validRequest()
		req.CardDetails.HolderName = ""
		assertValidationError(t, ValidateRequest(req, testNow), "holder name")
	})

	t.Run("missing expiry", func(t *testing.T) {
		req := validRequest()
		req.CardDetails.ExpiryYear = 0
		assertValidationError(t, ValidateRequest(req, testNow), "expiry")
	})

	t.Run("short cvv", func(t *testing.T) {
		req := validRequest()
		req.CardDetails.CVV = "12"
		assertValidationError(t, ValidateRequest(req, testNow), "cvv")
	})

	t.Run("expired card rejected", func(t *testing.T) {
		req := validRequest()
		req.CardDetails.ExpiryMonth = 7
		req.CardDetails.ExpiryYear = 2026
		assertValidationError(t, ValidateRequest(req, testNow), "expired")
	})

	t.Run("card expiring this month accepted", func(t *testing.T) {
		req := validRequest()
		req.CardDetails.ExpiryMonth = 8
		req.CardDetails.ExpiryYear = 2026
		if err := ValidateRequest(req, testNow); err != nil {
			t.Fatalf("expected current-month expiry to pass, got %v", err)
		}
	})
}
