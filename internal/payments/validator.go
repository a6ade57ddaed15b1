package payments

import (
	"fmt"
	"time"
)

// minimum lengths accepted for card fields
const (
	minCardNumberLen = 16
	minCVVLen        = 3
)

// ValidateRequest runs the stateless admission checks on req, in order,
// stopping at the first failure. now is injected so expiry checks are
// deterministic under test.
func ValidateRequest(req PaymentRequest, now time.Time) error {
	if req.Amount == 0 {
		return NewValidationError("missing required field: amount")
	}
	if req.Currency == "" {
		return NewValidationError("missing required field: currency")
	}
	if req.Provider == "" {
		return NewValidationError("missing required field: provider")
	}
	if req.PaymentMethod == "" {
		return NewValidationError("missing required field: payment_method")
	}

	if req.Amount < 0 {
		return NewValidationError("amount must be greater than zero")
	}

	switch req.Currency {
	case CurrencyBRL, CurrencyUSD, CurrencyEUR:
	default:
		return NewValidationError(fmt.Sprintf("unsupported currency: %s", req.Currency))
	}

	switch req.PaymentMethod {
	case MethodCreditCard, MethodDebitCard, MethodPix, MethodBoleto, MethodPayPal:
	default:
		return NewValidationError(fmt.Sprintf("unsupported payment method: %s", req.PaymentMethod))
	}

	if req.PaymentMethod.IsCard() {
		return validateCard(req.CardDetails, now)
	}
	return nil
}

func validateCard(card *CardDetails, now time.Time) error {
	if card == nil {
		return NewValidationError("card details are required for card payments")
	}
	if len(card.Number) < minCardNumberLen {
		return NewValidationError("invalid card number")
	}
	if card.HolderName == "" {
		return NewValidationError("card holder name is required")
	}
	if card.ExpiryMonth == 0 || card.ExpiryYear == 0 {
		return NewValidationError("card expiry date is required")
	}
	if len(card.CVV) < minCVVLen {
		return NewValidationError("invalid cvv")
	}

	// Expiry is compared at month granularity: a card expiring this
	// month is still valid.
	if card.ExpiryYear < now.Year() ||
		(card.ExpiryYear == now.Year() && card.ExpiryMonth < int(now.Month())) {
		return NewValidationError("card is expired")
	}
	return nil
}
