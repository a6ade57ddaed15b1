package payments

// Currency is an ISO 4217 code accepted by the gateway.
type Currency string

const (
	CurrencyBRL Currency = "BRL"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// Method identifies how the customer pays.
type Method string

const (
	MethodCreditCard Method = "credit_card"
	MethodDebitCard  Method = "debit_card"
	MethodPix        Method = "pix"
	MethodBoleto     Method = "boleto"
	MethodPayPal     Method = "paypal"
)

// IsCard reports whether the method requires card details.
func (m Method) IsCard() bool {
	return m == MethodCreditCard || m == MethodDebitCard
}

type CardDetails struct {
	Number      string `json:"number"`
	HolderName  string `json:"holder_name"`
	ExpiryMonth int    `json:"expiry_month"`
	ExpiryYear  int    `json:"expiry_year"`
	CVV         string `json:"cvv"`
}

// BIN returns the first six digits of the card number, or "" if the
// number is too short to have one.
func (c CardDetails) BIN() string {
	if len(c.Number) < 6 {
		return ""
	}
	return c.Number[:6]
}

// PaymentRequest is the caller-supplied input to ProcessPayment.
type PaymentRequest struct {
	Amount        float64      `json:"amount"`
	Currency      Currency     `json:"currency"`
	Provider      string       `json:"provider"`
	PaymentMethod Method       `json:"payment_method"`
	CustomerEmail string       `json:"customer_email"`
	CardDetails   *CardDetails `json:"card_details,omitempty"`
}

// Result statuses a provider may report. Backends signal failure by
// returning an error, never by a failed status.
const (
	ResultCompleted = "completed"
	ResultPending   = "pending"
)

// Result is what a provider returns on a successful Process call.
// Extra carries backend-specific fields (authorization code, payer id,
// QR payload, boleto barcode) that the core treats as opaque.
type Result struct {
	Provider      string         `json:"provider"`
	Status        string         `json:"status"`
	TransactionID string         `json:"transaction_id"`
	Extra         map[string]any `json:"extra,omitempty"`
}
