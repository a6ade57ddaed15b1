package transaction

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pago/internal/payments"
)

// Status is the lifecycle state of a transaction.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusPaid       Status = "paid"
	StatusFailed     Status = "failed"
	StatusCanceled   Status = "canceled"
)

// Terminal reports whether no further transition is permitted.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusPaid, StatusFailed, StatusCanceled:
		return true
	}
	return false
}

var ErrInvalidTransition = errors.New("invalid status transition")

// transitions lists the legal moves. processing to pending covers async
// rails (pix, boleto) whose settlement arrives after the provider call.
var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusFailed},
	StatusProcessing: {StatusCompleted, StatusPaid, StatusFailed, StatusPending},
}

// Transaction is the persisted record of one ProcessPayment call. It is
// created pending at admission and resolved exactly once; terminal
// records are immutable.
type Transaction struct {
	ID            string                `json:"id"`
	Amount        float64               `json:"amount"`
	Currency      payments.Currency     `json:"currency"`
	Provider      string                `json:"provider"`
	PaymentMethod payments.Method       `json:"payment_method"`
	CustomerEmail string                `json:"customer_email"`
	CardDetails   *payments.CardDetails `json:"card_details,omitempty"`

	Status           Status           `json:"status"`
	ProviderResponse *payments.Result `json:"provider_response,omitempty"`
	Attempts         int              `json:"attempts"`
	CreatedAt        time.Time        `json:"created_at"`
	ProcessedAt      *time.Time       `json:"processed_at,omitempty"`
	ProcessingMS     int64            `json:"processing_ms"`
	Error            string           `json:"error,omitempty"`
}

// NewID mints a globally unique transaction identifier.
func NewID() string {
	return "txn_" + uuid.NewString()
}

// New builds a pending transaction from an admitted request.
func New(id string, req payments.PaymentRequest, createdAt time.Time) *Transaction {
	return &Transaction{
		ID:            id,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Provider:      req.Provider,
		PaymentMethod: req.PaymentMethod,
		CustomerEmail: req.CustomerEmail,
		CardDetails:   req.CardDetails,
		Status:        StatusPending,
		CreatedAt:     createdAt,
	}
}

// Transition moves the transaction to status to, enforcing the table.
func (t *Transaction) Transition(to Status) error {
	if t.Status.Terminal() {
		return fmt.Errorf("%w: %s is terminal", ErrInvalidTransition, t.Status)
	}
	if t.Status == to {
		return nil
	}
	for _, next := range transitions[t.Status] {
		if next == to {
			t.Status = to
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.Status, to)
}

// MarkProcessing records that the request reached provider dispatch.
func (t *Transaction) MarkProcessing() error {
	return t.Transition(StatusProcessing)
}

// Settle resolves the transaction with a provider result. The recorded
// status is the provider's own: completed for synchronous rails,
// pending for async ones.
func (t *Transaction) Settle(res payments.Result, attempts int, now time.Time) error {
	var to Status
	switch res.Status {
	case payments.ResultCompleted:
		to = StatusCompleted
	case payments.ResultPending:
		to = StatusPending
	default:
		return fmt.Errorf("provider %s reported unknown status %q", res.Provider, res.Status)
	}
	if err := t.Transition(to); err != nil {
		return err
	}
	r := res
	t.ProviderResponse = &r
	t.Attempts = attempts
	t.resolve(now)
	return nil
}

// Fail resolves the transaction with the triggering error's message.
func (t *Transaction) Fail(message string, attempts int, now time.Time) error {
	if err := t.Transition(StatusFailed); err != nil {
		return err
	}
	t.Error = message
	t.Attempts = attempts
	t.resolve(now)
	return nil
}

func (t *Transaction) resolve(now time.Time) {
	processed := now
	t.ProcessedAt = &processed
	t.ProcessingMS = now.Sub(t.CreatedAt).Milliseconds()
}
