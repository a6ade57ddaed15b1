package payments

import "errors"

// ErrorKind discriminates the payment error taxonomy. Validation and
// fraud errors are never retried; provider errors are retried up to the
// configured budget before surfacing.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindFraud      ErrorKind = "fraud"
	KindProvider   ErrorKind = "provider"
	KindNotFound   ErrorKind = "not_found"
	KindPayment    ErrorKind = "payment"
)

// Error is the kind-tagged error surfaced by the gateway. TransactionID
// is set once the request has been admitted and an identifier exists.
type Error struct {
	Kind          ErrorKind `json:"kind"`
	Message       string    `json:"message"`
	TransactionID string    `json:"transaction_id,omitempty"`
	Flags         []string  `json:"flags,omitempty"`

	cause error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NewFraudError reports a blocked transaction. flags lists every flag
// raised for the request, advisory ones included.
func NewFraudError(message string, flags []string) *Error {
	return &Error{Kind: KindFraud, Message: message, Flags: flags}
}

// NewProviderError keeps the backend failure's own message so retries
// never mask the original cause.
func NewProviderError(cause error) *Error {
	return &Error{Kind: KindProvider, Message: cause.Error(), cause: cause}
}

func NewNotFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewPaymentError(message string) *Error {
	return &Error{Kind: KindPayment, Message: message}
}

// AsError normalizes err into *Error. Errors that already carry a kind
// pass through untouched; anything else becomes a provider error, since
// raw errors only reach the gateway from capability calls.
func AsError(err error) *Error {
	var perr *Error
	if errors.As(err, &perr) {
		return perr
	}
	return NewProviderError(err)
}

// KindOf returns the kind of err, or KindPayment for untagged errors.
func KindOf(err error) ErrorKind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return KindPayment
}
