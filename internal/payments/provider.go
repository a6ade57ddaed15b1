package payments

import "context"

// Provider defines the common capability every payment backend implements.
// Variants differ only in behavior, not contract: a backend either returns
// a Result or an error, and the call may block while awaiting the backend,
// so implementations must honor ctx.
type Provider interface {
	Name() string
	Process(ctx context.Context, req PaymentRequest) (Result, error)
}
