package gateway

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pago/internal/fraud"
	"pago/internal/payments"
	"pago/internal/store"
	"pago/internal/transaction"
)

// Events fired on terminal resolution, always after the store write.
const (
	EventPaymentProcessed = "payment.processed"
	EventPaymentFailed    = "payment.failed"
)

// FraudPolicy screens a request before any provider work happens.
type FraudPolicy interface {
	Analyze(ctx context.Context, req payments.PaymentRequest) ([]fraud.Flag, error)
}

// Dispatcher fans a named event out to subscribers. Implementations
// must isolate per-subscriber failures and never propagate them.
type Dispatcher interface {
	Trigger(ctx context.Context, event string, data any)
}

// Config tunes the retry orchestrator around provider calls.
type Config struct {
	RetryAttempts int
	RetryDelay    time.Duration
}

const (
	defaultRetryAttempts = 3
	defaultRetryDelay    = time.Second
)

// Gateway is the orchestration core. One ProcessPayment call runs the
// full protocol from admission through settlement and persists exactly
// one transaction record, success or not.
type Gateway struct {
	providers map[string]payments.Provider
	store     store.TransactionStore
	fraud     FraudPolicy
	webhooks  Dispatcher
	logger    *zap.SugaredLogger
	cfg       Config

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New wires the gateway. The provider set is keyed by name and
// immutable afterwards.
func New(
	providers []payments.Provider,
	st store.TransactionStore,
	policy FraudPolicy,
	webhooks Dispatcher,
	logger *zap.SugaredLogger,
	cfg Config,
) *Gateway {
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = defaultRetryAttempts
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}

	byName := make(map[string]payments.Provider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}

	g := &Gateway{
		providers: byName,
		store:     st,
		fraud:     policy,
		webhooks:  webhooks,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
		sleep:     sleepContext,
	}

	logger.Infow("gateway initialized",
		"providers", len(byName),
		"retry_attempts", cfg.RetryAttempts,
		"retry_delay", cfg.RetryDelay,
	)
	return g
}

// Provider resolves a registered capability by name.
func (g *Gateway) Provider(name string) (payments.Provider, error) {
	p, ok := g.providers[name]
	if !ok {
		return nil, payments.NewNotFoundError(fmt.Sprintf("provider not found: %s", name))
	}
	return p, nil
}

// ProcessPayment runs the end-to-end protocol for one request. On any
// failure a failed record is persisted and payment.failed fired before
// the original error is returned to the caller.
func (g *Gateway) ProcessPayment(ctx context.Context, req payments.PaymentRequest) (*transaction.Transaction, error) {
	start := g.now()
	tx := transaction.New(transaction.NewID(), req, start)

	if err := payments.ValidateRequest(req, start); err != nil {
		return g.fail(ctx, tx, 0, err)
	}

	if _, err := g.fraud.Analyze(ctx, req); err != nil {
		return g.fail(ctx, tx, 0, err)
	}

	// Resolve the capability before entering the retry loop: an
	// unknown provider is not retryable work.
	provider, err := g.Provider(req.Provider)
	if err != nil {
		return g.fail(ctx, tx, 0, err)
	}

	if err := tx.MarkProcessing(); err != nil {
		return g.fail(ctx, tx, 0, err)
	}

	result, attempts, err := g.dispatch(ctx, provider, req)
	if err != nil {
		return g.fail(ctx, tx, attempts, err)
	}

	if err := tx.Settle(result, attempts, g.now()); err != nil {
		return g.fail(ctx, tx, attempts, err)
	}

	if err := g.store.Save(ctx, tx); err != nil {
		// Without the record the terminal event must not fire.
		g.logger.Errorw("saving settled transaction failed", "transaction_id", tx.ID, "error", err)
		perr := payments.NewPaymentError(fmt.Sprintf("saving transaction failed: %v", err))
		perr.TransactionID = tx.ID
		return nil, perr
	}

	g.webhooks.Trigger(ctx, EventPaymentProcessed, tx)

	g.logger.Infow("payment processed",
		"transaction_id", tx.ID,
		"provider", tx.Provider,
		"status", tx.Status,
		"attempts", tx.Attempts,
		"processing_ms", tx.ProcessingMS,
	)
	return tx, nil
}

// fail resolves tx as failed, persists it, fires payment.failed, and
// re-raises the triggering error with the transaction id attached.
func (g *Gateway) fail(ctx context.Context, tx *transaction.Transaction, attempts int, cause error) (*transaction.Transaction, error) {
	perr := payments.AsError(cause)
	perr.TransactionID = tx.ID

	if err := tx.Fail(perr.Message, attempts, g.now()); err != nil {
		g.logger.Errorw("marking transaction failed", "transaction_id", tx.ID, "error", err)
	}

	if err := g.store.Save(ctx, tx); err != nil {
		g.logger.Errorw("saving failed transaction", "transaction_id", tx.ID, "error", err)
	}

	g.webhooks.Trigger(ctx, EventPaymentFailed, tx)

	g.logger.Warnw("payment failed",
		"transaction_id", tx.ID,
		"kind", perr.Kind,
		"error", perr.Message,
	)
	return nil, perr
}

// GetTransaction fetches a single record by identifier.
func (g *Gateway) GetTransaction(ctx context.Context, id string) (*transaction.Transaction, error) {
	tx, err := g.store.FindByID(ctx, id)
	if err == store.ErrNotFound {
		perr := payments.NewNotFoundError(fmt.Sprintf("transaction not found: %s", id))
		perr.TransactionID = id
		return nil, perr
	}
	return tx, err
}

// ListTransactions returns all records in insertion order.
func (g *Gateway) ListTransactions(ctx context.Context) ([]*transaction.Transaction, error) {
	return g.store.FindAll(ctx)
}

// Summary aggregates the stored transactions.
func (g *Gateway) Summary(ctx context.Context) (transaction.Summary, error) {
	all, err := g.store.FindAll(ctx)
	if err != nil {
		return transaction.Summary{}, err
	}
	return transaction.Summarize(all), nil
}
