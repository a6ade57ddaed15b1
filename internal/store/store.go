package store

import (
	"context"
	"errors"
	"time"

	"pago/internal/transaction"
)

var (
	ErrNotFound          = errors.New("transaction not found")
	QueryTimeoutDuration = time.Second * 5
)

// TransactionStore persists and queries transaction records. Save must
// be atomic per transaction id, and readers must never observe a
// half-written record. FindAll returns records in insertion order.
type TransactionStore interface {
	Save(ctx context.Context, tx *transaction.Transaction) error
	FindByID(ctx context.Context, id string) (*transaction.Transaction, error)
	FindAll(ctx context.Context) ([]*transaction.Transaction, error)
	FindByCustomer(ctx context.Context, email string, window time.Duration) ([]*transaction.Transaction, error)
}
