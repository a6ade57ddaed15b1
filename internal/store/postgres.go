package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"pago/internal/payments"
	"pago/internal/transaction"
)

// PostgresStore implements TransactionStore on database/sql. Card
// details and the provider response are kept as jsonb; a bigserial seq
// column preserves insertion order for FindAll.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions
			(id, amount, currency, provider, payment_method, customer_email,
			 card_details, status, provider_response, attempts, error_message,
			 created_at, processed_at, processing_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			provider_response = EXCLUDED.provider_response,
			attempts = EXCLUDED.attempts,
			error_message = EXCLUDED.error_message,
			processed_at = EXCLUDED.processed_at,
			processing_ms = EXCLUDED.processing_ms
	`

	cardJSON, err := nullableJSON(tx.CardDetails)
	if err != nil {
		return fmt.Errorf("error encoding card details: %w", err)
	}
	responseJSON, err := nullableJSON(tx.ProviderResponse)
	if err != nil {
		return fmt.Errorf("error encoding provider response: %w", err)
	}

	var processedAt sql.NullTime
	if tx.ProcessedAt != nil {
		processedAt = sql.NullTime{Time: *tx.ProcessedAt, Valid: true}
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err = s.db.ExecContext(ctx, query,
		tx.ID, tx.Amount, string(tx.Currency), tx.Provider, string(tx.PaymentMethod),
		tx.CustomerEmail, cardJSON, string(tx.Status), responseJSON, tx.Attempts,
		tx.Error, tx.CreatedAt, processedAt, tx.ProcessingMS,
	)
	if err != nil {
		return fmt.Errorf("error saving transaction %s: %w", tx.ID, err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*transaction.Transaction, error) {
	query := selectColumns + ` FROM transactions WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *PostgresStore) FindAll(ctx context.Context) ([]*transaction.Transaction, error) {
	query := selectColumns + ` FROM transactions ORDER BY seq`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func (s *PostgresStore) FindByCustomer(ctx context.Context, email string, window time.Duration) ([]*transaction.Transaction, error) {
	query := selectColumns + `
		FROM transactions
		WHERE customer_email = $1 AND created_at > $2
		ORDER BY seq
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query, email, time.Now().Add(-window))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTransactions(rows)
}

const selectColumns = `
	SELECT id, amount, currency, provider, payment_method, customer_email,
	       card_details, status, provider_response, attempts, error_message,
	       created_at, processed_at, processing_ms
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*transaction.Transaction, error) {
	var (
		tx           transaction.Transaction
		currency     string
		method       string
		status       string
		cardJSON     []byte
		responseJSON []byte
		processedAt  sql.NullTime
	)

	err := row.Scan(
		&tx.ID, &tx.Amount, &currency, &tx.Provider, &method, &tx.CustomerEmail,
		&cardJSON, &status, &responseJSON, &tx.Attempts, &tx.Error,
		&tx.CreatedAt, &processedAt, &tx.ProcessingMS,
	)
	if err != nil {
		return nil, err
	}

	tx.Currency = payments.Currency(currency)
	tx.PaymentMethod = payments.Method(method)
	tx.Status = transaction.Status(status)
	if processedAt.Valid {
		t := processedAt.Time
		tx.ProcessedAt = &t
	}
	if len(cardJSON) > 0 {
		tx.CardDetails = &payments.CardDetails{}
		if err := json.Unmarshal(cardJSON, tx.CardDetails); err != nil {
			return nil, fmt.Errorf("error decoding card details: %w", err)
		}
	}
	if len(responseJSON) > 0 {
		tx.ProviderResponse = &payments.Result{}
		if err := json.Unmarshal(responseJSON, tx.ProviderResponse); err != nil {
			return nil, fmt.Errorf("error decoding provider response: %w", err)
		}
	}
	return &tx, nil
}

func collectTransactions(rows *sql.Rows) ([]*transaction.Transaction, error) {
	var all []*transaction.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, tx)
	}
	return all, rows.Err()
}

// nullableJSON maps a nil pointer to a SQL NULL instead of "null".
func nullableJSON[T any](v *T) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
