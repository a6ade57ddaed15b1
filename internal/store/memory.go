package store

import (
	"context"
	"sync"
	"time"

	"pago/internal/transaction"
)

// MemoryStore is the in-process TransactionStore. Records are stored as
// snapshots, so callers mutating a transaction after Save (or after a
// read) never race with concurrent readers.
type MemoryStore struct {
	mu    sync.RWMutex
	byID  map[string]*transaction.Transaction
	order []string

	now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID: make(map[string]*transaction.Transaction),
		now:  time.Now,
	}
}

func (m *MemoryStore) Save(_ context.Context, tx *transaction.Transaction) error {
	snapshot := *tx

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[tx.ID]; !exists {
		m.order = append(m.order, tx.ID)
	}
	m.byID[tx.ID] = &snapshot
	return nil
}

func (m *MemoryStore) FindByID(_ context.Context, id string) (*transaction.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tx, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	snapshot := *tx
	return &snapshot, nil
}

func (m *MemoryStore) FindAll(_ context.Context) ([]*transaction.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*transaction.Transaction, 0, len(m.order))
	for _, id := range m.order {
		snapshot := *m.byID[id]
		all = append(all, &snapshot)
	}
	return all, nil
}

func (m *MemoryStore) FindByCustomer(_ context.Context, email string, window time.Duration) ([]*transaction.Transaction, error) {
	cutoff := m.now().Add(-window)

	m.mu.RLock()
	defer m.mu.RUnlock()

	var matches []*transaction.Transaction
	for _, id := range m.order {
		tx := m.byID[id]
		if tx.CustomerEmail == email && tx.CreatedAt.After(cutoff) {
			snapshot := *tx
			matches = append(matches, &snapshot)
		}
	}
	return matches, nil
}
