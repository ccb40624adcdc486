// Package memory provides an in-memory Store implementation (for testing/dev).
package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/brightline/quote-engine/quote"
)

type Store struct {
	mu      sync.RWMutex
	quotes  map[string]*quote.Quote
	catalog []byte
}

func New() *Store {
	return &Store{
		quotes: make(map[string]*quote.Quote),
	}
}

func (m *Store) CreateQuote(_ context.Context, q *quote.Quote) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	if q.CreatedAt.IsZero() {
		q.CreatedAt = now
	}
	q.UpdatedAt = now

	clone := *q
	m.quotes[q.ID] = &clone
	return nil
}

func (m *Store) GetQuote(_ context.Context, id string) (*quote.Quote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	q, ok := m.quotes[id]
	if !ok {
		return nil, quote.ErrQuoteNotFound
	}
	clone := *q
	return &clone, nil
}

func (m *Store) UpdateQuote(_ context.Context, q *quote.Quote) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.quotes[q.ID]; !ok {
		return quote.ErrQuoteNotFound
	}
	q.UpdatedAt = time.Now().UTC()

	clone := *q
	m.quotes[q.ID] = &clone
	return nil
}

func (m *Store) ListQuotes(_ context.Context) ([]*quote.Quote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*quote.Quote, 0, len(m.quotes))
	for _, q := range m.quotes {
		clone := *q
		result = append(result, &clone)
	}
	// Newest first, id as tiebreaker for deterministic listing
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *Store) DeleteQuote(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.quotes[id]; !ok {
		return quote.ErrQuoteNotFound
	}
	delete(m.quotes, id)
	return nil
}

func (m *Store) GetCatalogDoc(_ context.Context) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.catalog == nil {
		return nil, quote.ErrCatalogNotFound
	}
	return append([]byte(nil), m.catalog...), nil
}

func (m *Store) PutCatalogDoc(_ context.Context, raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !json.Valid(raw) {
		return quote.ErrInvalidCatalogDoc
	}
	m.catalog = append([]byte(nil), raw...)
	return nil
}

var _ quote.Store = (*Store)(nil)
