/*
store.go - Persistence interface for quotes and the catalog document

PURPOSE:
  The engine itself never touches storage; this interface is the seam the
  HTTP layer uses. Implementations: store/sqlite (production) and
  store/memory (tests).

CATALOG AS RAW JSON:
  The catalog is stored as the raw singleton document ("main") and parsed
  on read. This keeps the store schema stable while the catalog schema
  evolves, and matches how the admin surface edits it.

SEE ALSO:
  - store/sqlite: SQLite implementation
  - store/memory: In-memory implementation for testing
*/
package quote

import "context"

// Store is the persistence contract for quotes and the catalog document.
type Store interface {
	CreateQuote(ctx context.Context, q *Quote) error
	GetQuote(ctx context.Context, id string) (*Quote, error)
	UpdateQuote(ctx context.Context, q *Quote) error
	ListQuotes(ctx context.Context) ([]*Quote, error)
	DeleteQuote(ctx context.Context, id string) error

	// GetCatalogDoc returns the raw catalog JSON, or ErrCatalogNotFound.
	GetCatalogDoc(ctx context.Context) ([]byte, error)
	PutCatalogDoc(ctx context.Context, raw []byte) error
}
