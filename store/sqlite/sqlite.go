/*
Package sqlite provides a SQLite-backed implementation of quote.Store.

PURPOSE:
  Persists quote records and the singleton pricing-catalog document. In
  production, the same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

KEY TABLES:
  quotes:      One row per quote; locked variables, client choices, and
               contract doc metadata stored as JSON columns
  config_docs: Raw JSON documents keyed by id; the catalog lives under
               the singleton id "main"

JSON COLUMNS:
  Locked variables and client choices are value objects the engine reads
  whole; storing them as JSON keeps the schema stable while the pricing
  fields evolve, and mirrors the document shape the admin UI edits.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/quotes.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - quote/store.go: Interface definition
  - store/memory: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/brightline/quote-engine/quote"
)

// CatalogDocID is the singleton id the pricing catalog is stored under.
const CatalogDocID = "main"

// Store implements quote.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS quotes (
		id TEXT PRIMARY KEY,
		client_name TEXT NOT NULL,
		client_email TEXT NOT NULL DEFAULT '',
		client_legal_name TEXT NOT NULL DEFAULT '',
		client_legal_address TEXT NOT NULL DEFAULT '',
		client_entity_type TEXT NOT NULL DEFAULT '',
		project_title TEXT NOT NULL DEFAULT '',
		project_scope TEXT NOT NULL DEFAULT '',
		service_model TEXT NOT NULL,
		status TEXT NOT NULL,
		locked_vars_json TEXT NOT NULL,
		client_choices_json TEXT NOT NULL,
		final_monthly_fee TEXT NOT NULL DEFAULT '0',
		included_hours TEXT NOT NULL DEFAULT '0',
		decline_reason TEXT NOT NULL DEFAULT '',
		contract_docs_json TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_quotes_status ON quotes(status);
	CREATE INDEX IF NOT EXISTS idx_quotes_created_at ON quotes(created_at DESC);

	-- Raw JSON documents (the pricing catalog lives under id 'main')
	CREATE TABLE IF NOT EXISTS config_docs (
		id TEXT PRIMARY KEY,
		doc_json TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// QUOTE CRUD
// =============================================================================

func (s *Store) CreateQuote(ctx context.Context, q *quote.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lockedJSON, err := json.Marshal(q.Locked)
	if err != nil {
		return fmt.Errorf("marshal locked vars: %w", err)
	}
	choicesJSON, err := json.Marshal(q.Choices)
	if err != nil {
		return fmt.Errorf("marshal client choices: %w", err)
	}
	docsJSON, err := json.Marshal(q.ContractDocs)
	if err != nil {
		return fmt.Errorf("marshal contract docs: %w", err)
	}

	now := time.Now().UTC()
	if q.CreatedAt.IsZero() {
		q.CreatedAt = now
	}
	q.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO quotes (
			id, client_name, client_email, client_legal_name,
			client_legal_address, client_entity_type, project_title,
			project_scope, service_model, status, locked_vars_json,
			client_choices_json, final_monthly_fee, included_hours,
			decline_reason, contract_docs_json, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.ClientName, q.ClientEmail, q.ClientLegalName,
		q.ClientLegalAddress, q.ClientEntityType, q.ProjectTitle,
		q.ProjectScope, string(q.ServiceModel), string(q.Status), string(lockedJSON),
		string(choicesJSON), q.FinalMonthlyFee.String(), q.IncludedHours.String(),
		q.DeclineReason, string(docsJSON),
		q.CreatedAt.Format(time.RFC3339), q.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

func (s *Store) GetQuote(ctx context.Context, id string) (*quote.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, client_name, client_email, client_legal_name,
			client_legal_address, client_entity_type, project_title,
			project_scope, service_model, status, locked_vars_json,
			client_choices_json, final_monthly_fee, included_hours,
			decline_reason, contract_docs_json, created_at, updated_at
		FROM quotes WHERE id = ?`, id)

	q, err := scanQuote(row)
	if err == sql.ErrNoRows {
		return nil, quote.ErrQuoteNotFound
	}
	return q, err
}

func (s *Store) UpdateQuote(ctx context.Context, q *quote.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lockedJSON, err := json.Marshal(q.Locked)
	if err != nil {
		return fmt.Errorf("marshal locked vars: %w", err)
	}
	choicesJSON, err := json.Marshal(q.Choices)
	if err != nil {
		return fmt.Errorf("marshal client choices: %w", err)
	}
	docsJSON, err := json.Marshal(q.ContractDocs)
	if err != nil {
		return fmt.Errorf("marshal contract docs: %w", err)
	}

	q.UpdatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		UPDATE quotes SET
			client_name = ?, client_email = ?, client_legal_name = ?,
			client_legal_address = ?, client_entity_type = ?,
			project_title = ?, project_scope = ?, service_model = ?,
			status = ?, locked_vars_json = ?, client_choices_json = ?,
			final_monthly_fee = ?, included_hours = ?, decline_reason = ?,
			contract_docs_json = ?, updated_at = ?
		WHERE id = ?`,
		q.ClientName, q.ClientEmail, q.ClientLegalName,
		q.ClientLegalAddress, q.ClientEntityType,
		q.ProjectTitle, q.ProjectScope, string(q.ServiceModel),
		string(q.Status), string(lockedJSON), string(choicesJSON),
		q.FinalMonthlyFee.String(), q.IncludedHours.String(), q.DeclineReason,
		string(docsJSON), q.UpdatedAt.Format(time.RFC3339),
		q.ID,
	)
	if err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return quote.ErrQuoteNotFound
	}
	return nil
}

func (s *Store) ListQuotes(ctx context.Context) ([]*quote.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, client_name, client_email, client_legal_name,
			client_legal_address, client_entity_type, project_title,
			project_scope, service_model, status, locked_vars_json,
			client_choices_json, final_monthly_fee, included_hours,
			decline_reason, contract_docs_json, created_at, updated_at
		FROM quotes ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	var quotes []*quote.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

func (s *Store) DeleteQuote(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM quotes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return quote.ErrQuoteNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanQuote(row scanner) (*quote.Quote, error) {
	var (
		q                                 quote.Quote
		model, status                     string
		lockedJSON, choicesJSON, docsJSON string
		monthlyFee, includedHours         string
		createdAt, updatedAt              string
	)

	err := row.Scan(
		&q.ID, &q.ClientName, &q.ClientEmail, &q.ClientLegalName,
		&q.ClientLegalAddress, &q.ClientEntityType, &q.ProjectTitle,
		&q.ProjectScope, &model, &status, &lockedJSON,
		&choicesJSON, &monthlyFee, &includedHours,
		&q.DeclineReason, &docsJSON, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	q.ServiceModel = quote.ServiceModel(model)
	q.Status = quote.Status(status)

	if err := json.Unmarshal([]byte(lockedJSON), &q.Locked); err != nil {
		return nil, fmt.Errorf("unmarshal locked vars for %s: %w", q.ID, err)
	}
	if err := json.Unmarshal([]byte(choicesJSON), &q.Choices); err != nil {
		return nil, fmt.Errorf("unmarshal client choices for %s: %w", q.ID, err)
	}
	if err := json.Unmarshal([]byte(docsJSON), &q.ContractDocs); err != nil {
		return nil, fmt.Errorf("unmarshal contract docs for %s: %w", q.ID, err)
	}

	q.FinalMonthlyFee = mustDecimal(monthlyFee)
	q.IncludedHours = mustDecimal(includedHours)

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		q.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		q.UpdatedAt = t
	}

	return &q, nil
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// =============================================================================
// CATALOG DOCUMENT
// =============================================================================

func (s *Store) GetCatalogDoc(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT doc_json FROM config_docs WHERE id = ?`, CatalogDocID).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, quote.ErrCatalogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get catalog doc: %w", err)
	}
	return []byte(raw), nil
}

func (s *Store) PutCatalogDoc(ctx context.Context, raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !json.Valid(raw) {
		return quote.ErrInvalidCatalogDoc
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO config_docs (id, doc_json, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET doc_json = excluded.doc_json,
			updated_at = excluded.updated_at`,
		CatalogDocID, string(raw), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("put catalog doc: %w", err)
	}
	return nil
}

var _ quote.Store = (*Store)(nil)
