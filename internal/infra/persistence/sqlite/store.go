// Package sqlite persists the in-memory store state to a SQLite database
// file. It reuses the memory store for all transactional semantics and writes
// the full document after every successful transaction.
package sqlite

import (
	"carecore/internal/infra/persistence/memory"
	"carecore/pkg/domain"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// documentKey names the single row holding the persisted document. It carries
// the storage key of the system this database format descends from.
const documentKey = "odayCareDb"

var _ domain.PersistentStore = (*Store)(nil)

// Store wraps the in-memory store with SQLite-backed durability.
type Store struct {
	db  *sql.DB
	mem *memory.Store
}

// Open opens (or creates) the SQLite database at path and loads the persisted
// document into a fresh in-memory store. An empty database is seeded with the
// bootstrap document. A present but unparseable document fails the open; the
// store never silently resets user data.
func Open(path string, engine *domain.RulesEngine) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	store, err := newStore(db, engine)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func newStore(db *sql.DB, engine *domain.RulesEngine) (*Store, error) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		key TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create state table: %w", err)
	}

	store := &Store{db: db, mem: memory.NewStore(engine)}
	if err := store.load(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) load() error {
	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM state WHERE key = ?`, documentKey).Scan(&payload)
	switch {
	case err == sql.ErrNoRows:
		s.mem.ImportState(memory.SeedSnapshot(time.Now()))
		return s.persist()
	case err != nil:
		return fmt.Errorf("load document: %w", err)
	}

	var snapshot memory.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	s.mem.ImportState(snapshot)
	return nil
}

func (s *Store) persist() error {
	payload, err := json.Marshal(s.mem.ExportState())
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if _, err := s.db.Exec(
		`INSERT INTO state (key, payload) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload`,
		documentKey, payload,
	); err != nil {
		return fmt.Errorf("persist document: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// RunInTransaction delegates to the in-memory store and persists the full
// document once the transaction commits.
func (s *Store) RunInTransaction(ctx context.Context, fn func(domain.Transaction) error) (domain.Result, error) {
	result, err := s.mem.RunInTransaction(ctx, fn)
	if err != nil {
		return result, err
	}
	if err := s.persist(); err != nil {
		return result, err
	}
	return result, nil
}

// View delegates to the in-memory store.
func (s *Store) View(ctx context.Context, fn func(domain.TransactionView) error) error {
	return s.mem.View(ctx, fn)
}

func (s *Store) ListClients() []domain.Client       { return s.mem.ListClients() }
func (s *Store) ListProviders() []domain.Provider   { return s.mem.ListProviders() }
func (s *Store) ListClaims() []domain.Claim         { return s.mem.ListClaims() }
func (s *Store) ListEvents() []domain.CalendarEvent { return s.mem.ListEvents() }
func (s *Store) ListUsers() []domain.User           { return s.mem.ListUsers() }
func (s *Store) GetClient(id string) (domain.Client, bool) {
	return s.mem.GetClient(id)
}
func (s *Store) GetProvider(id string) (domain.Provider, bool) {
	return s.mem.GetProvider(id)
}
