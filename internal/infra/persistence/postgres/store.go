// Package postgres persists the in-memory store state to PostgreSQL using
// the pgx stdlib driver. Like the sqlite driver it delegates transactional
// semantics to the memory store and writes the whole document per commit.
package postgres

import (
	"carecore/internal/infra/persistence/memory"
	"carecore/pkg/domain"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const documentKey = "odayCareDb"

var _ domain.PersistentStore = (*Store)(nil)

// sqlOpen is swappable so tests can inject a stub connection without a
// running server.
var sqlOpen = sql.Open

// OverrideSQLOpen replaces the connection opener and returns a restore
// function. Intended for tests.
func OverrideSQLOpen(open func(driverName, dsn string) (*sql.DB, error)) func() {
	prev := sqlOpen
	sqlOpen = open
	return func() { sqlOpen = prev }
}

// Store wraps the in-memory store with PostgreSQL-backed durability.
type Store struct {
	db  *sql.DB
	mem *memory.Store
}

// Open connects using the provided DSN and loads the persisted document. An
// empty state table is seeded with the bootstrap document; an unparseable
// document fails the open.
func Open(dsn string, engine *domain.RulesEngine) (*Store, error) {
	db, err := sqlOpen("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		key TEXT PRIMARY KEY,
		payload JSONB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}

	store := &Store{db: db, mem: memory.NewStore(engine)}
	if err := store.load(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) load() error {
	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM state WHERE key = $1`, documentKey).Scan(&payload)
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
		`INSERT INTO state (key, payload) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload`,
		documentKey, payload,
	); err != nil {
		return fmt.Errorf("persist document: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
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
