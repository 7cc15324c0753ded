// Package memory provides the in-memory implementation of the core
// persistence store. Durable drivers embed it and snapshot its state.
package memory

import (
	"carecore/pkg/domain"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Compile-time contract assertion ensuring memory.Store adheres to the domain persistence interface.
var _ domain.PersistentStore = (*Store)(nil)

// state holds the five entity collections in document order. Clients,
// providers and claims prepend on create (new records sort first); events and
// users append.
type state struct {
	clients   []domain.Client
	providers []domain.Provider
	claims    []domain.Claim
	users     []domain.User
	events    []domain.CalendarEvent
}

// Snapshot captures a point-in-time clone of the store state. Its JSON shape
// is the persisted document format: one object with the five collection keys.
type Snapshot struct {
	Clients   []domain.Client        `json:"clients"`
	Providers []domain.Provider      `json:"providers"`
	Claims    []domain.Claim         `json:"claims"`
	Users     []domain.User          `json:"users"`
	Events    []domain.CalendarEvent `json:"events"`
}

func cloneClient(c domain.Client) domain.Client {
	cp := c
	cp.Documents = append([]domain.Document(nil), c.Documents...)
	cp.AuditLog = append([]domain.AuditLogEntry(nil), c.AuditLog...)
	return cp
}

func cloneProvider(p domain.Provider) domain.Provider {
	cp := p
	cp.Certifications = append([]domain.Certification(nil), p.Certifications...)
	cp.Documents = append([]domain.Document(nil), p.Documents...)
	cp.AuditLog = append([]domain.AuditLogEntry(nil), p.AuditLog...)
	return cp
}

func cloneClaim(c domain.Claim) domain.Claim                 { return c }
func cloneEvent(e domain.CalendarEvent) domain.CalendarEvent { return e }
func cloneUser(u domain.User) domain.User                    { return u }

func cloneClients(in []domain.Client) []domain.Client {
	out := make([]domain.Client, 0, len(in))
	for _, c := range in {
		out = append(out, cloneClient(c))
	}
	return out
}

func cloneProviders(in []domain.Provider) []domain.Provider {
	out := make([]domain.Provider, 0, len(in))
	for _, p := range in {
		out = append(out, cloneProvider(p))
	}
	return out
}

func cloneClaims(in []domain.Claim) []domain.Claim {
	return append([]domain.Claim(nil), in...)
}

func cloneEvents(in []domain.CalendarEvent) []domain.CalendarEvent {
	return append([]domain.CalendarEvent(nil), in...)
}

func cloneUsers(in []domain.User) []domain.User {
	return append([]domain.User(nil), in...)
}

func (s state) clone() state {
	return state{
		clients:   cloneClients(s.clients),
		providers: cloneProviders(s.providers),
		claims:    cloneClaims(s.claims),
		users:     cloneUsers(s.users),
		events:    cloneEvents(s.events),
	}
}

func snapshotFromState(s state) Snapshot {
	return Snapshot{
		Clients:   cloneClients(s.clients),
		Providers: cloneProviders(s.providers),
		Claims:    cloneClaims(s.claims),
		Users:     cloneUsers(s.users),
		Events:    cloneEvents(s.events),
	}
}

func stateFromSnapshot(s Snapshot) state {
	return state{
		clients:   cloneClients(s.Clients),
		providers: cloneProviders(s.Providers),
		claims:    cloneClaims(s.Claims),
		users:     cloneUsers(s.Users),
		events:    cloneEvents(s.Events),
	}
}

// migrateSnapshot patches structural gaps in a loaded snapshot. Nil
// collections become empty; a nil events collection means the document
// predates scheduling and is backfilled with the seed events. This is the
// only migration mechanism the document format has.
func migrateSnapshot(snapshot Snapshot, now time.Time) Snapshot {
	if snapshot.Clients == nil {
		snapshot.Clients = []domain.Client{}
	}
	if snapshot.Providers == nil {
		snapshot.Providers = []domain.Provider{}
	}
	if snapshot.Claims == nil {
		snapshot.Claims = []domain.Claim{}
	}
	if snapshot.Users == nil {
		snapshot.Users = []domain.User{}
	}
	if snapshot.Events == nil {
		snapshot.Events = SeedEvents(now)
	}
	return snapshot
}

// Store provides an in-memory transactional store for the core domain.
type Store struct {
	mu     sync.RWMutex
	state  state
	engine *domain.RulesEngine
	nowFn  func() time.Time
}

// NewStore constructs an empty in-memory store backed by the provided rules
// engine. A nil engine disables rule evaluation via an empty default.
func NewStore(engine *domain.RulesEngine) *Store {
	if engine == nil {
		engine = domain.NewRulesEngine()
	}
	return &Store{
		engine: engine,
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

func newID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}

// ExportState clones the current store state for external persistence.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromState(s.state)
}

// ImportState replaces the store state with the provided snapshot after
// applying snapshot migration.
func (s *Store) ImportState(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = stateFromSnapshot(migrateSnapshot(snapshot, s.nowFn()))
}

// RulesEngine exposes the configured engine for integration points.
func (s *Store) RulesEngine() *domain.RulesEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

// NowFunc returns the time provider used by the store.
func (s *Store) NowFunc() func() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nowFn
}

// RunInTransaction executes fn within a transactional copy of the store
// state. Registered rules evaluate over the recorded changes; a blocking
// violation rolls the transaction back with a RuleViolationError.
func (s *Store) RunInTransaction(ctx context.Context, fn func(domain.Transaction) error) (domain.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{state: s.state.clone()}

	if err := fn(tx); err != nil {
		return domain.Result{}, err
	}

	var result domain.Result
	if s.engine != nil {
		view := transactionView{state: &tx.state}
		res, err := s.engine.Evaluate(ctx, view, tx.changes)
		if err != nil {
			return domain.Result{}, err
		}
		result = res
		if res.HasBlocking() {
			return res, domain.RuleViolationError{Result: res}
		}
	}

	s.state = tx.state
	return result, nil
}

// View executes fn against a read-only snapshot of the store state.
func (s *Store) View(_ context.Context, fn func(domain.TransactionView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.state.clone()
	return fn(transactionView{state: &snapshot})
}

// ListClients returns the client collection in document order.
func (s *Store) ListClients() []domain.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneClients(s.state.clients)
}

// ListProviders returns the provider collection in document order.
func (s *Store) ListProviders() []domain.Provider {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProviders(s.state.providers)
}

// ListClaims returns the claim collection in document order.
func (s *Store) ListClaims() []domain.Claim {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneClaims(s.state.claims)
}

// ListEvents returns the calendar event collection in document order.
func (s *Store) ListEvents() []domain.CalendarEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEvents(s.state.events)
}

// ListUsers returns the user collection in document order.
func (s *Store) ListUsers() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneUsers(s.state.users)
}

// GetClient retrieves a client by id.
func (s *Store) GetClient(id string) (domain.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.state.clients {
		if c.ID == id {
			return cloneClient(c), true
		}
	}
	return domain.Client{}, false
}

// GetProvider retrieves a provider by id.
func (s *Store) GetProvider(id string) (domain.Provider, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.state.providers {
		if p.ID == id {
			return cloneProvider(p), true
		}
	}
	return domain.Provider{}, false
}
