// Package core implements the application coordinator: authenticated
// sessions, profile and billing workflows, scheduling, document storage, and
// the observability plumbing around every operation.
package core

import (
	"carecore/internal/infra/persistence/memory"
	"carecore/pkg/domain"
	"context"
	"errors"
	"sync"
	"time"
)

// Service sequences every fetch and mutation against the persistent store and
// keeps the logged-in session's cached identity consistent.
type Service struct {
	store   PersistentStore
	blobs   BlobStore
	logger  Logger
	clock   Clock
	audit   AuditRecorder
	metrics MetricsRecorder
	tracer  Tracer
	latency time.Duration

	mu           sync.RWMutex
	session      *domain.User // public copy, credential stripped
	sessionCache SessionCache
}

// NewService wraps an opened persistent store.
func NewService(store PersistentStore, opts ...ServiceOption) *Service {
	s := &Service{
		store:   store,
		logger:  noopLogger{},
		clock:   systemClock{},
		audit:   noopAuditRecorder{},
		metrics: noopMetricsRecorder{},
		tracer:  noopTracer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewInMemoryService creates a service over a seeded in-memory store with the
// given rules engine. Intended for tests and ephemeral deployments.
func NewInMemoryService(engine *domain.RulesEngine, opts ...ServiceOption) *Service {
	store := memory.NewStore(engine)
	store.ImportState(memory.SeedSnapshot(time.Now()))
	return NewService(store, opts...)
}

// Store exposes the underlying persistent store.
func (s *Service) Store() PersistentStore { return s.store }

// AppState is the full refetched snapshot handed back after every mutation.
// The coordinator never patches collections in place; callers always receive
// the store's serialized truth.
type AppState struct {
	Clients   []domain.Client        `json:"clients"`
	Providers []domain.Provider      `json:"providers"`
	Claims    []domain.Claim         `json:"claims"`
	Users     []domain.User          `json:"users"`
	Events    []domain.CalendarEvent `json:"events"`
}

// State refetches all five collections. The configured simulated latency is
// applied once for the whole snapshot.
func (s *Service) State(ctx context.Context) (AppState, error) {
	var state AppState
	err := s.run(ctx, "fetch_state", "", func() (string, error) {
		state = s.snapshotState()
		return "", nil
	})
	return state, err
}

func (s *Service) snapshotState() AppState {
	return AppState{
		Clients:   s.store.ListClients(),
		Providers: s.store.ListProviders(),
		Claims:    s.store.ListClaims(),
		Users:     s.store.ListUsers(),
		Events:    s.store.ListEvents(),
	}
}

type operationInfo struct {
	entity string
	action string
}

var operationMetadata = map[string]operationInfo{
	"fetch_state":         {entity: "state", action: "read"},
	"login":               {entity: "user", action: "read"},
	"signup":              {entity: "user", action: "create"},
	"update_user":         {entity: "user", action: "update"},
	"create_client":       {entity: "client", action: "create"},
	"update_client":       {entity: "client", action: "update"},
	"delete_client":       {entity: "client", action: "delete"},
	"create_provider":     {entity: "provider", action: "create"},
	"update_provider":     {entity: "provider", action: "update"},
	"delete_provider":     {entity: "provider", action: "delete"},
	"create_claim":        {entity: "claim", action: "create"},
	"update_claim":        {entity: "claim", action: "update"},
	"update_claim_status": {entity: "claim", action: "update"},
	"submit_ready_claims": {entity: "claim", action: "update"},
	"create_event":        {entity: "event", action: "create"},
	"update_event":        {entity: "event", action: "update"},
	"delete_event":        {entity: "event", action: "delete"},
	"upload_document":     {entity: "document", action: "create"},
	"fetch_document":      {entity: "document", action: "read"},
	"delete_document":     {entity: "document", action: "delete"},
}

// run wraps an operation with simulated latency, tracing, metrics, audit and
// logging. fn returns the id of the entity it touched, when known.
func (s *Service) run(ctx context.Context, operation string, actor string, fn func() (string, error)) error {
	if s.latency > 0 {
		select {
		case <-time.After(s.latency):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	ctx, span := s.tracer.Start(ctx, operation)
	started := s.clock.Now()
	entityID, err := fn()
	duration := s.clock.Now().Sub(started)
	span.End(err)
	s.metrics.Observe(ctx, operation, err == nil, duration)

	meta := operationMetadata[operation]
	entry := AuditEntry{
		Operation: operation,
		Entity:    meta.entity,
		Action:    meta.action,
		EntityID:  entityID,
		Actor:     actor,
		Status:    AuditStatusSuccess,
		Duration:  duration,
		Timestamp: started,
	}
	if err != nil {
		entry.Status = AuditStatusError
		entry.Error = err.Error()
		s.logger.Error("operation failed", "operation", operation, "entity_id", entityID, "error", err)
	} else {
		s.logger.Debug("operation completed", "operation", operation, "entity_id", entityID, "duration", duration)
	}
	s.audit.Record(ctx, entry)
	return err
}

// mutate runs fn in a store transaction, surfaces warn violations in the log,
// and refetches the full state afterwards.
func (s *Service) mutate(ctx context.Context, operation string, fn func(Transaction) (string, error)) (AppState, error) {
	var state AppState
	err := s.run(ctx, operation, s.actorName(), func() (string, error) {
		var entityID string
		result, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
			id, err := fn(tx)
			entityID = id
			return err
		})
		if err != nil {
			return entityID, err
		}
		for _, violation := range result.Violations {
			if violation.Severity != domain.SeverityBlock {
				s.logger.Warn("rule violation", "rule", violation.Rule, "severity", violation.Severity, "message", violation.Message)
			}
		}
		state = s.snapshotState()
		return entityID, nil
	})
	return state, err
}

// actorName resolves the audit actor from the cached session, falling back to
// the literal the legacy system used before login completed.
func (s *Service) actorName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session != nil && s.session.Name != "" {
		return s.session.Name
	}
	return "Admin User"
}

func (s *Service) newAuditLogEntry(action domain.AuditAction, details string) domain.AuditLogEntry {
	return domain.AuditLogEntry{
		ID:        newLogID(),
		User:      s.actorName(),
		Action:    action,
		Details:   details,
		Timestamp: s.clock.Now().Format("2006-01-02 03:04 PM"),
	}
}

// IsNotFound reports whether err is an ErrNotFound.
func IsNotFound(err error) bool {
	var notFound ErrNotFound
	return errors.As(err, &notFound)
}
