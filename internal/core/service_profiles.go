package core

import (
	"carecore/pkg/domain"
	"context"
	"fmt"

	"github.com/google/uuid"
)

func newLogID() string {
	return fmt.Sprintf("log-%s", uuid.NewString())
}

// CreateClient stores a new client profile. Documents start empty and the
// audit log opens with a CREATE entry attributed to the current session.
func (s *Service) CreateClient(ctx context.Context, client domain.Client) (domain.Client, AppState, error) {
	client.Documents = []domain.Document{}
	client.AuditLog = []domain.AuditLogEntry{s.newAuditLogEntry(domain.AuditCreate, "Client profile created.")}

	var created domain.Client
	state, err := s.mutate(ctx, "create_client", func(tx Transaction) (string, error) {
		c, err := tx.CreateClient(client)
		created = c
		return c.ID, err
	})
	return created, state, err
}

// UpdateClient replaces a client profile, appending an UPDATE audit entry
// first. A false return means no stored client matched the id; the update is
// dropped without error, matching the legacy repositories.
func (s *Service) UpdateClient(ctx context.Context, client domain.Client) (AppState, bool, error) {
	client.AuditLog = append(client.AuditLog, s.newAuditLogEntry(domain.AuditUpdate, "Client details updated."))

	matched := false
	state, err := s.mutate(ctx, "update_client", func(tx Transaction) (string, error) {
		matched = tx.ReplaceClient(client)
		return client.ID, nil
	})
	if err == nil && !matched {
		s.logger.Warn("update matched no client", "client_id", client.ID)
	}
	return state, matched, err
}

// DeleteClient removes a client by id. A false return means nothing matched.
func (s *Service) DeleteClient(ctx context.Context, id string) (AppState, bool, error) {
	matched := false
	state, err := s.mutate(ctx, "delete_client", func(tx Transaction) (string, error) {
		matched = tx.DeleteClient(id)
		return id, nil
	})
	return state, matched, err
}

// CreateProvider stores a new provider profile with empty documents and
// certifications and an opening CREATE audit entry.
func (s *Service) CreateProvider(ctx context.Context, provider domain.Provider) (domain.Provider, AppState, error) {
	provider.Documents = []domain.Document{}
	provider.Certifications = []domain.Certification{}
	provider.AuditLog = []domain.AuditLogEntry{s.newAuditLogEntry(domain.AuditCreate, "Provider profile created.")}

	var created domain.Provider
	state, err := s.mutate(ctx, "create_provider", func(tx Transaction) (string, error) {
		p, err := tx.CreateProvider(provider)
		created = p
		return p.ID, err
	})
	return created, state, err
}

// UpdateProvider replaces a provider profile, appending an UPDATE audit entry
// first.
func (s *Service) UpdateProvider(ctx context.Context, provider domain.Provider) (AppState, bool, error) {
	provider.AuditLog = append(provider.AuditLog, s.newAuditLogEntry(domain.AuditUpdate, "Provider details updated."))

	matched := false
	state, err := s.mutate(ctx, "update_provider", func(tx Transaction) (string, error) {
		matched = tx.ReplaceProvider(provider)
		return provider.ID, nil
	})
	if err == nil && !matched {
		s.logger.Warn("update matched no provider", "provider_id", provider.ID)
	}
	return state, matched, err
}

// DeleteProvider removes a provider by id.
func (s *Service) DeleteProvider(ctx context.Context, id string) (AppState, bool, error) {
	matched := false
	state, err := s.mutate(ctx, "delete_provider", func(tx Transaction) (string, error) {
		matched = tx.DeleteProvider(id)
		return id, nil
	})
	return state, matched, err
}

// Profile resolves an id against both profile collections.
func (s *Service) Profile(id string) (domain.Profile, error) {
	if client, ok := s.store.GetClient(id); ok {
		return domain.ClientProfile(client), nil
	}
	if provider, ok := s.store.GetProvider(id); ok {
		return domain.ProviderProfile(provider), nil
	}
	return domain.Profile{}, ErrNotFound{Entity: "profile", ID: id}
}
