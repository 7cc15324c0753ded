package memory

import (
	"carecore/pkg/domain"
	"fmt"
)

var (
	_ domain.Transaction     = (*transaction)(nil)
	_ domain.TransactionView = transactionView{}
	_ domain.RuleView        = transactionView{}
)

// transaction mutates a private clone of the store state and records every
// change for rule evaluation. The clone replaces the live state only when the
// transaction callback and all registered rules succeed.
type transaction struct {
	state   state
	changes []domain.Change
}

func (t *transaction) record(entity domain.EntityType, action domain.Action, before, after any) {
	t.changes = append(t.changes, domain.Change{
		Entity: entity,
		Action: action,
		Before: before,
		After:  after,
	})
}

func (t *transaction) Snapshot() domain.TransactionView {
	return transactionView{state: &t.state}
}

func (t *transaction) CreateClient(client domain.Client) (domain.Client, error) {
	if client.ID == "" {
		client.ID = newID("CL")
	}
	for _, existing := range t.state.clients {
		if existing.ID == client.ID {
			return domain.Client{}, fmt.Errorf("client %q already exists", client.ID)
		}
	}
	stored := cloneClient(client)
	// New records sort first in the document.
	t.state.clients = append([]domain.Client{stored}, t.state.clients...)
	t.record(domain.EntityClient, domain.ActionCreate, nil, cloneClient(stored))
	return cloneClient(stored), nil
}

func (t *transaction) ReplaceClient(client domain.Client) bool {
	for i, existing := range t.state.clients {
		if existing.ID == client.ID {
			before := cloneClient(existing)
			t.state.clients[i] = cloneClient(client)
			t.record(domain.EntityClient, domain.ActionUpdate, before, cloneClient(client))
			return true
		}
	}
	return false
}

func (t *transaction) DeleteClient(id string) bool {
	for i, existing := range t.state.clients {
		if existing.ID == id {
			before := cloneClient(existing)
			t.state.clients = append(t.state.clients[:i], t.state.clients[i+1:]...)
			t.record(domain.EntityClient, domain.ActionDelete, before, nil)
			return true
		}
	}
	return false
}

func (t *transaction) CreateProvider(provider domain.Provider) (domain.Provider, error) {
	if provider.ID == "" {
		provider.ID = newID("PR")
	}
	for _, existing := range t.state.providers {
		if existing.ID == provider.ID {
			return domain.Provider{}, fmt.Errorf("provider %q already exists", provider.ID)
		}
	}
	stored := cloneProvider(provider)
	t.state.providers = append([]domain.Provider{stored}, t.state.providers...)
	t.record(domain.EntityProvider, domain.ActionCreate, nil, cloneProvider(stored))
	return cloneProvider(stored), nil
}

func (t *transaction) ReplaceProvider(provider domain.Provider) bool {
	for i, existing := range t.state.providers {
		if existing.ID == provider.ID {
			before := cloneProvider(existing)
			t.state.providers[i] = cloneProvider(provider)
			t.record(domain.EntityProvider, domain.ActionUpdate, before, cloneProvider(provider))
			return true
		}
	}
	return false
}

func (t *transaction) DeleteProvider(id string) bool {
	for i, existing := range t.state.providers {
		if existing.ID == id {
			before := cloneProvider(existing)
			t.state.providers = append(t.state.providers[:i], t.state.providers[i+1:]...)
			t.record(domain.EntityProvider, domain.ActionDelete, before, nil)
			return true
		}
	}
	return false
}

func (t *transaction) CreateClaim(claim domain.Claim) (domain.Claim, error) {
	if claim.ID == "" {
		claim.ID = newID("CLM")
	}
	for _, existing := range t.state.claims {
		if existing.ID == claim.ID {
			return domain.Claim{}, fmt.Errorf("claim %q already exists", claim.ID)
		}
	}
	stored := cloneClaim(claim)
	t.state.claims = append([]domain.Claim{stored}, t.state.claims...)
	t.record(domain.EntityClaim, domain.ActionCreate, nil, stored)
	return stored, nil
}

func (t *transaction) ReplaceClaim(claim domain.Claim) bool {
	for i, existing := range t.state.claims {
		if existing.ID == claim.ID {
			before := existing
			t.state.claims[i] = cloneClaim(claim)
			t.record(domain.EntityClaim, domain.ActionUpdate, before, cloneClaim(claim))
			return true
		}
	}
	return false
}

func (t *transaction) BatchUpdateClaimStatus(ids []string, status domain.ClaimStatus) int {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	updated := 0
	for i, claim := range t.state.claims {
		if _, ok := wanted[claim.ID]; !ok {
			continue
		}
		before := claim
		t.state.claims[i].Status = status
		t.record(domain.EntityClaim, domain.ActionUpdate, before, t.state.claims[i])
		updated++
	}
	return updated
}

func (t *transaction) CreateEvent(event domain.CalendarEvent) (domain.CalendarEvent, error) {
	if event.ID == "" {
		event.ID = newID("EVT")
	}
	for _, existing := range t.state.events {
		if existing.ID == event.ID {
			return domain.CalendarEvent{}, fmt.Errorf("event %q already exists", event.ID)
		}
	}
	stored := cloneEvent(event)
	t.state.events = append(t.state.events, stored)
	t.record(domain.EntityEvent, domain.ActionCreate, nil, stored)
	return stored, nil
}

func (t *transaction) ReplaceEvent(event domain.CalendarEvent) bool {
	for i, existing := range t.state.events {
		if existing.ID == event.ID {
			before := existing
			t.state.events[i] = cloneEvent(event)
			t.record(domain.EntityEvent, domain.ActionUpdate, before, cloneEvent(event))
			return true
		}
	}
	return false
}

func (t *transaction) DeleteEvent(id string) bool {
	for i, existing := range t.state.events {
		if existing.ID == id {
			before := existing
			t.state.events = append(t.state.events[:i], t.state.events[i+1:]...)
			t.record(domain.EntityEvent, domain.ActionDelete, before, nil)
			return true
		}
	}
	return false
}

func (t *transaction) CreateUser(user domain.User) (domain.User, error) {
	if user.ID == "" {
		user.ID = newID("user")
	}
	for _, existing := range t.state.users {
		if existing.ID == user.ID {
			return domain.User{}, fmt.Errorf("user %q already exists", user.ID)
		}
		if existing.Email == user.Email {
			return domain.User{}, domain.DuplicateEmailError{Email: user.Email}
		}
	}
	stored := cloneUser(user)
	t.state.users = append(t.state.users, stored)
	t.record(domain.EntityUser, domain.ActionCreate, nil, stored)
	return stored, nil
}

func (t *transaction) ReplaceUser(user domain.User) bool {
	for i, existing := range t.state.users {
		if existing.ID == user.ID {
			before := existing
			t.state.users[i] = cloneUser(user)
			t.record(domain.EntityUser, domain.ActionUpdate, before, cloneUser(user))
			return true
		}
	}
	return false
}

func (t *transaction) FindUserByEmail(email string) (domain.User, bool) {
	for _, user := range t.state.users {
		if user.Email == email {
			return cloneUser(user), true
		}
	}
	return domain.User{}, false
}

// transactionView offers read-only access over a transaction or store state.
type transactionView struct {
	state *state
}

func (v transactionView) ListClients() []domain.Client {
	return cloneClients(v.state.clients)
}

func (v transactionView) ListProviders() []domain.Provider {
	return cloneProviders(v.state.providers)
}

func (v transactionView) ListClaims() []domain.Claim {
	return cloneClaims(v.state.claims)
}

func (v transactionView) ListEvents() []domain.CalendarEvent {
	return cloneEvents(v.state.events)
}

func (v transactionView) ListUsers() []domain.User {
	return cloneUsers(v.state.users)
}

func (v transactionView) FindClient(id string) (domain.Client, bool) {
	for _, c := range v.state.clients {
		if c.ID == id {
			return cloneClient(c), true
		}
	}
	return domain.Client{}, false
}

func (v transactionView) FindProvider(id string) (domain.Provider, bool) {
	for _, p := range v.state.providers {
		if p.ID == id {
			return cloneProvider(p), true
		}
	}
	return domain.Provider{}, false
}

func (v transactionView) FindClaim(id string) (domain.Claim, bool) {
	for _, c := range v.state.claims {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Claim{}, false
}

func (v transactionView) FindEvent(id string) (domain.CalendarEvent, bool) {
	for _, e := range v.state.events {
		if e.ID == id {
			return e, true
		}
	}
	return domain.CalendarEvent{}, false
}

func (v transactionView) FindUser(id string) (domain.User, bool) {
	for _, u := range v.state.users {
		if u.ID == id {
			return u, true
		}
	}
	return domain.User{}, false
}

func (v transactionView) FindUserByEmail(email string) (domain.User, bool) {
	for _, u := range v.state.users {
		if u.Email == email {
			return u, true
		}
	}
	return domain.User{}, false
}
