package core

import (
	"carecore/pkg/domain"
	"context"
	"fmt"
	"testing"
	"time"
)

func newTestService(t *testing.T, opts ...ServiceOption) *Service {
	t.Helper()
	return NewInMemoryService(NewDefaultRulesEngine(), opts...)
}

func loginAdmin(t *testing.T, svc *Service) domain.User {
	t.Helper()
	user, err := svc.Login(context.Background(), "admin@odaycare.com", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return user
}

func TestCreateClientOpensAuditTrail(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	loginAdmin(t, svc)

	created, state, err := svc.CreateClient(ctx, domain.Client{
		FirstName: "Maria", LastName: "Lopez", Status: domain.ClientActive,
	})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	if len(created.AuditLog) != 1 {
		t.Fatalf("expected exactly one opening audit entry, got %d", len(created.AuditLog))
	}
	entry := created.AuditLog[0]
	if entry.Action != domain.AuditCreate || entry.User != "Admin User" || entry.Details != "Client profile created." {
		t.Fatalf("unexpected opening entry %+v", entry)
	}
	if state.Clients[0].ID != created.ID {
		t.Fatal("refetched state must lead with the new client")
	}
}

func TestAuditTrailAppendOnly(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	svc := newTestService(t, WithClock(ClockFunc(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	})))
	loginAdmin(t, svc)

	created, _, err := svc.CreateClient(ctx, domain.Client{FirstName: "Maria", LastName: "Lopez"})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	const updates = 4
	current := created
	for i := 0; i < updates; i++ {
		current.Phone = fmt.Sprintf("555-000%d", i)
		state, matched, err := svc.UpdateClient(ctx, current)
		if err != nil || !matched {
			t.Fatalf("update %d: matched=%v err=%v", i, matched, err)
		}
		for _, c := range state.Clients {
			if c.ID == created.ID {
				current = c
			}
		}
	}

	if len(current.AuditLog) != updates+1 {
		t.Fatalf("expected %d audit entries, got %d", updates+1, len(current.AuditLog))
	}
	if current.AuditLog[0].Details != "Client profile created." {
		t.Fatal("opening entry content changed")
	}
	for i := 1; i < len(current.AuditLog); i++ {
		if current.AuditLog[i].Action != domain.AuditUpdate {
			t.Fatalf("entry %d is %s, want UPDATE", i, current.AuditLog[i].Action)
		}
		if current.AuditLog[i].Timestamp < current.AuditLog[i-1].Timestamp {
			t.Fatalf("entries out of order at %d: %q < %q", i, current.AuditLog[i].Timestamp, current.AuditLog[i-1].Timestamp)
		}
	}
}

func TestUpdateClientUnmatchedIDDropsSilently(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	loginAdmin(t, svc)

	before, err := svc.State(ctx)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	state, matched, err := svc.UpdateClient(ctx, domain.Client{ID: "CL-999", FirstName: "Ghost"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if matched {
		t.Fatal("unmatched id must report false")
	}
	if len(state.Clients) != len(before.Clients) {
		t.Fatal("collection must be unchanged")
	}
}

func TestDeleteProviderRefetchesState(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	loginAdmin(t, svc)

	state, matched, err := svc.DeleteProvider(ctx, "PR-002")
	if err != nil || !matched {
		t.Fatalf("delete: matched=%v err=%v", matched, err)
	}
	for _, p := range state.Providers {
		if p.ID == "PR-002" {
			t.Fatal("deleted provider still present in refetched state")
		}
	}
}

func TestUpdateProviderAttributesActor(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	if _, _, err := svc.Signup(ctx, domain.User{Name: "Dana Field", Email: "dana@odaycare.com", Password: "pw", Role: "Staff"}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	provider, _ := svc.Store().GetProvider("PR-001")
	state, matched, err := svc.UpdateProvider(ctx, provider)
	if err != nil || !matched {
		t.Fatalf("update provider: matched=%v err=%v", matched, err)
	}
	var updated domain.Provider
	for _, p := range state.Providers {
		if p.ID == "PR-001" {
			updated = p
		}
	}
	last := updated.AuditLog[len(updated.AuditLog)-1]
	if last.User != "Dana Field" || last.Details != "Provider details updated." {
		t.Fatalf("unexpected audit attribution %+v", last)
	}
}

func TestProfileSumTypeLookup(t *testing.T) {
	svc := newTestService(t)

	profile, err := svc.Profile("CL-001")
	if err != nil {
		t.Fatalf("client profile: %v", err)
	}
	if profile.Kind() != domain.KindClient || profile.FullName() != "John Doe" {
		t.Fatalf("unexpected profile %v %q", profile.Kind(), profile.FullName())
	}

	profile, err = svc.Profile("PR-001")
	if err != nil {
		t.Fatalf("provider profile: %v", err)
	}
	if profile.Kind() != domain.KindProvider {
		t.Fatalf("unexpected kind %v", profile.Kind())
	}

	if _, err := svc.Profile("nope"); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
