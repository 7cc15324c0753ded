package core

import (
	"carecore/pkg/domain"
	"context"
	"errors"
	"testing"
)

func TestCreateClaimDefaultsToDraft(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	created, state, err := svc.CreateClaim(ctx, domain.Claim{
		ClientName: "John Doe", ServiceFrom: "2024-06-01", ServiceTo: "2024-06-07", Amount: 120,
	})
	if err != nil {
		t.Fatalf("create claim: %v", err)
	}
	if created.Status != domain.ClaimDraft {
		t.Fatalf("empty status must default to Draft, got %q", created.Status)
	}
	if state.Claims[0].ID != created.ID {
		t.Fatal("new claim must lead the refetched collection")
	}
}

func TestUpdateClaimDraftOnly(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	// CLM-58924 is the seeded Draft; CLM-58920 is Paid.
	draft, _ := findClaim(t, svc, "CLM-58924")
	draft.Amount = 305.25
	state, matched, err := svc.UpdateClaim(ctx, draft)
	if err != nil || !matched {
		t.Fatalf("draft edit: matched=%v err=%v", matched, err)
	}
	for _, c := range state.Claims {
		if c.ID == draft.ID && c.Amount != 305.25 {
			t.Fatalf("draft edit not applied, amount %v", c.Amount)
		}
	}

	paid, _ := findClaim(t, svc, "CLM-58920")
	paid.Amount = 1
	_, _, err = svc.UpdateClaim(ctx, paid)
	var notEditable ClaimNotEditableError
	if !errors.As(err, &notEditable) {
		t.Fatalf("expected ClaimNotEditableError, got %v", err)
	}
	if notEditable.Status != domain.ClaimPaid {
		t.Fatalf("error should carry the blocking status, got %q", notEditable.Status)
	}
	if after, _ := findClaim(t, svc, "CLM-58920"); after.Amount != 450 {
		t.Fatalf("rejected edit must not change the claim, amount %v", after.Amount)
	}
}

func TestSubmitReadyClaims(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	// Seed holds one Ready to Bill claim (CLM-58923) next to a Draft one.
	affected, state, err := svc.SubmitReadyClaims(ctx)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 submitted claim, got %d", affected)
	}
	for _, c := range state.Claims {
		switch c.ID {
		case "CLM-58923":
			if c.Status != domain.ClaimSubmitted {
				t.Fatalf("CLM-58923 should be Submitted, got %q", c.Status)
			}
		case "CLM-58924":
			if c.Status != domain.ClaimDraft {
				t.Fatalf("draft claim must be untouched, got %q", c.Status)
			}
		}
	}

	// A second pass finds nothing eligible.
	if _, _, err := svc.SubmitReadyClaims(ctx); !errors.Is(err, ErrNoClaimsReady) {
		t.Fatalf("expected ErrNoClaimsReady, got %v", err)
	}
}

func TestUpdateClaimStatusSingle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	state, matched, err := svc.UpdateClaimStatus(ctx, "CLM-58921", domain.ClaimPaid)
	if err != nil || !matched {
		t.Fatalf("status update: matched=%v err=%v", matched, err)
	}
	for _, c := range state.Claims {
		if c.ID == "CLM-58921" && c.Status != domain.ClaimPaid {
			t.Fatalf("status not applied, got %q", c.Status)
		}
	}

	if _, matched, err := svc.UpdateClaimStatus(ctx, "CLM-0", domain.ClaimPaid); err != nil || matched {
		t.Fatalf("unknown id: matched=%v err=%v", matched, err)
	}
}

func findClaim(t *testing.T, svc *Service, id string) (domain.Claim, bool) {
	t.Helper()
	for _, c := range svc.Store().ListClaims() {
		if c.ID == id {
			return c, true
		}
	}
	t.Fatalf("claim %s not seeded", id)
	return domain.Claim{}, false
}
