package core

import (
	"carecore/pkg/domain"
	"context"
)

// CreateClaim stores a new billing claim. An empty status defaults to Draft.
func (s *Service) CreateClaim(ctx context.Context, claim domain.Claim) (domain.Claim, AppState, error) {
	if claim.Status == "" {
		claim.Status = domain.ClaimDraft
	}

	var created domain.Claim
	state, err := s.mutate(ctx, "create_claim", func(tx Transaction) (string, error) {
		c, err := tx.CreateClaim(claim)
		created = c
		return c.ID, err
	})
	return created, state, err
}

// UpdateClaim replaces a claim's details. Edits are only permitted while the
// stored claim is still Draft; later stages change through status
// transitions only.
func (s *Service) UpdateClaim(ctx context.Context, claim domain.Claim) (AppState, bool, error) {
	matched := false
	state, err := s.mutate(ctx, "update_claim", func(tx Transaction) (string, error) {
		stored, ok := tx.Snapshot().FindClaim(claim.ID)
		if !ok {
			return claim.ID, nil
		}
		if stored.Status != domain.ClaimDraft {
			return claim.ID, ClaimNotEditableError{ID: claim.ID, Status: stored.Status}
		}
		matched = tx.ReplaceClaim(claim)
		return claim.ID, nil
	})
	if err == nil && !matched {
		s.logger.Warn("update matched no claim", "claim_id", claim.ID)
	}
	return state, matched, err
}

// UpdateClaimStatus transitions a single claim's status.
func (s *Service) UpdateClaimStatus(ctx context.Context, id string, status domain.ClaimStatus) (AppState, bool, error) {
	matched := false
	state, err := s.mutate(ctx, "update_claim_status", func(tx Transaction) (string, error) {
		matched = tx.BatchUpdateClaimStatus([]string{id}, status) == 1
		return id, nil
	})
	return state, matched, err
}

// SubmitReadyClaims transitions every claim in Ready to Bill status to
// Submitted in one persisted write. With nothing ready it reports
// ErrNoClaimsReady so callers can present "nothing to do" instead of a false
// confirmation.
func (s *Service) SubmitReadyClaims(ctx context.Context) (int, AppState, error) {
	submitted := 0
	state, err := s.mutate(ctx, "submit_ready_claims", func(tx Transaction) (string, error) {
		var ids []string
		for _, claim := range tx.Snapshot().ListClaims() {
			if claim.Status == domain.ClaimReadyToBill {
				ids = append(ids, claim.ID)
			}
		}
		if len(ids) == 0 {
			return "", ErrNoClaimsReady
		}
		submitted = tx.BatchUpdateClaimStatus(ids, domain.ClaimSubmitted)
		return "", nil
	})
	return submitted, state, err
}
