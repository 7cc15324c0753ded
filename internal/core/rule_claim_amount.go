package core

import (
	"carecore/pkg/domain"
	"context"
	"fmt"
)

// NewClaimAmountRule returns the in-transaction rule rejecting claims with a
// negative billed amount.
func NewClaimAmountRule() domain.Rule {
	return claimAmountRule{}
}

type claimAmountRule struct{}

func (claimAmountRule) Name() string { return "claim_amount_nonnegative" }

func (claimAmountRule) Evaluate(_ context.Context, _ domain.RuleView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, change := range changes {
		if change.Entity != domain.EntityClaim || change.Action == domain.ActionDelete {
			continue
		}
		claim, ok := change.After.(domain.Claim)
		if !ok {
			continue
		}
		if claim.Amount < 0 {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "claim_amount_nonnegative",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("claim %s has negative amount %.2f", claim.ID, claim.Amount),
				Entity:   domain.EntityClaim,
				EntityID: claim.ID,
			})
		}
	}
	return res, nil
}
