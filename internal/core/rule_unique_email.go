package core

import (
	"carecore/pkg/domain"
	"context"
	"fmt"
)

// NewUniqueEmailRule returns the in-transaction rule verifying no two user
// accounts share an email. Matching is exact and case sensitive, the same
// comparison the transaction itself applies on create.
func NewUniqueEmailRule() domain.Rule {
	return uniqueEmailRule{}
}

type uniqueEmailRule struct{}

func (uniqueEmailRule) Name() string { return "user_email_unique" }

func (uniqueEmailRule) Evaluate(_ context.Context, view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	seen := make(map[string]string)
	res := domain.Result{}
	for _, user := range view.ListUsers() {
		if prior, ok := seen[user.Email]; ok {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "user_email_unique",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("users %s and %s share email %s", prior, user.ID, user.Email),
				Entity:   domain.EntityUser,
				EntityID: user.ID,
			})
			continue
		}
		seen[user.Email] = user.ID
	}
	return res, nil
}
