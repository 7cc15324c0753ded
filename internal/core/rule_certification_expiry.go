package core

import (
	"carecore/pkg/domain"
	"context"
	"fmt"
	"time"
)

// NewCertificationExpiryRule returns a warn-severity rule flagging provider
// certifications whose recorded status disagrees with their expiry date. It
// never blocks: stale statuses are surfaced, not rejected.
func NewCertificationExpiryRule(clock func() time.Time) domain.Rule {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return certificationExpiryRule{clock: clock}
}

type certificationExpiryRule struct {
	clock func() time.Time
}

func (certificationExpiryRule) Name() string { return "certification_expiry_status" }

func (r certificationExpiryRule) Evaluate(_ context.Context, view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	now := r.clock()
	res := domain.Result{}
	for _, provider := range view.ListProviders() {
		for _, cert := range provider.Certifications {
			expiry, err := time.Parse("2006-01-02", cert.ExpiryDate)
			if err != nil {
				res.Violations = append(res.Violations, domain.Violation{
					Rule:     "certification_expiry_status",
					Severity: domain.SeverityWarn,
					Message:  fmt.Sprintf("certification %s of provider %s has unparseable expiry %q", cert.ID, provider.ID, cert.ExpiryDate),
					Entity:   domain.EntityProvider,
					EntityID: provider.ID,
				})
				continue
			}
			if expiry.Before(now) && cert.Status == domain.CertificationActive {
				res.Violations = append(res.Violations, domain.Violation{
					Rule:     "certification_expiry_status",
					Severity: domain.SeverityWarn,
					Message:  fmt.Sprintf("certification %s (%s) of provider %s expired %s but is still marked Active", cert.ID, cert.Name, provider.ID, cert.ExpiryDate),
					Entity:   domain.EntityProvider,
					EntityID: provider.ID,
				})
			}
		}
	}
	return res, nil
}
