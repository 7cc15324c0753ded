package analytics

import (
	"strings"
	"testing"
	"time"

	"carecore/pkg/domain"
)

func providerWithExpiry(expiry string) []domain.Provider {
	return []domain.Provider{{
		ID: "PR-001", FirstName: "Alice", LastName: "Williams",
		Certifications: []domain.Certification{
			{ID: "CERT-01", Name: "BCBA", ExpiryDate: expiry, Status: domain.CertificationActive},
		},
	}}
}

func TestCredentialingAlertBoundary(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	// Exactly 30 days out: one alert.
	alerts := CredentialingAlerts(providerWithExpiry("2024-07-01"), now)
	if len(alerts) != 1 {
		t.Fatalf("30 days out: got %d alerts, want 1", len(alerts))
	}
	if alerts[0].Priority != "High" || !strings.Contains(alerts[0].Description, "BCBA") {
		t.Fatalf("unexpected alert %+v", alerts[0])
	}

	// 31 days out: none.
	if alerts := CredentialingAlerts(providerWithExpiry("2024-07-02"), now); len(alerts) != 0 {
		t.Fatalf("31 days out: got %d alerts, want 0", len(alerts))
	}

	// Expired yesterday: none.
	if alerts := CredentialingAlerts(providerWithExpiry("2024-05-31"), now); len(alerts) != 0 {
		t.Fatalf("expired: got %d alerts, want 0", len(alerts))
	}

	// Expiring this instant: excluded, days-until-expiry is not positive.
	if alerts := CredentialingAlerts(providerWithExpiry("2024-06-01"), now); len(alerts) != 0 {
		t.Fatalf("same-day expiry: got %d alerts, want 0", len(alerts))
	}
}

func TestCredentialingAlertMessageRoundsUp(t *testing.T) {
	// Mid-day now makes the interval fractional; the rendered day count
	// rounds up the way the legacy dashboard did.
	now := time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)
	alerts := CredentialingAlerts(providerWithExpiry("2024-06-26"), now)
	if len(alerts) != 1 {
		t.Fatalf("got %d alerts, want 1", len(alerts))
	}
	if !strings.Contains(alerts[0].Description, "expires in 25 days.") {
		t.Fatalf("unexpected description %q", alerts[0].Description)
	}
}

func TestCredentialingAlertsSkipUnparseableDates(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if alerts := CredentialingAlerts(providerWithExpiry("soon"), now); len(alerts) != 0 {
		t.Fatalf("unparseable expiry must not alert, got %+v", alerts)
	}
}
