package analytics

import (
	"fmt"
	"math"
	"time"

	"carecore/pkg/domain"
)

// Alert is a dashboard notification.
type Alert struct {
	ID          string
	Title       string
	Description string
	Priority    string
	Timestamp   string
}

// certExpiryLayout is the stored date-only format for certification expiry.
const certExpiryLayout = "2006-01-02"

// CredentialingAlerts emits one High alert per provider certification whose
// expiry falls within the next 30 days. Days until expiry is the fractional
// interval (expiry - now) in days; already expired or exactly-expired
// certifications (days <= 0) produce no alert. Unparseable expiry dates are
// skipped.
func CredentialingAlerts(providers []domain.Provider, now time.Time) []Alert {
	var alerts []Alert
	for _, p := range providers {
		for _, cert := range p.Certifications {
			expiry, err := time.Parse(certExpiryLayout, cert.ExpiryDate)
			if err != nil {
				continue
			}
			days := expiry.Sub(now).Hours() / 24
			if days <= 0 || days > 30 {
				continue
			}
			alerts = append(alerts, Alert{
				ID:          fmt.Sprintf("alert-%s-%s", p.ID, cert.ID),
				Title:       "Credentialing Expiring",
				Description: fmt.Sprintf("%s %s's %s cert expires in %d days.", p.FirstName, p.LastName, cert.Name, int(math.Ceil(days))),
				Priority:    "High",
				Timestamp:   "Today",
			})
		}
	}
	return alerts
}
