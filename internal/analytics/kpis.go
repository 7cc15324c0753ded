// Package analytics computes derived state over a fetched snapshot: dashboard
// KPIs, billing totals, credentialing alerts, and batch eligibility. All
// functions are pure; callers recompute from current inputs.
package analytics

import (
	"fmt"

	"carecore/pkg/domain"
)

// DashboardKPIs is the headline aggregate set for the dashboard.
type DashboardKPIs struct {
	ActiveClients   int
	ActiveProviders int
	PendingClaims   float64
	RevenueMTD      float64
}

// Summarize computes the dashboard KPIs. Pending Claims sums every claim in
// Ready to Bill or Submitted status. Revenue (MTD) reproduces the system of
// record's placeholder formula, half the sum of Paid claim amounts; it is not
// a real month-to-date figure and deliberately stays that way.
func Summarize(clients []domain.Client, providers []domain.Provider, claims []domain.Claim) DashboardKPIs {
	kpis := DashboardKPIs{}
	for _, c := range clients {
		if c.Status == domain.ClientActive {
			kpis.ActiveClients++
		}
	}
	for _, p := range providers {
		if p.Status == domain.ProviderActive {
			kpis.ActiveProviders++
		}
	}
	paid := 0.0
	for _, claim := range claims {
		switch claim.Status {
		case domain.ClaimReadyToBill, domain.ClaimSubmitted:
			kpis.PendingClaims += claim.Amount
		case domain.ClaimPaid:
			paid += claim.Amount
		}
	}
	kpis.RevenueMTD = paid / 2
	return kpis
}

// BillingTotals groups claim amounts by billing stage.
type BillingTotals struct {
	ReadyToBill float64
	Submitted   float64
	Paid        float64
	Denied      float64
}

// SummarizeBilling sums claim amounts per stage.
func SummarizeBilling(claims []domain.Claim) BillingTotals {
	totals := BillingTotals{}
	for _, claim := range claims {
		switch claim.Status {
		case domain.ClaimReadyToBill:
			totals.ReadyToBill += claim.Amount
		case domain.ClaimSubmitted:
			totals.Submitted += claim.Amount
		case domain.ClaimPaid:
			totals.Paid += claim.Amount
		case domain.ClaimDenied:
			totals.Denied += claim.Amount
		}
	}
	return totals
}

// FormatUSD renders an amount as currency with exactly two decimal places.
func FormatUSD(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// ReadyToSubmit returns the claims eligible for batch submission: status
// exactly Ready to Bill. An empty result means the batch operation must
// report zero work done.
func ReadyToSubmit(claims []domain.Claim) []domain.Claim {
	var ready []domain.Claim
	for _, claim := range claims {
		if claim.Status == domain.ClaimReadyToBill {
			ready = append(ready, claim)
		}
	}
	return ready
}
