package core

import (
	"errors"
	"fmt"

	"carecore/pkg/domain"
)

// ErrInvalidCredentials is returned for any failed login. The message is
// deliberately generic: callers must not learn whether the email or the
// password was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrNoClaimsReady reports a batch submit that found nothing in Ready to Bill
// status. Callers present this as "nothing to do" rather than a confirmation.
var ErrNoClaimsReady = errors.New("no claims in Ready to Bill status")

// ErrInvalidTimeRange rejects an appointment whose end does not come strictly
// after its start. Raised before any store call.
var ErrInvalidTimeRange = errors.New("appointment end must be after start")

// ErrNotAuthenticated is returned by operations that require a session.
var ErrNotAuthenticated = errors.New("no authenticated user")

// ErrNotFound reports a lookup that matched nothing.
type ErrNotFound struct {
	Entity string
	ID     string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// ClaimNotEditableError rejects edits to a claim that has left Draft status.
type ClaimNotEditableError struct {
	ID     string
	Status domain.ClaimStatus
}

func (e ClaimNotEditableError) Error() string {
	return fmt.Sprintf("claim %q is %s and can no longer be edited", e.ID, e.Status)
}
