package domain

import "context"

// Transaction exposes the domain operations that a persistence implementation
// must support within an atomic scope. Create operations assign an id when
// the caller leaves it empty and record a Change entry. Replace operations
// overwrite the record whose id matches, or change nothing and report false
// when no record matches; the legacy system treated that case as a silent
// no-op and callers decide whether to surface it.
type Transaction interface {
	Snapshot() TransactionView

	CreateClient(Client) (Client, error)
	ReplaceClient(Client) bool
	DeleteClient(id string) bool

	CreateProvider(Provider) (Provider, error)
	ReplaceProvider(Provider) bool
	DeleteProvider(id string) bool

	CreateClaim(Claim) (Claim, error)
	ReplaceClaim(Claim) bool
	// BatchUpdateClaimStatus sets the status of every claim whose id is in
	// ids, leaves all others untouched, and returns the number of claims
	// affected. The whole batch is one mutation, not one per claim.
	BatchUpdateClaimStatus(ids []string, status ClaimStatus) int

	CreateEvent(CalendarEvent) (CalendarEvent, error)
	ReplaceEvent(CalendarEvent) bool
	DeleteEvent(id string) bool

	// CreateUser rejects an email already present in the user collection
	// (case-sensitive exact match) with a DuplicateEmailError.
	CreateUser(User) (User, error)
	ReplaceUser(User) bool
	FindUserByEmail(email string) (User, bool)
}

// TransactionView provides read-only access to snapshot data for rules and
// callers. Listed collections preserve document order.
type TransactionView interface {
	ListClients() []Client
	ListProviders() []Provider
	ListClaims() []Claim
	ListEvents() []CalendarEvent
	ListUsers() []User
	FindClient(id string) (Client, bool)
	FindProvider(id string) (Provider, bool)
	FindClaim(id string) (Claim, bool)
	FindEvent(id string) (CalendarEvent, bool)
	FindUserByEmail(email string) (User, bool)
}

// PersistentStore is a minimal abstraction over durable backends. It mirrors
// the subset of store capabilities used directly by higher layers.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(TransactionView) error) error
	ListClients() []Client
	ListProviders() []Provider
	ListClaims() []Claim
	ListEvents() []CalendarEvent
	ListUsers() []User
	GetClient(id string) (Client, bool)
	GetProvider(id string) (Provider, bool)
}

// DuplicateEmailError rejects a user creation whose email collides with an
// existing account.
type DuplicateEmailError struct {
	Email string
}

func (e DuplicateEmailError) Error() string {
	return "user with this email already exists: " + e.Email
}
