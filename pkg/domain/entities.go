// Package domain defines the core persistent entities, value types, and
// rule evaluation primitives used by carecore.
package domain

import (
	"fmt"
	"time"
)

// EntityType identifies the type of record stored in the core domain.
type EntityType string

// Supported entity type identifiers used in Change records and snapshot collections.
const (
	// EntityClient identifies a client (care recipient) profile record.
	EntityClient EntityType = "client"
	// EntityProvider identifies a provider (care giver) profile record.
	EntityProvider EntityType = "provider"
	// EntityClaim identifies a billing claim record.
	EntityClaim EntityType = "claim"
	// EntityEvent identifies a scheduling calendar event record.
	EntityEvent EntityType = "event"
	// EntityUser identifies an application user account record.
	EntityUser EntityType = "user"
)

// ClientStatus enumerates the client lifecycle states.
type ClientStatus string

// Canonical client statuses. The string values are part of the persisted
// document format and must not change.
const (
	ClientActive   ClientStatus = "Active"
	ClientInactive ClientStatus = "Inactive"
	ClientPending  ClientStatus = "Pending"
)

// ProviderStatus enumerates the provider lifecycle states.
type ProviderStatus string

// Canonical provider statuses, serialized verbatim.
const (
	ProviderActive   ProviderStatus = "Active"
	ProviderOnHold   ProviderStatus = "On Hold"
	ProviderInactive ProviderStatus = "Inactive"
)

// DocumentStatus enumerates verification states of an uploaded document.
type DocumentStatus string

// Canonical document statuses.
const (
	DocumentVerified DocumentStatus = "Verified"
	DocumentPending  DocumentStatus = "Pending"
	DocumentExpired  DocumentStatus = "Expired"
)

// ClaimStatus enumerates the billing claim lifecycle states.
type ClaimStatus string

// Canonical claim statuses. "Ready to Bill" keeps its legacy spelling because
// it is stored verbatim in the persisted document.
const (
	ClaimDraft       ClaimStatus = "Draft"
	ClaimReadyToBill ClaimStatus = "Ready to Bill"
	ClaimSubmitted   ClaimStatus = "Submitted"
	ClaimPaid        ClaimStatus = "Paid"
	ClaimDenied      ClaimStatus = "Denied"
)

// CertificationStatus enumerates certification validity states.
type CertificationStatus string

// Canonical certification statuses.
const (
	CertificationActive  CertificationStatus = "Active"
	CertificationExpired CertificationStatus = "Expired"
)

// AuditAction identifies the kind of mutation recorded in a profile audit log.
type AuditAction string

// Audit actions recorded against profiles.
const (
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
	AuditDelete AuditAction = "DELETE"
)

// Document describes an uploaded file attached to exactly one profile.
// BlobKey locates the stored content in the blob store; legacy documents
// without stored content leave it empty.
type Document struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	UploadDate string         `json:"uploadDate"`
	Status     DocumentStatus `json:"status"`
	BlobKey    string         `json:"blobKey,omitempty"`
}

// AuditLogEntry records one mutation of a profile. Entries are immutable once
// created and the log is append-only.
type AuditLogEntry struct {
	ID        string      `json:"id"`
	User      string      `json:"user"`
	Action    AuditAction `json:"action"`
	Details   string      `json:"details"`
	Timestamp string      `json:"timestamp"`
}

// Certification describes a credential held by a provider, tracked for
// expiry alerting.
type Certification struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	IssueDate  string              `json:"issueDate"`
	ExpiryDate string              `json:"expiryDate"`
	Status     CertificationStatus `json:"status"`
}

// Client is a care recipient profile. Documents and the audit log are owned
// exclusively by the client and serialize inline with it.
type Client struct {
	ID            string          `json:"id"`
	FirstName     string          `json:"firstName"`
	LastName      string          `json:"lastName"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	DateOfBirth   string          `json:"dateOfBirth"`
	Address       string          `json:"address"`
	Status        ClientStatus    `json:"status"`
	Payer         string          `json:"payer"`
	CareManager   string          `json:"careManager"`
	AdmissionDate string          `json:"admissionDate"`
	Documents     []Document      `json:"documents"`
	AuditLog      []AuditLogEntry `json:"auditLog"`
}

// Provider is a care giver profile with tracked certifications.
type Provider struct {
	ID             string          `json:"id"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Specialty      string          `json:"specialty"`
	Status         ProviderStatus  `json:"status"`
	HireDate       string          `json:"hireDate"`
	Certifications []Certification `json:"certifications"`
	Documents      []Document      `json:"documents"`
	AuditLog       []AuditLogEntry `json:"auditLog"`
}

// Claim is an independent billing record. ClientName is denormalized; a
// dangling name after a client deletion is tolerated.
type Claim struct {
	ID          string      `json:"id"`
	ClientName  string      `json:"clientName"`
	Payer       string      `json:"payer"`
	ServiceFrom string      `json:"serviceFrom"`
	ServiceTo   string      `json:"serviceTo"`
	Amount      float64     `json:"amount"`
	Status      ClaimStatus `json:"status"`
}

// CalendarEvent is a scheduled appointment. Start and End serialize as
// RFC 3339 timestamps and must survive a store round trip exactly.
// End strictly after Start is enforced at the service boundary.
type CalendarEvent struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	ClientName   string    `json:"clientName"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	TeamMemberID string    `json:"teamMemberId"`
}

// User is an application account. Password is stored as entered by the
// source system; it must never be copied into the session cache.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
}

// Public returns a copy of the user with the credential field cleared,
// suitable for caching in session state.
func (u User) Public() User {
	u.Password = ""
	return u
}

// ProfileKind discriminates the two profile variants.
type ProfileKind string

// Profile variant tags.
const (
	KindClient   ProfileKind = "client"
	KindProvider ProfileKind = "provider"
)

// Profile is the tagged union over Client and Provider. Exactly one variant
// pointer is set; code branching on profile kind switches on Kind rather than
// probing fields structurally.
type Profile struct {
	client   *Client
	provider *Provider
}

// ClientProfile wraps a client as a Profile.
func ClientProfile(c Client) Profile { return Profile{client: &c} }

// ProviderProfile wraps a provider as a Profile.
func ProviderProfile(p Provider) Profile { return Profile{provider: &p} }

// Kind reports which variant the profile holds.
func (p Profile) Kind() ProfileKind {
	if p.client != nil {
		return KindClient
	}
	return KindProvider
}

// Client returns the client variant. ok is false for provider profiles.
func (p Profile) Client() (Client, bool) {
	if p.client == nil {
		return Client{}, false
	}
	return *p.client, true
}

// Provider returns the provider variant. ok is false for client profiles.
func (p Profile) Provider() (Provider, bool) {
	if p.provider == nil {
		return Provider{}, false
	}
	return *p.provider, true
}

// ID returns the identifier of whichever variant is held.
func (p Profile) ID() string {
	switch p.Kind() {
	case KindClient:
		return p.client.ID
	case KindProvider:
		return p.provider.ID
	}
	return ""
}

// FullName renders the profile's display name.
func (p Profile) FullName() string {
	switch p.Kind() {
	case KindClient:
		return fmt.Sprintf("%s %s", p.client.FirstName, p.client.LastName)
	case KindProvider:
		return fmt.Sprintf("%s %s", p.provider.FirstName, p.provider.LastName)
	}
	return ""
}

// AuditTrail returns the owned audit log of whichever variant is held.
func (p Profile) AuditTrail() []AuditLogEntry {
	switch p.Kind() {
	case KindClient:
		return p.client.AuditLog
	case KindProvider:
		return p.provider.AuditLog
	}
	return nil
}
