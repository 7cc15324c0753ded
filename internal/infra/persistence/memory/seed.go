package memory

import (
	"carecore/pkg/domain"
	"time"
)

func seedDocuments() []domain.Document {
	return []domain.Document{
		{ID: "DOC-001", Name: "Identification.pdf", UploadDate: "2023-01-15", Status: domain.DocumentVerified},
		{ID: "DOC-002", Name: "Proof of Address.png", UploadDate: "2023-01-15", Status: domain.DocumentVerified},
		{ID: "DOC-003", Name: "Insurance Card.pdf", UploadDate: "2023-02-01", Status: domain.DocumentPending},
	}
}

func seedAuditLog() []domain.AuditLogEntry {
	return []domain.AuditLogEntry{
		{ID: "LOG-001", User: "Admin User", Action: domain.AuditCreate, Details: "Profile created.", Timestamp: "2023-01-10 09:30 AM"},
		{ID: "LOG-002", User: "Jane Doe", Action: domain.AuditUpdate, Details: "Updated contact information.", Timestamp: "2023-03-22 02:45 PM"},
	}
}

// SeedClients returns the bootstrap client roster used when no document
// exists yet.
func SeedClients() []domain.Client {
	return []domain.Client{
		{
			ID: "CL-001", FirstName: "John", LastName: "Doe", Email: "john.doe@example.com", Phone: "123-456-7890",
			DateOfBirth: "1990-05-15", Address: "123 Main St, Anytown, USA", Status: domain.ClientActive, Payer: "United Healthcare",
			CareManager: "Sarah Smith", AdmissionDate: "2023-01-10", Documents: seedDocuments(), AuditLog: seedAuditLog(),
		},
		{
			ID: "CL-002", FirstName: "Jane", LastName: "Smith", Email: "jane.smith@example.com", Phone: "098-765-4321",
			DateOfBirth: "1985-08-20", Address: "456 Oak Ave, Anytown, USA", Status: domain.ClientPending, Payer: "Aetna",
			CareManager: "Robert Jones", AdmissionDate: "2023-02-20", Documents: []domain.Document{}, AuditLog: seedAuditLog()[:1],
		},
		{
			ID: "CL-003", FirstName: "Peter", LastName: "Jones", Email: "peter.jones@example.com", Phone: "555-555-5555",
			DateOfBirth: "2001-11-30", Address: "789 Pine Ln, Anytown, USA", Status: domain.ClientInactive, Payer: "Cigna",
			CareManager: "Sarah Smith", AdmissionDate: "2022-11-15", Documents: []domain.Document{}, AuditLog: []domain.AuditLogEntry{},
		},
	}
}

// SeedProviders returns the bootstrap provider roster.
func SeedProviders() []domain.Provider {
	return []domain.Provider{
		{
			ID: "PR-001", FirstName: "Alice", LastName: "Williams", Email: "alice.w@provider.com", Phone: "321-654-0987",
			Specialty: "Behavioral Therapist", Status: domain.ProviderActive, HireDate: "2022-06-01",
			Documents: seedDocuments(), AuditLog: seedAuditLog(),
			Certifications: []domain.Certification{
				{ID: "CERT-01", Name: "BCBA", IssueDate: "2022-05-01", ExpiryDate: "2024-12-31", Status: domain.CertificationActive},
			},
		},
		{
			ID: "PR-002", FirstName: "Bob", LastName: "Brown", Email: "bob.b@provider.com", Phone: "654-321-7890",
			Specialty: "Speech Therapist", Status: domain.ProviderOnHold, HireDate: "2021-09-15",
			Documents: []domain.Document{}, AuditLog: seedAuditLog()[:1],
			Certifications: []domain.Certification{},
		},
	}
}

// SeedClaims returns the bootstrap billing ledger.
func SeedClaims() []domain.Claim {
	return []domain.Claim{
		{ID: "CLM-58920", ClientName: "John Doe", Payer: "United Healthcare", ServiceFrom: "2023-04-01", ServiceTo: "2023-04-07", Amount: 450.00, Status: domain.ClaimPaid},
		{ID: "CLM-58921", ClientName: "Jane Smith", Payer: "Aetna", ServiceFrom: "2023-04-01", ServiceTo: "2023-04-07", Amount: 300.00, Status: domain.ClaimSubmitted},
		{ID: "CLM-58922", ClientName: "Peter Jones", Payer: "Cigna", ServiceFrom: "2023-03-20", ServiceTo: "2023-03-26", Amount: 600.50, Status: domain.ClaimDenied},
		{ID: "CLM-58923", ClientName: "John Doe", Payer: "United Healthcare", ServiceFrom: "2023-04-08", ServiceTo: "2023-04-14", Amount: 450.00, Status: domain.ClaimReadyToBill},
		{ID: "CLM-58924", ClientName: "Jane Smith", Payer: "Aetna", ServiceFrom: "2023-04-08", ServiceTo: "2023-04-14", Amount: 300.00, Status: domain.ClaimDraft},
	}
}

// SeedUsers returns the bootstrap account list. The administrator credential
// is stored as entered; see User for the handling contract.
func SeedUsers() []domain.User {
	return []domain.User{
		{ID: "user-001", Name: "Admin User", Email: "admin@odaycare.com", Password: "password123", Role: "Administrator"},
	}
}

func eventTime(now time.Time, dayOffset, hour, minute int) time.Time {
	day := now.AddDate(0, 0, dayOffset)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

// SeedEvents returns the bootstrap schedule, anchored relative to now so the
// calendar always opens on a populated day.
func SeedEvents(now time.Time) []domain.CalendarEvent {
	return []domain.CalendarEvent{
		{ID: "EVT-001", Title: "Therapy Session", ClientName: "John Doe", Start: eventTime(now, 0, 9, 0), End: eventTime(now, 0, 10, 0), TeamMemberID: "PR-001"},
		{ID: "EVT-002", Title: "Initial Assessment", ClientName: "Jane Smith", Start: eventTime(now, 0, 11, 0), End: eventTime(now, 0, 12, 30), TeamMemberID: "PR-002"},
		{ID: "EVT-003", Title: "Speech Therapy", ClientName: "Peter Jones", Start: eventTime(now, 1, 14, 0), End: eventTime(now, 1, 15, 0), TeamMemberID: "PR-002"},
	}
}

// SeedSnapshot assembles the complete bootstrap document.
func SeedSnapshot(now time.Time) Snapshot {
	return Snapshot{
		Clients:   SeedClients(),
		Providers: SeedProviders(),
		Claims:    SeedClaims(),
		Users:     SeedUsers(),
		Events:    SeedEvents(now),
	}
}
