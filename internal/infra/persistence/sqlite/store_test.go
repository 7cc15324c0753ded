package sqlite

import (
	"carecore/pkg/domain"
	"context"
	"path/filepath"
	"testing"
)

func TestOpenSeedsEmptyDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "care.db")
	store, err := Open(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	if got := len(store.ListClients()); got != 3 {
		t.Fatalf("expected seeded clients, got %d", got)
	}
	if got := len(store.ListClaims()); got != 5 {
		t.Fatalf("expected seeded claims, got %d", got)
	}
}

func TestStatePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "care.db")
	store, err := Open(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	var created domain.Client
	if _, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		c, err := tx.CreateClient(domain.Client{FirstName: "Durable", LastName: "Client"})
		created = c
		return err
	}); err != nil {
		t.Fatalf("create client: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	clients := reopened.ListClients()
	if len(clients) != 4 {
		t.Fatalf("expected 4 clients after reopen, got %d", len(clients))
	}
	if clients[0].ID != created.ID {
		t.Fatalf("expected newest client first after reload, got %q", clients[0].ID)
	}
}

func TestOpenRejectsCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "care.db")
	store, err := Open(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := store.db.Exec(
		`UPDATE state SET payload = ? WHERE key = ?`, []byte("{not json"), documentKey,
	); err != nil {
		t.Fatalf("corrupt payload: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, err := Open(path, nil); err == nil {
		t.Fatal("expected open to fail on corrupt document")
	}
}

func TestFailedTransactionDoesNotPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "care.db")
	store, err := Open(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if _, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		if _, err := tx.CreateClient(domain.Client{FirstName: "Ghost"}); err != nil {
			return err
		}
		return context.Canceled
	}); err == nil {
		t.Fatal("expected transaction error")
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if got := len(reopened.ListClients()); got != 3 {
		t.Fatalf("expected rolled back roster, got %d clients", got)
	}
}
