package core

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	blobcore "carecore/internal/blob/core"
	blobmemory "carecore/internal/infra/blob/memory"
)

func newDocumentService(t *testing.T) (*Service, blobcore.Store) {
	t.Helper()
	blobs := blobmemory.New()
	svc := newTestService(t, WithBlobStore(blobs))
	loginAdmin(t, svc)
	return svc, blobs
}

func TestUploadDocumentToClient(t *testing.T) {
	ctx := context.Background()
	svc, blobs := newDocumentService(t)

	doc, state, err := svc.UploadDocument(ctx, "CL-001", "intake-form.pdf", "application/pdf", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if doc.Status != "Pending" || doc.Name != "intake-form.pdf" {
		t.Fatalf("unexpected document %+v", doc)
	}

	var client = state.Clients[0]
	for _, c := range state.Clients {
		if c.ID == "CL-001" {
			client = c
		}
	}
	found := false
	for _, d := range client.Documents {
		if d.ID == doc.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("uploaded document missing from profile")
	}
	last := client.AuditLog[len(client.AuditLog)-1]
	if last.Details != "Uploaded document intake-form.pdf." {
		t.Fatalf("missing upload audit entry, last=%+v", last)
	}

	obj, rc, err := blobs.Get(ctx, doc.BlobKey)
	if err != nil {
		t.Fatalf("blob get: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "%PDF-1.4" {
		t.Fatalf("blob content = %q", data)
	}
	if obj.Metadata["uploadedBy"] != "Admin User" {
		t.Fatalf("uploader metadata = %q", obj.Metadata["uploadedBy"])
	}
}

func TestUploadDocumentUnknownProfileCleansUpBlob(t *testing.T) {
	ctx := context.Background()
	svc, blobs := newDocumentService(t)

	_, _, err := svc.UploadDocument(ctx, "CL-999", "stray.pdf", "application/pdf", strings.NewReader("x"))
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	objects, err := blobs.List(ctx, "profiles/CL-999/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(objects) != 0 {
		t.Fatalf("orphaned blob left behind: %+v", objects)
	}
}

func TestDocumentContentRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newDocumentService(t)

	doc, _, err := svc.UploadDocument(ctx, "PR-001", "license.pdf", "application/pdf", strings.NewReader("license"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	fetched, rc, err := svc.DocumentContent(ctx, "PR-001", doc.ID)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	defer rc.Close()
	if fetched.ID != doc.ID {
		t.Fatalf("fetched wrong document %+v", fetched)
	}
	data, _ := io.ReadAll(rc)
	if string(data) != "license" {
		t.Fatalf("content = %q", data)
	}
}

func TestDeleteDocumentRemovesBlob(t *testing.T) {
	ctx := context.Background()
	svc, blobs := newDocumentService(t)

	doc, _, err := svc.UploadDocument(ctx, "CL-001", "old-auth.pdf", "application/pdf", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	state, err := svc.DeleteDocument(ctx, "CL-001", doc.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	for _, c := range state.Clients {
		if c.ID != "CL-001" {
			continue
		}
		for _, d := range c.Documents {
			if d.ID == doc.ID {
				t.Fatal("document still attached to profile")
			}
		}
		last := c.AuditLog[len(c.AuditLog)-1]
		if last.Details != "Deleted document old-auth.pdf." {
			t.Fatalf("missing delete audit entry, last=%+v", last)
		}
	}
	if _, _, err := blobs.Get(ctx, doc.BlobKey); err == nil {
		t.Fatal("blob still present after delete")
	}
}

func TestDocumentOperationsRequireBlobStore(t *testing.T) {
	svc := newTestService(t)
	_, _, err := svc.UploadDocument(context.Background(), "CL-001", "f.pdf", "application/pdf", strings.NewReader("x"))
	if !errors.Is(err, ErrNoBlobStore) {
		t.Fatalf("expected ErrNoBlobStore, got %v", err)
	}
}
