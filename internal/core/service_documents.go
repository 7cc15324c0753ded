package core

import (
	blobcore "carecore/internal/blob/core"
	"carecore/pkg/domain"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// ErrNoBlobStore is returned by document operations when no blob backend was
// configured.
var ErrNoBlobStore = errors.New("no blob store configured")

func documentKey(profileID, documentID, filename string) string {
	return fmt.Sprintf("profiles/%s/documents/%s/%s", profileID, documentID, filename)
}

// UploadDocument stores a file for a client or provider profile. The blob is
// written first; the profile's document list and audit log update in the same
// transaction afterwards, so a failed blob write leaves the profile
// untouched.
func (s *Service) UploadDocument(ctx context.Context, profileID, filename, contentType string, r io.Reader) (domain.Document, AppState, error) {
	if s.blobs == nil {
		return domain.Document{}, AppState{}, ErrNoBlobStore
	}

	doc := domain.Document{
		ID:         fmt.Sprintf("DOC-%s", uuid.NewString()),
		Name:       filename,
		UploadDate: s.clock.Now().Format("2006-01-02"),
		Status:     domain.DocumentPending,
	}
	doc.BlobKey = documentKey(profileID, doc.ID, filename)

	object, err := s.blobs.Put(ctx, doc.BlobKey, r, blobcore.PutOptions{
		ContentType: contentType,
		Metadata:    map[string]string{"uploadedBy": s.actorName()},
	})
	if err != nil {
		return domain.Document{}, AppState{}, fmt.Errorf("store document blob: %w", err)
	}

	state, err := s.mutate(ctx, "upload_document", func(tx Transaction) (string, error) {
		if client, ok := tx.Snapshot().FindClient(profileID); ok {
			client.Documents = append(client.Documents, doc)
			client.AuditLog = append(client.AuditLog, s.newAuditLogEntry(domain.AuditUpdate, fmt.Sprintf("Uploaded document %s.", doc.Name)))
			tx.ReplaceClient(client)
			return doc.ID, nil
		}
		if provider, ok := tx.Snapshot().FindProvider(profileID); ok {
			provider.Documents = append(provider.Documents, doc)
			provider.AuditLog = append(provider.AuditLog, s.newAuditLogEntry(domain.AuditUpdate, fmt.Sprintf("Uploaded document %s.", doc.Name)))
			tx.ReplaceProvider(provider)
			return doc.ID, nil
		}
		return "", ErrNotFound{Entity: "profile", ID: profileID}
	})
	if err != nil {
		// The profile was not updated; drop the orphaned blob.
		if _, cleanupErr := s.blobs.Delete(ctx, doc.BlobKey); cleanupErr != nil {
			s.logger.Warn("orphaned document blob cleanup failed", "key", doc.BlobKey, "error", cleanupErr)
		}
		return domain.Document{}, state, err
	}
	s.logger.Info("document stored", "profile_id", profileID, "document_id", doc.ID, "size", object.Size)
	return doc, state, nil
}

// DocumentContent opens a stored document's content stream.
func (s *Service) DocumentContent(ctx context.Context, profileID, documentID string) (domain.Document, io.ReadCloser, error) {
	if s.blobs == nil {
		return domain.Document{}, nil, ErrNoBlobStore
	}
	doc, err := s.findDocument(profileID, documentID)
	if err != nil {
		return domain.Document{}, nil, err
	}

	var rc io.ReadCloser
	err = s.run(ctx, "fetch_document", s.actorName(), func() (string, error) {
		_, reader, getErr := s.blobs.Get(ctx, doc.BlobKey)
		rc = reader
		return documentID, getErr
	})
	if err != nil {
		return domain.Document{}, nil, err
	}
	return doc, rc, nil
}

// DocumentURL returns a time-limited download URL when the blob backend
// supports pre-signing.
func (s *Service) DocumentURL(ctx context.Context, profileID, documentID string, opts blobcore.SignedURLOptions) (string, error) {
	if s.blobs == nil {
		return "", ErrNoBlobStore
	}
	doc, err := s.findDocument(profileID, documentID)
	if err != nil {
		return "", err
	}
	return s.blobs.PresignURL(ctx, doc.BlobKey, opts)
}

// DeleteDocument removes a document from a profile and its blob from storage.
func (s *Service) DeleteDocument(ctx context.Context, profileID, documentID string) (AppState, error) {
	if s.blobs == nil {
		return AppState{}, ErrNoBlobStore
	}

	var blobKey string
	state, err := s.mutate(ctx, "delete_document", func(tx Transaction) (string, error) {
		if client, ok := tx.Snapshot().FindClient(profileID); ok {
			docs, removed := removeDocument(client.Documents, documentID)
			if removed == nil {
				return documentID, ErrNotFound{Entity: "document", ID: documentID}
			}
			blobKey = removed.BlobKey
			client.Documents = docs
			client.AuditLog = append(client.AuditLog, s.newAuditLogEntry(domain.AuditDelete, fmt.Sprintf("Deleted document %s.", removed.Name)))
			tx.ReplaceClient(client)
			return documentID, nil
		}
		if provider, ok := tx.Snapshot().FindProvider(profileID); ok {
			docs, removed := removeDocument(provider.Documents, documentID)
			if removed == nil {
				return documentID, ErrNotFound{Entity: "document", ID: documentID}
			}
			blobKey = removed.BlobKey
			provider.Documents = docs
			provider.AuditLog = append(provider.AuditLog, s.newAuditLogEntry(domain.AuditDelete, fmt.Sprintf("Deleted document %s.", removed.Name)))
			tx.ReplaceProvider(provider)
			return documentID, nil
		}
		return documentID, ErrNotFound{Entity: "profile", ID: profileID}
	})
	if err != nil {
		return state, err
	}
	if blobKey != "" {
		if _, delErr := s.blobs.Delete(ctx, blobKey); delErr != nil {
			s.logger.Warn("document blob delete failed", "key", blobKey, "error", delErr)
		}
	}
	return state, nil
}

func (s *Service) findDocument(profileID, documentID string) (domain.Document, error) {
	profile, err := s.Profile(profileID)
	if err != nil {
		return domain.Document{}, err
	}
	var docs []domain.Document
	if client, ok := profile.Client(); ok {
		docs = client.Documents
	} else if provider, ok := profile.Provider(); ok {
		docs = provider.Documents
	}
	for _, doc := range docs {
		if doc.ID == documentID {
			if doc.BlobKey == "" {
				return domain.Document{}, fmt.Errorf("document %q has no stored content", documentID)
			}
			return doc, nil
		}
	}
	return domain.Document{}, ErrNotFound{Entity: "document", ID: documentID}
}

func removeDocument(docs []domain.Document, id string) ([]domain.Document, *domain.Document) {
	for i, doc := range docs {
		if doc.ID == id {
			removed := doc
			return append(docs[:i:i], docs[i+1:]...), &removed
		}
	}
	return docs, nil
}
