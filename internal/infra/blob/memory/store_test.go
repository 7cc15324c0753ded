package memory

import (
	"carecore/internal/blob/core"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestPutGetDeleteLifecycle(t *testing.T) {
	ctx := context.Background()
	store := New()

	obj, err := store.Put(ctx, "profiles/CL-001/documents/DOC-010/intake.pdf",
		strings.NewReader("intake form"), core.PutOptions{ContentType: "application/pdf"})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if obj.Size != int64(len("intake form")) || obj.ContentType != "application/pdf" {
		t.Fatalf("unexpected object metadata: %+v", obj)
	}

	if _, err := store.Put(ctx, obj.Key, strings.NewReader("dup"), core.PutOptions{}); err == nil {
		t.Fatal("put must fail for an existing key")
	}

	got, rc, err := store.Get(ctx, obj.Key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != "intake form" || got.Key != obj.Key {
		t.Fatalf("unexpected get result %q %+v", data, got)
	}

	existed, err := store.Delete(ctx, obj.Key)
	if err != nil || !existed {
		t.Fatalf("delete: existed=%v err=%v", existed, err)
	}
	if existed, _ := store.Delete(ctx, obj.Key); existed {
		t.Fatal("second delete must report missing")
	}
}

func TestListFiltersByProfilePrefix(t *testing.T) {
	ctx := context.Background()
	store := New()
	for _, key := range []string{
		"profiles/CL-001/documents/DOC-001/id.pdf",
		"profiles/CL-001/documents/DOC-002/address.png",
		"profiles/PR-001/documents/DOC-003/license.pdf",
	} {
		if _, err := store.Put(ctx, key, strings.NewReader("x"), core.PutOptions{}); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}

	objects, err := store.List(ctx, "profiles/CL-001/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(objects) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(objects))
	}
	if objects[0].Key > objects[1].Key {
		t.Fatal("list must order keys ascending")
	}
}

func TestPresignUnsupported(t *testing.T) {
	store := New()
	if _, err := store.PresignURL(context.Background(), "k", core.SignedURLOptions{}); !errors.Is(err, core.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}
