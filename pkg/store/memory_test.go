package store

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/jsonlens/pkg/errors"
)

func TestMemoryStorePutGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	doc, err := s.Put(ctx, "payload.json", []byte(`{"a":1}`), "hash-a")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if doc.ID == "" {
		t.Error("Put should assign an ID")
	}
	if doc.CreatedAt.IsZero() {
		t.Error("Put should set CreatedAt")
	}

	got, err := s.Get(ctx, doc.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "payload.json" {
		t.Errorf("Name = %q", got.Name)
	}
	if string(got.Content) != `{"a":1}` {
		t.Errorf("Content = %q", got.Content)
	}
	if got.Hash != "hash-a" {
		t.Errorf("Hash = %q", got.Hash)
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "absent")
	if err == nil {
		t.Fatal("Get on missing ID should error")
	}
	if errors.GetCode(err) != errors.ErrCodeDocumentNotFound {
		t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeDocumentNotFound)
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	first, _ := s.Put(ctx, "first.json", []byte(`1`), "h1")
	time.Sleep(2 * time.Millisecond)
	second, _ := s.Put(ctx, "second.json", []byte(`2`), "h2")

	docs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("len = %d, want 2", len(docs))
	}

	// Newest first
	if docs[0].ID != second.ID || docs[1].ID != first.ID {
		t.Errorf("order = [%s %s], want [%s %s]", docs[0].ID, docs[1].ID, second.ID, first.ID)
	}

	// Listings omit content
	for _, doc := range docs {
		if doc.Content != nil {
			t.Errorf("List should omit content for %s", doc.ID)
		}
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	doc, _ := s.Put(ctx, "doc.json", []byte(`true`), "h")

	if err := s.Delete(ctx, doc.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, doc.ID); err == nil {
		t.Error("deleted document should be gone")
	}

	err := s.Delete(ctx, doc.ID)
	if errors.GetCode(err) != errors.ErrCodeDocumentNotFound {
		t.Errorf("double delete code = %s, want %s", errors.GetCode(err), errors.ErrCodeDocumentNotFound)
	}
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	content := []byte(`{"k":"v"}`)
	doc, _ := s.Put(ctx, "doc.json", content, "h")

	// Mutating the caller's slice must not affect the stored copy
	content[2] = 'x'
	got, _ := s.Get(ctx, doc.ID)
	if string(got.Content) != `{"k":"v"}` {
		t.Errorf("stored content mutated: %q", got.Content)
	}

	// Mutating a returned copy must not affect the store
	got.Content[2] = 'y'
	again, _ := s.Get(ctx, doc.ID)
	if string(again.Content) != `{"k":"v"}` {
		t.Errorf("returned copy aliases store: %q", again.Content)
	}
}
