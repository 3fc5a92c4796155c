package assets

import (
	"context"
	"errors"
	"io"
	"reflect"
	"testing"
)

// memStore records deletes and can be told to fail specific public ids.
type memStore struct {
	deleted []string
	fail    map[string]bool
}

func (s *memStore) Upload(ctx context.Context, r io.Reader, filename string) (string, error) {
	return "https://res.cloudinary.com/demo/image/upload/products/" + filename, nil
}

func (s *memStore) Delete(ctx context.Context, publicID string) error {
	s.deleted = append(s.deleted, publicID)
	if s.fail[publicID] {
		return errors.New("store unavailable")
	}
	return nil
}

func TestReleaseSkipsUnresolvableURLs(t *testing.T) {
	store := &memStore{}
	m := NewManager(store)

	m.Release(context.Background(), "")
	m.Release(context.Background(), "   ")
	if len(store.deleted) != 0 {
		t.Fatalf("expected no deletes, got %v", store.deleted)
	}

	m.Release(context.Background(), "https://host/products/shirt-1.jpg")
	if len(store.deleted) != 1 || store.deleted[0] != "products/shirt-1" {
		t.Fatalf("unexpected deletes: %v", store.deleted)
	}
}

func TestReleaseAllContinuesPastFailures(t *testing.T) {
	store := &memStore{fail: map[string]bool{"products/b": true}}
	m := NewManager(store)

	m.ReleaseAll(context.Background(), []string{
		"https://host/products/a.jpg",
		"https://host/products/b.jpg",
		"https://host/products/c.jpg",
	})

	want := []string{"products/a", "products/b", "products/c"}
	if !reflect.DeepEqual(store.deleted, want) {
		t.Fatalf("expected every delete attempted, got %v", store.deleted)
	}
}

func TestReleaseAllCoversFullProductImageSet(t *testing.T) {
	store := &memStore{}
	m := NewManager(store)

	urls := []string{
		"https://host/products/main.jpg",
		"https://host/products/hover.jpg",
		"https://host/products/g1.jpg",
		"https://host/products/g2.jpg",
		"https://host/products/g3.jpg",
	}
	m.ReleaseAll(context.Background(), urls)

	if len(store.deleted) != 5 {
		t.Fatalf("expected 5 deletes, got %d: %v", len(store.deleted), store.deleted)
	}
}

func TestMergeGalleryKeepsOrderAndAppendsUploads(t *testing.T) {
	store := &memStore{}
	m := NewManager(store)

	existing := []string{
		"https://host/products/a.jpg",
		"https://host/products/b.jpg",
		"https://host/products/c.jpg",
	}
	toDelete := []string{"https://host/products/b.jpg"}
	uploaded := []string{"https://host/products/d.jpg"}

	merged := m.MergeGallery(context.Background(), existing, toDelete, uploaded)

	want := []string{
		"https://host/products/a.jpg",
		"https://host/products/c.jpg",
		"https://host/products/d.jpg",
	}
	if !reflect.DeepEqual(merged, want) {
		t.Fatalf("unexpected merge result: %v", merged)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "products/b" {
		t.Fatalf("expected exactly one delete for the replaced asset, got %v", store.deleted)
	}
}

func TestMergeGalleryIgnoresEmptyDeletionEntries(t *testing.T) {
	store := &memStore{}
	m := NewManager(store)

	merged := m.MergeGallery(context.Background(),
		[]string{"https://host/products/a.jpg"},
		[]string{""},
		nil)

	if len(merged) != 1 {
		t.Fatalf("expected existing gallery untouched, got %v", merged)
	}
	if len(store.deleted) != 0 {
		t.Fatalf("expected no deletes, got %v", store.deleted)
	}
}
