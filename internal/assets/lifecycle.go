package assets

import (
	"context"
	"log"
)

// Manager keeps entity image fields and externally hosted blobs in
// sync. Every delete it issues is best effort: failures are logged and
// swallowed so a degraded asset store never blocks an entity write,
// at the cost of the occasional orphaned blob.
type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Store exposes the underlying asset store for uploads.
func (m *Manager) Store() Store {
	return m.store
}

// Release deletes the blob behind a stored URL. Empty URLs and URLs
// that yield no public id are ignored.
func (m *Manager) Release(ctx context.Context, url string) {
	publicID := PublicIDFromURL(url)
	if publicID == "" {
		return
	}
	if err := m.store.Delete(ctx, publicID); err != nil {
		log.Printf("[ASSETS] [WARN] delete %s failed: %v", publicID, err)
	}
}

// ReleaseAll deletes every blob in the list. Each failure is swallowed
// independently so one bad asset never aborts the rest.
func (m *Manager) ReleaseAll(ctx context.Context, urls []string) {
	for _, url := range urls {
		m.Release(ctx, url)
	}
}

// MergeGallery computes the updated gallery for an entity: entries from
// existing that are not listed in toDelete, in their original order,
// followed by newly uploaded URLs in upload order. Listed assets are
// released from the store.
func (m *Manager) MergeGallery(ctx context.Context, existing, toDelete, uploaded []string) []string {
	deleted := make(map[string]struct{}, len(toDelete))
	for _, url := range toDelete {
		if url == "" {
			continue
		}
		deleted[url] = struct{}{}
		m.Release(ctx, url)
	}

	merged := make([]string, 0, len(existing)+len(uploaded))
	for _, url := range existing {
		if _, gone := deleted[url]; gone {
			continue
		}
		merged = append(merged, url)
	}
	return append(merged, uploaded...)
}
