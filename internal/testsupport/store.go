package testsupport

import (
	"context"
	"fmt"
	"testing"
	"time"

	"ghostie/internal/cache"
	"ghostie/internal/config"
)

// MustOpenStore opens a cache.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *cache.Store {
	t.Helper()

	store, err := cache.Open(cfg)
	if err != nil {
		t.Fatalf("cache.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// Notification builds a cached notification with plausible field values.
func Notification(id string, updatedAt time.Time) cache.Notification {
	return cache.Notification{
		ID:        id,
		Name:      "octo/hello-world",
		Repo:      "hello-world",
		Subject:   fmt.Sprintf("Review requested (%s)", id),
		Kind:      "PullRequest",
		URL:       "https://github.com/octo/hello-world/pull/" + id,
		UpdatedAt: updatedAt.UTC(),
	}
}

// MustWrite persists the notifications or fails the test.
func MustWrite(t testing.TB, store *cache.Store, notifications ...cache.Notification) {
	t.Helper()

	if err := store.WriteBatch(context.Background(), notifications); err != nil {
		t.Fatalf("store.WriteBatch: %v", err)
	}
}
