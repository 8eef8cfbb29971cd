// Package testutil provides shared test helpers for setting up site roots.
package testutil

import (
	"testing"

	"github.com/evanbei/nodegen/internal/storage"
)

// SamplePortal is a portal document exercising every section kind.
const SamplePortal = `{
  "entity_name": "Ada Studio",
  "canonical": "https://ada.example/",
  "updated_utc": "2026-01-01T00:00:00.000Z",
  "sections": [
    {"title": "Human Links", "items": [{"name": "Blog", "url": "https://ada.example/blog/"}]},
    {"title": "Machine / Agent", "items": [{"name": "Feed", "url": "https://ada.example/feed.xml"}]},
    {"title": "Executable", "items": [{"label": "Demo", "url": "https://ada.example/demo/"}]}
  ],
  "schema": {"type": "Organization", "sameAs": ["https://github.com/ada"]}
}
`

// TestSite creates a temporary site root with a storage provider.
func TestSite(t *testing.T) (string, *storage.FS) {
	t.Helper()
	store, err := storage.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return store.Root(), store
}

// WritePortal writes content as the site's portal/portal.json.
func WritePortal(t *testing.T, store storage.Provider, content string) {
	t.Helper()
	if err := store.Write("portal/portal.json", []byte(content)); err != nil {
		t.Fatal(err)
	}
}
