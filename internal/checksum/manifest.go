package checksum

import (
	"fmt"
	"strings"
	"time"

	"github.com/evanbei/nodegen/internal/models"
	"github.com/evanbei/nodegen/internal/storage"
)

// DefaultTargets is the allowlist of site files covered by the manifest.
// Entries that do not exist are skipped.
var DefaultTargets = []string{
	"portal/portal.json",
	".well-known/node.json",
	"well-known/node.json",
	"node/index.html",
	"node/health.html",
	"agent/manifest.json",
	"agent/capability-map.json",
}

// WebPath converts a repo-relative path to its web-absolute form:
// backslashes become slashes and exactly one leading slash is kept.
func WebPath(rel string) string {
	p := strings.ReplaceAll(rel, `\`, "/")
	return "/" + strings.TrimLeft(p, "/")
}

// Build hashes every existing target in order. Targets are resolved against
// the site root even when written with a leading slash. Missing targets are
// omitted without error.
func Build(store storage.Provider, targets []string, now time.Time) (models.ChecksumManifest, error) {
	files := make([]models.FileDigest, 0, len(targets))
	for _, rel := range targets {
		rel = strings.TrimLeft(strings.ReplaceAll(rel, `\`, "/"), "/")
		ok, err := store.Exists(rel)
		if err != nil {
			return models.ChecksumManifest{}, fmt.Errorf("checksum: %w", err)
		}
		if !ok {
			continue
		}
		data, err := store.Read(rel)
		if err != nil {
			return models.ChecksumManifest{}, fmt.Errorf("checksum: %w", err)
		}
		files = append(files, models.FileDigest{Path: WebPath(rel), SHA256: Sum(data)})
	}
	return models.ChecksumManifest{
		UpdatedUTC: models.FormatTime(now),
		Algo:       Algo,
		Files:      files,
	}, nil
}

// Mismatch kinds reported by Compare.
const (
	MismatchChanged  = "changed"  // digest differs
	MismatchUnlisted = "unlisted" // file exists but the manifest omits it
	MismatchMissing  = "missing"  // manifest lists a file that no longer exists
)

// Mismatch describes one difference between a published and a fresh manifest.
type Mismatch struct {
	Path      string `json:"path"`
	Kind      string `json:"kind"`
	Published string `json:"published,omitempty"`
	Current   string `json:"current,omitempty"`
}

// Compare reports how published diverges from fresh. The result follows
// fresh order, then the remaining published entries.
func Compare(published, fresh models.ChecksumManifest) []Mismatch {
	listed := make(map[string]string, len(published.Files))
	for _, f := range published.Files {
		listed[f.Path] = f.SHA256
	}

	var out []Mismatch
	seen := make(map[string]struct{}, len(fresh.Files))
	for _, f := range fresh.Files {
		seen[f.Path] = struct{}{}
		want, ok := listed[f.Path]
		switch {
		case !ok:
			out = append(out, Mismatch{Path: f.Path, Kind: MismatchUnlisted, Current: f.SHA256})
		case want != f.SHA256:
			out = append(out, Mismatch{Path: f.Path, Kind: MismatchChanged, Published: want, Current: f.SHA256})
		}
	}
	for _, f := range published.Files {
		if _, ok := seen[f.Path]; !ok {
			out = append(out, Mismatch{Path: f.Path, Kind: MismatchMissing, Published: f.SHA256})
		}
	}
	return out
}
