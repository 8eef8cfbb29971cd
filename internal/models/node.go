// Package models defines the documents nodegen publishes.
package models

import (
	"encoding/json"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// TimeLayout is the UTC timestamp format used for updated_utc fields
// (millisecond precision, literal Z suffix).
const TimeLayout = "2006-01-02T15:04:05.000Z"

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// LinkItem is a single named link exposed by the node.
type LinkItem struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Meta string `json:"meta"`
}

// Entity identifies who the node belongs to.
type Entity struct {
	Name      string `json:"name"`
	Canonical string `json:"canonical"`
	Type      string `json:"type"`
}

// Interfaces groups links by audience.
type Interfaces struct {
	Human      []LinkItem `json:"human"`
	Machine    []LinkItem `json:"machine"`
	Executable []LinkItem `json:"executable"`
}

// Signature carries optional provenance identifiers.
type Signature struct {
	Wallet string `json:"wallet"`
	PGP    string `json:"pgp"`
	Note   string `json:"note"`
}

// Trust is the provenance block of a node descriptor.
type Trust struct {
	CanonicalNotice string          `json:"canonical_notice"`
	Signature       Signature       `json:"signature"`
	Attestations    json.RawMessage `json:"attestations"`
}

// NodeDescriptor is the machine entry published at /.well-known/node.json.
type NodeDescriptor struct {
	NodeVersion string                              `json:"node_version"`
	UpdatedUTC  string                              `json:"updated_utc"`
	Entity      Entity                              `json:"entity"`
	Policy      *orderedmap.OrderedMap[string, any] `json:"policy"`
	Interfaces  Interfaces                          `json:"interfaces"`
	Trust       Trust                               `json:"trust"`
	Schema      json.RawMessage                     `json:"schema"`
}

// FileDigest is one entry of a checksum manifest.
type FileDigest struct {
	Path   string `json:"path"`
	SHA256 string `json:"sha256"`
}

// ChecksumManifest lists content digests of published files.
type ChecksumManifest struct {
	UpdatedUTC string       `json:"updated_utc"`
	Algo       string       `json:"algo"`
	Files      []FileDigest `json:"files"`
}
