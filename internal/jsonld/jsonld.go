// Package jsonld builds the schema.org fragment embedded in the node page.
package jsonld

import (
	"encoding/json"

	"github.com/evanbei/nodegen/internal/node"
	"github.com/evanbei/nodegen/internal/portal"
)

const (
	Context     = "https://schema.org"
	DefaultType = "Person"
)

// ContactPoint is the schema.org ContactPoint of the entity.
type ContactPoint struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
}

// Fragment is a minimal schema.org description of the node's entity.
// Optional fields are left out of the encoding entirely when unset.
type Fragment struct {
	Context              string          `json:"@context"`
	Type                 string          `json:"@type"`
	Name                 string          `json:"name"`
	URL                  string          `json:"url"`
	SameAs               json.RawMessage `json:"sameAs,omitempty"`
	PublishingPrinciples string          `json:"publishingPrinciples,omitempty"`
	ContactPoint         *ContactPoint   `json:"contactPoint,omitempty"`
}

// Build derives the fragment for doc.
func Build(doc *portal.Document) Fragment {
	if doc == nil {
		doc = &portal.Document{}
	}
	id := node.Resolve(doc)
	hints := doc.Hints()

	f := Fragment{
		Context:              Context,
		Type:                 hints.Type,
		Name:                 id.EntityName,
		URL:                  id.Canonical,
		SameAs:               hints.SameAs,
		PublishingPrinciples: hints.PublishingPrinciples,
	}
	if f.Type == "" {
		f.Type = DefaultType
	}
	if hints.ContactURL != "" {
		f.ContactPoint = &ContactPoint{Type: "ContactPoint", URL: hints.ContactURL}
	}
	return f
}

// Marshal renders f indented for embedding in a script block. HTML
// characters stay escaped so the result cannot close the surrounding tag.
func Marshal(f Fragment) ([]byte, error) {
	return json.MarshalIndent(f, "", "  ")
}
