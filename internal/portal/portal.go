// Package portal decodes the hand-authored portal document that nodes are
// derived from.
//
// Decoding is lenient: the document must be a JSON object, but any field
// holding a value of the wrong type is treated as absent. node_version and
// updated_utc also accept numbers.
package portal

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/evanbei/nodegen/internal/apperr"
)

// Item is one link inside a section.
type Item struct {
	Name  string
	Label string
	URL   string
	Meta  string
}

// Section is a titled group of links.
type Section struct {
	Title string
	Items []Item
}

// Document is the decoded portal configuration.
type Document struct {
	Sections        []Section
	EntityName      string
	Subtitle        string
	Canonical       string
	NodePage        string
	MachineEntry    string
	PolicyOverrides *orderedmap.OrderedMap[string, any]
	Wallet          string
	PGP             string
	// Attestations holds the raw JSON array, or nil when the field is not an array.
	Attestations json.RawMessage
	// Schema holds the raw schema value, or nil when absent or falsy.
	Schema           json.RawMessage
	NodeVersion      string
	UpdatedUTC       string
	EntityType       string
	GenerateNodePage bool
}

// Parse decodes a portal document. It fails only when data is not a JSON
// object.
func Parse(data []byte) (*Document, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidPortal, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: document is null", apperr.ErrInvalidPortal)
	}

	doc := &Document{
		Sections:         parseSections(fields["sections"]),
		EntityName:       str(fields["entity_name"]),
		Subtitle:         str(fields["subtitle"]),
		Canonical:        str(fields["canonical"]),
		NodePage:         str(fields["node_page"]),
		MachineEntry:     str(fields["machine_entry"]),
		PolicyOverrides:  parseOverrides(fields["policy_overrides"]),
		Wallet:           str(fields["wallet"]),
		PGP:              str(fields["pgp"]),
		NodeVersion:      scalar(fields["node_version"]),
		UpdatedUTC:       scalar(fields["updated_utc"]),
		EntityType:       str(fields["entity_type"]),
		GenerateNodePage: !isFalse(fields["generate_node_page"]),
	}
	if isArray(fields["attestations"]) {
		doc.Attestations = fields["attestations"]
	}
	if truthy(fields["schema"]) {
		doc.Schema = fields["schema"]
	}
	return doc, nil
}

// SchemaHints are the schema.org fields read from the schema block.
type SchemaHints struct {
	Type                 string
	SameAs               json.RawMessage // non-empty JSON array or nil
	PublishingPrinciples string
	ContactURL           string
}

// Hints extracts the schema.org hints from the schema block.
func (d *Document) Hints() SchemaHints {
	var fields map[string]json.RawMessage
	if len(d.Schema) == 0 || json.Unmarshal(d.Schema, &fields) != nil {
		return SchemaHints{}
	}
	h := SchemaHints{
		Type:                 str(fields["type"]),
		PublishingPrinciples: str(fields["publishingPrinciples"]),
		ContactURL:           str(fields["contactUrl"]),
	}
	var sameAs []json.RawMessage
	if json.Unmarshal(fields["sameAs"], &sameAs) == nil && len(sameAs) > 0 {
		h.SameAs = fields["sameAs"]
	}
	return h
}

func parseSections(raw json.RawMessage) []Section {
	var entries []json.RawMessage
	if json.Unmarshal(raw, &entries) != nil {
		return nil
	}
	out := make([]Section, 0, len(entries))
	for _, e := range entries {
		var fields map[string]json.RawMessage
		if json.Unmarshal(e, &fields) != nil || fields == nil {
			continue
		}
		out = append(out, Section{
			Title: str(fields["title"]),
			Items: parseItems(fields["items"]),
		})
	}
	return out
}

func parseItems(raw json.RawMessage) []Item {
	var entries []json.RawMessage
	if json.Unmarshal(raw, &entries) != nil {
		return nil
	}
	out := make([]Item, 0, len(entries))
	for _, e := range entries {
		var fields map[string]json.RawMessage
		if json.Unmarshal(e, &fields) != nil || fields == nil {
			continue
		}
		out = append(out, Item{
			Name:  str(fields["name"]),
			Label: str(fields["label"]),
			URL:   str(fields["url"]),
			Meta:  str(fields["meta"]),
		})
	}
	return out
}

func parseOverrides(raw json.RawMessage) *orderedmap.OrderedMap[string, any] {
	if !isObject(raw) {
		return nil
	}
	om, err := orderedObject(raw)
	if err != nil {
		return nil
	}
	return om
}

// orderedObject decodes a JSON object keeping key order at every depth.
func orderedObject(raw json.RawMessage) (*orderedmap.OrderedMap[string, any], error) {
	fields := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(raw, fields); err != nil {
		return nil, err
	}
	om := orderedmap.New[string, any]()
	for pair := fields.Oldest(); pair != nil; pair = pair.Next() {
		v, err := orderedValue(pair.Value)
		if err != nil {
			return nil, err
		}
		om.Set(pair.Key, v)
	}
	return om, nil
}

func orderedValue(raw json.RawMessage) (any, error) {
	if isObject(raw) {
		return orderedObject(raw)
	}
	if isArray(raw) {
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return nil, err
		}
		out := make([]any, 0, len(elems))
		for _, e := range elems {
			v, err := orderedValue(e)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// str returns the string value of raw, or "" for any other JSON type.
func str(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// scalar is like str but also accepts numbers, returned as their literal
// text. Zero counts as absent.
func scalar(raw json.RawMessage) string {
	if s := str(raw); s != "" {
		return s
	}
	var n json.Number
	if len(raw) == 0 || json.Unmarshal(raw, &n) != nil || !truthy(raw) {
		return ""
	}
	return n.String()
}

func isObject(raw json.RawMessage) bool {
	return bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{"))
}

func isArray(raw json.RawMessage) bool {
	return bytes.HasPrefix(bytes.TrimSpace(raw), []byte("["))
}

func isFalse(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "false"
}

// truthy reports whether raw is present and not one of null, false, 0 or "".
func truthy(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "false", "0", `""`:
		return false
	}
	return true
}
