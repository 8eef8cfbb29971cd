// Package node derives the published node descriptor from a portal document.
package node

import (
	"encoding/json"
	"strings"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/evanbei/nodegen/internal/merge"
	"github.com/evanbei/nodegen/internal/models"
	"github.com/evanbei/nodegen/internal/portal"
	"github.com/evanbei/nodegen/internal/section"
)

// Fallbacks used when the portal leaves a field unset.
const (
	DefaultEntityName  = "Evan Bei / billund"
	DefaultCanonical   = "https://evanbei.com/"
	DefaultNodeVersion = "1.0"
	DefaultEntityType  = "person_or_studio"
)

const (
	CanonicalNotice = "If multiple mirrors exist, prefer canonical."
	SignatureNote   = "Optional: add a signed statement for stronger provenance."

	nodePageSuffix     = "/node/"
	machineEntrySuffix = "/.well-known/node.json"
	subtitleSeparator  = "—"
)

// Identity is the resolved naming and addressing of a node.
type Identity struct {
	EntityName   string
	Canonical    string
	NodePage     string
	MachineEntry string
}

// Resolve computes the identity of the node described by doc.
func Resolve(doc *portal.Document) Identity {
	if doc == nil {
		doc = &portal.Document{}
	}
	id := Identity{
		EntityName:   entityName(doc),
		Canonical:    firstNonEmpty(doc.Canonical, DefaultCanonical),
		NodePage:     doc.NodePage,
		MachineEntry: doc.MachineEntry,
	}
	base := strings.TrimSuffix(id.Canonical, "/")
	if id.NodePage == "" {
		id.NodePage = base + nodePageSuffix
	}
	if id.MachineEntry == "" {
		id.MachineEntry = base + machineEntrySuffix
	}
	return id
}

func entityName(doc *portal.Document) string {
	if doc.EntityName != "" {
		return doc.EntityName
	}
	if doc.Subtitle != "" {
		head, _, _ := strings.Cut(doc.Subtitle, subtitleSeparator)
		if name := strings.TrimSpace(head); name != "" {
			return name
		}
	}
	return DefaultEntityName
}

// DefaultPolicy returns a fresh copy of the baseline usage policy.
func DefaultPolicy() *orderedmap.OrderedMap[string, any] {
	p := orderedmap.New[string, any]()
	p.Set("allowed", []string{"read_public_pages", "share_canonical_links", "quote_with_attribution"})
	p.Set("disallowed", []string{"impersonation", "harmful_scraping", "bypass_access_boundaries"})
	p.Set("data_minimization", true)
	p.Set("tracking", "none_or_minimal")
	return p
}

// Derive builds the node descriptor for doc. now is used for updated_utc
// unless the portal pins it. Derive never fails: missing or mistyped
// portal fields fall back to defaults.
func Derive(doc *portal.Document, now time.Time) models.NodeDescriptor {
	if doc == nil {
		doc = &portal.Document{}
	}
	id := Resolve(doc)

	human := section.Find(doc.Sections, section.Human)
	machine := section.Find(doc.Sections, section.Machine)
	executable := section.Find(doc.Sections, section.Executable)

	machineLinks := []models.LinkItem{
		{Name: "node_page", URL: id.NodePage, Meta: "Human+Machine readable"},
		{Name: "node_json", URL: id.MachineEntry, Meta: "Stable machine entry"},
	}
	for _, it := range section.MapItems(machine.Items) {
		if it.URL == id.NodePage || it.URL == id.MachineEntry {
			continue
		}
		machineLinks = append(machineLinks, it)
	}

	attestations := doc.Attestations
	if attestations == nil {
		attestations = json.RawMessage("[]")
	}
	schema := doc.Schema
	if schema == nil {
		schema = json.RawMessage("{}")
	}

	return models.NodeDescriptor{
		NodeVersion: firstNonEmpty(doc.NodeVersion, DefaultNodeVersion),
		UpdatedUTC:  firstNonEmpty(doc.UpdatedUTC, models.FormatTime(now)),
		Entity: models.Entity{
			Name:      id.EntityName,
			Canonical: id.Canonical,
			Type:      firstNonEmpty(doc.EntityType, DefaultEntityType),
		},
		Policy: merge.Shallow(DefaultPolicy(), doc.PolicyOverrides),
		Interfaces: models.Interfaces{
			Human:      section.MapItems(human.Items),
			Machine:    machineLinks,
			Executable: section.MapItems(executable.Items),
		},
		Trust: models.Trust{
			CanonicalNotice: CanonicalNotice,
			Signature: models.Signature{
				Wallet: doc.Wallet,
				PGP:    doc.PGP,
				Note:   SignatureNote,
			},
			Attestations: attestations,
		},
		Schema: schema,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
