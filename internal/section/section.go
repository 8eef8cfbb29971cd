// Package section locates the link sections of a portal document and maps
// their items to published link items.
package section

import (
	"strings"

	"github.com/evanbei/nodegen/internal/models"
	"github.com/evanbei/nodegen/internal/portal"
)

// Kind names a logical section of the node.
type Kind string

const (
	Human      Kind = "human"
	Machine    Kind = "machine"
	Executable Kind = "executable"
)

// Entry pairs a section kind with the title fragments that identify it.
type Entry struct {
	Kind     Kind
	Keywords []string
}

// Table is the keyword table used to find each section. A section matches
// when its lower-cased title contains any keyword as a substring. English
// and Chinese titles are both recognised.
var Table = []Entry{
	{Kind: Human, Keywords: []string{"human", "给人", "人看"}},
	{Kind: Machine, Keywords: []string{"machine", "agent", "ai", "机器"}},
	{Kind: Executable, Keywords: []string{"executable", "执行", "agent pages", "网页即"}},
}

// Keywords returns the keyword set for kind, or nil for an unknown kind.
func Keywords(kind Kind) []string {
	for _, e := range Table {
		if e.Kind == kind {
			return e.Keywords
		}
	}
	return nil
}

// Pick returns the first section whose title matches any keyword. When no
// section matches it returns an empty section.
func Pick(sections []portal.Section, keywords []string) portal.Section {
	for _, s := range sections {
		title := strings.ToLower(s.Title)
		for _, k := range keywords {
			if strings.Contains(title, strings.ToLower(k)) {
				return s
			}
		}
	}
	return portal.Section{}
}

// Find is Pick with the keyword set of kind.
func Find(sections []portal.Section, kind Kind) portal.Section {
	return Pick(sections, Keywords(kind))
}

// MapItems converts section items to link items, dropping items without a
// url. The result is never nil.
func MapItems(items []portal.Item) []models.LinkItem {
	out := make([]models.LinkItem, 0, len(items))
	for _, it := range items {
		if it.URL == "" {
			continue
		}
		name := it.Name
		if name == "" {
			name = it.Label
		}
		if name == "" {
			name = it.URL
		}
		out = append(out, models.LinkItem{Name: name, URL: it.URL, Meta: it.Meta})
	}
	return out
}
