// Package page renders the human-facing node page.
package page

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/evanbei/nodegen/internal/jsonld"
	"github.com/evanbei/nodegen/internal/node"
	"github.com/evanbei/nodegen/internal/portal"
)

//go:embed node.html.tmpl
var nodeTemplate string

var tmpl = template.Must(template.New("node").Parse(nodeTemplate))

// Paths are the web-absolute locations the page links to.
type Paths struct {
	Portal     string
	Descriptor string
	Health     string
}

// DefaultPaths matches the default site layout.
func DefaultPaths() Paths {
	return Paths{
		Portal:     "/portal/portal.json",
		Descriptor: "/.well-known/node.json",
		Health:     "/node/health.html",
	}
}

type data struct {
	CanonicalPage  string
	JSONLD         template.JS
	PortalPath     string
	DescriptorPath string
	HealthPath     string
}

// Render writes the node page for doc to w.
func Render(w io.Writer, doc *portal.Document, paths Paths) error {
	ld, err := jsonld.Marshal(jsonld.Build(doc))
	if err != nil {
		return fmt.Errorf("page: encode json-ld: %w", err)
	}
	d := data{
		CanonicalPage: node.Resolve(doc).NodePage,
		// Marshal escapes <, > and &, so the fragment is safe inside the script tag.
		JSONLD:         template.JS(ld),
		PortalPath:     paths.Portal,
		DescriptorPath: paths.Descriptor,
		HealthPath:     paths.Health,
	}
	if err := tmpl.Execute(w, d); err != nil {
		return fmt.Errorf("page: render: %w", err)
	}
	return nil
}

// Bytes renders the page into memory.
func Bytes(doc *portal.Document, paths Paths) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, doc, paths); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
