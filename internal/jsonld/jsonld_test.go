package jsonld

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/evanbei/nodegen/internal/node"
	"github.com/evanbei/nodegen/internal/portal"
)

func build(t *testing.T, input string) map[string]any {
	t.Helper()
	doc, err := portal.Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out, err := Marshal(Build(doc))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	return m
}

func TestBuild_NoSchemaOmitsOptionalKeys(t *testing.T) {
	m := build(t, `{"entity_name": "Ada"}`)
	for _, k := range []string{"sameAs", "publishingPrinciples", "contactPoint"} {
		if _, ok := m[k]; ok {
			t.Errorf("key %q should be absent, got %v", k, m[k])
		}
	}
	if m["@context"] != Context || m["@type"] != DefaultType {
		t.Errorf("context/type = %v/%v", m["@context"], m["@type"])
	}
	if m["name"] != "Ada" || m["url"] != node.DefaultCanonical {
		t.Errorf("name/url = %v/%v", m["name"], m["url"])
	}
}

func TestBuild_EmptyValuesOmitted(t *testing.T) {
	m := build(t, `{"schema": {"sameAs": [], "publishingPrinciples": "", "contactUrl": ""}}`)
	for _, k := range []string{"sameAs", "publishingPrinciples", "contactPoint"} {
		if _, ok := m[k]; ok {
			t.Errorf("key %q should be absent", k)
		}
	}
}

func TestBuild_FullSchema(t *testing.T) {
	m := build(t, `{
  "canonical": "https://studio.example/",
  "schema": {
    "type": "Organization",
    "sameAs": ["https://github.com/studio", "https://mastodon.example/@studio"],
    "publishingPrinciples": "https://studio.example/principles",
    "contactUrl": "https://studio.example/contact"
  }
}`)
	if m["@type"] != "Organization" {
		t.Errorf("@type = %v", m["@type"])
	}
	if same, ok := m["sameAs"].([]any); !ok || len(same) != 2 {
		t.Errorf("sameAs = %v", m["sameAs"])
	}
	if m["publishingPrinciples"] != "https://studio.example/principles" {
		t.Errorf("publishingPrinciples = %v", m["publishingPrinciples"])
	}
	cp, ok := m["contactPoint"].(map[string]any)
	if !ok || cp["@type"] != "ContactPoint" || cp["url"] != "https://studio.example/contact" {
		t.Errorf("contactPoint = %v", m["contactPoint"])
	}
}

func TestMarshal_EscapesScriptClose(t *testing.T) {
	doc, _ := portal.Parse([]byte(`{"entity_name": "</script><b>x</b>"}`))
	out, err := Marshal(Build(doc))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "</script>") {
		t.Errorf("fragment not escaped: %s", out)
	}
}
