package preview

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/evanbei/nodegen/internal/build"
	"github.com/evanbei/nodegen/internal/storage"
	"github.com/evanbei/nodegen/internal/testutil"
)

func testEnv(t *testing.T, token string) (http.Handler, *storage.FS, *build.Builder) {
	t.Helper()
	root, store := testutil.TestSite(t)
	clock := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	b := build.New(store, build.WithClock(func() time.Time { return clock }))
	r := NewRouter(b, Options{SiteRoot: root, AuthEnabled: token != "", Token: token})
	return r, store, b
}

func do(t *testing.T, h http.Handler, method, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	h, store, _ := testEnv(t, "")

	if w := do(t, h, http.MethodGet, "/health/live", ""); w.Code != http.StatusOK {
		t.Errorf("live = %d", w.Code)
	}
	if w := do(t, h, http.MethodGet, "/health/ready", ""); w.Code != http.StatusServiceUnavailable {
		t.Errorf("ready without portal = %d, want 503", w.Code)
	}
	testutil.WritePortal(t, store, testutil.SamplePortal)
	if w := do(t, h, http.MethodGet, "/health/ready", ""); w.Code != http.StatusOK {
		t.Errorf("ready = %d, want 200", w.Code)
	}
}

func TestNodeEndpoint(t *testing.T) {
	h, store, _ := testEnv(t, "")

	if w := do(t, h, http.MethodGet, "/api/node", ""); w.Code != http.StatusNotFound {
		t.Errorf("missing portal = %d, want 404", w.Code)
	}

	testutil.WritePortal(t, store, `{"entity_name": `)
	if w := do(t, h, http.MethodGet, "/api/node", ""); w.Code != http.StatusUnprocessableEntity {
		t.Errorf("malformed portal = %d, want 422", w.Code)
	}

	testutil.WritePortal(t, store, testutil.SamplePortal)
	w := do(t, h, http.MethodGet, "/api/node", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var desc struct {
		Entity struct {
			Name string `json:"name"`
		} `json:"entity"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &desc); err != nil {
		t.Fatal(err)
	}
	if desc.Entity.Name != "Ada Studio" {
		t.Errorf("entity.name = %q", desc.Entity.Name)
	}
}

func TestJSONLDEndpoint(t *testing.T) {
	h, store, _ := testEnv(t, "")
	testutil.WritePortal(t, store, testutil.SamplePortal)

	w := do(t, h, http.MethodGet, "/api/jsonld", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"@type": "Organization"`) || strings.Contains(body, "contactPoint") {
		t.Errorf("body = %s", body)
	}
}

func TestChecksumsAndVerifyEndpoints(t *testing.T) {
	h, store, b := testEnv(t, "")
	testutil.WritePortal(t, store, testutil.SamplePortal)

	w := do(t, h, http.MethodGet, "/api/checksums", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"/portal/portal.json"`) {
		t.Errorf("checksums = %d %s", w.Code, w.Body.String())
	}

	if w := do(t, h, http.MethodGet, "/api/verify", ""); w.Code != http.StatusConflict {
		t.Errorf("verify before build = %d, want 409", w.Code)
	}
	if _, err := b.All(); err != nil {
		t.Fatal(err)
	}
	if w := do(t, h, http.MethodGet, "/api/verify", ""); w.Code != http.StatusOK {
		t.Errorf("verify after build = %d: %s", w.Code, w.Body.String())
	}
}

func TestStaticFiles(t *testing.T) {
	h, store, b := testEnv(t, "")
	testutil.WritePortal(t, store, testutil.SamplePortal)
	if _, err := b.All(); err != nil {
		t.Fatal(err)
	}

	w := do(t, h, http.MethodGet, "/.well-known/node.json", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"node_version"`) {
		t.Errorf("node.json = %d", w.Code)
	}
	w = do(t, h, http.MethodGet, "/node/", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "application/ld+json") {
		t.Errorf("node page = %d", w.Code)
	}
}

func TestStaticFiles_PrivateFilesHidden(t *testing.T) {
	root, store := testutil.TestSite(t)
	b := build.New(store)
	h := NewRouter(b, Options{
		SiteRoot:    root,
		AuthEnabled: true,
		Token:       "secret",
		Hidden:      []string{"nodegen.yaml"},
	})

	files := map[string]string{
		".env":                  "NODEGEN_AUTH_TOKEN=secret\n",
		".git/config":           "[core]\n",
		"node/.draft.html":      "<p>draft</p>",
		"nodegen.yaml":          "auth:\n  token: secret\n",
		".well-known/node.json": "{}\n",
		"robots.txt":            "User-agent: *\n",
	}
	for p, content := range files {
		if err := store.Write(p, []byte(content)); err != nil {
			t.Fatal(err)
		}
	}

	for _, p := range []string{"/.env", "/.git/config", "/.git/", "/node/.draft.html", "/nodegen.yaml", "/NODEGEN.YAML", "/node/../.env"} {
		w := do(t, h, http.MethodGet, p, "")
		if w.Code != http.StatusNotFound {
			t.Errorf("GET %s = %d, want 404", p, w.Code)
		}
		if strings.Contains(w.Body.String(), "secret") {
			t.Errorf("GET %s leaked content: %q", p, w.Body.String())
		}
	}
	for _, p := range []string{"/.well-known/node.json", "/robots.txt"} {
		if w := do(t, h, http.MethodGet, p, ""); w.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", p, w.Code)
		}
	}
}

func TestAPIAuth(t *testing.T) {
	h, store, _ := testEnv(t, "secret")
	testutil.WritePortal(t, store, testutil.SamplePortal)

	if w := do(t, h, http.MethodGet, "/api/node", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("no token = %d, want 401", w.Code)
	}
	if w := do(t, h, http.MethodGet, "/api/node", "wrong"); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong token = %d, want 401", w.Code)
	}
	if w := do(t, h, http.MethodGet, "/api/node", "secret"); w.Code != http.StatusOK {
		t.Errorf("valid token = %d, want 200", w.Code)
	}
	// Health and static files stay public.
	if w := do(t, h, http.MethodGet, "/health/live", ""); w.Code != http.StatusOK {
		t.Errorf("health with auth = %d", w.Code)
	}
}
