// Package preview serves a built site locally together with live derivations.
package preview

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/evanbei/nodegen/internal/apperr"
	"github.com/evanbei/nodegen/internal/build"
)

// Options configures the preview router.
type Options struct {
	// SiteRoot is the directory served as static files.
	SiteRoot string
	// AuthEnabled guards the /api routes with a Bearer token.
	AuthEnabled bool
	Token       string
	// Events, if non-nil, is mounted at GET /api/events.
	Events http.Handler
	// Hidden lists site-relative paths never served as static files, such
	// as the config file. Dotfiles are always hidden.
	Hidden []string
}

// NewRouter creates the preview router.
func NewRouter(b *build.Builder, opts Options) chi.Router {
	h := &handler{builder: b}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/health/ready", h.ready)

	r.Route("/api", func(r chi.Router) {
		r.Use(AuthMiddleware(opts.AuthEnabled, opts.Token))
		r.Get("/node", h.node)
		r.Get("/jsonld", h.jsonld)
		r.Get("/checksums", h.checksums)
		r.Get("/verify", h.verify)
		if opts.Events != nil {
			r.Get("/events", opts.Events.ServeHTTP)
		}
	})

	r.Handle("/*", staticFiles(opts.SiteRoot, opts.Hidden))
	return r
}

type handler struct {
	builder *build.Builder
}

// ready reports whether the portal document can be loaded.
func (h *handler) ready(w http.ResponseWriter, _ *http.Request) {
	if _, err := h.builder.LoadPortal(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// node handles GET /api/node with a freshly derived descriptor.
func (h *handler) node(w http.ResponseWriter, _ *http.Request) {
	_, desc, err := h.builder.DeriveNode()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, desc)
}

// jsonld handles GET /api/jsonld.
func (h *handler) jsonld(w http.ResponseWriter, _ *http.Request) {
	frag, err := h.builder.DeriveJSONLD()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, frag)
}

// checksums handles GET /api/checksums.
func (h *handler) checksums(w http.ResponseWriter, _ *http.Request) {
	m, err := h.builder.DeriveChecksums()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// verify handles GET /api/verify. Drift is reported with 409.
func (h *handler) verify(w http.ResponseWriter, _ *http.Request) {
	report, err := h.builder.Verify()
	if err != nil {
		writeError(w, err)
		return
	}
	status := http.StatusOK
	if !report.OK() {
		status = http.StatusConflict
	}
	writeJSON(w, status, report)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrPortalNotFound):
		writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrInvalidPortal):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
	default:
		slog.Error("preview request failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}
