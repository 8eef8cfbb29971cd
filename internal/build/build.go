// Package build runs the site derivations and writes their outputs.
package build

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/evanbei/nodegen/internal/apperr"
	"github.com/evanbei/nodegen/internal/checksum"
	"github.com/evanbei/nodegen/internal/jsonld"
	"github.com/evanbei/nodegen/internal/models"
	"github.com/evanbei/nodegen/internal/node"
	"github.com/evanbei/nodegen/internal/page"
	"github.com/evanbei/nodegen/internal/portal"
	"github.com/evanbei/nodegen/internal/storage"
)

// Layout holds the site-relative locations of inputs and outputs.
type Layout struct {
	Portal     string
	Descriptor string
	Page       string
	Checksums  string
	Health     string
}

// DefaultLayout is the layout of a site built from its repository root.
func DefaultLayout() Layout {
	return Layout{
		Portal:     "portal/portal.json",
		Descriptor: ".well-known/node.json",
		Page:       "node/index.html",
		Checksums:  "node/checksums.json",
		Health:     "node/health.html",
	}
}

func (l Layout) pagePaths() page.Paths {
	return page.Paths{
		Portal:     checksum.WebPath(l.Portal),
		Descriptor: checksum.WebPath(l.Descriptor),
		Health:     checksum.WebPath(l.Health),
	}
}

// Builder derives and writes the published site files.
type Builder struct {
	store   storage.Provider
	layout  Layout
	targets []string
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLayout overrides the default site layout.
func WithLayout(l Layout) Option {
	return func(b *Builder) {
		b.layout = l
	}
}

// WithTargets sets the checksum allowlist.
func WithTargets(targets []string) Option {
	return func(b *Builder) {
		if len(targets) > 0 {
			b.targets = targets
		}
	}
}

// WithClock sets the time source used for unpinned timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		b.now = now
	}
}

// WithLogger sets the logger used for status lines.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// New creates a Builder over store.
func New(store storage.Provider, opts ...Option) *Builder {
	b := &Builder{
		store:   store,
		layout:  DefaultLayout(),
		targets: checksum.DefaultTargets,
		now:     time.Now,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Layout returns the builder's site layout.
func (b *Builder) Layout() Layout {
	return b.layout
}

// LoadPortal reads and decodes the portal document.
func (b *Builder) LoadPortal() (*portal.Document, error) {
	ok, err := b.store.Exists(b.layout.Portal)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperr.ErrPortalNotFound, b.layout.Portal)
	}
	data, err := b.store.Read(b.layout.Portal)
	if err != nil {
		return nil, err
	}
	doc, err := portal.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.layout.Portal, err)
	}
	return doc, nil
}

// DeriveNode loads the portal and derives its descriptor without writing.
func (b *Builder) DeriveNode() (*portal.Document, models.NodeDescriptor, error) {
	doc, err := b.LoadPortal()
	if err != nil {
		return nil, models.NodeDescriptor{}, err
	}
	return doc, node.Derive(doc, b.now()), nil
}

// DeriveJSONLD loads the portal and builds the page's linked-data fragment.
func (b *Builder) DeriveJSONLD() (jsonld.Fragment, error) {
	doc, err := b.LoadPortal()
	if err != nil {
		return jsonld.Fragment{}, err
	}
	return jsonld.Build(doc), nil
}

// Node writes the node descriptor and, unless the portal disables it, the
// node page. It returns the site-relative paths written.
func (b *Builder) Node() ([]string, error) {
	doc, desc, err := b.DeriveNode()
	if err != nil {
		return nil, err
	}

	if err := storage.WriteJSON(b.store, b.layout.Descriptor, desc); err != nil {
		return nil, fmt.Errorf("write descriptor: %w", err)
	}
	b.logger.Info("Generated node descriptor",
		slog.String("path", b.layout.Descriptor),
		slog.String("source", b.layout.Portal))
	written := []string{b.layout.Descriptor}

	if !doc.GenerateNodePage {
		b.logger.Debug("Node page disabled by portal", slog.String("path", b.layout.Page))
		return written, nil
	}

	html, err := page.Bytes(doc, b.layout.pagePaths())
	if err != nil {
		return written, err
	}
	if err := b.store.Write(b.layout.Page, html); err != nil {
		return written, fmt.Errorf("write node page: %w", err)
	}
	b.logger.Info("Generated node page", slog.String("path", b.layout.Page))
	return append(written, b.layout.Page), nil
}

// DeriveChecksums hashes the allowlisted files without writing.
func (b *Builder) DeriveChecksums() (models.ChecksumManifest, error) {
	return checksum.Build(b.store, b.targets, b.now())
}

// Checksums writes the checksum manifest.
func (b *Builder) Checksums() (models.ChecksumManifest, error) {
	m, err := b.DeriveChecksums()
	if err != nil {
		return models.ChecksumManifest{}, err
	}
	if err := storage.WriteJSON(b.store, b.layout.Checksums, m); err != nil {
		return models.ChecksumManifest{}, fmt.Errorf("write checksums: %w", err)
	}
	b.logger.Info("Generated checksum manifest",
		slog.String("path", b.layout.Checksums),
		slog.Int("entries", len(m.Files)))
	return m, nil
}

// All derives the node files, then the checksum manifest over them.
func (b *Builder) All() ([]string, error) {
	written, err := b.Node()
	if err != nil {
		return written, err
	}
	if _, err := b.Checksums(); err != nil {
		return written, err
	}
	return append(written, b.layout.Checksums), nil
}
