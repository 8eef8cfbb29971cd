package build

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/evanbei/nodegen/internal/checksum"
	"github.com/evanbei/nodegen/internal/models"
	"github.com/evanbei/nodegen/internal/node"
	"github.com/evanbei/nodegen/internal/page"
	"github.com/evanbei/nodegen/internal/storage"
)

// Report is the outcome of Verify.
type Report struct {
	// Checksums lists differences between the published manifest and the
	// files on disk.
	Checksums []checksum.Mismatch `json:"checksums"`
	// Stale lists derived files that no longer match the portal.
	Stale []string `json:"stale"`
}

// OK reports whether the published files are consistent.
func (r *Report) OK() bool {
	return len(r.Checksums) == 0 && len(r.Stale) == 0
}

// Verify checks that the published files still match what a fresh build
// would produce. The descriptor is compared with its published timestamp
// pinned, so only content drift is reported.
func (b *Builder) Verify() (*Report, error) {
	r := &Report{Checksums: []checksum.Mismatch{}, Stale: []string{}}

	if err := b.verifyNode(r); err != nil {
		return nil, err
	}

	fresh, err := b.DeriveChecksums()
	if err != nil {
		return nil, err
	}
	data, err := b.readFile(b.layout.Checksums)
	if err != nil {
		return nil, err
	}
	if data == nil {
		r.Stale = append(r.Stale, b.layout.Checksums)
		return r, nil
	}
	var published models.ChecksumManifest
	if err := json.Unmarshal(data, &published); err != nil {
		return nil, fmt.Errorf("decode %s: %w", b.layout.Checksums, err)
	}
	r.Checksums = append(r.Checksums, checksum.Compare(published, fresh)...)
	return r, nil
}

func (b *Builder) verifyNode(r *Report) error {
	doc, err := b.LoadPortal()
	if err != nil {
		return err
	}

	current, err := b.readFile(b.layout.Descriptor)
	if err != nil {
		return err
	}
	if current == nil {
		r.Stale = append(r.Stale, b.layout.Descriptor)
	} else {
		var stamp struct {
			UpdatedUTC string `json:"updated_utc"`
		}
		pinned := *doc
		if pinned.UpdatedUTC == "" && json.Unmarshal(current, &stamp) == nil {
			pinned.UpdatedUTC = stamp.UpdatedUTC
		}
		want, err := storage.EncodeJSON(node.Derive(&pinned, b.now()))
		if err != nil {
			return fmt.Errorf("encode descriptor: %w", err)
		}
		if !bytes.Equal(want, current) {
			r.Stale = append(r.Stale, b.layout.Descriptor)
		}
	}

	if !doc.GenerateNodePage {
		return nil
	}
	currentPage, err := b.readFile(b.layout.Page)
	if err != nil {
		return err
	}
	wantPage, err := page.Bytes(doc, b.layout.pagePaths())
	if err != nil {
		return err
	}
	if !bytes.Equal(wantPage, currentPage) {
		r.Stale = append(r.Stale, b.layout.Page)
	}
	return nil
}

// readFile returns nil without error when path does not exist.
func (b *Builder) readFile(path string) ([]byte, error) {
	ok, err := b.store.Exists(path)
	if err != nil || !ok {
		return nil, err
	}
	return b.store.Read(path)
}
