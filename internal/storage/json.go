package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EncodeJSON renders v the way published documents are written: two-space
// indentation, no HTML escaping, trailing newline.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSON encodes v with EncodeJSON and writes it to path.
func WriteJSON(p Provider, path string, v any) error {
	data, err := EncodeJSON(v)
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", path, err)
	}
	return p.Write(path, data)
}
