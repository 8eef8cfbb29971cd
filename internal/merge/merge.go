// Package merge combines insertion-ordered maps.
package merge

import orderedmap "github.com/wk8/go-ordered-map/v2"

// Shallow returns a new map holding base overlaid with overrides. Keys
// present in both take the override value but keep their position from
// base; keys only in overrides are appended in override order. Values are
// not merged recursively. Either argument may be nil and neither is
// modified.
func Shallow[V any](base, overrides *orderedmap.OrderedMap[string, V]) *orderedmap.OrderedMap[string, V] {
	out := orderedmap.New[string, V]()
	for _, m := range []*orderedmap.OrderedMap[string, V]{base, overrides} {
		if m == nil {
			continue
		}
		for pair := m.Oldest(); pair != nil; pair = pair.Next() {
			out.Set(pair.Key, pair.Value)
		}
	}
	return out
}
