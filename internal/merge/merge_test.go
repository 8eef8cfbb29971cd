package merge

import (
	"encoding/json"
	"testing"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func ordered(kv ...any) *orderedmap.OrderedMap[string, any] {
	om := orderedmap.New[string, any]()
	for i := 0; i+1 < len(kv); i += 2 {
		om.Set(kv[i].(string), kv[i+1])
	}
	return om
}

func TestShallow_OverrideWins(t *testing.T) {
	base := ordered("allowed", []string{"a"}, "tracking", "none")
	got := Shallow(base, ordered("tracking", "full"))

	out, err := json.Marshal(got)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"allowed":["a"],"tracking":"full"}` {
		t.Errorf("merged = %s", out)
	}
}

func TestShallow_NewKeysAppended(t *testing.T) {
	got := Shallow(ordered("a", 1, "b", 2), ordered("c", 3, "a", 9))
	out, _ := json.Marshal(got)
	if string(out) != `{"a":9,"b":2,"c":3}` {
		t.Errorf("merged = %s", out)
	}
}

func TestShallow_NoDeepMerge(t *testing.T) {
	base := ordered("nested", map[string]any{"x": 1, "y": 2})
	got := Shallow(base, ordered("nested", map[string]any{"x": 5}))
	v, _ := got.Get("nested")
	if m := v.(map[string]any); len(m) != 1 || m["x"] != 5 {
		t.Errorf("nested = %v, want override value verbatim", m)
	}
}

func TestShallow_InputsUntouched(t *testing.T) {
	base := ordered("k", "base")
	over := ordered("k", "over", "extra", true)
	_ = Shallow(base, over)
	if v, _ := base.Get("k"); v != "base" || base.Len() != 1 {
		t.Errorf("base modified: %v (len %d)", v, base.Len())
	}
	if over.Len() != 2 {
		t.Errorf("overrides modified: len %d", over.Len())
	}
}

func TestShallow_NilArguments(t *testing.T) {
	if got := Shallow[any](nil, nil); got.Len() != 0 {
		t.Errorf("len = %d, want 0", got.Len())
	}
	if got := Shallow(ordered("a", 1), nil); got.Len() != 1 {
		t.Errorf("len = %d, want 1", got.Len())
	}
}
