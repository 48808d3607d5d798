package configtree

import (
	"reflect"
	"sort"
	"testing"
)

func TestDeepMergeScalarOverlayWins(t *testing.T) {
	base := map[string]any{
		"server": map[string]any{"port": 8080, "host": "base"},
	}
	overlay := map[string]any{
		"server": map[string]any{"port": 9090},
	}

	DeepMerge(base, overlay)

	tree := NewTree(base)
	if port, _ := tree.StringAt("server.port"); port != "9090" {
		t.Errorf("Expected overlay port 9090, got %s", port)
	}
	// Unrelated sibling must survive the recursive merge
	if host, _ := tree.StringAt("server.host"); host != "base" {
		t.Errorf("Expected sibling host to survive, got %s", host)
	}
}

func TestDeepMergeRecursesIntoMappings(t *testing.T) {
	base := map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": "x", "keep": "yes"},
		},
	}
	overlay := map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": "y"},
		},
	}

	DeepMerge(base, overlay)

	tree := NewTree(base)
	if v, _ := tree.StringAt("a.b.c"); v != "y" {
		t.Errorf("Expected a.b.c = y, got %s", v)
	}
	if v, _ := tree.StringAt("a.b.keep"); v != "yes" {
		t.Errorf("Expected a.b.keep = yes, got %s", v)
	}
}

func TestDeepMergeReplacesSequences(t *testing.T) {
	base := map[string]any{
		"list": []any{"a", "b", "c"},
	}
	overlay := map[string]any{
		"list": []any{"x"},
	}

	DeepMerge(base, overlay)

	tree := NewTree(base)
	values, ok := tree.StringSliceAt("list")
	if !ok {
		t.Fatal("Expected list to exist")
	}
	if !reflect.DeepEqual(values, []string{"x"}) {
		t.Errorf("Expected overlay sequence to fully replace base, got %v", values)
	}
}

func TestGetDottedPath(t *testing.T) {
	tree := NewTree(map[string]any{
		"spring": map[string]any{
			"redis": map[string]any{"host": "cache.internal"},
		},
	})

	if v, ok := tree.StringAt("spring.redis.host"); !ok || v != "cache.internal" {
		t.Errorf("StringAt(spring.redis.host) = %q, %v", v, ok)
	}
	if _, ok := tree.Get("spring.redis.port"); ok {
		t.Error("Expected missing key to report !ok")
	}
	if _, ok := tree.Get("spring.redis.host.deeper"); ok {
		t.Error("Expected descent through a scalar to report !ok")
	}
}

func TestAccessorsAreTypeSafe(t *testing.T) {
	tree := NewTree(map[string]any{
		"number":  42,
		"flag":    true,
		"flagStr": "true",
		"mapping": map[string]any{"k": "v"},
	})

	if v, ok := tree.StringAt("number"); !ok || v != "42" {
		t.Errorf("Expected number stringified to 42, got %q, %v", v, ok)
	}
	if v, ok := tree.BoolAt("flag"); !ok || !v {
		t.Errorf("Expected flag = true, got %v, %v", v, ok)
	}
	if v, ok := tree.BoolAt("flagStr"); !ok || !v {
		t.Errorf("Expected string bool parsed, got %v, %v", v, ok)
	}
	// Type mismatches must report !ok, never panic
	if _, ok := tree.BoolAt("mapping"); ok {
		t.Error("Expected BoolAt on a mapping to report !ok")
	}
	if _, ok := tree.StringSliceAt("number"); ok {
		t.Error("Expected StringSliceAt on a scalar to report !ok")
	}
}

func TestWalkVisitsAllLeaves(t *testing.T) {
	tree := NewTree(map[string]any{
		"a": map[string]any{
			"b": "one",
			"c": []any{"two", "three"},
		},
		"d": "four",
	})

	visited := map[string]string{}
	tree.Walk(func(key string, value any) {
		if s, ok := value.(string); ok {
			visited[key] = s
		}
	})

	expected := map[string]string{
		"a.b":    "one",
		"a.c[0]": "two",
		"a.c[1]": "three",
		"d":      "four",
	}
	if !reflect.DeepEqual(visited, expected) {
		t.Errorf("Walk visited %v, expected %v", visited, expected)
	}
}

func TestWalkRecursesIntoSequenceMappings(t *testing.T) {
	tree := NewTree(map[string]any{
		"items": []any{
			map[string]any{"path": "/nas/a"},
			map[string]any{"path": "/nas/b"},
		},
	})

	var keys []string
	tree.Walk(func(key string, value any) {
		keys = append(keys, key)
	})
	sort.Strings(keys)

	expected := []string{"items[0].path", "items[1].path"}
	if !reflect.DeepEqual(keys, expected) {
		t.Errorf("Walk keys = %v, expected %v", keys, expected)
	}
}
