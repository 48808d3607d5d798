package configtree

import (
	"fmt"
	"strconv"
	"strings"
)

// Tree is the merged configuration of one (source, profile) pair.
// The underlying representation is the loosely-typed mapping produced by the
// YAML/properties decoders; all access goes through typed accessors that
// report success instead of panicking on a shape mismatch. A Tree is built
// once per extraction run and not modified afterwards.
type Tree struct {
	root map[string]any
}

// NewTree wraps an already-decoded mapping. A nil map yields an empty tree.
func NewTree(root map[string]any) *Tree {
	if root == nil {
		root = map[string]any{}
	}
	return &Tree{root: root}
}

// Empty reports whether the tree has no keys at all.
func (t *Tree) Empty() bool {
	return len(t.root) == 0
}

// Get resolves a dotted path ("spring.redis.host") to its raw value.
func (t *Tree) Get(dotPath string) (any, bool) {
	if dotPath == "" {
		return nil, false
	}
	var current any = t.root
	for _, key := range strings.Split(dotPath, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// StringAt returns the scalar at the path rendered as a string.
// Numbers and booleans are stringified; mappings and sequences are not.
func (t *Tree) StringAt(dotPath string) (string, bool) {
	v, ok := t.Get(dotPath)
	if !ok {
		return "", false
	}
	return scalarString(v)
}

// BoolAt returns the boolean at the path. String forms "true"/"false" are
// accepted so that properties sources behave like YAML ones.
func (t *Tree) BoolAt(dotPath string) (bool, bool) {
	v, ok := t.Get(dotPath)
	if !ok {
		return false, false
	}
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(b)
		if err != nil {
			return false, false
		}
		return parsed, true
	}
	return false, false
}

// StringSliceAt returns the sequence of scalars at the path.
// Non-scalar elements are skipped.
func (t *Tree) StringSliceAt(dotPath string) ([]string, bool) {
	v, ok := t.Get(dotPath)
	if !ok {
		return nil, false
	}
	seq, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(seq))
	for _, item := range seq {
		if s, ok := scalarString(item); ok {
			out = append(out, s)
		}
	}
	return out, true
}

// MapSliceAt returns the sequence of mappings at the path (the shape of
// explicit declaration lists such as infrastructure.validation.files).
// Non-mapping elements are skipped.
func (t *Tree) MapSliceAt(dotPath string) ([]map[string]any, bool) {
	v, ok := t.Get(dotPath)
	if !ok {
		return nil, false
	}
	seq, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]map[string]any, 0, len(seq))
	for _, item := range seq {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out, true
}

// Walk visits every leaf value in the tree depth-first, passing the dotted
// key path and the leaf. Sequence elements get an indexed key ("a.b[0]");
// mapping elements inside sequences are recursed into.
func (t *Tree) Walk(fn func(key string, value any)) {
	walkMap(t.root, "", fn)
}

func walkMap(m map[string]any, prefix string, fn func(string, any)) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		walkValue(v, key, fn)
	}
}

func walkValue(v any, key string, fn func(string, any)) {
	switch val := v.(type) {
	case map[string]any:
		walkMap(val, key, fn)
	case []any:
		for i, item := range val {
			indexed := fmt.Sprintf("%s[%d]", key, i)
			if m, ok := item.(map[string]any); ok {
				walkMap(m, indexed, fn)
			} else if item != nil {
				fn(indexed, item)
			}
		}
	default:
		if v != nil {
			fn(key, v)
		}
	}
}

// DeepMerge merges source into target. Mappings merge key-by-key recursively;
// any other value at a matching key is overwritten by source, so sequences
// are replaced wholesale rather than element-merged.
func DeepMerge(target, source map[string]any) {
	for key, sv := range source {
		if sm, ok := sv.(map[string]any); ok {
			if tm, ok := target[key].(map[string]any); ok {
				DeepMerge(tm, sm)
				continue
			}
		}
		target[key] = sv
	}
}

// scalarString renders a scalar leaf as its string form.
func scalarString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case bool:
		return strconv.FormatBool(s), true
	case int:
		return strconv.Itoa(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	case uint64:
		return strconv.FormatUint(s, 10), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case nil:
		return "", false
	}
	return "", false
}
