package configtree

import (
	"regexp"
	"strings"
)

var variablePattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Resolve substitutes ${key} and ${key:default} references in value against
// the tree. The scan is a single non-greedy left-to-right pass; substituted
// text is never re-resolved. A span whose key is missing and that carries no
// default is left untouched, so callers can detect unresolved references via
// IsUnresolved.
func Resolve(value string, tree *Tree) string {
	if !strings.Contains(value, "${") {
		return value
	}

	return variablePattern.ReplaceAllStringFunc(value, func(span string) string {
		inner := span[2 : len(span)-1]
		key := inner
		def := ""
		hasDefault := false
		if idx := strings.Index(inner, ":"); idx >= 0 {
			key = inner[:idx]
			def = inner[idx+1:]
			hasDefault = true
		}

		if resolved, ok := tree.StringAt(key); ok {
			return resolved
		}
		if hasDefault {
			return def
		}
		return span
	})
}

// IsUnresolved reports whether a resolved value still carries a placeholder.
// Explicit declarations with unresolved values are dropped by the extractor.
func IsUnresolved(value string) bool {
	return strings.Contains(value, "${")
}
