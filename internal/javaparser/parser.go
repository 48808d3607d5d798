// Package javaparser performs the lexical analysis of Java translation
// units needed for requirement extraction: string literal collection,
// static-final constant initializers and annotation argument spans.
// It is not a full parser; it only needs to be exact about where comments,
// strings and parentheses begin and end.
package javaparser

import (
	"fmt"
	"regexp"
	"strings"
)

// StringLiteral is one string literal token with the byte offset of its
// opening quote. The offset is the stable identity used to subtract
// annotation-argument literals from the candidate set.
type StringLiteral struct {
	Value  string
	Offset int
}

type span struct {
	start, end int
}

func (s span) contains(offset int) bool {
	return offset >= s.start && offset < s.end
}

// CompilationUnit is the result of lexing one Java source file.
type CompilationUnit struct {
	literals        []StringLiteral
	annotationSpans []span
	staticFinals    []StringLiteral
}

// Matches "static final" (either order) field declarations up to the opening
// quote of a string initializer.
var staticFinalInitRegex = regexp.MustCompile(`(?s)\b(?:static\s+final|final\s+static)\b[^=;{}]*=\s*"`)

// Parse lexes a Java source file. It fails only on an unterminated string
// literal, which indicates the file is not lexable as Java; callers treat
// that as a skip, never an abort.
func Parse(content string) (*CompilationUnit, error) {
	literals, err := scanLiterals(content)
	if err != nil {
		return nil, err
	}

	cu := &CompilationUnit{literals: literals}
	cu.annotationSpans = scanAnnotationSpans(content)
	cu.staticFinals = matchStaticFinals(content, literals)
	return cu, nil
}

// StringLiterals returns every literal that is not an argument to an
// annotation. Annotation literals are typically documentation examples
// (@Schema example values and the like), not runtime values.
func (cu *CompilationUnit) StringLiterals() []string {
	out := make([]string, 0, len(cu.literals))
	for _, lit := range cu.literals {
		if cu.inAnnotation(lit.Offset) {
			continue
		}
		out = append(out, lit.Value)
	}
	return out
}

// StaticFinalInitializers returns the string initializer values of
// static final fields.
func (cu *CompilationUnit) StaticFinalInitializers() []string {
	out := make([]string, 0, len(cu.staticFinals))
	for _, lit := range cu.staticFinals {
		out = append(out, lit.Value)
	}
	return out
}

func (cu *CompilationUnit) inAnnotation(offset int) bool {
	for _, s := range cu.annotationSpans {
		if s.contains(offset) {
			return true
		}
	}
	return false
}

// scanLiterals walks the content once, tracking comment/char/string state,
// and collects every string literal with its opening-quote offset.
func scanLiterals(content string) ([]StringLiteral, error) {
	var literals []StringLiteral

	inLineComment := false
	inBlockComment := false
	inChar := false
	escaped := false

	for i := 0; i < len(content); i++ {
		ch := content[i]

		if inLineComment {
			if ch == '\n' {
				inLineComment = false
			}
			continue
		}
		if inBlockComment {
			if ch == '*' && i+1 < len(content) && content[i+1] == '/' {
				inBlockComment = false
				i++
			}
			continue
		}
		if inChar {
			if escaped {
				escaped = false
			} else if ch == '\\' {
				escaped = true
			} else if ch == '\'' {
				inChar = false
			}
			continue
		}

		switch ch {
		case '/':
			if i+1 < len(content) {
				if content[i+1] == '/' {
					inLineComment = true
					i++
				} else if content[i+1] == '*' {
					inBlockComment = true
					i++
				}
			}
		case '\'':
			inChar = true
			escaped = false
		case '"':
			value, end, ok := readString(content, i)
			if !ok {
				return nil, fmt.Errorf("unterminated string literal at offset %d", i)
			}
			literals = append(literals, StringLiteral{Value: value, Offset: i})
			i = end
		}
	}

	return literals, nil
}

// readString consumes a string literal starting at the opening quote and
// returns its unescaped value and the index of the closing quote.
func readString(content string, start int) (string, int, bool) {
	var sb strings.Builder
	escaped := false

	for i := start + 1; i < len(content); i++ {
		ch := content[i]
		if escaped {
			switch ch {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			default:
				sb.WriteByte(ch)
			}
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			escaped = true
		case '\n':
			return "", 0, false
		case '"':
			return sb.String(), i, true
		default:
			sb.WriteByte(ch)
		}
	}
	return "", 0, false
}

// scanAnnotationSpans finds every @Identifier(...) occurrence outside
// comments and strings and records the argument-list span. Nested
// parentheses and strings inside the argument list are handled.
func scanAnnotationSpans(content string) []span {
	var spans []span

	inLineComment := false
	inBlockComment := false
	inString := false
	inChar := false
	escaped := false

	for i := 0; i < len(content); i++ {
		ch := content[i]

		if inLineComment {
			if ch == '\n' {
				inLineComment = false
			}
			continue
		}
		if inBlockComment {
			if ch == '*' && i+1 < len(content) && content[i+1] == '/' {
				inBlockComment = false
				i++
			}
			continue
		}
		if inString || inChar {
			if escaped {
				escaped = false
			} else if ch == '\\' {
				escaped = true
			} else if inString && ch == '"' {
				inString = false
			} else if inChar && ch == '\'' {
				inChar = false
			}
			continue
		}

		switch ch {
		case '/':
			if i+1 < len(content) {
				if content[i+1] == '/' {
					inLineComment = true
					i++
				} else if content[i+1] == '*' {
					inBlockComment = true
					i++
				}
			}
		case '"':
			inString = true
			escaped = false
		case '\'':
			inChar = true
			escaped = false
		case '@':
			j := i + 1
			for j < len(content) && isIdentByte(content[j]) {
				j++
			}
			if j == i+1 {
				continue
			}
			k := j
			for k < len(content) && isSpaceByte(content[k]) {
				k++
			}
			if k < len(content) && content[k] == '(' {
				end := findClosingParen(content, k+1)
				spans = append(spans, span{start: k, end: end})
				i = end - 1
			} else {
				i = j - 1
			}
		}
	}

	return spans
}

// findClosingParen finds the index just past the parenthesis matching an
// opening one, respecting nested parens, strings, chars and comments.
func findClosingParen(content string, start int) int {
	depth := 1
	inString := false
	inChar := false
	inLineComment := false
	inBlockComment := false
	escaped := false

	for i := start; i < len(content); i++ {
		ch := content[i]

		if inLineComment {
			if ch == '\n' {
				inLineComment = false
			}
			continue
		}
		if inBlockComment {
			if ch == '*' && i+1 < len(content) && content[i+1] == '/' {
				inBlockComment = false
				i++
			}
			continue
		}
		if inString || inChar {
			if escaped {
				escaped = false
			} else if ch == '\\' {
				escaped = true
			} else if inString && ch == '"' {
				inString = false
			} else if inChar && ch == '\'' {
				inChar = false
			}
			continue
		}

		switch ch {
		case '/':
			if i+1 < len(content) {
				if content[i+1] == '/' {
					inLineComment = true
					i++
				} else if content[i+1] == '*' {
					inBlockComment = true
					i++
				}
			}
		case '"':
			inString = true
			escaped = false
		case '\'':
			inChar = true
			escaped = false
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(content)
}

// matchStaticFinals pairs static-final declarations with the literal token
// at the initializer position. Declarations inside comments never match a
// token, so they fall out naturally.
func matchStaticFinals(content string, literals []StringLiteral) []StringLiteral {
	byOffset := make(map[int]StringLiteral, len(literals))
	for _, lit := range literals {
		byOffset[lit.Offset] = lit
	}

	var out []StringLiteral
	for _, loc := range staticFinalInitRegex.FindAllStringIndex(content, -1) {
		quote := loc[1] - 1
		if lit, ok := byOffset[quote]; ok {
			out = append(out, lit)
		}
	}
	return out
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
