package scanner

import (
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// ReadSourceFile reads a source file with automatic encoding detection.
// Legacy Korean Spring codebases frequently mix UTF-8 and EUC-KR/CP949
// files in one tree, so invalid UTF-8 gets a EUC-KR decode attempt before
// falling back to the raw bytes.
func ReadSourceFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	if utf8.Valid(raw) {
		return string(raw), nil
	}

	decoder := korean.EUCKR.NewDecoder()
	decoded, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return string(raw), nil
	}
	return string(decoded), nil
}
