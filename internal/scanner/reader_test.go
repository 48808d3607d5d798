package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestReadSourceFileUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "App.java")
	content := "public class App { String p = \"/nas/key.pem\"; } // 한글 주석"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadSourceFile(path)
	if err != nil {
		t.Fatalf("ReadSourceFile failed: %v", err)
	}
	if got != content {
		t.Errorf("UTF-8 content altered: %q", got)
	}
}

func TestReadSourceFileEUCKR(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Legacy.java")
	// "한" encoded as EUC-KR (0xC7 0xD1), invalid as UTF-8
	raw := append([]byte("// "), 0xC7, 0xD1)
	raw = append(raw, []byte("\nclass Legacy {}")...)
	if err := os.WriteFile(path, raw, 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadSourceFile(path)
	if err != nil {
		t.Fatalf("ReadSourceFile failed: %v", err)
	}
	if !utf8.ValidString(got) {
		t.Error("Expected decoded output to be valid UTF-8")
	}
	if !strings.Contains(got, "한") {
		t.Errorf("Expected EUC-KR bytes decoded to 한, got %q", got)
	}
}

func TestReadSourceFileMissing(t *testing.T) {
	if _, err := ReadSourceFile(filepath.Join(t.TempDir(), "nope.java")); err == nil {
		t.Error("Expected error for missing file")
	}
}
