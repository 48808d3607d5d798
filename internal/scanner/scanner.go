// Package scanner walks a Java source tree and extracts hardcoded file
// paths and URLs from string literals, feeding the source-derived tier of
// the requirements extractor.
package scanner

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"infra-recon/internal/javaparser"
	"infra-recon/internal/logger"
	"infra-recon/internal/patterns"
)

// Result holds the outcome of one source-tree scan. The scan is independent
// of the deployment profile, so one Result is shared across every profile of
// an invocation.
type Result struct {
	Paths []string
	URLs  []string
	// FilesScanned and FilesSkipped feed the run summary log.
	FilesScanned int
	FilesSkipped int
}

// Scanner extracts literal populations from every non-test Java file under
// a source root. Classification rules are injected so tests can substitute
// their own pattern sets.
type Scanner struct {
	sourceRoot string
	classifier *patterns.Classifier
}

// New creates a Scanner rooted at sourceRoot.
func New(sourceRoot string, classifier *patterns.Classifier) *Scanner {
	return &Scanner{sourceRoot: sourceRoot, classifier: classifier}
}

// Scan walks the tree once and collects both the file-path and the URL
// populations. Each file contributes (a) all string literals that are not
// annotation arguments and (b) static-final string initializers; values are
// matched against the strict source grammars and the exclusion lists.
// A file that fails to lex is skipped; one bad file never aborts the scan.
func (s *Scanner) Scan(onFile func()) *Result {
	result := &Result{}

	pathSet := map[string]struct{}{}
	urlSet := map[string]struct{}{}

	err := filepath.WalkDir(s.sourceRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Source scan error at %s: %v", path, err)
			return fs.SkipDir
		}
		if d.IsDir() {
			if isExcludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".java") || inTestTree(path) {
			return nil
		}

		if onFile != nil {
			onFile()
		}

		content, err := ReadSourceFile(path)
		if err != nil {
			logger.LogParseError(path, err, "read")
			result.FilesSkipped++
			return nil
		}

		cu, err := javaparser.Parse(content)
		if err != nil {
			logger.LogParseError(path, err, "lex")
			result.FilesSkipped++
			return nil
		}

		result.FilesScanned++
		s.collect(cu, pathSet, urlSet)
		return nil
	})
	if err != nil {
		logger.Warn("Source scan failed: %v", err)
	}

	result.Paths = sortedKeys(pathSet)
	result.URLs = sortedKeys(urlSet)
	return result
}

func (s *Scanner) collect(cu *javaparser.CompilationUnit, pathSet, urlSet map[string]struct{}) {
	candidates := cu.StringLiterals()
	candidates = append(candidates, cu.StaticFinalInitializers()...)

	for _, value := range candidates {
		if s.classifier.ShouldExcludeSource(value) {
			continue
		}
		if s.classifier.IsSourceFilePath(value) {
			pathSet[value] = struct{}{}
		} else if s.classifier.IsSourceURL(value) {
			urlSet[value] = struct{}{}
		}
	}
}

// CountFiles returns the number of Java files the scan will visit, for
// progress reporting. Errors are ignored; progress totals are cosmetic.
func (s *Scanner) CountFiles() int {
	count := 0
	filepath.WalkDir(s.sourceRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fs.SkipDir
		}
		if d.IsDir() {
			if isExcludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".java") && !inTestTree(path) {
			count++
		}
		return nil
	})
	return count
}

// inTestTree reports whether any path segment identifies a test tree.
func inTestTree(path string) bool {
	normalized := filepath.ToSlash(path)
	return strings.Contains(normalized, "/test/") || strings.Contains(normalized, "/tests/")
}

func isExcludedDir(name string) bool {
	switch name {
	case ".git", ".svn", "build", "target", "node_modules":
		return true
	}
	return false
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
