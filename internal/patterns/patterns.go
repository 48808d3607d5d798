// Package patterns decides whether a string value looks like a filesystem
// path, a URL or a bare domain name, and classifies paths into coarse
// storage location classes. All state is injected at construction so tests
// can substitute alternate rule sets.
package patterns

import (
	"fmt"
	"regexp"
	"strings"
)

// LocationRule maps a path prefix to a location class. Rules are evaluated
// longest-prefix-first by the classifier.
type LocationRule struct {
	Prefix string
	Class  string
}

// Rules is the immutable pattern configuration of a Classifier.
type Rules struct {
	// CredentialExtensions are file extensions accepted anywhere under /.
	CredentialExtensions []string
	// PathRoots are first path segments accepted regardless of extension
	// when classifying configuration values.
	PathRoots []string
	// SourceExtensions is the wider extension set accepted for string
	// literals found in source code.
	SourceExtensions []string
	// SourcePathRoots are the directory roots accepted for source literals.
	SourcePathRoots []string
	// Locations map path prefixes to location classes.
	Locations []LocationRule
	// DefaultExcludes are substrings that disqualify a value in every tier.
	DefaultExcludes []string
	// SourceExcludes extend DefaultExcludes for source-code literals.
	SourceExcludes []string
}

// DefaultRules returns the fixed rule set used in production.
func DefaultRules() Rules {
	return Rules{
		CredentialExtensions: []string{
			"der", "pem", "p8", "p12", "cer", "crt", "key",
			"jks", "keystore", "pfx", "truststore",
		},
		PathRoots: []string{"nas[0-9]*", "mnt", "home", "var", "opt"},
		SourceExtensions: []string{
			"der", "pem", "p8", "p12", "cer", "crt", "key",
			"json", "jks", "keystore", "properties", "xml", "yml", "yaml",
		},
		SourcePathRoots: []string{"nas", "mnt", "home", "var", "opt", "data"},
		Locations: []LocationRule{
			{Prefix: "/mnt/nas", Class: "nas"},
			{Prefix: "/nas", Class: "nas"},
			{Prefix: "/mnt", Class: "mount"},
			{Prefix: "/home", Class: "local"},
			{Prefix: "/opt", Class: "local"},
			{Prefix: "/var", Class: "var"},
		},
		DefaultExcludes: []string{
			"localhost", "127.0.0.1", "0.0.0.0", "host.docker.internal",
		},
		SourceExcludes: []string{
			"classpath:", "file://", "./", "../",
			"build/", "target/", ".gradle/",
			"example.com", "test.com", "mock",
		},
	}
}

// Classifier applies a compiled rule set. Safe for concurrent use.
type Classifier struct {
	rules Rules

	fileExtension  *regexp.Regexp
	filePath       *regexp.Regexp
	sourceFilePath *regexp.Regexp
	sourceDirPath  *regexp.Regexp
	url            *regexp.Regexp
	sourceURL      *regexp.Regexp
	domain         *regexp.Regexp
}

// NewClassifier compiles the rule set into a Classifier.
func NewClassifier(rules Rules) *Classifier {
	return &Classifier{
		rules: rules,
		fileExtension: regexp.MustCompile(
			fmt.Sprintf(`^/[a-zA-Z0-9/_.-]+\.(%s)$`, strings.Join(rules.CredentialExtensions, "|"))),
		filePath: regexp.MustCompile(
			fmt.Sprintf(`^/(%s)/[a-zA-Z0-9/_.-]+$`, strings.Join(rules.PathRoots, "|"))),
		sourceFilePath: regexp.MustCompile(
			fmt.Sprintf(`^/[a-zA-Z0-9/_.-]+\.(%s)$`, strings.Join(rules.SourceExtensions, "|"))),
		sourceDirPath: regexp.MustCompile(
			fmt.Sprintf(`^/(%s)/[a-zA-Z0-9/_-]+$`, strings.Join(rules.SourcePathRoots, "|"))),
		url:       regexp.MustCompile(`^https?://[a-zA-Z0-9.-]+(:[0-9]+)?(/.*)?$`),
		sourceURL: regexp.MustCompile(`^https?://[a-zA-Z0-9.-]+(:[0-9]+)?(/[^\s]*)?$`),
		domain: regexp.MustCompile(
			`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?)+$`),
	}
}

// NewDefaultClassifier compiles the production rule set.
func NewDefaultClassifier() *Classifier {
	return NewClassifier(DefaultRules())
}

// IsFilePath reports whether a configuration value looks like a file
// requirement: an absolute path with a credential/config extension, or an
// absolute path rooted at one of the known storage roots.
func (c *Classifier) IsFilePath(value string) bool {
	if value == "" {
		return false
	}
	return c.fileExtension.MatchString(value) || c.filePath.MatchString(value)
}

// DetectLocation classifies a path into a location class by longest-prefix
// rule over the configured roots.
func (c *Classifier) DetectLocation(path string) string {
	for _, rule := range c.rules.Locations {
		if strings.HasPrefix(path, rule.Prefix) {
			return rule.Class
		}
	}
	return "unknown"
}

// IsURL reports whether the value is an http(s) URL.
func (c *Classifier) IsURL(value string) bool {
	return value != "" && c.url.MatchString(value)
}

// IsDomainName reports whether the value is a bare dotted hostname without
// scheme, path or placeholder syntax (e.g. "api.abc.co.kr").
func (c *Classifier) IsDomainName(value string) bool {
	if value == "" {
		return false
	}
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return false
	}
	if strings.ContainsAny(value, "/ $") {
		return false
	}
	return c.domain.MatchString(value)
}

// IsSourceFilePath applies the stricter full-match grammar used for string
// literals found in source code.
func (c *Classifier) IsSourceFilePath(value string) bool {
	if value == "" {
		return false
	}
	return c.sourceFilePath.MatchString(value) || c.sourceDirPath.MatchString(value)
}

// IsSourceURL applies the full-match URL grammar for source literals.
func (c *Classifier) IsSourceURL(value string) bool {
	return value != "" && c.sourceURL.MatchString(value)
}

// ShouldExclude reports whether a value hits the default exclusion list or
// any user-supplied glob pattern ("*" matches anything, "." is literal).
func (c *Classifier) ShouldExclude(value string, userPatterns []string) bool {
	if value == "" {
		return true
	}
	for _, exclude := range c.rules.DefaultExcludes {
		if strings.Contains(value, exclude) {
			return true
		}
	}
	for _, pattern := range userPatterns {
		if pattern == "" {
			continue
		}
		expr := strings.ReplaceAll(pattern, ".", `\.`)
		expr = strings.ReplaceAll(expr, "*", ".*")
		if matched, err := regexp.MatchString(".*"+expr+".*", value); err == nil && matched {
			return true
		}
	}
	return false
}

// ShouldExcludeSource reports whether a source literal hits the default or
// source-specific exclusion lists. Matching is case-insensitive.
func (c *Classifier) ShouldExcludeSource(value string) bool {
	lower := strings.ToLower(value)
	for _, exclude := range c.rules.DefaultExcludes {
		if strings.Contains(lower, exclude) {
			return true
		}
	}
	for _, exclude := range c.rules.SourceExcludes {
		if strings.Contains(lower, exclude) {
			return true
		}
	}
	return false
}
