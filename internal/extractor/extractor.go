// Package extractor derives infrastructure requirement findings from a
// merged configuration tree and a source-tree scan. Each category runs a
// three-tier strategy: explicit declarations win over config-derived
// findings, which win over source-derived ones; the tiers are concatenated
// into one buffer and deduplicated by value in a single final pass.
package extractor

import (
	"strings"

	"infra-recon/internal/configtree"
	"infra-recon/internal/model"
	"infra-recon/internal/patterns"
	"infra-recon/internal/scanner"
)

// ValidationNamespace is the configuration subtree holding explicit
// declarations and extractor settings. The config-derived tier never walks
// into it.
const ValidationNamespace = "infrastructure.validation"

const defaultCompanyDomain = "company.com"

// Extractor runs the hybrid extraction for one (tree, profile) pair.
// The source scan result is profile-independent and shared across runs.
type Extractor struct {
	tree       *configtree.Tree
	classifier *patterns.Classifier
	scan       *scanner.Result

	companyDomain   string
	excludePatterns []string
	sourceEnabled   bool

	droppedUnresolved int
}

// New builds an Extractor, reading its settings out of the validation
// namespace of the tree. Source analysis defaults to enabled.
func New(tree *configtree.Tree, classifier *patterns.Classifier, scan *scanner.Result) *Extractor {
	e := &Extractor{
		tree:          tree,
		classifier:    classifier,
		scan:          scan,
		companyDomain: defaultCompanyDomain,
		sourceEnabled: true,
	}

	if domain, ok := tree.StringAt(ValidationNamespace + ".company-domain"); ok && domain != "" {
		e.companyDomain = domain
	}
	if pats, ok := tree.StringSliceAt(ValidationNamespace + ".exclude-patterns"); ok {
		e.excludePatterns = pats
	}
	if enabled, ok := tree.BoolAt(ValidationNamespace + ".source-code-analysis.enabled"); ok {
		e.sourceEnabled = enabled
	}
	return e
}

// CompanyDomain returns the configured company domain (or the fallback).
func (e *Extractor) CompanyDomain() string {
	return e.companyDomain
}

// DroppedUnresolved returns how many explicit declarations were discarded
// because their value still carried an unresolved ${...} placeholder.
// Dropping is silent by policy; the count feeds a diagnostics warning.
func (e *Extractor) DroppedUnresolved() int {
	return e.droppedUnresolved
}

// ========== files ==========

// ExtractFiles runs the file-requirement waterfall. A non-empty explicit
// declaration list is the sole tier-1/2 source, even when every entry in it
// is dropped; only with no declarations at all is the tree walked. The
// source-derived tier always runs when enabled, regardless of the earlier
// tiers.
func (e *Extractor) ExtractFiles() []model.FileCheck {
	buffer, declared := e.explicitFiles()
	if !declared {
		buffer = e.configDerivedFiles()
	}
	if e.sourceEnabled {
		buffer = append(buffer, e.sourceDerivedFiles()...)
	}
	return dedupeFiles(buffer)
}

// explicitFiles parses the declared file list. declared reports whether the
// operator supplied any declarations, which suppresses the config-derived
// tier even when all of them are dropped.
func (e *Extractor) explicitFiles() (files []model.FileCheck, declared bool) {
	items, ok := e.tree.MapSliceAt(ValidationNamespace + ".files")
	if !ok || len(items) == 0 {
		return nil, false
	}

	for _, item := range items {
		path := configtree.Resolve(stringField(item, "path"), e.tree)
		if path == "" {
			continue
		}
		if configtree.IsUnresolved(path) {
			e.droppedUnresolved++
			continue
		}
		files = append(files, model.FileCheck{
			Path:        path,
			Location:    e.classifier.DetectLocation(path),
			Critical:    boolField(item, "critical", true),
			Description: stringFieldDefault(item, "description", path),
			Origin:      model.OriginExplicit,
		})
	}
	return files, true
}

func (e *Extractor) configDerivedFiles() []model.FileCheck {
	var files []model.FileCheck
	seen := map[string]struct{}{}

	e.tree.Walk(func(key string, value any) {
		path, ok := value.(string)
		if !ok {
			return
		}
		if strings.HasPrefix(key, ValidationNamespace) {
			return
		}
		if e.classifier.ShouldExclude(path, e.excludePatterns) {
			return
		}
		if !e.classifier.IsFilePath(path) {
			return
		}
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}
		files = append(files, model.FileCheck{
			Path:        path,
			Location:    e.classifier.DetectLocation(path),
			Critical:    true,
			Description: key,
			Origin:      model.OriginConfigDerived,
		})
	})
	return files
}

func (e *Extractor) sourceDerivedFiles() []model.FileCheck {
	var files []model.FileCheck
	for _, path := range e.scan.Paths {
		files = append(files, model.FileCheck{
			Path:        path,
			Location:    e.classifier.DetectLocation(path),
			Critical:    true,
			Description: "detected in source code",
			Origin:      model.OriginSourceDerived,
		})
	}
	return files
}

// ========== external APIs ==========

// ExtractAPIs runs the API-requirement waterfall with the same tier gating
// as ExtractFiles. The config-derived tier also promotes bare company-domain
// hostnames to https URLs. Criticality of discovered URLs follows
// company-domain containment; everything else is warning-only.
func (e *Extractor) ExtractAPIs() []model.ApiCheck {
	buffer, declared := e.explicitAPIs()
	if !declared {
		buffer = e.configDerivedAPIs()
	}
	if e.sourceEnabled {
		buffer = append(buffer, e.sourceDerivedAPIs()...)
	}
	return dedupeAPIs(buffer)
}

func (e *Extractor) explicitAPIs() (apis []model.ApiCheck, declared bool) {
	items, ok := e.tree.MapSliceAt(ValidationNamespace + ".apis")
	if !ok || len(items) == 0 {
		return nil, false
	}

	for _, item := range items {
		url := configtree.Resolve(stringField(item, "url"), e.tree)
		if url == "" {
			continue
		}
		if configtree.IsUnresolved(url) {
			e.droppedUnresolved++
			continue
		}
		apis = append(apis, model.ApiCheck{
			URL:            url,
			Method:         stringFieldDefault(item, "method", "HEAD"),
			ExpectedStatus: intSliceField(item, "expectedStatus"),
			Critical:       boolField(item, "critical", true),
			Description:    stringFieldDefault(item, "description", url),
			Origin:         model.OriginExplicit,
		})
	}
	return apis, true
}

func (e *Extractor) configDerivedAPIs() []model.ApiCheck {
	var apis []model.ApiCheck
	seen := map[string]struct{}{}

	e.tree.Walk(func(key string, value any) {
		str, ok := value.(string)
		if !ok {
			return
		}
		if strings.HasPrefix(key, ValidationNamespace) {
			return
		}
		if e.classifier.ShouldExclude(str, e.excludePatterns) {
			return
		}

		url := ""
		if e.classifier.IsURL(str) {
			url = str
		} else if e.classifier.IsDomainName(str) && strings.Contains(str, e.companyDomain) {
			url = "https://" + str
		}
		if url == "" {
			return
		}
		if _, dup := seen[url]; dup {
			return
		}
		seen[url] = struct{}{}

		critical := strings.Contains(url, e.companyDomain)
		desc := key + " (external - warning only)"
		if critical {
			desc = key + " (company domain)"
		}
		apis = append(apis, model.ApiCheck{
			URL:         url,
			Method:      "HEAD",
			Critical:    critical,
			Description: desc,
			Origin:      model.OriginConfigDerived,
		})
	})
	return apis
}

func (e *Extractor) sourceDerivedAPIs() []model.ApiCheck {
	var apis []model.ApiCheck
	for _, url := range e.scan.URLs {
		critical := strings.Contains(url, e.companyDomain)
		desc := "detected in source code (external - warning only)"
		if critical {
			desc = "detected in source code (company domain)"
		}
		apis = append(apis, model.ApiCheck{
			URL:         url,
			Method:      "HEAD",
			Critical:    critical,
			Description: desc,
			Origin:      model.OriginSourceDerived,
		})
	}
	return apis
}

// ========== directories ==========

// ExtractDirectories parses explicit directory-permission declarations.
// There is no automatic tier: permissions cannot be safely inferred from
// configuration or source.
func (e *Extractor) ExtractDirectories() []model.DirectoryCheck {
	items, ok := e.tree.MapSliceAt(ValidationNamespace + ".directories")
	if !ok {
		return nil
	}

	var dirs []model.DirectoryCheck
	for _, item := range items {
		path := stringField(item, "path")
		if path == "" {
			continue
		}
		dirs = append(dirs, model.DirectoryCheck{
			Path:        path,
			Permissions: stringFieldDefault(item, "permissions", "rwx"),
			Critical:    boolField(item, "critical", true),
			Description: stringField(item, "description"),
		})
	}
	return dirs
}

// ========== dedup ==========

// dedupeFiles keeps the first occurrence per path. Tier order makes this
// first-writer-wins: explicit beats config-derived beats source-derived.
func dedupeFiles(files []model.FileCheck) []model.FileCheck {
	seen := make(map[string]struct{}, len(files))
	out := make([]model.FileCheck, 0, len(files))
	for _, f := range files {
		if _, dup := seen[f.Path]; dup {
			continue
		}
		seen[f.Path] = struct{}{}
		out = append(out, f)
	}
	return out
}

func dedupeAPIs(apis []model.ApiCheck) []model.ApiCheck {
	seen := make(map[string]struct{}, len(apis))
	out := make([]model.ApiCheck, 0, len(apis))
	for _, a := range apis {
		if _, dup := seen[a.URL]; dup {
			continue
		}
		seen[a.URL] = struct{}{}
		out = append(out, a)
	}
	return out
}

// ========== declaration field helpers ==========

func stringField(item map[string]any, key string) string {
	if v, ok := item[key].(string); ok {
		return v
	}
	return ""
}

func stringFieldDefault(item map[string]any, key, def string) string {
	if v, ok := item[key].(string); ok && v != "" {
		return v
	}
	return def
}

func boolField(item map[string]any, key string, def bool) bool {
	if v, ok := item[key].(bool); ok {
		return v
	}
	return def
}

func intSliceField(item map[string]any, key string) []int {
	seq, ok := item[key].([]any)
	if !ok {
		return nil
	}
	var out []int
	for _, v := range seq {
		if n, ok := v.(int); ok {
			out = append(out, n)
		}
	}
	return out
}
