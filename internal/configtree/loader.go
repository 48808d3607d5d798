package configtree

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"infra-recon/internal/logger"

	"github.com/spf13/viper"
)

// Load parses a configuration source and merges the base layer with the
// overlay selected by profile into a single tree.
//
// YAML sources may contain multiple documents separated by "---"; documents
// without a profile-activation marker form the base layer, documents whose
// marker equals profile form the overlay, anything else is discarded.
// Properties sources are exploded from dotted keys into nested maps and a
// sibling "application-<profile>.properties" is merged on top when present.
//
// Any read or parse failure degrades to an empty tree with a logged warning;
// Load never fails hard.
func Load(path, profile string) *Tree {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadYAML(path, profile)
	case ".properties":
		return loadProperties(path, profile)
	default:
		logger.Warn("Unsupported config format: %s", path)
		return NewTree(nil)
	}
}

// DiscoverConfigFile probes for the application configuration under the
// conventional Spring resource directory, falling back to the project root.
// Priority: application.yaml > application.yml > application.properties.
// Returns "" when nothing is found.
func DiscoverConfigFile(projectRoot string) string {
	candidates := []string{
		filepath.Join(projectRoot, "src", "main", "resources"),
		projectRoot,
	}
	names := []string{"application.yaml", "application.yml", "application.properties"}

	for _, dir := range candidates {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
	}
	return ""
}

func loadYAML(path, profile string) *Tree {
	f, err := os.Open(path)
	if err != nil {
		logger.Warn("Failed to read config file %s: %v", path, err)
		return NewTree(nil)
	}
	defer f.Close()

	base := map[string]any{}
	overlay := map[string]any{}

	dec := yaml.NewDecoder(f)
	for {
		var doc map[string]any
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			logger.Warn("Failed to parse config file %s: %v", path, err)
			return NewTree(nil)
		}
		if doc == nil {
			continue
		}

		switch documentProfile(doc) {
		case "":
			DeepMerge(base, doc)
		case profile:
			DeepMerge(overlay, doc)
		}
	}

	DeepMerge(base, overlay)
	return NewTree(base)
}

// documentProfile extracts the profile-activation marker of one YAML
// document: spring.config.activate.on-profile first, then a scalar
// spring.profiles. Empty means the document belongs to the base layer.
func documentProfile(doc map[string]any) string {
	t := NewTree(doc)
	if p, ok := t.StringAt("spring.config.activate.on-profile"); ok {
		return p
	}
	if v, ok := t.Get("spring.profiles"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func loadProperties(path, profile string) *Tree {
	base := readProperties(path)
	if base == nil {
		return NewTree(nil)
	}

	if profile != "" {
		sibling := filepath.Join(filepath.Dir(path), "application-"+profile+".properties")
		if _, err := os.Stat(sibling); err == nil {
			if overlay := readProperties(sibling); overlay != nil {
				DeepMerge(base, overlay)
			}
		}
	}

	return NewTree(base)
}

// readProperties loads one flat key=value file through viper, which explodes
// dotted keys into nested maps. viper lowercases every key, so a mixed-case
// property like app.keyPath surfaces as app.keypath in walk keys and
// config-derived descriptions. Values are untouched. Returns nil on failure.
func readProperties(path string) map[string]any {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("properties")
	if err := v.ReadInConfig(); err != nil {
		logger.Warn("Failed to read properties file %s: %v", path, err)
		return nil
	}
	return v.AllSettings()
}
