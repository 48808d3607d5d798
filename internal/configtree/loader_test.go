package configtree

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadYAMLProfileOverlay(t *testing.T) {
	yaml := `
server:
  port: 8080
  host: base.internal
---
spring:
  config:
    activate:
      on-profile: prod
server:
  port: 443
---
spring:
  config:
    activate:
      on-profile: dev
server:
  port: 8888
`
	path := writeFile(t, t.TempDir(), "application.yaml", yaml)

	tree := Load(path, "prod")

	if port, _ := tree.StringAt("server.port"); port != "443" {
		t.Errorf("Expected prod overlay port 443, got %s", port)
	}
	// Base sibling survives; the dev document is discarded entirely
	if host, _ := tree.StringAt("server.host"); host != "base.internal" {
		t.Errorf("Expected base host to survive, got %s", host)
	}
}

func TestLoadYAMLLegacyProfilesMarker(t *testing.T) {
	yaml := `
app:
  name: demo
---
spring:
  profiles: stage
app:
  name: demo-stage
`
	path := writeFile(t, t.TempDir(), "application.yml", yaml)

	tree := Load(path, "stage")
	if name, _ := tree.StringAt("app.name"); name != "demo-stage" {
		t.Errorf("Expected spring.profiles marker to activate overlay, got %s", name)
	}

	base := Load(path, "prod")
	if name, _ := base.StringAt("app.name"); name != "demo" {
		t.Errorf("Expected other profile to fall back to base, got %s", name)
	}
}

func TestLoadYAMLUnreadableIsFailSoft(t *testing.T) {
	tree := Load(filepath.Join(t.TempDir(), "missing.yaml"), "prod")
	if !tree.Empty() {
		t.Error("Expected empty tree for a missing file")
	}
}

func TestLoadYAMLUnparsableIsFailSoft(t *testing.T) {
	path := writeFile(t, t.TempDir(), "application.yaml", "server:\n\tport: [broken")
	tree := Load(path, "prod")
	if !tree.Empty() {
		t.Error("Expected empty tree for an unparsable file")
	}
}

func TestLoadProperties(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "application.properties", "server.port=8080\napp.key.path=/nas1/key/app.pem\n")
	path := filepath.Join(dir, "application.properties")

	tree := Load(path, "prod")

	// Dotted keys are exploded into nested mapping levels
	if port, _ := tree.StringAt("server.port"); port != "8080" {
		t.Errorf("Expected server.port 8080, got %s", port)
	}
	if p, _ := tree.StringAt("app.key.path"); p != "/nas1/key/app.pem" {
		t.Errorf("Expected nested path value, got %s", p)
	}
}

func TestLoadPropertiesLowercasesKeys(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "application.properties", "app.keyPath=/nas1/key/App.pem\n")
	path := filepath.Join(dir, "application.properties")

	tree := Load(path, "prod")

	// Keys are lowercased by the properties codec; values keep their case
	if _, ok := tree.StringAt("app.keyPath"); ok {
		t.Error("Expected mixed-case key to be unavailable under its original form")
	}
	if v, _ := tree.StringAt("app.keypath"); v != "/nas1/key/App.pem" {
		t.Errorf("Expected lowercased key with untouched value, got %s", v)
	}
}

func TestLoadPropertiesProfileSibling(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "application.properties", "server.port=8080\napp.name=demo\n")
	writeFile(t, dir, "application-prod.properties", "server.port=443\n")
	path := filepath.Join(dir, "application.properties")

	tree := Load(path, "prod")

	if port, _ := tree.StringAt("server.port"); port != "443" {
		t.Errorf("Expected profile sibling to win, got %s", port)
	}
	if name, _ := tree.StringAt("app.name"); name != "demo" {
		t.Errorf("Expected base key to survive, got %s", name)
	}
}

func TestDiscoverConfigFile(t *testing.T) {
	root := t.TempDir()
	resources := filepath.Join(root, "src", "main", "resources")
	if err := os.MkdirAll(resources, 0755); err != nil {
		t.Fatal(err)
	}

	// Nothing present yet
	if got := DiscoverConfigFile(root); got != "" {
		t.Errorf("Expected no config file, got %s", got)
	}

	// Priority order: yaml > yml > properties
	writeFile(t, resources, "application.properties", "a=b\n")
	if got := DiscoverConfigFile(root); filepath.Base(got) != "application.properties" {
		t.Errorf("Expected properties fallback, got %s", got)
	}
	writeFile(t, resources, "application.yml", "a: b\n")
	if got := DiscoverConfigFile(root); filepath.Base(got) != "application.yml" {
		t.Errorf("Expected yml over properties, got %s", got)
	}
	writeFile(t, resources, "application.yaml", "a: b\n")
	if got := DiscoverConfigFile(root); filepath.Base(got) != "application.yaml" {
		t.Errorf("Expected yaml first, got %s", got)
	}
}
