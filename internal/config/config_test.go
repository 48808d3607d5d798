package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// relative defaults resolve against the working directory
	origWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(origWD) })

	cfg, err := Load(filepath.Join(t.TempDir(), "missing-config.yaml"))
	if err != nil {
		t.Fatalf("Load with missing file should fall back to defaults: %v", err)
	}

	if cfg.Project.SourceDir != "src/main/java" {
		t.Errorf("SourceDir = %s", cfg.Project.SourceDir)
	}
	if !reflect.DeepEqual(cfg.Validation.Profiles, []string{"dev", "stage", "prod"}) {
		t.Errorf("Profiles = %v", cfg.Validation.Profiles)
	}
	if cfg.Validation.Platform != "auto" {
		t.Errorf("Platform = %s", cfg.Validation.Platform)
	}
	if !reflect.DeepEqual(cfg.Output.Formats, []string{"json"}) {
		t.Errorf("Formats = %v", cfg.Output.Formats)
	}
	if !filepath.IsAbs(cfg.Project.RootDir) || !filepath.IsAbs(cfg.Output.Dir) {
		t.Error("Expected paths to be normalized to absolute")
	}
	// The project name falls back to the root directory name
	if cfg.Project.Name != filepath.Base(cfg.Project.RootDir) {
		t.Errorf("Name = %s", cfg.Project.Name)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
project:
  root_dir: ` + dir + `
  name: legacy-batch
validation:
  profiles: [prod]
  platform: kubernetes
output:
  dir: ` + filepath.Join(dir, "out") + `
  formats: [json, excel]
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Project.Name != "legacy-batch" {
		t.Errorf("Name = %s", cfg.Project.Name)
	}
	if !reflect.DeepEqual(cfg.Validation.Profiles, []string{"prod"}) {
		t.Errorf("Profiles = %v", cfg.Validation.Profiles)
	}
	if cfg.Validation.Platform != "kubernetes" {
		t.Errorf("Platform = %s", cfg.Validation.Platform)
	}
	// The output directory is created during load
	if info, err := os.Stat(cfg.Output.Dir); err != nil || !info.IsDir() {
		t.Errorf("Expected output dir to be created: %v", err)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()

	base := Config{
		Project:    ProjectConfig{RootDir: dir, SourceDir: "src/main/java"},
		Validation: ValidationConfig{Profiles: []string{"prod"}, Platform: "auto"},
		Output:     OutputConfig{Dir: dir, Formats: []string{"json"}},
	}

	if err := base.Validate(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}

	missing := base
	missing.Project.RootDir = filepath.Join(dir, "does-not-exist")
	if err := missing.Validate(); err == nil {
		t.Error("Expected error for missing root_dir")
	}

	noProfiles := base
	noProfiles.Validation.Profiles = nil
	if err := noProfiles.Validate(); err == nil {
		t.Error("Expected error for empty profile list")
	}

	badPlatform := base
	badPlatform.Validation.Platform = "bare-metal"
	if err := badPlatform.Validate(); err == nil {
		t.Error("Expected error for unknown platform")
	}
}

func TestSourceRoot(t *testing.T) {
	cfg := Config{
		Project: ProjectConfig{RootDir: "/work/app", SourceDir: "src/main/java"},
	}
	if got := cfg.SourceRoot(); got != filepath.Join("/work/app", "src/main/java") {
		t.Errorf("SourceRoot() = %s", got)
	}
}
