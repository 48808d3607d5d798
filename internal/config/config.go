package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the tool configuration. This is infra-recon's own
// config.yaml, distinct from the analyzed project's application config.
type Config struct {
	Project    ProjectConfig    `mapstructure:"project"`
	Validation ValidationConfig `mapstructure:"validation"`
	Output     OutputConfig     `mapstructure:"output"`
}

// ProjectConfig identifies the project under analysis.
type ProjectConfig struct {
	RootDir   string `mapstructure:"root_dir"`   // Project root to analyze
	Name      string `mapstructure:"name"`       // Project name stamped on documents
	SourceDir string `mapstructure:"source_dir"` // Java source root, relative to root_dir
}

// ValidationConfig holds extraction behavior settings.
type ValidationConfig struct {
	Profiles []string `mapstructure:"profiles"` // Deployment profiles to emit documents for
	Platform string   `mapstructure:"platform"` // "auto", "vm" or "kubernetes"
}

// OutputConfig holds output settings.
type OutputConfig struct {
	Dir     string   `mapstructure:"dir"`     // Output directory
	Formats []string `mapstructure:"formats"` // Report formats (json, excel)
}

// Load reads the configuration from a file or uses defaults.
// If configPath is empty, it looks for "config.yaml" in the current
// directory; a missing file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath == "" {
		configPath = "config.yaml"
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) || strings.Contains(err.Error(), "no such file") ||
			strings.Contains(err.Error(), "cannot find") {
			fmt.Println("Config file not found. Using defaults (root: ., output: ./build/infrastructure)")
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		fmt.Printf("Loaded config from: %s\n", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.normalizePaths(); err != nil {
		return nil, err
	}

	if cfg.Project.Name == "" {
		cfg.Project.Name = filepath.Base(cfg.Project.RootDir)
	}

	if err := cfg.EnsureOutputDir(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("project.root_dir", ".")
	v.SetDefault("project.name", "")
	v.SetDefault("project.source_dir", "src/main/java")

	v.SetDefault("validation.profiles", []string{"dev", "stage", "prod"})
	v.SetDefault("validation.platform", "auto")

	v.SetDefault("output.dir", "./build/infrastructure")
	v.SetDefault("output.formats", []string{"json"})
}

// normalizePaths converts relative paths to absolute paths.
func (c *Config) normalizePaths() error {
	absRoot, err := filepath.Abs(c.Project.RootDir)
	if err != nil {
		return fmt.Errorf("failed to resolve root_dir: %w", err)
	}
	c.Project.RootDir = absRoot

	absOutput, err := filepath.Abs(c.Output.Dir)
	if err != nil {
		return fmt.Errorf("failed to resolve output.dir: %w", err)
	}
	c.Output.Dir = absOutput

	return nil
}

// SourceRoot returns the absolute Java source root of the project.
func (c *Config) SourceRoot() string {
	return filepath.Join(c.Project.RootDir, c.Project.SourceDir)
}

// EnsureOutputDir creates the output directory if it doesn't exist.
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.Output.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := os.Stat(c.Project.RootDir); os.IsNotExist(err) {
		return fmt.Errorf("root_dir does not exist: %s", c.Project.RootDir)
	}

	if len(c.Validation.Profiles) == 0 {
		return fmt.Errorf("validation.profiles must contain at least one profile")
	}

	switch c.Validation.Platform {
	case "auto", "vm", "kubernetes":
	default:
		return fmt.Errorf("validation.platform must be auto, vm or kubernetes, got %q", c.Validation.Platform)
	}

	return nil
}

// Print displays the current configuration.
func (c *Config) Print() {
	fmt.Println("=== Infra Recon Configuration ===")
	fmt.Printf("Project Root:   %s\n", c.Project.RootDir)
	fmt.Printf("Project Name:   %s\n", c.Project.Name)
	fmt.Printf("Source Dir:     %s\n", c.SourceRoot())
	fmt.Printf("Profiles:       %v\n", c.Validation.Profiles)
	fmt.Printf("Platform:       %s\n", c.Validation.Platform)
	fmt.Printf("Output Dir:     %s\n", c.Output.Dir)
	fmt.Printf("Formats:        %v\n", c.Output.Formats)
	fmt.Println("=================================")
}
