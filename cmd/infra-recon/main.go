package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"infra-recon/internal/config"
	"infra-recon/internal/configtree"
	"infra-recon/internal/detector"
	"infra-recon/internal/exporter"
	"infra-recon/internal/extractor"
	"infra-recon/internal/logger"
	"infra-recon/internal/model"
	"infra-recon/internal/patterns"
	"infra-recon/internal/scanner"
	"infra-recon/internal/ui"
)

const (
	appName    = "Infra Recon"
	appVersion = "1.0.0"
	appDesc    = "A Pure Go analyzer that derives infrastructure requirements from Spring (Java) projects"
)

var (
	configPath  string
	verbose     bool
	showVersion bool
	outputDir   string
	formats     string
	platform    string
	profiles    string
	noProgress  bool
)

func init() {
	flag.StringVar(&configPath, "config", "config.yaml", "Path to configuration file")
	flag.StringVar(&configPath, "c", "config.yaml", "Path to configuration file (shorthand)")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose logging (DEBUG level)")
	flag.BoolVar(&verbose, "v", false, "Enable verbose logging (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.StringVar(&outputDir, "output", "", "Override output directory from config")
	flag.StringVar(&formats, "format", "", "Comma-separated output formats (json,excel)")
	flag.StringVar(&platform, "platform", "", "Override platform detection (vm,kubernetes)")
	flag.StringVar(&profiles, "profiles", "", "Comma-separated deployment profiles (default dev,stage,prod)")
	flag.BoolVar(&noProgress, "no-progress", false, "Disable progress bars (for CI logs)")
}

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	if showVersion {
		fmt.Printf("%s v%s\n%s\n", appName, appVersion, appDesc)
		return 0
	}

	printBanner()

	logger.Info("Loading configuration...")
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("❌ Failed to load configuration: %v\n", err)
		return 1
	}

	applyOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Printf("❌ Invalid configuration: %v\n", err)
		return 1
	}

	logPath := filepath.Join(cfg.Output.Dir, "infra_recon.log")
	if err := logger.Init(os.Stdout, logPath, verbose); err != nil {
		fmt.Printf("❌ Failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Close()

	if err := runAnalysis(cfg); err != nil {
		logger.Error("Analysis failed: %v", err)
		return 1
	}

	logger.Info("✅ Analysis Complete. Check [%s] directory.", cfg.Output.Dir)
	return 0
}

func applyOverrides(cfg *config.Config) {
	if outputDir != "" {
		cfg.Output.Dir = outputDir
		cfg.EnsureOutputDir()
	}
	if formats != "" {
		cfg.Output.Formats = strings.Split(formats, ",")
	}
	if platform != "" {
		cfg.Validation.Platform = platform
	}
	if profiles != "" {
		cfg.Validation.Profiles = strings.Split(profiles, ",")
	}
}

func runAnalysis(cfg *config.Config) error {
	pipeline := ui.NewPipeline([]ui.Phase{
		ui.PhaseScanning,
		ui.PhaseExtracting,
		ui.PhaseExporting,
	})
	if noProgress {
		pipeline.Disable()
	}

	// Platform is decided once per invocation; the assembler consumes it
	// as an opaque input.
	targetPlatform := resolvePlatform(cfg)
	logger.Info("Detected deployment platform: %s", targetPlatform)

	appConfigPath := configtree.DiscoverConfigFile(cfg.Project.RootDir)
	if appConfigPath == "" {
		logger.Warn("No application.yaml, application.yml or application.properties found under %s", cfg.Project.RootDir)
		return nil
	}
	logger.Info("Application config: %s", filepath.Base(appConfigPath))

	classifier := patterns.NewDefaultClassifier()

	// --- Phase 1: Source scan (profile-independent, runs once) ---
	logger.Info("Phase 1: Scanning source tree...")
	scan := runSourceScan(cfg, classifier, pipeline)
	logger.Info("Source scan: %d files, %d paths, %d URLs", scan.FilesScanned, len(scan.Paths), len(scan.URLs))

	// --- Phase 2: Per-profile extraction ---
	logger.Info("Phase 2: Extracting requirements...")
	extractBar := pipeline.NextPhase(len(cfg.Validation.Profiles))

	var docs []*model.Requirements
	for _, profile := range cfg.Validation.Profiles {
		tree := configtree.Load(appConfigPath, profile)
		if tree.Empty() {
			logger.Info("No configuration for profile %s; falling back to base configuration", profile)
			tree = configtree.Load(appConfigPath, "")
		}

		ext := extractor.New(tree, classifier, scan)
		docs = append(docs, ext.Assemble(cfg.Project.Name, profile, targetPlatform))

		if dropped := ext.DroppedUnresolved(); dropped > 0 {
			logger.Warn("Profile %s: dropped %d declaration(s) with unresolved ${...} references", profile, dropped)
		}
		extractBar.Increment()
	}
	extractBar.Finish()

	// --- Phase 3: Reporting ---
	logger.Info("Phase 3: Generating output...")
	exporters := exporter.GetExporters(cfg.Output.Formats)
	genBar := pipeline.NextPhase(len(exporters))

	var exportErrors []error
	for _, exp := range exporters {
		if err := exp.Export(docs, cfg); err != nil {
			logger.Error("Export failed: %v", err)
			exportErrors = append(exportErrors, err)
		}
		genBar.Increment()
	}
	genBar.Finish()

	pipeline.Finish()

	if len(exportErrors) > 0 {
		return fmt.Errorf("one or more exports failed: %d errors", len(exportErrors))
	}

	return nil
}

func resolvePlatform(cfg *config.Config) model.Platform {
	switch cfg.Validation.Platform {
	case "vm":
		return model.PlatformVM
	case "kubernetes":
		return model.PlatformKubernetes
	default:
		return detector.Detect(cfg.Project.RootDir, nil)
	}
}

func runSourceScan(cfg *config.Config, classifier *patterns.Classifier, pipeline *ui.Pipeline) *scanner.Result {
	sourceRoot := cfg.SourceRoot()
	if _, err := os.Stat(sourceRoot); err != nil {
		logger.Info("No source directory at %s; skipping source analysis", sourceRoot)
		pipeline.NextPhase(0).Finish()
		return &scanner.Result{}
	}

	s := scanner.New(sourceRoot, classifier)
	scanBar := pipeline.NextPhase(s.CountFiles())
	result := s.Scan(func() { scanBar.Increment() })
	scanBar.Finish()
	return result
}

func printBanner() {
	banner := `
╔═══════════════════════════════════════════════════════════╗
║                     INFRA RECON v1.0.0                    ║
║     Infrastructure Requirements from Spring Projects      ║
╚═══════════════════════════════════════════════════════════╝
`
	fmt.Println(banner)
}
