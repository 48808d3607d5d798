package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"infra-recon/internal/config"
	"infra-recon/internal/logger"
	"infra-recon/internal/model"
)

// JSONExporter writes one requirements-<profile>.json (or
// requirements-k8s-<profile>.json) per document. This is the machine-
// readable contract consumed by the external validation runner.
type JSONExporter struct{}

// NewJSONExporter creates a new JSONExporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export serializes every document. A failing write is reported but does
// not stop the remaining documents.
func (e *JSONExporter) Export(docs []*model.Requirements, cfg *config.Config) error {
	var failed int
	for _, doc := range docs {
		outputFile := filepath.Join(cfg.Output.Dir, doc.FileName())
		if err := writeDocument(doc, outputFile); err != nil {
			logger.Error("Failed to write %s: %v", outputFile, err)
			failed++
			continue
		}
		logger.Info("Generated: %s", doc.FileName())
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed to write", failed, len(docs))
	}
	return nil
}

func writeDocument(doc *model.Requirements, path string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
