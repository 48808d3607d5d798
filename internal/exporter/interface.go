package exporter

import (
	"infra-recon/internal/config"
	"infra-recon/internal/model"
)

// Exporter is the unified interface for all output strategies. Exporters
// receive the complete set of per-profile documents for one invocation.
type Exporter interface {
	Export(docs []*model.Requirements, cfg *config.Config) error
}
