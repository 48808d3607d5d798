// Package detector decides whether a project deploys to a plain host (vm)
// or a container platform (kubernetes). The extractor consumes the result
// as an opaque input.
package detector

import (
	"os"
	"path/filepath"
	"strings"

	"infra-recon/internal/configtree"
	"infra-recon/internal/model"
)

// k8sConfigKeywords are markers whose presence in the application config
// indicates a kubernetes deployment.
var k8sConfigKeywords = []string{
	"kubernetes.io", "k8s.", "kube-proxy",
	"livenessstate", "readinessstate",
	"liveness-probe", "readiness-probe",
	"configmap", "config-map",
	"service-account", "serviceaccount",
}

// k8sPluginIDs are build-plugin identifiers that imply a container image
// build. Callers with access to the build definition pass them in; other
// callers pass nil.
var k8sPluginIDs = map[string]struct{}{
	"com.google.cloud.tools.jib":                          {},
	"org.springframework.boot.experimental.thin-launcher": {},
}

// Detect classifies the deployment platform of a project, in order:
// declared build plugins, marker keywords in the application config file,
// presence of a k8s/ manifest directory. The default is vm.
func Detect(projectRoot string, appliedPluginIDs []string) model.Platform {
	for _, id := range appliedPluginIDs {
		if _, ok := k8sPluginIDs[id]; ok {
			return model.PlatformKubernetes
		}
	}

	if configPath := configtree.DiscoverConfigFile(projectRoot); configPath != "" {
		if raw, err := os.ReadFile(configPath); err == nil {
			content := strings.ToLower(string(raw))
			for _, keyword := range k8sConfigKeywords {
				if strings.Contains(content, keyword) {
					return model.PlatformKubernetes
				}
			}
		}
	}

	if info, err := os.Stat(filepath.Join(projectRoot, "k8s")); err == nil && info.IsDir() {
		return model.PlatformKubernetes
	}

	return model.PlatformVM
}
