package extractor

import (
	"strings"

	"infra-recon/internal/model"
)

// Namespace maps a deployment profile to its kubernetes namespace.
func Namespace(profile string) string {
	switch profile {
	case "dev":
		return "development"
	case "stage", "stg":
		return "staging"
	case "prod":
		return "production"
	default:
		return "default"
	}
}

// ExtractConfigMaps returns the explicit ConfigMap declarations, or the
// single default application ConfigMap when none are declared.
func (e *Extractor) ExtractConfigMaps() []model.ConfigMapCheck {
	if items, ok := e.tree.MapSliceAt(ValidationNamespace + ".configmaps"); ok && len(items) > 0 {
		var result []model.ConfigMapCheck
		for _, item := range items {
			name := stringField(item, "name")
			if name == "" {
				continue
			}
			result = append(result, model.ConfigMapCheck{
				Name:        name,
				Critical:    boolField(item, "critical", true),
				Description: stringFieldDefault(item, "description", name),
			})
		}
		return result
	}

	return []model.ConfigMapCheck{
		{Name: "app-config", Critical: true, Description: "Default application configuration"},
	}
}

// ExtractSecrets returns the explicit Secret declarations, or synthesizes
// them from presence-of-key heuristics: a Vault URI implies a vault token
// secret, a Redis host implies credentials, and any file requirement at all
// implies a secret carrying file-based keys. files is the already-extracted
// file list for this profile.
func (e *Extractor) ExtractSecrets(files []model.FileCheck) []model.SecretCheck {
	if items, ok := e.tree.MapSliceAt(ValidationNamespace + ".secrets"); ok && len(items) > 0 {
		var result []model.SecretCheck
		for _, item := range items {
			name := stringField(item, "name")
			if name == "" {
				continue
			}
			result = append(result, model.SecretCheck{
				Name:        name,
				Critical:    boolField(item, "critical", true),
				Description: stringFieldDefault(item, "description", name),
			})
		}
		return result
	}

	var secrets []model.SecretCheck
	if _, ok := e.tree.Get("spring.cloud.vault.uri"); ok {
		secrets = append(secrets, model.SecretCheck{
			Name: "vault-token", Critical: true, Description: "Vault authentication token",
		})
	}
	_, springRedis := e.tree.Get("spring.redis.host")
	_, bareRedis := e.tree.Get("redis.host")
	if springRedis || bareRedis {
		secrets = append(secrets, model.SecretCheck{
			Name: "redis-credentials", Critical: true, Description: "Redis credentials",
		})
	}
	if len(files) > 0 {
		secrets = append(secrets, model.SecretCheck{
			Name: "file-keys", Critical: true, Description: "File-based authentication keys",
		})
	}
	return secrets
}

// ExtractPvcs returns the explicit PVC declarations, or synthesizes one PVC
// per distinct NAS root among the file requirements. The root is the first
// two path segments; the PVC is named deterministically from them.
func (e *Extractor) ExtractPvcs(files []model.FileCheck) []model.PvcCheck {
	if items, ok := e.tree.MapSliceAt(ValidationNamespace + ".pvcs"); ok && len(items) > 0 {
		var result []model.PvcCheck
		for _, item := range items {
			name := stringField(item, "name")
			if name == "" {
				continue
			}
			result = append(result, model.PvcCheck{
				Name:        name,
				Critical:    boolField(item, "critical", true),
				Description: stringFieldDefault(item, "description", name),
				MountPath:   stringField(item, "mountPath"),
			})
		}
		return result
	}

	var pvcs []model.PvcCheck
	seenRoots := map[string]struct{}{}

	for _, file := range files {
		if file.Location != "nas" {
			continue
		}
		parts := strings.Split(file.Path, "/")
		if len(parts) < 3 {
			continue
		}
		root := "/" + parts[1] + "/" + parts[2]
		if _, dup := seenRoots[root]; dup {
			continue
		}
		seenRoots[root] = struct{}{}
		pvcs = append(pvcs, model.PvcCheck{
			Name:        "nas-" + parts[1] + "-" + parts[2],
			Critical:    true,
			Description: "NAS storage: " + root,
			MountPath:   root,
		})
	}
	return pvcs
}
