package extractor

import (
	"reflect"
	"testing"

	"infra-recon/internal/model"
)

func TestNamespace(t *testing.T) {
	tests := []struct {
		profile  string
		expected string
	}{
		{"dev", "development"},
		{"stage", "staging"},
		{"stg", "staging"},
		{"prod", "production"},
		{"local", "default"},
		{"", "default"},
	}

	for _, tt := range tests {
		if got := Namespace(tt.profile); got != tt.expected {
			t.Errorf("Namespace(%q) = %q, expected %q", tt.profile, got, tt.expected)
		}
	}
}

func TestExtractConfigMapsDefault(t *testing.T) {
	maps := newExtractor(map[string]any{}, nil).ExtractConfigMaps()

	expected := []model.ConfigMapCheck{
		{Name: "app-config", Critical: true, Description: "Default application configuration"},
	}
	if !reflect.DeepEqual(maps, expected) {
		t.Errorf("ExtractConfigMaps() = %v, expected %v", maps, expected)
	}
}

func TestExtractConfigMapsExplicit(t *testing.T) {
	tree := validationTree(map[string]any{
		"configmaps": []any{
			map[string]any{"name": "batch-settings", "critical": false},
		},
	})

	maps := newExtractor(tree, nil).ExtractConfigMaps()

	if len(maps) != 1 || maps[0].Name != "batch-settings" || maps[0].Critical {
		t.Errorf("ExtractConfigMaps() = %v", maps)
	}
	if maps[0].Description != "batch-settings" {
		t.Errorf("Expected name as default description, got %q", maps[0].Description)
	}
}

func TestExtractSecretsHeuristics(t *testing.T) {
	tests := []struct {
		name     string
		tree     map[string]any
		files    []model.FileCheck
		expected []string
	}{
		{
			"nothing configured",
			map[string]any{},
			nil,
			nil,
		},
		{
			"vault uri",
			map[string]any{
				"spring": map[string]any{
					"cloud": map[string]any{"vault": map[string]any{"uri": "https://vault.internal"}},
				},
			},
			nil,
			[]string{"vault-token"},
		},
		{
			"spring redis host",
			map[string]any{
				"spring": map[string]any{"redis": map[string]any{"host": "cache.internal"}},
			},
			nil,
			[]string{"redis-credentials"},
		},
		{
			"bare redis host",
			map[string]any{
				"redis": map[string]any{"host": "cache.internal"},
			},
			nil,
			[]string{"redis-credentials"},
		},
		{
			"file requirements imply file keys",
			map[string]any{},
			[]model.FileCheck{{Path: "/nas/key.pem"}},
			[]string{"file-keys"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secrets := newExtractor(tt.tree, nil).ExtractSecrets(tt.files)
			var names []string
			for _, s := range secrets {
				names = append(names, s.Name)
			}
			if !reflect.DeepEqual(names, tt.expected) {
				t.Errorf("Secret names = %v, expected %v", names, tt.expected)
			}
		})
	}
}

func TestExtractSecretsExplicitOverridesHeuristics(t *testing.T) {
	tree := validationTree(map[string]any{
		"secrets": []any{
			map[string]any{"name": "db-password", "description": "Database password"},
		},
	})
	tree["spring"] = map[string]any{"redis": map[string]any{"host": "cache.internal"}}

	secrets := newExtractor(tree, nil).ExtractSecrets(nil)

	if len(secrets) != 1 || secrets[0].Name != "db-password" {
		t.Errorf("Expected explicit secrets to replace heuristics, got %v", secrets)
	}
}

func TestExtractPvcsGroupsByNasRoot(t *testing.T) {
	files := []model.FileCheck{
		{Path: "/nas1/keys/app.pem", Location: "nas"},
		{Path: "/nas1/keys/backup.pem", Location: "nas"},
		{Path: "/nas2/uploads/data.json", Location: "nas"},
		{Path: "/var/log/app", Location: "var"},
		{Path: "/nas1", Location: "nas"},
	}

	pvcs := newExtractor(map[string]any{}, nil).ExtractPvcs(files)

	expected := []model.PvcCheck{
		{Name: "nas-nas1-keys", Critical: true, Description: "NAS storage: /nas1/keys", MountPath: "/nas1/keys"},
		{Name: "nas-nas2-uploads", Critical: true, Description: "NAS storage: /nas2/uploads", MountPath: "/nas2/uploads"},
	}
	if !reflect.DeepEqual(pvcs, expected) {
		t.Errorf("ExtractPvcs() = %v, expected %v", pvcs, expected)
	}
}

func TestExtractPvcsExplicit(t *testing.T) {
	tree := validationTree(map[string]any{
		"pvcs": []any{
			map[string]any{"name": "shared-nas", "mountPath": "/nas/shared"},
		},
	})

	pvcs := newExtractor(tree, nil).ExtractPvcs([]model.FileCheck{
		{Path: "/nas9/ignored/file.pem", Location: "nas"},
	})

	if len(pvcs) != 1 || pvcs[0].Name != "shared-nas" || pvcs[0].MountPath != "/nas/shared" {
		t.Errorf("ExtractPvcs() = %v", pvcs)
	}
}
