package model

// DocumentVersion is the schema version stamped on every emitted document.
const DocumentVersion = "1.0"

// Platform is the deployment target shape. It is decided by the detector
// (or forced via configuration) and consumed opaquely by the assembler.
type Platform string

const (
	PlatformVM         Platform = "vm"
	PlatformKubernetes Platform = "kubernetes"
)

// FindingOrigin records which extraction tier produced a finding.
// Dedup keeps the earliest origin in tier order.
type FindingOrigin string

const (
	OriginExplicit      FindingOrigin = "explicit"
	OriginConfigDerived FindingOrigin = "config-derived"
	OriginSourceDerived FindingOrigin = "source-derived"
)

// FileCheck is one file-existence requirement.
type FileCheck struct {
	Path        string        `json:"path"`
	Location    string        `json:"location"` // nas, mount, local, var, unknown
	Critical    bool          `json:"critical"`
	Description string        `json:"description"`
	Origin      FindingOrigin `json:"-"`
}

// ApiCheck is one external API reachability requirement.
type ApiCheck struct {
	URL            string        `json:"url"`
	Method         string        `json:"method"`
	ExpectedStatus []int         `json:"expectedStatus,omitempty"`
	Critical       bool          `json:"critical"`
	Description    string        `json:"description"`
	Origin         FindingOrigin `json:"-"`
}

// DirectoryCheck is one directory-permission requirement (vm platform only).
// Permissions is a combination of "r", "w", "x" (e.g. "rwx", "rw").
type DirectoryCheck struct {
	Path        string `json:"path"`
	Permissions string `json:"permissions"`
	Critical    bool   `json:"critical"`
	Description string `json:"description"`
}

// ConfigMapCheck is one expected ConfigMap (kubernetes platform only).
type ConfigMapCheck struct {
	Name        string `json:"name"`
	Critical    bool   `json:"critical"`
	Description string `json:"description"`
}

// SecretCheck is one expected Secret (kubernetes platform only).
type SecretCheck struct {
	Name        string `json:"name"`
	Critical    bool   `json:"critical"`
	Description string `json:"description"`
}

// PvcCheck is one expected PersistentVolumeClaim (kubernetes platform only).
type PvcCheck struct {
	Name        string `json:"name"`
	Critical    bool   `json:"critical"`
	Description string `json:"description"`
	MountPath   string `json:"mountPath,omitempty"`
}

// Infrastructure holds the per-category requirement lists.
// Directories is only populated for the vm platform; Namespace, ConfigMaps,
// Secrets and Pvcs only for kubernetes.
type Infrastructure struct {
	CompanyDomain string           `json:"company_domain"`
	Files         []FileCheck      `json:"files"`
	ExternalAPIs  []ApiCheck       `json:"external_apis"`
	Directories   []DirectoryCheck `json:"directories,omitempty"`
	Namespace     string           `json:"namespace,omitempty"`
	ConfigMaps    []ConfigMapCheck `json:"configmaps,omitempty"`
	Secrets       []SecretCheck    `json:"secrets,omitempty"`
	Pvcs          []PvcCheck       `json:"pvcs,omitempty"`
}

// Requirements is the root document emitted once per (profile, platform).
// It is assembled in one pass and never mutated afterwards.
type Requirements struct {
	Version        string         `json:"version"`
	Project        string         `json:"project"`
	Environment    string         `json:"environment"`
	Platform       Platform       `json:"platform"`
	Infrastructure Infrastructure `json:"infrastructure"`
}

// NewRequirements creates a document shell for the given profile and platform.
func NewRequirements(project, profile string, platform Platform) *Requirements {
	return &Requirements{
		Version:     DocumentVersion,
		Project:     project,
		Environment: profile,
		Platform:    platform,
	}
}

// FileName returns the output file name convention for this document.
func (r *Requirements) FileName() string {
	if r.Platform == PlatformKubernetes {
		return "requirements-k8s-" + r.Environment + ".json"
	}
	return "requirements-" + r.Environment + ".json"
}
