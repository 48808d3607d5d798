package extractor

import (
	"infra-recon/internal/model"
)

// Assemble builds the requirements document for one (profile, platform)
// combination. The file list is extracted once and reused for the secret
// and PVC synthesis so the three never disagree. The returned document is
// complete; callers only serialize it.
func (e *Extractor) Assemble(project, profile string, platform model.Platform) *model.Requirements {
	req := model.NewRequirements(project, profile, platform)

	files := e.ExtractFiles()
	infra := model.Infrastructure{
		CompanyDomain: e.companyDomain,
		Files:         files,
		ExternalAPIs:  e.ExtractAPIs(),
	}

	if platform == model.PlatformKubernetes {
		infra.Namespace = Namespace(profile)
		infra.ConfigMaps = e.ExtractConfigMaps()
		infra.Secrets = e.ExtractSecrets(files)
		infra.Pvcs = e.ExtractPvcs(files)
	} else {
		infra.Directories = e.ExtractDirectories()
	}

	req.Infrastructure = infra
	return req
}
