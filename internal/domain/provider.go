package domain

// Provider — хранилище, которому принадлежит YAML-определение pipeline.
//
// GITHUB, GITLAB, AZURE_DEVOPS и BITBUCKET означают, что pipeline
// импортирован по ссылке на файл в git-репозитории.
// ORCHESTRA — определение загружено напрямую в Orchestra.
type Provider string

const (
	// ProviderGitHub — репозиторий на github.com.
	ProviderGitHub Provider = "GITHUB"

	// ProviderGitLab — репозиторий на gitlab.com.
	ProviderGitLab Provider = "GITLAB"

	// ProviderAzureDevOps — репозиторий в Azure DevOps (dev.azure.com, visualstudio.com).
	ProviderAzureDevOps Provider = "AZURE_DEVOPS"

	// ProviderBitbucket — репозиторий на bitbucket.org.
	ProviderBitbucket Provider = "BITBUCKET"

	// ProviderOrchestra — хост не распознан, либо определение хранится в Orchestra.
	ProviderOrchestra Provider = "ORCHESTRA"
)

// String возвращает строковое представление Provider.
func (p Provider) String() string {
	return string(p)
}

// IsExternal возвращает true для внешних git-хостингов.
func (p Provider) IsExternal() bool {
	switch p {
	case ProviderGitHub, ProviderGitLab, ProviderAzureDevOps, ProviderBitbucket:
		return true
	default:
		return false
	}
}
