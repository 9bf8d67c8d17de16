package gitrepo

import (
	"regexp"
	"strings"

	"github.com/shaiso/orchestra-cli/internal/domain"
)

// schemeRe совпадает с "https://", "ssh://", "git+ssh://" и т.п.
var schemeRe = regexp.MustCompile(`^[A-Za-z][\w+.-]*://`)

// noiseSegments — сегменты пути, которые хостинги вставляют перед owner/repo.
// Azure DevOps: /_git/, /v3/ (ssh); Bitbucket Server: /scm/.
var noiseSegments = map[string]bool{
	"_git": true,
	"scm":  true,
	"v3":   true,
}

// NormalizeRemote извлекает slug "owner/repo" из URL git remote.
//
// Поддерживаются HTTPS, SSH, scp-подобный синтаксис (git@host:owner/repo)
// и прочие URL со схемой. Если после фильтрации остаётся один сегмент,
// он возвращается как есть.
func NormalizeRemote(remote string) (string, error) {
	url := strings.TrimSpace(remote)

	url = schemeRe.ReplaceAllString(url, "")

	// user@ перед первым "/"
	if at := strings.Index(url, "@"); at >= 0 {
		slash := strings.Index(url, "/")
		if slash < 0 || at < slash {
			url = url[at+1:]
		}
	}

	// scp-синтаксис host:path → host/path
	if host, rest, ok := strings.Cut(url, ":"); ok && !strings.Contains(host, "/") {
		url = host + "/" + rest
	}

	path := url
	if _, after, ok := strings.Cut(url, "/"); ok {
		path = after
	}

	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg == "" || noiseSegments[seg] {
			continue
		}
		segments = append(segments, seg)
	}

	if len(segments) == 0 {
		return "", ErrSlugNotDetected
	}

	last := len(segments) - 1
	segments[last] = strings.TrimSuffix(segments[last], ".git")

	if len(segments) == 1 {
		return segments[0], nil
	}
	return segments[last-1] + "/" + segments[last], nil
}

// providerHosts — упорядоченная таблица фрагментов хоста.
// Порядок важен: dev.azure.com проверяется раньше azure.com.
var providerHosts = []struct {
	fragment string
	provider domain.Provider
}{
	{"github.com", domain.ProviderGitHub},
	{"gitlab.com", domain.ProviderGitLab},
	{"dev.azure.com", domain.ProviderAzureDevOps},
	{"azure.com", domain.ProviderAzureDevOps},
	{"visualstudio.com", domain.ProviderAzureDevOps},
	{"bitbucket.org", domain.ProviderBitbucket},
}

// DetectProvider определяет git-хостинг по URL remote.
// Нераспознанный хост или пустой URL дают ProviderOrchestra.
func DetectProvider(remote string) domain.Provider {
	if remote == "" {
		return domain.ProviderOrchestra
	}

	url := strings.ToLower(remote)
	for _, h := range providerHosts {
		if strings.Contains(url, h.fragment) {
			return h.provider
		}
	}
	return domain.ProviderOrchestra
}
