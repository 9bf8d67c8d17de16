package gitrepo

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Тексты предупреждений о состоянии рабочей копии.
const (
	MsgUncommitted = "Uncommitted changes detected in repository."
	MsgDiverged    = "Local branch SHA does not match remote branch SHA."
	MsgBehind      = "You are not on latest HEAD of the branch (behind remote)."
)

// WarningKind — вид обнаруженного риска.
type WarningKind string

const (
	// WarningUncommitted — в рабочем дереве есть незакоммиченные изменения.
	WarningUncommitted WarningKind = "uncommitted"

	// WarningDiverged — HEAD не совпадает с upstream.
	WarningDiverged WarningKind = "diverged"
)

// Warning — одно предупреждение о рабочей копии.
// Message — основная строка, Details — уточнения (например, "behind remote").
type Warning struct {
	Kind    WarningKind
	Message string
	Details []string
}

// Lines возвращает все строки предупреждения по порядку.
func (w Warning) Lines() []string {
	return append([]string{w.Message}, w.Details...)
}

var headBranchRe = regexp.MustCompile(`HEAD branch:\s*(\S+)`)

// Inspector выполняет запросы к git-репозиторию через Runner.
type Inspector struct {
	runner Runner
}

// NewInspector создаёт Inspector поверх runner.
func NewInspector(runner Runner) *Inspector {
	return &Inspector{runner: runner}
}

// git запускает команду и возвращает обрезанный stdout.
// ok=false при ошибке запуска или ненулевом коде выхода.
func (i *Inspector) git(ctx context.Context, dir string, args ...string) (string, bool) {
	result, err := i.runner.Run(ctx, dir, args...)
	if err != nil || result.ExitCode != 0 {
		return "", false
	}
	return strings.TrimSpace(result.Stdout), true
}

// RepoRoot возвращает корень рабочего дерева, содержащего startPath.
func (i *Inspector) RepoRoot(ctx context.Context, startPath string) (string, error) {
	out, ok := i.git(ctx, startPath, "rev-parse", "--show-toplevel")
	if !ok || out == "" {
		return "", ErrNotRepository
	}
	return out, nil
}

// RemoteURL возвращает URL remote origin без преобразований.
func (i *Inspector) RemoteURL(ctx context.Context, repoRoot string) (string, error) {
	out, ok := i.git(ctx, repoRoot, "remote", "get-url", "origin")
	if !ok || out == "" {
		return "", ErrNoRemote
	}
	return out, nil
}

// RepositorySlug возвращает "owner/repo" для remote origin.
func (i *Inspector) RepositorySlug(ctx context.Context, repoRoot string) (string, error) {
	remote, err := i.RemoteURL(ctx, repoRoot)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSlugNotDetected, err)
	}
	return NormalizeRemote(remote)
}

// DefaultBranch возвращает ветку по умолчанию на origin.
//
// Сначала читается symbolic-ref refs/remotes/origin/HEAD, при неудаче
// разбирается вывод "git remote show origin".
func (i *Inspector) DefaultBranch(ctx context.Context, repoRoot string) (string, error) {
	if out, ok := i.git(ctx, repoRoot, "symbolic-ref", "refs/remotes/origin/HEAD"); ok && out != "" {
		// refs/remotes/origin/main → main
		parts := strings.Split(out, "/")
		return parts[len(parts)-1], nil
	}

	if out, ok := i.git(ctx, repoRoot, "remote", "show", "origin"); ok && out != "" {
		if m := headBranchRe.FindStringSubmatch(out); m != nil && m[1] != "(unknown)" {
			return m[1], nil
		}
	}

	return "", ErrNoDefaultBranch
}

// Warnings проверяет рабочую копию на риски перед импортом или запуском.
//
// Проверки независимы: ошибка одной не отменяет остальные.
// Отсутствие upstream просто подавляет проверку расхождения.
func (i *Inspector) Warnings(ctx context.Context, repoRoot string) []Warning {
	var warnings []Warning

	if out, ok := i.git(ctx, repoRoot, "status", "--porcelain"); ok && out != "" {
		warnings = append(warnings, Warning{Kind: WarningUncommitted, Message: MsgUncommitted})
	}

	if w, ok := i.divergence(ctx, repoRoot); ok {
		warnings = append(warnings, w)
	}

	return warnings
}

func (i *Inspector) divergence(ctx context.Context, repoRoot string) (Warning, bool) {
	if _, ok := i.git(ctx, repoRoot, "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}"); !ok {
		return Warning{}, false
	}

	local, okLocal := i.git(ctx, repoRoot, "rev-parse", "HEAD")
	remote, okRemote := i.git(ctx, repoRoot, "rev-parse", "@{u}")
	if !okLocal || !okRemote || local == remote {
		return Warning{}, false
	}

	w := Warning{Kind: WarningDiverged, Message: MsgDiverged}
	if out, ok := i.git(ctx, repoRoot, "status", "-sb"); ok && strings.Contains(out, "behind") {
		w.Details = append(w.Details, MsgBehind)
	}
	return w, true
}

// RelativePath возвращает путь file относительно repoRoot через "/".
// Симлинки разрешаются с обеих сторон.
func RelativePath(repoRoot, file string) (string, error) {
	root, err := resolve(repoRoot)
	if err != nil {
		return "", err
	}
	target, err := resolve(file)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(root, target)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrOutsideRepository, err)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrOutsideRepository
	}
	return filepath.ToSlash(rel), nil
}

func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real, nil
	}
	return abs, nil
}
