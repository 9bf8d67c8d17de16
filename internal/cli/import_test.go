package cli

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shaiso/orchestra-cli/internal/gitrepo"
)

// repoDir создаёт директорию "репозитория" с YAML внутри.
func repoDir(t *testing.T) (root, yamlFile string) {
	t.Helper()
	root = t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "pipelines"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	yamlFile = writeYAML(t, filepath.Join(root, "pipelines"), "pipe.yaml", "name: demo\nversion: 1\n")
	return root, yamlFile
}

func TestImport_Success(t *testing.T) {
	api := newFakeAPI(t)
	api.router.Post(schemaPath, jsonResponse(http.StatusOK, `{"ok": true}`))
	api.router.Post(importPath, jsonResponse(http.StatusCreated, `{"pipeline_id": "abc-123"}`))

	root, file := repoDir(t)
	env := newTestEnv(t, api, envOptions{git: cleanRepo(root)})

	code := execute(t, NewImportCmd(env.depsFn), "--alias", "demo", "--path", file)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d; stderr:\n%s", code, env.stderr)
	}

	if got := strings.TrimSpace(env.stdout.String()); got != "abc-123" {
		t.Errorf("expected bare pipeline id, got %q", got)
	}

	calls := api.calls(importPath)
	if len(calls) != 1 {
		t.Fatalf("expected 1 import call, got %d", len(calls))
	}
	if calls[0].Header.Get("Authorization") != "" {
		t.Error("no Authorization header expected without API key")
	}

	var payload map[string]string
	if err := json.Unmarshal(calls[0].Body, &payload); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	want := map[string]string{
		"storage_provider": "GITHUB",
		"repository":       "org/repo",
		"default_branch":   "main",
		"yaml_path":        "pipelines/pipe.yaml",
		"alias":            "demo",
	}
	for k, v := range want {
		if payload[k] != v {
			t.Errorf("payload[%s] = %q, want %q", k, payload[k], v)
		}
	}
}

func TestImport_SendsAPIKeyWhenSet(t *testing.T) {
	api := newFakeAPI(t)
	api.router.Post(schemaPath, jsonResponse(http.StatusOK, `{}`))
	api.router.Post(importPath, jsonResponse(http.StatusCreated, `{"id": "abc"}`))

	root, file := repoDir(t)
	env := newTestEnv(t, api, envOptions{apiKey: "secret", git: cleanRepo(root)})

	if code := execute(t, NewImportCmd(env.depsFn), "-a", "demo", "-p", file); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if got := api.calls(importPath)[0].Header.Get("Authorization"); got != "Bearer secret" {
		t.Errorf("expected bearer header, got %q", got)
	}
	if got := strings.TrimSpace(env.stdout.String()); got != "abc" {
		t.Errorf("expected id fallback field, got %q", got)
	}
}

func TestImport_UnknownHostDefaultsToOrchestra(t *testing.T) {
	api := newFakeAPI(t)
	api.router.Post(schemaPath, jsonResponse(http.StatusOK, `{}`))
	api.router.Post(importPath, jsonResponse(http.StatusCreated, `{"pipeline_id": "abc"}`))

	root, file := repoDir(t)
	git := cleanRepo(root)
	git["remote get-url origin"] = gitOK("https://git.example.com/team/repo.git")
	env := newTestEnv(t, api, envOptions{git: git})

	if code := execute(t, NewImportCmd(env.depsFn), "-a", "demo", "-p", file); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}

	var payload map[string]string
	json.Unmarshal(api.calls(importPath)[0].Body, &payload)
	if payload["storage_provider"] != "ORCHESTRA" || payload["repository"] != "team/repo" {
		t.Errorf("unexpected payload: %v", payload)
	}
}

func TestImport_FallbackMessageWithoutID(t *testing.T) {
	api := newFakeAPI(t)
	api.router.Post(schemaPath, jsonResponse(http.StatusOK, `{}`))
	api.router.Post(importPath, jsonResponse(http.StatusCreated, `{"status": "queued"}`))

	root, file := repoDir(t)
	env := newTestEnv(t, api, envOptions{git: cleanRepo(root)})

	if code := execute(t, NewImportCmd(env.depsFn), "-a", "demo", "-p", file); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}

	out := env.stderr.String()
	if !strings.Contains(out, "Pipeline imported successfully") || !strings.Contains(out, `{"status":"queued"}`) {
		t.Errorf("expected fallback message with body, got:\n%s", out)
	}
}

func TestImport_InvalidYAML(t *testing.T) {
	api := newFakeAPI(t)
	root := t.TempDir()
	file := writeYAML(t, root, "bad.yaml", "name: [oops\n")
	env := newTestEnv(t, api, envOptions{git: cleanRepo(root)})

	if code := execute(t, NewImportCmd(env.depsFn), "-a", "demo", "-p", file); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(env.stderr.String(), "Invalid YAML") {
		t.Errorf("expected YAML error, got:\n%s", env.stderr)
	}
	if api.total() != 0 {
		t.Errorf("expected no HTTP calls, got %d", api.total())
	}
}

func TestImport_SchemaValidationError(t *testing.T) {
	api := newFakeAPI(t)
	api.router.Post(schemaPath, jsonResponse(http.StatusBadRequest, `{"detail":[{"loc":["root"],"msg":"bad"}]}`))

	root, file := repoDir(t)
	env := newTestEnv(t, api, envOptions{git: cleanRepo(root)})

	if code := execute(t, NewImportCmd(env.depsFn), "-a", "demo", "-p", file); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(env.stderr.String(), "Validation failed") {
		t.Errorf("expected validation failure, got:\n%s", env.stderr)
	}
	if n := len(api.calls(importPath)); n != 0 {
		t.Errorf("import endpoint must not be called, got %d", n)
	}
}

func TestImport_NotAGitRepository(t *testing.T) {
	api := newFakeAPI(t)
	api.router.Post(schemaPath, jsonResponse(http.StatusOK, `{}`))

	file := writeYAML(t, t.TempDir(), "p.yaml", "name: ok\n")
	env := newTestEnv(t, api, envOptions{git: fakeGit{
		"rev-parse --show-toplevel": {ExitCode: 128, Stderr: "fatal: not a git repository"},
	}})

	if code := execute(t, NewImportCmd(env.depsFn), "-a", "demo", "-p", file); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(env.stderr.String(), "Not a git repository") {
		t.Errorf("expected repository message, got:\n%s", env.stderr)
	}
	if api.total() != 1 || len(api.calls(schemaPath)) != 1 {
		t.Errorf("only schema validation may be called, got %d calls", api.total())
	}
}

func TestImport_MissingRepoOrBranch(t *testing.T) {
	api := newFakeAPI(t)
	api.router.Post(schemaPath, jsonResponse(http.StatusOK, `{}`))

	root, file := repoDir(t)
	env := newTestEnv(t, api, envOptions{git: fakeGit{
		"rev-parse --show-toplevel": gitOK(root),
		"remote show origin":        gitOK(""),
		"status --porcelain":        gitOK(""),
	}})

	if code := execute(t, NewImportCmd(env.depsFn), "-a", "demo", "-p", file); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(env.stderr.String(), "Could not detect repository URL or default branch") {
		t.Errorf("expected detection message, got:\n%s", env.stderr)
	}
	if n := len(api.calls(importPath)); n != 0 {
		t.Errorf("import endpoint must not be called, got %d", n)
	}
}

func TestImport_FileOutsideRepository(t *testing.T) {
	api := newFakeAPI(t)
	api.router.Post(schemaPath, jsonResponse(http.StatusOK, `{}`))

	root := t.TempDir()
	file := writeYAML(t, t.TempDir(), "p.yaml", "name: ok\n")
	env := newTestEnv(t, api, envOptions{git: cleanRepo(root)})

	if code := execute(t, NewImportCmd(env.depsFn), "-a", "demo", "-p", file); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(env.stderr.String(), "YAML file must be inside the git repository") {
		t.Errorf("expected outside-repository message, got:\n%s", env.stderr)
	}
}

func TestImport_WarningsPrinted(t *testing.T) {
	api := newFakeAPI(t)
	api.router.Post(schemaPath, jsonResponse(http.StatusOK, `{}`))
	api.router.Post(importPath, jsonResponse(http.StatusCreated, `{"pipeline_id": "xyz"}`))

	root, file := repoDir(t)
	env := newTestEnv(t, api, envOptions{git: dirtyBehindRepo(root)})

	if code := execute(t, NewImportCmd(env.depsFn), "-a", "demo", "-p", file); code != 0 {
		t.Fatalf("expected exit 0, got %d; stderr:\n%s", code, env.stderr)
	}

	out := env.stderr.String()
	for _, want := range []string{"⚠ " + gitrepo.MsgUncommitted, gitrepo.MsgDiverged, "not on latest HEAD of the branch"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if got := strings.TrimSpace(env.stdout.String()); got != "xyz" {
		t.Errorf("expected pipeline id, got %q", got)
	}
}

func TestImport_APIError(t *testing.T) {
	api := newFakeAPI(t)
	api.router.Post(schemaPath, jsonResponse(http.StatusOK, `{}`))
	api.router.Post(importPath, jsonResponse(http.StatusBadRequest, `{"detail": "bad"}`))

	root, file := repoDir(t)
	env := newTestEnv(t, api, envOptions{git: cleanRepo(root)})

	if code := execute(t, NewImportCmd(env.depsFn), "-a", "demo", "-p", file); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(env.stderr.String(), "Import failed with status 400") {
		t.Errorf("expected import failure, got:\n%s", env.stderr)
	}
}
