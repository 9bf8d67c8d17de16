package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/shaiso/orchestra-cli/internal/config"
	"github.com/shaiso/orchestra-cli/internal/gitrepo"
)

// --- Fake Orchestra API ---

// recordedRequest — запрос, полученный фейковым API.
type recordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// fakeAPI — httptest-сервер с chi-роутером, записывающий все запросы.
// Маршруты регистрируются тестами через router.
type fakeAPI struct {
	*httptest.Server
	router chi.Router

	mu       sync.Mutex
	requests []recordedRequest
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()

	api := &fakeAPI{router: chi.NewRouter()}
	api.router.Use(api.record)
	api.Server = httptest.NewServer(api.router)
	t.Cleanup(api.Close)

	return api
}

func (a *fakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		a.mu.Lock()
		a.requests = append(a.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.EscapedPath(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		a.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

// calls возвращает запросы к path.
func (a *fakeAPI) calls(path string) []recordedRequest {
	a.mu.Lock()
	defer a.mu.Unlock()

	var out []recordedRequest
	for _, r := range a.requests {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func (a *fakeAPI) total() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.requests)
}

const (
	schemaPath = "/api/engine/public/pipelines/schema"
	createPath = "/api/engine/public/pipelines"
	importPath = "/api/engine/public/pipelines/import"
)

func jsonResponse(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}
}

func textResponse(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}
}

// --- Fake git ---

// fakeGit отвечает по таблице "args через пробел" → Result.
type fakeGit map[string]gitrepo.Result

func (f fakeGit) Run(_ context.Context, _ string, args ...string) (gitrepo.Result, error) {
	if r, ok := f[strings.Join(args, " ")]; ok {
		return r, nil
	}
	return gitrepo.Result{ExitCode: 1}, nil
}

func gitOK(stdout string) gitrepo.Result {
	return gitrepo.Result{Stdout: stdout}
}

// cleanRepo — репозиторий на GitHub без upstream и изменений.
func cleanRepo(root string) fakeGit {
	return fakeGit{
		"rev-parse --show-toplevel":             gitOK(root + "\n"),
		"remote get-url origin":                 gitOK("git@github.com:org/repo.git\n"),
		"symbolic-ref refs/remotes/origin/HEAD": gitOK("refs/remotes/origin/main\n"),
		"status --porcelain":                    gitOK(""),
	}
}

// dirtyBehindRepo — незакоммиченные изменения и ветка отстаёт от upstream.
func dirtyBehindRepo(root string) fakeGit {
	g := cleanRepo(root)
	g["status --porcelain"] = gitOK(" M p.yaml\n")
	g["rev-parse --abbrev-ref --symbolic-full-name @{u}"] = gitOK("origin/main")
	g["rev-parse HEAD"] = gitOK("aaaa")
	g["rev-parse @{u}"] = gitOK("bbbb")
	g["status -sb"] = gitOK("## main...origin/main [behind 1]")
	return g
}

// --- Deps ---

type testEnv struct {
	deps   *Deps
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

type envOptions struct {
	apiKey string
	git    gitrepo.Runner
	stdin  string
	prompt Prompter
}

func newTestEnv(t *testing.T, api *fakeAPI, opts envOptions) *testEnv {
	t.Helper()

	cfg := config.Config{BaseURL: api.URL, APIKey: opts.apiKey}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var stdout, stderr bytes.Buffer
	out := NewOutput(&stdout, &stderr)

	runner := opts.git
	if runner == nil {
		runner = fakeGit{}
	}

	prompt := opts.prompt
	if prompt == nil {
		prompt = &LinePrompter{In: strings.NewReader(opts.stdin), Out: out}
	}

	return &testEnv{
		deps: &Deps{
			Config:  cfg,
			Client:  NewClient(ClientConfig{Config: cfg, Version: "test", Logger: logger}),
			Out:     out,
			Git:     gitrepo.NewInspector(runner),
			Prompt:  prompt,
			Logger:  logger,
			WorkDir: t.TempDir(),
		},
		stdout: &stdout,
		stderr: &stderr,
	}
}

func (e *testEnv) depsFn() *Deps {
	return e.deps
}

// execute запускает команду и возвращает код выхода.
func execute(t *testing.T, cmd *cobra.Command, args ...string) int {
	t.Helper()

	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}

func writeYAML(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
