package gitrepo

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"

	"github.com/shaiso/orchestra-cli/internal/telemetry"
)

// Result — результат одного вызова git.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner запускает git в заданной директории.
//
// Ошибка возвращается только если процесс не удалось запустить.
// Ненулевой код выхода — это нормальный Result.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (Result, error)
}

// ExecRunner запускает бинарник git через os/exec.
type ExecRunner struct {
	// Binary — путь к git. Пустое значение означает "git" из PATH.
	Binary string
}

// Run реализует Runner.
func (r ExecRunner) Run(ctx context.Context, dir string, args ...string) (Result, error) {
	binary := r.Binary
	if binary == "" {
		binary = "git"
	}

	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, binary, args...)
	command.Dir = dir
	command.Stdout = &stdout
	command.Stderr = &stderr

	err := command.Run()

	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	return result, err
}

// Observer получает исход каждого вызова git.
type Observer interface {
	ObserveGit(subcommand string, exitCode int)
}

// Instrument оборачивает Runner логированием и наблюдателем.
// obs и logger могут быть nil; логгер из контекста вызова имеет приоритет.
func Instrument(r Runner, obs Observer, logger *slog.Logger) Runner {
	return &instrumentedRunner{next: r, obs: obs, logger: logger}
}

type instrumentedRunner struct {
	next   Runner
	obs    Observer
	logger *slog.Logger
}

func (r *instrumentedRunner) Run(ctx context.Context, dir string, args ...string) (Result, error) {
	result, err := r.next.Run(ctx, dir, args...)

	subcommand := ""
	if len(args) > 0 {
		subcommand = args[0]
	}

	exitCode := result.ExitCode
	if err != nil {
		exitCode = -1
	}

	if r.obs != nil {
		r.obs.ObserveGit(subcommand, exitCode)
	}
	telemetry.FromContext(ctx, r.logger).Debug("git command",
		"args", args,
		"dir", dir,
		"exit_code", exitCode,
		"error", err,
	)

	return result, err
}
