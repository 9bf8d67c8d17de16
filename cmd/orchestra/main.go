// Orchestra CLI — инструмент командной строки для создания, импорта,
// обновления и запуска pipelines Orchestra.
//
// Использование:
//
//	orchestra [--base-url URL] <command> [flags]
//
// Команды:
//
//	create-pipeline  Создать pipeline из локального YAML
//	update-pipeline  Обновить pipeline из локального YAML
//	import           Создать pipeline по ссылке на YAML в git
//	run              Запустить pipeline
//	validate         Проверить YAML по схеме Orchestra
//
// Окружение: ORCHESTRA_API_KEY, BASE_URL, LOG_LEVEL, LOG_FORMAT,
// ORCHESTRA_METRICS_FILE.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shaiso/orchestra-cli/internal/cli"
	"github.com/shaiso/orchestra-cli/internal/config"
	"github.com/shaiso/orchestra-cli/internal/gitrepo"
	"github.com/shaiso/orchestra-cli/internal/telemetry"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.FromEnv(os.Getenv)

	logger := telemetry.SetupLogger(telemetry.LoggerOptions{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	metrics := telemetry.NewMetrics()

	// Ctrl+C отменяет контекст: прерывает подтверждение и запросы.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var baseURL string

	rootCmd := &cobra.Command{
		Use:           "orchestra",
		Short:         "Orchestra CLI – perform operations with Orchestra locally",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Orchestra base URL (overrides BASE_URL)")

	var deps *cli.Deps
	depsFn := func() *cli.Deps {
		if deps != nil {
			return deps
		}
		if baseURL != "" {
			cfg.BaseURL = config.NormalizeBaseURL(baseURL)
		}

		workDir, err := os.Getwd()
		if err != nil {
			logger.Warn("cannot determine working directory", "error", err)
			workDir = "."
		}

		out := cli.NewOutput(os.Stdout, os.Stderr)
		runner := gitrepo.Instrument(gitrepo.ExecRunner{}, metrics, logger)

		deps = &cli.Deps{
			Config: cfg,
			Client: cli.NewClient(cli.ClientConfig{
				Config:  cfg,
				Version: version,
				Logger:  logger,
				Metrics: metrics,
			}),
			Out:     out,
			Git:     gitrepo.NewInspector(runner),
			Prompt:  &cli.LinePrompter{In: os.Stdin, Out: out},
			Logger:  logger,
			WorkDir: workDir,
		}
		return deps
	}

	rootCmd.AddCommand(
		cli.NewCreatePipelineCmd(depsFn),
		cli.NewUpdatePipelineCmd(depsFn),
		cli.NewImportCmd(depsFn),
		cli.NewRunCmd(depsFn),
		cli.NewValidateCmd(depsFn),
	)

	cmd, err := rootCmd.ExecuteContextC(ctx)

	if cmd != nil {
		metrics.ObserveCommand(cmd.Name(), err)
	}
	if cfg.MetricsFile != "" {
		if werr := metrics.WriteFile(cfg.MetricsFile); werr != nil {
			logger.Warn("failed to write metrics file", "path", cfg.MetricsFile, "error", werr)
		}
	}

	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
