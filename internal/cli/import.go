package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shaiso/orchestra-cli/internal/domain"
	"github.com/shaiso/orchestra-cli/internal/gitrepo"
	"github.com/shaiso/orchestra-cli/internal/pipeline"
	"github.com/shaiso/orchestra-cli/internal/telemetry"
)

// NewImportCmd создаёт команду import: pipeline создаётся по ссылке
// на YAML-файл в git-репозитории.
func NewImportCmd(depsFn func() *Deps) *cobra.Command {
	var alias string
	var path string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Create a pipeline by referencing a YAML file in your git repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := depsFn()
			logger := telemetry.WithAlias(telemetry.WithCommand(d.Logger, "import"), alias)
			ctx := telemetry.WithLogger(cmd.Context(), logger)

			abs, err := filepath.Abs(path)
			if err != nil {
				return fail(d.Out, "Import", &pipeline.LoadError{Path: path, Err: pipeline.ErrFileNotFound, Reason: err.Error()})
			}

			if _, err := loadValidated(ctx, d, abs); err != nil {
				return fail(d.Out, "Import", err)
			}

			root, err := d.Git.RepoRoot(ctx, filepath.Dir(abs))
			if err != nil {
				return fail(d.Out, "Import", err)
			}

			slug, slugErr := d.Git.RepositorySlug(ctx, root)
			branch, branchErr := d.Git.DefaultBranch(ctx, root)
			if err := errors.Join(slugErr, branchErr); err != nil {
				logger.Warn("git information unavailable", "repo_root", root, "error", err)
				return fail(d.Out, "Import", err)
			}

			yamlPath, err := gitrepo.RelativePath(root, abs)
			if err != nil {
				return fail(d.Out, "Import", err)
			}

			for _, w := range d.Git.Warnings(ctx, root) {
				for _, line := range w.Lines() {
					d.Out.Warn(line)
				}
			}

			remote, _ := d.Git.RemoteURL(ctx, root)
			provider := gitrepo.DetectProvider(remote)
			if !provider.IsExternal() {
				logger.Warn("git host not recognized, importing as ORCHESTRA", "remote", remote)
			}

			payload := domain.ImportPayload{
				StorageProvider: provider,
				Repository:      slug,
				DefaultBranch:   branch,
				YAMLPath:        yamlPath,
				Alias:           alias,
			}
			if missing := payload.Missing(); len(missing) > 0 {
				return fail(d.Out, "Import", fmt.Errorf("missing import fields: %s", strings.Join(missing, ", ")))
			}

			logger.Info("importing pipeline",
				"provider", provider,
				"repository", slug,
				"default_branch", branch,
				"yaml_path", yamlPath,
			)

			result, err := d.Client.ImportPipeline(ctx, payload)
			if err != nil {
				return fail(d.Out, "Import", err)
			}

			if result.ID != "" {
				d.Out.Print(result.ID)
				return nil
			}

			d.Out.Success("✅ Pipeline imported successfully")
			if len(result.Body) > 0 {
				d.Out.Emphasis(compactBody(result.Body))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&alias, "alias", "a", "", "Pipeline alias (required)")
	cmd.Flags().StringVarP(&path, "path", "p", "", "Path to pipeline YAML inside a git repository (required)")
	cmd.MarkFlagRequired("alias")
	cmd.MarkFlagRequired("path")

	return cmd
}
