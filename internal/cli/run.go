package cli

import (
	"github.com/spf13/cobra"

	"github.com/shaiso/orchestra-cli/internal/domain"
	"github.com/shaiso/orchestra-cli/internal/telemetry"
)

// confirmMessage — приглашение перед запуском при наличии предупреждений git.
const confirmMessage = "Press Enter to continue or Ctrl+C to abort"

// NewRunCmd создаёт команду run.
//
// ORCHESTRA_API_KEY для run не обязателен: без него запрос уходит
// без заголовка Authorization, и решение принимает API.
func NewRunCmd(depsFn func() *Deps) *cobra.Command {
	var alias string
	var branch string
	var commit string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a pipeline in Orchestra",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := depsFn()
			logger := telemetry.WithAlias(telemetry.WithCommand(d.Logger, "run"), alias)
			ctx := telemetry.WithLogger(cmd.Context(), logger)

			if !d.Config.HasAPIKey() {
				logger.Debug("ORCHESTRA_API_KEY not set, sending unauthenticated request")
			}

			// Предупреждения git — best effort: вне репозитория просто пропускаем.
			if root, err := d.Git.RepoRoot(ctx, d.WorkDir); err == nil {
				if warnings := d.Git.Warnings(ctx, root); len(warnings) > 0 {
					for _, w := range warnings {
						for _, line := range w.Lines() {
							d.Out.Warn(line)
						}
					}
					if err := d.Prompt.Confirm(ctx, confirmMessage); err != nil {
						return fail(d.Out, "Run", err)
					}
				}
			}

			payload := domain.RunPayload{Branch: branch, Commit: commit}

			logger.Info("starting run", "branch", branch, "commit", commit)

			result, err := d.Client.StartRun(ctx, alias, payload)
			if err != nil {
				return fail(d.Out, "Run", err)
			}

			if result.ID != "" {
				d.Out.Print(result.ID)
				return nil
			}

			d.Out.Success("✅ Run started")
			if len(result.Body) > 0 {
				d.Out.Emphasis(compactBody(result.Body))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&alias, "alias", "a", "", "Pipeline alias (required)")
	cmd.Flags().StringVarP(&branch, "branch", "b", "", "Git branch name")
	cmd.Flags().StringVarP(&commit, "commit", "c", "", "Commit SHA")
	cmd.MarkFlagRequired("alias")

	return cmd
}
