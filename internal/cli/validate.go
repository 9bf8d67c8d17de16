package cli

import (
	"github.com/spf13/cobra"

	"github.com/shaiso/orchestra-cli/internal/telemetry"
)

// NewValidateCmd создаёт команду validate: проверка схемы без изменений
// на стороне Orchestra. Каждый файл проверяется отдельно, команда
// завершается с кодом 1, если хотя бы один файл невалиден.
func NewValidateCmd(depsFn func() *Deps) *cobra.Command {
	var paths []string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate pipeline YAML files against the Orchestra schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := depsFn()
			ctx := telemetry.WithLogger(cmd.Context(), telemetry.WithCommand(d.Logger, "validate"))

			var failed error
			for _, path := range paths {
				if len(paths) > 1 {
					d.Out.Emphasis(path)
				}

				if _, err := loadValidated(ctx, d, path); err != nil {
					failed = fail(d.Out, "Validation", err)
					continue
				}
				d.Out.Success("✅ Pipeline definition is valid")
			}
			return failed
		},
	}

	cmd.Flags().StringSliceVarP(&paths, "path", "p", nil, "Path to pipeline YAML (repeatable, required)")
	cmd.MarkFlagRequired("path")

	return cmd
}
