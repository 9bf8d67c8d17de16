package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaiso/orchestra-cli/internal/domain"
	"github.com/shaiso/orchestra-cli/internal/pipeline"
	"github.com/shaiso/orchestra-cli/internal/telemetry"
)

// upsertKind описывает различия create-pipeline и update-pipeline.
type upsertKind struct {
	use    string
	short  string
	action string // "Create" / "Update"
	verb   string // "created" / "updated"
	send   func(ctx context.Context, c *Client, alias string, payload domain.UpsertPayload) (string, error)
}

var (
	createKind = upsertKind{
		use:    "create-pipeline",
		short:  "Create an Orchestra-backed pipeline from a local YAML file",
		action: "Create",
		verb:   "created",
		send: func(ctx context.Context, c *Client, _ string, payload domain.UpsertPayload) (string, error) {
			return c.CreatePipeline(ctx, payload)
		},
	}

	updateKind = upsertKind{
		use:    "update-pipeline",
		short:  "Update an Orchestra-backed pipeline from a local YAML file",
		action: "Update",
		verb:   "updated",
		send: func(ctx context.Context, c *Client, alias string, payload domain.UpsertPayload) (string, error) {
			return c.UpdatePipeline(ctx, alias, payload)
		},
	}
)

// NewCreatePipelineCmd создаёт команду create-pipeline.
func NewCreatePipelineCmd(depsFn func() *Deps) *cobra.Command {
	return newUpsertCmd(depsFn, createKind)
}

// NewUpdatePipelineCmd создаёт команду update-pipeline.
func NewUpdatePipelineCmd(depsFn func() *Deps) *cobra.Command {
	return newUpsertCmd(depsFn, updateKind)
}

func newUpsertCmd(depsFn func() *Deps, kind upsertKind) *cobra.Command {
	var alias string
	var path string
	var publish bool
	var noPublish bool

	cmd := &cobra.Command{
		Use:   kind.use,
		Short: kind.short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := depsFn()
			logger := telemetry.WithAlias(telemetry.WithCommand(d.Logger, kind.use), alias)
			ctx := telemetry.WithLogger(cmd.Context(), logger)

			if !d.Config.HasAPIKey() {
				return fail(d.Out, kind.action, ErrMissingCredential)
			}

			def, err := loadValidated(ctx, d, path)
			if err != nil {
				return fail(d.Out, kind.action, err)
			}

			published := publish && !noPublish
			payload := domain.NewUpsertPayload(def, published, "")
			if kind.action == createKind.action {
				payload.Alias = alias
			}

			logger.Info("sending pipeline", "published", published, "path", path)

			id, err := kind.send(ctx, d.Client, alias, payload)
			if err != nil {
				return fail(d.Out, kind.action, err)
			}

			d.Out.Success(fmt.Sprintf("✅ Pipeline '%s' %s successfully: %s", alias, kind.verb, id))
			d.Out.Notice("Edit URL: " + d.Config.EditURL(id))
			return nil
		},
	}

	cmd.Flags().StringVarP(&alias, "alias", "a", "", "Pipeline alias (required)")
	cmd.Flags().StringVarP(&path, "path", "p", "", "Path to pipeline YAML (required)")
	cmd.Flags().BoolVar(&publish, "publish", false, "Whether the pipeline is published and can be triggered")
	cmd.Flags().BoolVar(&noPublish, "no-publish", false, "Do not publish the pipeline (default)")
	cmd.MarkFlagRequired("alias")
	cmd.MarkFlagRequired("path")
	cmd.MarkFlagsMutuallyExclusive("publish", "no-publish")

	return cmd
}

// loadValidated загружает YAML и проверяет его схему удалённо.
// Сетевой запрос выполняется только для успешно разобранного файла.
func loadValidated(ctx context.Context, d *Deps, path string) (pipeline.Definition, error) {
	def, err := pipeline.Load(path)
	if err != nil {
		return nil, err
	}

	if err := d.Client.ValidateSchema(ctx, def); err != nil {
		return nil, err
	}
	return def, nil
}
