package internal

import (
	"github.com/MrSnakeDoc/listsite/internal/middleware"
	"github.com/MrSnakeDoc/listsite/internal/pipeline"
	"github.com/spf13/cobra"
)

func NewGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Render index.html from the template and the list",
		Long: `Reads index.template and {SITE}.json from {SITE_URL}-generator, renders the
template with the list and uploads the result to {SITE_URL}/index.html.

Examples:
  listsite generate --site-name foolist --site-url foo.list`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := runContext(cmd)
			if err != nil {
				return err
			}
			log, err := middleware.Logger(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := withTimeout(cmd)
			defer cancel()

			p, err := pipeline.New(ctx, cfg, log)
			if err != nil {
				return middleware.Logged(log, err)
			}
			return middleware.Logged(log, p.Generate(ctx))
		},
	}
}
