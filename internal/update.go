package internal

import (
	"github.com/MrSnakeDoc/listsite/internal/config"
	"github.com/MrSnakeDoc/listsite/internal/middleware"
	"github.com/MrSnakeDoc/listsite/internal/pipeline"
	"github.com/spf13/cobra"
)

func NewUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Mirror the list file into the generator bucket",
		Long: `Copies the list document to {SITE_URL}-generator/{SITE}.json when it changed.

The source modification time is compared first; the file is only downloaded
when it may be newer, and it is only uploaded when its content differs.

Examples:
  listsite update --site-name foolist --site-url foo.list --dropbox-path /foolist.json
  listsite update --force                   # download and compare even if timestamps match
  listsite update --source local --dropbox-path ~/lists/foolist.json --backend local --local-dir ./site`,
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
			if _, err := p.Update(ctx); err != nil {
				return middleware.Logged(log, err)
			}
			return nil
		},
	}

	config.RegisterSourceFlags(cmd.Flags())
	return cmd
}
