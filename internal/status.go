package internal

import (
	"github.com/MrSnakeDoc/listsite/internal/config"
	"github.com/MrSnakeDoc/listsite/internal/middleware"
	"github.com/MrSnakeDoc/listsite/internal/pipeline"
	"github.com/MrSnakeDoc/listsite/internal/status"
	"github.com/spf13/cobra"
)

func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show what update would do, without downloading or uploading",
		Args:  cobra.NoArgs,
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
			st, err := p.Inspect(ctx)
			if err != nil {
				return middleware.Logged(log, err)
			}
			return status.Render(log, st)
		},
	}

	config.RegisterSourceFlags(cmd.Flags())
	return cmd
}
