package internal

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/listsite/internal/config"
	"github.com/spf13/cobra"
)

// runTimeout bounds a single update or generate run.
const runTimeout = 5 * time.Minute

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listsite",
		Short: "Publish a list of lists as a static site",
		Long: `listsite mirrors a list document from Dropbox into the generator bucket of a
site and renders it into index.html.

Every setting can come from a flag, an environment variable or a YAML file
given with --config; flags win over the environment, which wins over the file.`,
		Example: `  SITE=foolist SITE_URL=foo.list listsite update --dropbox-path /foolist.json
  listsite generate --site-name foolist --site-url foo.list`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	config.RegisterPersistentFlags(cmd.PersistentFlags())

	RegisterSubCommands(cmd)

	return cmd
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context, args []string) error {
	root := NewRootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func withTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), runTimeout)
}
