package internal

import (
	"github.com/MrSnakeDoc/listsite/internal/config"
	"github.com/MrSnakeDoc/listsite/internal/middleware"
	"github.com/spf13/cobra"
)

var (
	updateChain   = middleware.UseMiddlewareChain(middleware.LoadConfig, middleware.WithLogger, middleware.RequireValid(config.FlowUpdate))
	generateChain = middleware.UseMiddlewareChain(middleware.LoadConfig, middleware.WithLogger, middleware.RequireValid(config.FlowGenerate))
)

var defaultCommands = []middleware.CommandFactory{
	updateChain(NewUpdateCmd),
	updateChain(NewStatusCmd),
	generateChain(NewGenerateCmd),
	NewVersionCmd,
}

func RegisterSubCommands(cmd *cobra.Command) {
	for _, factory := range defaultCommands {
		cmd.AddCommand(factory())
	}
}

// runContext returns the configuration loaded by the middleware chain.
func runContext(cmd *cobra.Command) (*config.Config, error) {
	return middleware.Get[*config.Config](cmd, middleware.CtxKeyConfig)
}
