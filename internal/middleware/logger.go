package middleware

import (
	"context"

	"github.com/MrSnakeDoc/listsite/internal/config"
	"github.com/MrSnakeDoc/listsite/internal/logger"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// WithLogger creates the run logger. Verbosity comes from the loaded
// configuration when present, else from the --verbose flag.
func WithLogger(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	verbose, _ := cmd.Flags().GetBool(config.FlagVerbose)
	if cfg, err := Get[*config.Config](cmd, CtxKeyConfig); err == nil {
		verbose = cfg.Verbose
	}

	log := logger.New(logger.ConsoleOptions(verbose, cmd.OutOrStdout()))
	if log.DebugEnabled() {
		log = log.With("run_id", uuid.NewString())
	}

	ctx := context.WithValue(cmd.Context(), CtxKeyLogger, log)
	cmd.SetContext(ctx)

	return next(cmd, args)
}

// Logger returns the run logger stored by WithLogger.
func Logger(cmd *cobra.Command) (*logger.Logger, error) {
	return Get[*logger.Logger](cmd, CtxKeyLogger)
}
