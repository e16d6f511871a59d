package middleware

import (
	"context"

	"github.com/MrSnakeDoc/listsite/internal/config"
	"github.com/spf13/cobra"
)

// LoadConfig assembles the configuration from the command flags, the
// environment and the optional config file.
func LoadConfig(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	cfg, err := config.Load(config.OSEnv, cmd.Flags())
	if err != nil {
		return err
	}

	ctx := context.WithValue(cmd.Context(), CtxKeyConfig, cfg)
	cmd.SetContext(ctx)

	return next(cmd, args)
}

// RequireValid rejects a configuration that cannot run flow. It must come
// after LoadConfig and WithLogger.
func RequireValid(flow config.Flow) MiddlewareFunc {
	return func(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
		cfg, err := Get[*config.Config](cmd, CtxKeyConfig)
		if err != nil {
			return err
		}
		log, err := Logger(cmd)
		if err != nil {
			return err
		}

		if err := cfg.Validate(flow); err != nil {
			return Logged(log, err)
		}
		return next(cmd, args)
	}
}
