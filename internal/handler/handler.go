// Package handler runs one flow per scheduled invocation. Configuration comes
// from the environment only; the event payload is ignored.
package handler

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/MrSnakeDoc/listsite/internal/config"
	"github.com/MrSnakeDoc/listsite/internal/logger"
	"github.com/MrSnakeDoc/listsite/internal/pipeline"
	"github.com/google/uuid"
)

type Handler struct {
	env  config.Env
	out  io.Writer
	opts []pipeline.Option
}

// New returns a handler reading env. out receives JSON log lines; nil means
// stdout. opts are passed to every pipeline it builds.
func New(env config.Env, out io.Writer, opts ...pipeline.Option) *Handler {
	if env == nil {
		env = config.OSEnv
	}
	if out == nil {
		out = os.Stdout
	}
	return &Handler{env: env, out: out, opts: opts}
}

// Handle runs the flow named by LISTSITE_FLOW. Skips are successes.
func (h *Handler) Handle(ctx context.Context, _ json.RawMessage) error {
	runID := uuid.NewString()
	log := logger.New(logger.HandlerOptions(false, h.out)).With("run_id", runID)
	defer log.Sync()

	name, _ := h.env(config.EnvFlow)
	flow, err := config.ParseFlow(name)
	if err != nil {
		log.LogError("%v", err)
		return err
	}

	cfg, err := config.Load(h.envOnly, nil)
	if err != nil {
		log.LogError("%v", err)
		return err
	}
	if cfg.Verbose {
		log = logger.New(logger.HandlerOptions(true, h.out)).With("run_id", runID)
	}
	log = log.With("flow", string(flow), "site", cfg.Site.Name)

	if err := h.run(ctx, flow, cfg, log); err != nil {
		log.LogError("%v", err)
		return err
	}
	return nil
}

// envOnly hides the config file variable: scheduled runs are configured by
// the environment alone.
func (h *Handler) envOnly(key string) (string, bool) {
	if key == config.EnvConfigFile {
		return "", false
	}
	return h.env(key)
}

func (h *Handler) run(ctx context.Context, flow config.Flow, cfg *config.Config, log *logger.Logger) error {
	if err := cfg.Validate(flow); err != nil {
		return err
	}

	p, err := pipeline.New(ctx, cfg, log, h.opts...)
	if err != nil {
		return err
	}

	if flow == config.FlowGenerate {
		return p.Generate(ctx)
	}
	_, err = p.Update(ctx)
	return err
}
