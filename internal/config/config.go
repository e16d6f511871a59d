// Package config assembles the run configuration once, at the entry point,
// from flags, environment variables and an optional YAML file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/MrSnakeDoc/listsite/internal/artifact"
	"github.com/MrSnakeDoc/listsite/internal/errs"
	"github.com/MrSnakeDoc/listsite/internal/storage"
	"gopkg.in/yaml.v3"
)

type Flow string

const (
	FlowUpdate   Flow = "update"
	FlowGenerate Flow = "generate"
)

const (
	SourceDropbox = "dropbox"
	SourceLocal   = "local"
)

// ParseFlow maps a LISTSITE_FLOW value to a Flow. Empty means update.
func ParseFlow(s string) (Flow, error) {
	switch Flow(strings.ToLower(strings.TrimSpace(s))) {
	case "", FlowUpdate:
		return FlowUpdate, nil
	case FlowGenerate:
		return FlowGenerate, nil
	default:
		return "", errs.Config("flow", fmt.Errorf("%s", errs.Msg(errs.UnknownFlow, s)))
	}
}

// Source locates the list document upstream.
type Source struct {
	Kind            string `yaml:"kind" validate:"oneof=dropbox local"`
	Path            string `yaml:"path" validate:"required"`
	AccessKey       string `yaml:"access_key"`
	AccessKeySecret string `yaml:"access_key_secret"`
}

type Config struct {
	Verbose bool            `yaml:"verbose"`
	Force   bool            `yaml:"force"`
	Site    artifact.Site   `yaml:"site"`
	Storage storage.Options `yaml:"storage"`
	Source  Source          `yaml:"source"`
}

// Default returns the settings used when nothing else is given.
func Default() *Config {
	return &Config{
		Storage: storage.Options{Backend: storage.BackendS3},
		Source:  Source{Kind: SourceDropbox},
	}
}

// LoadFile overlays the YAML document at path onto cfg. Keys absent from the
// file keep their current value.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errs.Config("read config file", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errs.Config("parse config file", fmt.Errorf("%s: %w", path, err))
	}
	return nil
}

// Load builds the configuration with precedence flag > env > file > default.
// flags may be nil (scheduled runs read the environment only).
func Load(env Env, flags FlagSource) (*Config, error) {
	if env == nil {
		env = OSEnv
	}
	cfg := Default()

	file, _ := env(EnvConfigFile)
	if flags != nil && flags.Changed(FlagConfig) {
		file, _ = flags.GetString(FlagConfig)
	}
	if file != "" {
		if err := LoadFile(cfg, file); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg, env); err != nil {
		return nil, err
	}
	if flags != nil {
		if err := applyFlags(cfg, flags); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// NeedsSecret reports whether the Dropbox token has to be fetched from the
// secret named by Source.AccessKeySecret.
func (c *Config) NeedsSecret() bool {
	return c.Source.Kind == SourceDropbox && c.Source.AccessKey == "" && c.Source.AccessKeySecret != ""
}

// LogLevel returns the logger level matching Verbose.
func (c *Config) LogLevel() string {
	if c.Verbose {
		return "debug"
	}
	return "info"
}
