package middleware

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/MrSnakeDoc/listsite/internal/config"
	"github.com/MrSnakeDoc/listsite/internal/errs"
	"github.com/MrSnakeDoc/listsite/internal/logger"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		config.EnvConfigFile, config.EnvSite, config.EnvSiteURL, config.EnvAccessKey,
		config.EnvAccessKeySecret, config.EnvDropboxPath, config.EnvVerbose, config.EnvForce,
		config.EnvBackend, config.EnvSource,
	} {
		t.Setenv(k, "")
	}
}

func testCmd(run func(cmd *cobra.Command) error) CommandFactory {
	return func() *cobra.Command {
		cmd := &cobra.Command{
			Use:           "test",
			SilenceUsage:  true,
			SilenceErrors: true,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd)
			},
		}
		config.RegisterPersistentFlags(cmd.Flags())
		config.RegisterSourceFlags(cmd.Flags())
		return cmd
	}
}

func TestUseMiddlewareChain_Order(t *testing.T) {
	var trace []string
	mw := func(name string) MiddlewareFunc {
		return func(cmd *cobra.Command, args []string, next func(*cobra.Command, []string) error) error {
			trace = append(trace, name)
			return next(cmd, args)
		}
	}

	factory := UseMiddlewareChain(mw("a"), mw("b"))(func() *cobra.Command {
		return &cobra.Command{
			Use: "x",
			PreRunE: func(*cobra.Command, []string) error {
				trace = append(trace, "pre")
				return nil
			},
			RunE: func(*cobra.Command, []string) error {
				trace = append(trace, "run")
				return nil
			},
		}
	})

	cmd := factory()
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, []string{"a", "b", "pre", "run"}, trace)
}

func TestUseMiddlewareChain_StopsOnError(t *testing.T) {
	ran := false
	stop := func(*cobra.Command, []string, func(*cobra.Command, []string) error) error {
		return errors.New("stop")
	}
	cmd := UseMiddlewareChain(stop)(testCmd(func(*cobra.Command) error {
		ran = true
		return nil
	}))()
	cmd.SetArgs([]string{})

	require.EqualError(t, cmd.Execute(), "stop")
	assert.False(t, ran)
}

func TestGet_Errors(t *testing.T) {
	cmd := &cobra.Command{}
	_, err := Get[*config.Config](cmd, CtxKeyConfig)
	assert.EqualError(t, err, "command context is nil")

	cmd.SetContext(context.Background())
	_, err = Get[*config.Config](cmd, CtxKeyConfig)
	assert.ErrorContains(t, err, "is nil")

	cmd.SetContext(context.WithValue(context.Background(), CtxKeyConfig, "nope"))
	_, err = Get[*config.Config](cmd, CtxKeyConfig)
	assert.ErrorContains(t, err, "wrong type")
}

func TestLoadConfigAndLogger(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvSite, "foolist")
	t.Setenv(config.EnvSiteURL, "foo.list")

	var out bytes.Buffer
	var got *config.Config
	var log *logger.Logger

	cmd := UseMiddlewareChain(LoadConfig, WithLogger, RequireValid(config.FlowGenerate))(testCmd(func(cmd *cobra.Command) error {
		var err error
		if got, err = Get[*config.Config](cmd, CtxKeyConfig); err != nil {
			return err
		}
		log, err = Logger(cmd)
		return err
	}))()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--site-url", "bar.list", "-v"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "foolist", got.Site.Name)
	assert.Equal(t, "bar.list", got.Site.URL)
	require.NotNil(t, log)
	assert.True(t, log.DebugEnabled())
	assert.Same(t, &out, log.Out())
}

func TestRequireValid_LogsOnce(t *testing.T) {
	clearEnv(t)

	var out bytes.Buffer
	ran := false
	cmd := UseMiddlewareChain(LoadConfig, WithLogger, RequireValid(config.FlowUpdate))(testCmd(func(*cobra.Command) error {
		ran = true
		return nil
	}))()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.False(t, ran)
	assert.ErrorIs(t, err, ErrLogged)
	assert.True(t, errs.IsConfiguration(err))
	assert.Contains(t, out.String(), "--site-name or $SITE is required")
	assert.Contains(t, out.String(), "--dropbox-path or $DB_FILE_PATH is required")
}

func TestLogged(t *testing.T) {
	var out bytes.Buffer
	log := logger.New(logger.ConsoleOptions(false, &out))

	assert.NoError(t, Logged(log, nil))

	err := Logged(log, errs.NotFound("read", "index.template"))
	assert.ErrorIs(t, err, ErrLogged)
	assert.True(t, errs.IsNotFound(err))

	again := Logged(log, err)
	assert.Equal(t, err, again)
	assert.Equal(t, 1, bytes.Count(out.Bytes(), []byte("index.template")))
}
