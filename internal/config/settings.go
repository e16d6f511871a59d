package config

import (
	"os"
	"strconv"

	"github.com/MrSnakeDoc/listsite/internal/errs"
	"github.com/spf13/pflag"
)

// Env looks up an environment variable.
type Env func(key string) (string, bool)

// OSEnv reads the process environment.
var OSEnv Env = os.LookupEnv

// MapEnv serves lookups from m (tests, lambda payloads).
func MapEnv(m map[string]string) Env {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// FlagSource is the part of *pflag.FlagSet that Load reads.
type FlagSource interface {
	Changed(name string) bool
	GetString(name string) (string, error)
	GetBool(name string) (bool, error)
}

const (
	FlagConfig                 = "config"
	FlagVerbose                = "verbose"
	FlagForce                  = "force"
	FlagSiteName               = "site-name"
	FlagSiteURL                = "site-url"
	FlagBackend                = "backend"
	FlagLocalDir               = "local-dir"
	FlagRegion                 = "region"
	FlagEndpoint               = "endpoint"
	FlagSourceKind             = "source"
	FlagDropboxPath            = "dropbox-path"
	FlagDropboxAccessKey       = "dropbox-access-key"
	FlagDropboxAccessKeySecret = "dropbox-access-key-secret"

	EnvConfigFile      = "LISTSITE_CONFIG"
	EnvVerbose         = "LISTSITE_VERBOSE"
	EnvForce           = "LISTSITE_FORCE"
	EnvFlow            = "LISTSITE_FLOW"
	EnvSite            = "SITE"
	EnvSiteURL         = "SITE_URL"
	EnvBackend         = "LISTSITE_BACKEND"
	EnvLocalDir        = "LISTSITE_LOCAL_DIR"
	EnvRegion          = "AWS_REGION"
	EnvEndpoint        = "MINIO_ENDPOINT"
	EnvMinioAccessKey  = "MINIO_ACCESS_KEY"
	EnvMinioSecretKey  = "MINIO_SECRET_KEY"
	EnvMinioUseSSL     = "MINIO_USE_SSL"
	EnvSource          = "LISTSITE_SOURCE"
	EnvDropboxPath     = "DB_FILE_PATH"
	EnvAccessKey       = "DB_ACCESS_KEY"
	EnvAccessKeySecret = "DB_ACCESS_KEY_SECRET"
)

// setting binds one configuration field to its flag and environment variable.
// flag is empty for env-only settings.
type setting struct {
	flag   string
	env    string
	isBool bool
	set    func(c *Config, v string) error
}

func str(f func(c *Config) *string) func(*Config, string) error {
	return func(c *Config, v string) error {
		*f(c) = v
		return nil
	}
}

func boolean(name string, f func(c *Config) *bool) func(*Config, string) error {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errs.Config(name, err)
		}
		*f(c) = b
		return nil
	}
}

var settings = []setting{
	{flag: FlagVerbose, env: EnvVerbose, isBool: true, set: boolean(EnvVerbose, func(c *Config) *bool { return &c.Verbose })},
	{flag: FlagForce, env: EnvForce, isBool: true, set: boolean(EnvForce, func(c *Config) *bool { return &c.Force })},
	{flag: FlagSiteName, env: EnvSite, set: str(func(c *Config) *string { return &c.Site.Name })},
	{flag: FlagSiteURL, env: EnvSiteURL, set: str(func(c *Config) *string { return &c.Site.URL })},
	{flag: FlagBackend, env: EnvBackend, set: str(func(c *Config) *string { return &c.Storage.Backend })},
	{flag: FlagLocalDir, env: EnvLocalDir, set: str(func(c *Config) *string { return &c.Storage.LocalDir })},
	{flag: FlagRegion, env: EnvRegion, set: str(func(c *Config) *string { return &c.Storage.Region })},
	{flag: FlagEndpoint, env: EnvEndpoint, set: str(func(c *Config) *string { return &c.Storage.Endpoint })},
	{env: EnvMinioAccessKey, set: str(func(c *Config) *string { return &c.Storage.AccessKey })},
	{env: EnvMinioSecretKey, set: str(func(c *Config) *string { return &c.Storage.SecretKey })},
	{env: EnvMinioUseSSL, isBool: true, set: boolean(EnvMinioUseSSL, func(c *Config) *bool { return &c.Storage.UseSSL })},
	{flag: FlagSourceKind, env: EnvSource, set: str(func(c *Config) *string { return &c.Source.Kind })},
	{flag: FlagDropboxPath, env: EnvDropboxPath, set: str(func(c *Config) *string { return &c.Source.Path })},
	{flag: FlagDropboxAccessKey, env: EnvAccessKey, set: str(func(c *Config) *string { return &c.Source.AccessKey })},
	{flag: FlagDropboxAccessKeySecret, env: EnvAccessKeySecret, set: str(func(c *Config) *string { return &c.Source.AccessKeySecret })},
}

func applyEnv(cfg *Config, env Env) error {
	for _, s := range settings {
		v, ok := env(s.env)
		if !ok || v == "" {
			continue
		}
		if err := s.set(cfg, v); err != nil {
			return err
		}
	}
	return nil
}

func applyFlags(cfg *Config, flags FlagSource) error {
	for _, s := range settings {
		if s.flag == "" || !flags.Changed(s.flag) {
			continue
		}
		if s.isBool {
			b, err := flags.GetBool(s.flag)
			if err != nil {
				return errs.Config(s.flag, err)
			}
			if err := s.set(cfg, strconv.FormatBool(b)); err != nil {
				return err
			}
			continue
		}
		v, err := flags.GetString(s.flag)
		if err != nil {
			return errs.Config(s.flag, err)
		}
		if err := s.set(cfg, v); err != nil {
			return err
		}
	}
	return nil
}

// RegisterPersistentFlags adds the flags every command shares.
func RegisterPersistentFlags(fs *pflag.FlagSet) {
	fs.BoolP(FlagVerbose, "v", false, "Enable debug logging ($"+EnvVerbose+")")
	fs.String(FlagConfig, "", "Path to a YAML config file ($"+EnvConfigFile+")")
	fs.String(FlagBackend, "", "Storage backend: local, s3 or minio ($"+EnvBackend+")")
	fs.String(FlagLocalDir, "", "Directory used by the local backend ($"+EnvLocalDir+")")
	fs.String(FlagRegion, "", "AWS region ($"+EnvRegion+")")
	fs.String(FlagEndpoint, "", "S3 compatible endpoint ($"+EnvEndpoint+")")
	fs.String(FlagSiteName, "", "Name of the list, e.g. foolist ($"+EnvSite+")")
	fs.String(FlagSiteURL, "", "Domain of the site, e.g. foo.list ($"+EnvSiteURL+")")
}

// RegisterSourceFlags adds the flags that locate the upstream list.
func RegisterSourceFlags(fs *pflag.FlagSet) {
	fs.Bool(FlagForce, false, "Upload even when the destination looks up to date ($"+EnvForce+")")
	fs.String(FlagSourceKind, "", "Where the list lives: dropbox or local ($"+EnvSource+")")
	fs.String(FlagDropboxPath, "", "Path of the list file in Dropbox ($"+EnvDropboxPath+")")
	fs.String(FlagDropboxAccessKey, "", "Dropbox access token ($"+EnvAccessKey+")")
	fs.String(FlagDropboxAccessKeySecret, "", "Secrets Manager id holding the Dropbox token ($"+EnvAccessKeySecret+")")
}

func find(env string) setting {
	for _, s := range settings {
		if s.env == env {
			return s
		}
	}
	return setting{env: env}
}

var byNamespace = map[string]setting{
	"Site.Name":         find(EnvSite),
	"Site.URL":          find(EnvSiteURL),
	"Options.Backend":   find(EnvBackend),
	"Options.Endpoint":  find(EnvEndpoint),
	"Options.AccessKey": find(EnvMinioAccessKey),
	"Options.SecretKey": find(EnvMinioSecretKey),
	"Source.Kind":       find(EnvSource),
	"Source.Path":       find(EnvDropboxPath),
	"Source.AccessKey":  find(EnvAccessKey),
}
