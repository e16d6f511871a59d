// Package pipeline wires a validated configuration to the stores and flows
// that implement it.
package pipeline

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/MrSnakeDoc/listsite/internal/config"
	"github.com/MrSnakeDoc/listsite/internal/dropbox"
	"github.com/MrSnakeDoc/listsite/internal/errs"
	"github.com/MrSnakeDoc/listsite/internal/logger"
	"github.com/MrSnakeDoc/listsite/internal/renderer"
	"github.com/MrSnakeDoc/listsite/internal/secrets"
	"github.com/MrSnakeDoc/listsite/internal/service"
	"github.com/MrSnakeDoc/listsite/internal/storage"
	"github.com/MrSnakeDoc/listsite/internal/updater"
)

// Buckets hands out a store per bucket name.
type Buckets interface {
	Bucket(name string) storage.Store
}

// TokenResolver turns a secret id into a Dropbox access token.
type TokenResolver interface {
	Resolve(ctx context.Context, id string) (string, error)
}

type Pipeline struct {
	cfg      *config.Config
	log      *logger.Logger
	buckets  Buckets
	source   storage.Reader
	srcKey   string
	resolver TokenResolver
	http     service.HTTPClient
	dbxOpts  []dropbox.Option
}

type Option func(*Pipeline)

// WithBuckets replaces the store factory built from cfg.Storage.
func WithBuckets(b Buckets) Option {
	return func(p *Pipeline) { p.buckets = b }
}

// WithSource replaces the upstream reader. key names the list in it.
func WithSource(r storage.Reader, key string) Option {
	return func(p *Pipeline) {
		p.source = r
		p.srcKey = key
	}
}

func WithResolver(r TokenResolver) Option {
	return func(p *Pipeline) { p.resolver = r }
}

// WithDropbox sets the HTTP client and options of the Dropbox reader.
func WithDropbox(client service.HTTPClient, opts ...dropbox.Option) Option {
	return func(p *Pipeline) {
		p.http = client
		p.dbxOpts = opts
	}
}

// New prepares a pipeline for cfg, which must already be validated.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger, opts ...Option) (*Pipeline, error) {
	if log == nil {
		log = logger.Nop()
	}
	p := &Pipeline{cfg: cfg, log: log}
	for _, o := range opts {
		o(p)
	}

	if p.buckets == nil {
		f, err := storage.NewFactory(ctx, cfg.Storage)
		if err != nil {
			return nil, err
		}
		log.Debug("Using %s storage backend", f.Backend())
		p.buckets = f
	}
	return p, nil
}

// Update mirrors the source list into the generator bucket when it changed.
func (p *Pipeline) Update(ctx context.Context) (updater.Result, error) {
	u, key, err := p.updater(ctx)
	if err != nil {
		return updater.Result{}, err
	}
	return u.Execute(ctx, p.cfg.Site, key, p.cfg.Force)
}

// Status is what Inspect found, with printable locations.
type Status struct {
	updater.Result
	Source      string
	Destination string
}

// Inspect reports the state of both sides without downloading or writing.
func (p *Pipeline) Inspect(ctx context.Context) (Status, error) {
	u, key, err := p.updater(ctx)
	if err != nil {
		return Status{}, err
	}
	res, err := u.Inspect(ctx, p.cfg.Site, key, p.cfg.Force)
	return Status{
		Result:      res,
		Source:      u.Source.Describe(key),
		Destination: u.Destination.Describe(p.cfg.Site.ListKey()),
	}, err
}

// Generate renders the template with the list and publishes index.html.
func (p *Pipeline) Generate(ctx context.Context) error {
	site := p.cfg.Site
	g := renderer.NewGenerator(
		p.buckets.Bucket(site.GeneratorBucket()),
		p.buckets.Bucket(site.SiteBucket()),
		p.log,
	)
	return g.Execute(ctx, site)
}

func (p *Pipeline) updater(ctx context.Context) (*updater.Updater, string, error) {
	if err := p.checkDistinct(); err != nil {
		return nil, "", err
	}
	src, key, err := p.sourceReader(ctx)
	if err != nil {
		return nil, "", err
	}
	dst := p.buckets.Bucket(p.cfg.Site.GeneratorBucket())
	return updater.New(src, dst, p.log), key, nil
}

// checkDistinct refuses a local source that is the destination object itself;
// an update would rewrite the source in canonical form.
func (p *Pipeline) checkDistinct() error {
	if p.source != nil || p.cfg.Source.Kind != config.SourceLocal || p.cfg.Storage.Backend != storage.BackendLocal {
		return nil
	}

	dir := p.cfg.Storage.LocalDir
	if dir == "" {
		dir = "."
	}
	src, err := filepath.Abs(p.cfg.Source.Path)
	if err != nil {
		return errs.Config("resolve source path", err)
	}
	dst, err := filepath.Abs(filepath.Join(dir, p.cfg.Site.ListKey()))
	if err != nil {
		return errs.Config("resolve destination path", err)
	}
	if src == dst {
		return errs.Config("check source", errors.New(errs.Msg(errs.SourceIsDestination, src)))
	}
	return nil
}

func (p *Pipeline) sourceReader(ctx context.Context) (storage.Reader, string, error) {
	if p.source != nil {
		return p.source, p.srcKey, nil
	}

	src := p.cfg.Source
	if src.Kind == config.SourceLocal {
		return storage.NewLocal(filepath.Dir(src.Path)), filepath.Base(src.Path), nil
	}

	token := src.AccessKey
	if p.cfg.NeedsSecret() {
		if p.resolver == nil {
			r, err := secrets.NewResolver(ctx, p.cfg.Storage.Region, p.log)
			if err != nil {
				return nil, "", err
			}
			p.resolver = r
		}
		var err error
		if token, err = p.resolver.Resolve(ctx, src.AccessKeySecret); err != nil {
			return nil, "", err
		}
	}

	return dropbox.New(token, p.http, p.dbxOpts...), src.Path, nil
}
