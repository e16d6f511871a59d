package updater

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/listsite/internal/artifact"
	"github.com/MrSnakeDoc/listsite/internal/detector"
	"github.com/MrSnakeDoc/listsite/internal/errs"
	"github.com/MrSnakeDoc/listsite/internal/logger"
	"github.com/MrSnakeDoc/listsite/internal/publisher"
	"github.com/MrSnakeDoc/listsite/internal/storage"
)

// Updater mirrors the source list into the generator store when it changed.
type Updater struct {
	Source      storage.Reader
	Destination storage.Store
	Publisher   *publisher.Publisher
	Log         *logger.Logger
}

// Result describes what one run saw and decided.
type Result struct {
	Decision            detector.Decision
	Key                 string
	SourceHash          string
	SourceProviderHash  string
	DestinationHash     string
	SourceModified      time.Time
	DestinationModified time.Time
	Fetched             bool
}

// Artifact returns the metadata of the run as a ListArtifact.
func (r Result) Artifact(site artifact.Site) artifact.ListArtifact {
	return artifact.ListArtifact{
		Site:                    site,
		ContentHash:             r.SourceHash,
		SourceModifiedTime:      r.SourceModified,
		DestinationModifiedTime: r.DestinationModified,
		DestinationETag:         r.DestinationHash,
	}
}

func New(source storage.Reader, destination storage.Store, log *logger.Logger) *Updater {
	if log == nil {
		log = logger.Nop()
	}
	return &Updater{
		Source:      source,
		Destination: destination,
		Publisher:   publisher.New(log),
		Log:         log,
	}
}

// Execute runs the change detection protocol for site. sourcePath names the
// list in the source store.
func (u *Updater) Execute(ctx context.Context, site artifact.Site, sourcePath string, force bool) (Result, error) {
	res, err := u.Inspect(ctx, site, sourcePath, force)
	if err != nil {
		return res, err
	}

	if res.Decision == detector.Skip {
		u.Log.Info("%s is already up to date, skipping", res.Key)
		return res, nil
	}

	canonical, err := u.fetchAndHash(ctx, sourcePath, &res)
	if err != nil {
		return res, err
	}

	res.Decision = detector.CompareHashes(res.SourceHash, res.DestinationHash, force)
	u.Log.Debug("%s: source hash %s, destination hash %q -> %s",
		res.Key, res.SourceHash, res.DestinationHash, res.Decision)

	if res.Decision == detector.Skip {
		u.Log.Info("%s content is unchanged, skipping", res.Key)
		return res, nil
	}

	u.Log.Info("Updating %s", u.Destination.Describe(res.Key))
	if err := u.Publisher.Publish(ctx, u.Destination, res.Key, canonical,
		publisher.WithContentType(publisher.ContentTypeJSON)); err != nil {
		return res, fmt.Errorf("failed to publish %s: %w", res.Key, err)
	}
	u.Log.Success("Updated %s", res.Key)

	return res, nil
}

// Inspect gathers metadata from both sides and applies the timestamp check.
// It never downloads the source.
func (u *Updater) Inspect(ctx context.Context, site artifact.Site, sourcePath string, force bool) (Result, error) {
	res := Result{Key: site.ListKey()}

	src, err := u.Source.GetMetadata(ctx, sourcePath)
	if err != nil {
		return res, fmt.Errorf("failed to read source metadata: %w", err)
	}
	if !src.Exists() {
		return res, &errs.Error{
			Op:   "source metadata",
			Key:  u.Source.Describe(sourcePath),
			Kind: errs.ErrNotFound,
			Err:  errors.New(errs.Msg(errs.SourceNotFound, sourcePath)),
		}
	}
	res.SourceModified = src.ModTime
	res.SourceProviderHash = src.Hash
	u.Log.Debug("Source %s: modified %s, provider hash %s",
		u.Source.Describe(sourcePath), formatTime(src.ModTime), src.Hash)

	dst, err := u.Destination.GetMetadata(ctx, res.Key)
	if err != nil {
		return res, fmt.Errorf("failed to read destination metadata: %w", err)
	}
	if !dst.Exists() {
		u.Log.Debug("%s not found, treating as first publish", u.Destination.Describe(res.Key))
	}
	res.DestinationHash = dst.Hash
	res.DestinationModified = dst.ModTime
	u.Log.Debug("Destination %s: modified %s, etag %q",
		u.Destination.Describe(res.Key), formatTime(dst.ModTime), dst.Hash)

	res.Decision = detector.ShouldPublish(src.ModTime, dst.ModTime, force)
	u.Log.Debug("%s: timestamp check -> %s (force=%t)", res.Key, res.Decision, force)

	return res, nil
}

func (u *Updater) fetchAndHash(ctx context.Context, sourcePath string, res *Result) ([]byte, error) {
	raw, err := u.Source.ReadBytes(ctx, sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	res.Fetched = true

	canonical, hash, err := artifact.CanonicalHash(raw)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", u.Source.Describe(sourcePath), err)
	}
	res.SourceHash = hash
	return canonical, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format(time.RFC3339)
}
