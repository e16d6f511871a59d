package renderer

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/listsite/internal/artifact"
	"github.com/MrSnakeDoc/listsite/internal/logger"
	"github.com/MrSnakeDoc/listsite/internal/publisher"
	"github.com/MrSnakeDoc/listsite/internal/storage"
)

// Generator reads the template and the list from the generator store and
// publishes index.html to the site store.
type Generator struct {
	Assets    storage.Reader
	Site      storage.Writer
	Publisher *publisher.Publisher
	Log       *logger.Logger
}

func NewGenerator(assets storage.Reader, site storage.Writer, log *logger.Logger) *Generator {
	if log == nil {
		log = logger.Nop()
	}
	return &Generator{
		Assets:    assets,
		Site:      site,
		Publisher: publisher.New(log),
		Log:       log,
	}
}

// Execute renders and publishes the page for site.
func (g *Generator) Execute(ctx context.Context, site artifact.Site) error {
	g.Log.Debug("Reading %s", g.Assets.Describe(artifact.TemplateKey))
	tpl, err := g.Assets.ReadBytes(ctx, artifact.TemplateKey)
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}

	listKey := site.ListKey()
	g.Log.Debug("Reading %s", g.Assets.Describe(listKey))
	raw, err := g.Assets.ReadBytes(ctx, listKey)
	if err != nil {
		return fmt.Errorf("failed to read list: %w", err)
	}

	data, err := artifact.ParseList(listKey, raw)
	if err != nil {
		return err
	}

	html, err := Render(string(tpl), data)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", artifact.IndexKey, err)
	}

	if err := g.Publisher.Publish(ctx, g.Site, artifact.IndexKey, []byte(html),
		publisher.WithContentType(publisher.ContentTypeHTML)); err != nil {
		return fmt.Errorf("failed to publish %s: %w", artifact.IndexKey, err)
	}

	g.Log.Success("Published %s", g.Site.Describe(artifact.IndexKey))
	return nil
}
