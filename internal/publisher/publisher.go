package publisher

import (
	"context"
	"mime"
	"path"
	"strings"

	"github.com/MrSnakeDoc/listsite/internal/logger"
	"github.com/MrSnakeDoc/listsite/internal/storage"
	"github.com/gabriel-vasile/mimetype"
)

const (
	ContentTypeHTML = "text/html"
	ContentTypeJSON = "application/json"
)

type Publisher struct {
	log *logger.Logger
}

func New(log *logger.Logger) *Publisher {
	if log == nil {
		log = logger.Nop()
	}
	return &Publisher{log: log}
}

type Option func(*options)

type options struct {
	contentType string
}

// WithContentType overrides detection.
func WithContentType(ct string) Option {
	return func(o *options) { o.contentType = ct }
}

// Publish writes data under key. Re-publishing identical bytes still performs
// the write.
func (p *Publisher) Publish(ctx context.Context, w storage.Writer, key string, data []byte, opts ...Option) error {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	ct := o.contentType
	if ct == "" {
		ct = ContentType(key, data)
	}

	p.log.Debug("Uploading %s (%d bytes, %s)", w.Describe(key), len(data), ct)
	return w.WriteBytes(ctx, key, data, ct)
}

// ContentType resolves the type from the key extension first, then from the
// content itself.
func ContentType(key string, data []byte) string {
	if ext := strings.ToLower(path.Ext(key)); ext != "" {
		switch ext {
		case ".json":
			return ContentTypeJSON
		case ".html", ".htm":
			return ContentTypeHTML
		}
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			return byExt
		}
	}
	return mimetype.Detect(data).String()
}
