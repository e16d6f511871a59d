// Package artifact names the documents a site publishes and defines how list
// content is canonicalized and hashed.
package artifact

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/listsite/internal/errs"
)

const (
	TemplateKey = "index.template"
	IndexKey    = "index.html"

	generatorSuffix = "-generator"
)

// Site identifies a published list: Name is "foolist", URL is "foo.list".
type Site struct {
	Name string `yaml:"name" validate:"required"`
	URL  string `yaml:"url" validate:"required"`
}

// ListKey is the object key of the list document in the generator bucket.
func (s Site) ListKey() string {
	return s.Name + ".json"
}

// GeneratorBucket holds the list document and the template.
func (s Site) GeneratorBucket() string {
	return s.URL + generatorSuffix
}

// SiteBucket serves the rendered page.
func (s Site) SiteBucket() string {
	return s.URL
}

// ListArtifact is the metadata known about one list document on both sides.
type ListArtifact struct {
	Site                    Site
	ContentHash             string
	SourceModifiedTime      time.Time
	DestinationModifiedTime time.Time
	DestinationETag         string
}

// UpToDate reports whether the destination already holds the source content.
func (a ListArtifact) UpToDate() bool {
	if a.ContentHash != "" && a.ContentHash == a.DestinationETag {
		return true
	}
	if a.SourceModifiedTime.IsZero() || a.DestinationModifiedTime.IsZero() {
		return false
	}
	return !a.SourceModifiedTime.After(a.DestinationModifiedTime)
}

// Canonicalize returns the compact serialization of a JSON document.
// Semantically identical documents that differ only in whitespace produce the
// same bytes. The result is itself canonical.
func Canonicalize(b []byte) ([]byte, error) {
	if !json.Valid(b) {
		return nil, errs.DataFormat("canonicalize", "", errors.New("invalid JSON document"))
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return nil, errs.DataFormat("canonicalize", "", err)
	}
	return buf.Bytes(), nil
}

// Hash is the hex MD5 digest of b, which is what S3 reports as the ETag of a
// single-part upload.
func Hash(b []byte) string {
	sum := md5.Sum(b)
	return hex.EncodeToString(sum[:])
}

// CanonicalHash canonicalizes b and hashes the result.
func CanonicalHash(b []byte) (canonical []byte, hash string, err error) {
	canonical, err = Canonicalize(b)
	if err != nil {
		return nil, "", err
	}
	return canonical, Hash(canonical), nil
}

// ListKeys are the entries every list document must carry.
var ListKeys = []string{"title", "lists"}

// ParseList decodes a list document. The top level must be an object holding
// every entry of ListKeys; all of its keys become template variables.
func ParseList(key string, b []byte) (map[string]any, error) {
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, errs.DataFormat("parse list", key, errors.New(errs.Msg(errs.ListNotAnObject, key)))
		}
		return nil, errs.DataFormat("parse list", key, err)
	}
	if out == nil {
		return nil, errs.DataFormat("parse list", key, fmt.Errorf("%s", errs.Msg(errs.ListNotAnObject, key)))
	}
	for _, k := range ListKeys {
		if _, ok := out[k]; !ok {
			return nil, errs.DataFormat("parse list", key, fmt.Errorf("%s: missing %q", errs.Msg(errs.ListNotAnObject, key), k))
		}
	}
	return out, nil
}
