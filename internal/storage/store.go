// Package storage abstracts the places list documents, templates and pages
// live in: a local directory, an S3 bucket or a MinIO bucket.
package storage

import (
	"context"
	"time"
)

// Metadata is what a store knows about an object without downloading it.
// The zero value means the object does not exist.
type Metadata struct {
	Hash    string    `json:"hash,omitempty"`
	ModTime time.Time `json:"mod_time,omitempty"`
}

// Exists reports whether the metadata describes an existing object.
func (m Metadata) Exists() bool {
	return m.Hash != "" || !m.ModTime.IsZero()
}

type Reader interface {
	// ReadBytes returns the object content. An absent object yields an error
	// matching errs.ErrNotFound.
	ReadBytes(ctx context.Context, key string) ([]byte, error)

	// GetMetadata returns the zero Metadata and a nil error when the object
	// does not exist. Any other failure is returned.
	GetMetadata(ctx context.Context, key string) (Metadata, error)

	// Describe renders the location of key for logs.
	Describe(key string) string
}

type Writer interface {
	// WriteBytes stores data under key with the given content type.
	WriteBytes(ctx context.Context, key string, data []byte, contentType string) error

	Describe(key string) string
}

type Store interface {
	Reader
	Writer
}
