package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/MrSnakeDoc/listsite/internal/artifact"
	"github.com/MrSnakeDoc/listsite/internal/errs"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// Local keeps objects as files under a directory. Hashes are computed the way
// S3 computes single-part ETags so both backends compare the same way.
type Local struct {
	fs   billy.Filesystem
	root string
}

func NewLocal(dir string) *Local {
	if dir == "" {
		dir = "."
	}
	return &Local{fs: osfs.New(dir), root: dir}
}

// NewLocalFS wraps an existing billy filesystem (memfs in tests).
func NewLocalFS(fs billy.Filesystem) *Local {
	return &Local{fs: fs, root: fs.Root()}
}

func (s *Local) Describe(key string) string {
	return path.Join(s.root, key)
}

func (s *Local) ReadBytes(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := util.ReadFile(s.fs, key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errs.NotFound("read", s.Describe(key))
		}
		return nil, errs.Transport("read", s.Describe(key), err)
	}
	return data, nil
}

func (s *Local) GetMetadata(ctx context.Context, key string) (Metadata, error) {
	if err := ctx.Err(); err != nil {
		return Metadata{}, err
	}
	fi, err := s.fs.Stat(key)
	if errors.Is(err, os.ErrNotExist) {
		return Metadata{}, nil
	}
	if err != nil {
		return Metadata{}, errs.Transport("stat", s.Describe(key), err)
	}
	if fi.IsDir() {
		return Metadata{}, errs.Transport("stat", s.Describe(key), fmt.Errorf("expected a file, got a directory"))
	}

	data, err := util.ReadFile(s.fs, key)
	if err != nil {
		return Metadata{}, errs.Transport("read", s.Describe(key), err)
	}

	return Metadata{Hash: artifact.Hash(data), ModTime: fi.ModTime().UTC()}, nil
}

// WriteBytes writes to a temp file next to key and renames it into place.
func (s *Local) WriteBytes(ctx context.Context, key string, data []byte, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.writeAtomic(key, data); err != nil {
		return errs.Transport("write", s.Describe(key), err)
	}
	return nil
}

func (s *Local) writeAtomic(key string, data []byte) error {
	dir := path.Dir(key)
	if dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp, err := s.fs.TempFile(dir, ".listsite-")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()

	if writeErr != nil {
		_ = s.fs.Remove(tmpName)
		return writeErr
	}
	if closeErr != nil {
		_ = s.fs.Remove(tmpName)
		return closeErr
	}

	if err := s.fs.Rename(tmpName, key); err != nil {
		_ = s.fs.Remove(tmpName)
		return err
	}
	return nil
}
