package storage

import (
	"context"
	"testing"

	"github.com/MrSnakeDoc/listsite/internal/artifact"
	"github.com/MrSnakeDoc/listsite/internal/errs"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocal(t *testing.T) *Local {
	t.Helper()
	return NewLocalFS(memfs.New())
}

func TestLocal_MissingObjectHasEmptyMetadata(t *testing.T) {
	s := newTestLocal(t)

	md, err := s.GetMetadata(context.Background(), "foolist.json")
	require.NoError(t, err)
	assert.False(t, md.Exists())
	assert.Equal(t, Metadata{}, md)
}

func TestLocal_ReadMissingIsNotFound(t *testing.T) {
	s := newTestLocal(t)

	_, err := s.ReadBytes(context.Background(), "index.template")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestLocal_WriteThenMetadataRoundtrip(t *testing.T) {
	s := newTestLocal(t)
	ctx := context.Background()
	canonical, hash, err := artifact.CanonicalHash([]byte("{ \"title\": \"A\", \"lists\": [] }"))
	require.NoError(t, err)

	require.NoError(t, s.WriteBytes(ctx, "foolist.json", canonical, "application/json"))

	md, err := s.GetMetadata(ctx, "foolist.json")
	require.NoError(t, err)
	assert.True(t, md.Exists())
	assert.Equal(t, hash, md.Hash)

	got, err := s.ReadBytes(ctx, "foolist.json")
	require.NoError(t, err)
	assert.Equal(t, canonical, got)
}

func TestLocal_OverwriteReplacesContent(t *testing.T) {
	s := newTestLocal(t)
	ctx := context.Background()

	require.NoError(t, s.WriteBytes(ctx, "index.html", []byte("old"), ""))
	require.NoError(t, s.WriteBytes(ctx, "index.html", []byte("new"), ""))

	got, err := s.ReadBytes(ctx, "index.html")
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))

	files, err := s.fs.ReadDir(".")
	require.NoError(t, err)
	assert.Len(t, files, 1, "temp files must not be left behind")
}

func TestLocal_WriteNestedKey(t *testing.T) {
	s := newTestLocal(t)

	require.NoError(t, s.WriteBytes(context.Background(), "site/index.html", []byte("x"), ""))

	data, err := util.ReadFile(s.fs, "site/index.html")
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestLocal_DirectoryIsNotAnObject(t *testing.T) {
	s := newTestLocal(t)
	require.NoError(t, s.fs.MkdirAll("foolist.json", 0o755))

	_, err := s.GetMetadata(context.Background(), "foolist.json")
	assert.ErrorIs(t, err, errs.ErrTransport)
}

func TestLocal_CanceledContext(t *testing.T) {
	s := newTestLocal(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, s.WriteBytes(ctx, "a", []byte("a"), ""))
	_, err := s.ReadBytes(ctx, "a")
	assert.Error(t, err)
}
