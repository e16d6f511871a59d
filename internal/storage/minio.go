package storage

import (
	"bytes"
	"context"
	"io"

	"github.com/MrSnakeDoc/listsite/internal/errs"
	"github.com/minio/minio-go/v7"
)

// MinioAPI is the part of the MinIO client this package uses. Open stands in
// for GetObject so fakes don't need a *minio.Object.
type MinioAPI interface {
	StatObject(ctx context.Context, bucket, key string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	Open(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type minioClient struct {
	*minio.Client
}

// WrapMinio adapts a *minio.Client to MinioAPI.
func WrapMinio(c *minio.Client) MinioAPI {
	return minioClient{Client: c}
}

func (c minioClient) Open(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	return c.Client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
}

// Minio stores objects in one bucket of an S3-compatible server.
type Minio struct {
	api    MinioAPI
	bucket string
}

func NewMinio(api MinioAPI, bucket string) *Minio {
	return &Minio{api: api, bucket: bucket}
}

func (s *Minio) Describe(key string) string {
	return "minio://" + s.bucket + "/" + key
}

func (s *Minio) ReadBytes(ctx context.Context, key string) ([]byte, error) {
	rc, err := s.api.Open(ctx, s.bucket, key)
	if err != nil {
		return nil, s.readErr(key, err)
	}
	defer func() { _ = rc.Close() }()

	// minio reports a missing object on the first read, not on open.
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, s.readErr(key, err)
	}
	return data, nil
}

func (s *Minio) GetMetadata(ctx context.Context, key string) (Metadata, error) {
	info, err := s.api.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isMinioNotFound(err) {
			return Metadata{}, nil
		}
		return Metadata{}, errs.Transport("stat", s.Describe(key), err)
	}
	return Metadata{
		Hash:    normalizeETag(info.ETag),
		ModTime: info.LastModified.UTC(),
	}, nil
}

func (s *Minio) WriteBytes(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.api.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return errs.Transport("put", s.Describe(key), err)
	}
	return nil
}

func (s *Minio) readErr(key string, err error) error {
	if isMinioNotFound(err) {
		return errs.NotFound("get", s.Describe(key))
	}
	return errs.Transport("get", s.Describe(key), err)
}

func isMinioNotFound(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
