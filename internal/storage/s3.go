package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/MrSnakeDoc/listsite/internal/errs"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3API is the part of the S3 client this package uses.
type S3API interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var _ S3API = (*s3.Client)(nil)

// S3 stores objects in one bucket.
type S3 struct {
	api    S3API
	bucket string
}

func NewS3(api S3API, bucket string) *S3 {
	return &S3{api: api, bucket: bucket}
}

func (s *S3) Describe(key string) string {
	return "s3://" + s.bucket + "/" + key
}

func (s *S3) ReadBytes(ctx context.Context, key string) ([]byte, error) {
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, errs.NotFound("get", s.Describe(key))
		}
		return nil, errs.Transport("get", s.Describe(key), err)
	}
	defer func() { _ = out.Body.Close() }()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errs.Transport("get", s.Describe(key), err)
	}
	return data, nil
}

func (s *S3) GetMetadata(ctx context.Context, key string) (Metadata, error) {
	out, err := s.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return Metadata{}, nil
		}
		return Metadata{}, errs.Transport("head", s.Describe(key), err)
	}

	return Metadata{
		Hash:    normalizeETag(aws.ToString(out.ETag)),
		ModTime: aws.ToTime(out.LastModified).UTC(),
	}, nil
}

func (s *S3) WriteBytes(ctx context.Context, key string, data []byte, contentType string) error {
	in := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	if _, err := s.api.PutObject(ctx, in); err != nil {
		return errs.Transport("put", s.Describe(key), err)
	}
	return nil
}

func isS3NotFound(err error) bool {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	return false
}

// normalizeETag strips the quotes S3 puts around entity tags.
func normalizeETag(etag string) string {
	return strings.Trim(etag, `"`)
}
