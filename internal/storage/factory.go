package storage

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/listsite/internal/errs"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	BackendLocal = "local"
	BackendS3    = "s3"
	BackendMinio = "minio"
)

// Options selects and configures a backend.
type Options struct {
	Backend   string `yaml:"backend" validate:"oneof=local s3 minio"`
	LocalDir  string `yaml:"local_dir"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint" validate:"required_if=Backend minio"`
	AccessKey string `yaml:"access_key" validate:"required_if=Backend minio"`
	SecretKey string `yaml:"secret_key" validate:"required_if=Backend minio"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// Factory hands out one Store per bucket, sharing a single client.
type Factory struct {
	opts  Options
	s3    S3API
	minio MinioAPI
}

// NewFactory creates the client for opts.Backend. Credentials for S3 come
// from the default AWS chain.
func NewFactory(ctx context.Context, opts Options) (*Factory, error) {
	f := &Factory{opts: opts}

	switch opts.Backend {
	case BackendLocal, "":
		f.opts.Backend = BackendLocal
	case BackendS3:
		var loadOpts []func(*awsconfig.LoadOptions) error
		if opts.Region != "" {
			loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
		}
		cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, errs.Config("load aws config", err)
		}

		var s3Opts []func(*s3.Options)
		if opts.Endpoint != "" {
			s3Opts = append(s3Opts, func(o *s3.Options) {
				o.BaseEndpoint = aws.String(opts.Endpoint)
				o.UsePathStyle = true
			})
		}
		f.s3 = s3.NewFromConfig(cfg, s3Opts...)
	case BackendMinio:
		client, err := minio.New(opts.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
			Secure: opts.UseSSL,
			Region: opts.Region,
		})
		if err != nil {
			return nil, errs.Config("create minio client", err)
		}
		f.minio = WrapMinio(client)
	default:
		return nil, errs.Config("storage", fmt.Errorf("unknown backend %q", opts.Backend))
	}

	return f, nil
}

// NewFactoryWith builds a factory around already constructed clients.
func NewFactoryWith(opts Options, s3api S3API, minioAPI MinioAPI) *Factory {
	return &Factory{opts: opts, s3: s3api, minio: minioAPI}
}

// Backend returns the selected backend name.
func (f *Factory) Backend() string {
	return f.opts.Backend
}

// Bucket returns the store for bucket. The local backend keeps every bucket
// in the same directory, matching a checkout where the template, the list
// and the rendered page sit side by side.
func (f *Factory) Bucket(bucket string) Store {
	switch f.opts.Backend {
	case BackendS3:
		return NewS3(f.s3, bucket)
	case BackendMinio:
		return NewMinio(f.minio, bucket)
	default:
		return NewLocal(f.opts.LocalDir)
	}
}
