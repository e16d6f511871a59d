// Package secrets fetches the Dropbox access token from AWS Secrets Manager
// when it is not passed directly.
package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/listsite/internal/errs"
	"github.com/MrSnakeDoc/listsite/internal/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/smithy-go"
)

const (
	resourceNotFound = "ResourceNotFoundException"
	accessDenied     = "AccessDeniedException"

	// JSON secrets may hold the token under this key.
	tokenKey = "DB_ACCESS_KEY"
)

// ManagerAPI is the part of the Secrets Manager client the resolver uses.
type ManagerAPI interface {
	GetSecretValue(
		ctx context.Context,
		params *secretsmanager.GetSecretValueInput,
		optFns ...func(*secretsmanager.Options),
	) (*secretsmanager.GetSecretValueOutput, error)
}

type Resolver struct {
	api ManagerAPI
	log *logger.Logger
}

// NewResolver loads the default AWS configuration. region may be empty.
func NewResolver(ctx context.Context, region string, log *logger.Logger) (*Resolver, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errs.Config("load aws config", err)
	}
	return NewResolverWith(secretsmanager.NewFromConfig(cfg), log), nil
}

func NewResolverWith(api ManagerAPI, log *logger.Logger) *Resolver {
	if log == nil {
		log = logger.Nop()
	}
	return &Resolver{api: api, log: log}
}

// Resolve returns the token stored in the secret id. The secret is either the
// bare token or a JSON object with a DB_ACCESS_KEY entry.
func (r *Resolver) Resolve(ctx context.Context, id string) (string, error) {
	r.log.Debug("Reading Dropbox access key from secret %s", id)

	out, err := r.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(id),
	})
	if err != nil {
		return "", classify(id, err)
	}

	value := strings.TrimSpace(aws.ToString(out.SecretString))
	if value == "" {
		return "", unavailable(id, errors.New("secret value is empty"))
	}

	if strings.HasPrefix(value, "{") {
		var fields map[string]string
		if err := json.Unmarshal([]byte(value), &fields); err != nil {
			return "", errs.DataFormat("parse secret", id, err)
		}
		token := fields[tokenKey]
		if token == "" {
			return "", unavailable(id, fmt.Errorf("secret has no %s entry", tokenKey))
		}
		return token, nil
	}

	return value, nil
}

func classify(id string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case resourceNotFound, accessDenied:
			return unavailable(id, err)
		}
	}
	return errs.Transport("get secret", id, err)
}

func unavailable(id string, err error) error {
	return &errs.Error{
		Op:   "resolve secret",
		Key:  id,
		Kind: errs.ErrConfiguration,
		Err:  fmt.Errorf("%s: %w", errs.Msg(errs.SecretUnavailable, id), err),
	}
}
