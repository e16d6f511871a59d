package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/MrSnakeDoc/listsite/internal/errs"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockManager struct {
	GetSecretValueFunc func(ctx context.Context, in *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error)
	calls              []string
}

func (m *mockManager) GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	m.calls = append(m.calls, aws.ToString(in.SecretId))
	return m.GetSecretValueFunc(ctx, in)
}

func secretString(s string) func(context.Context, *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error) {
	return func(context.Context, *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error) {
		return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(s)}, nil
	}
}

func failWith(err error) func(context.Context, *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error) {
	return func(context.Context, *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error) {
		return nil, err
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		fn       func(context.Context, *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error)
		want     string
		wantKind error
	}{
		{name: "plain token", fn: secretString("sl.token\n"), want: "sl.token"},
		{name: "json token", fn: secretString(`{"DB_ACCESS_KEY":"sl.json"}`), want: "sl.json"},
		{name: "json without key", fn: secretString(`{"other":"x"}`), wantKind: errs.ErrConfiguration},
		{name: "malformed json", fn: secretString(`{"DB_ACCESS_KEY":`), wantKind: errs.ErrDataFormat},
		{name: "empty", fn: secretString("  "), wantKind: errs.ErrConfiguration},
		{name: "not found", fn: failWith(&types.ResourceNotFoundException{Message: aws.String("nope")}), wantKind: errs.ErrConfiguration},
		{name: "access denied", fn: failWith(&smithy.GenericAPIError{Code: "AccessDeniedException"}), wantKind: errs.ErrConfiguration},
		{name: "network", fn: failWith(errors.New("dial tcp: timeout")), wantKind: errs.ErrTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockManager{GetSecretValueFunc: tt.fn}
			r := NewResolverWith(m, nil)

			got, err := r.Resolve(context.Background(), "listsite/dropbox")
			assert.Equal(t, []string{"listsite/dropbox"}, m.calls)

			if tt.wantKind != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantKind)
				assert.NotContains(t, err.Error(), "sl.", "token must not leak into errors")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_UnavailableMessage(t *testing.T) {
	m := &mockManager{GetSecretValueFunc: failWith(&types.ResourceNotFoundException{Message: aws.String("nope")})}

	_, err := NewResolverWith(m, nil).Resolve(context.Background(), "listsite/dropbox")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `Unable to read the Dropbox access key from secret "listsite/dropbox"`)
}
