package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPost_SendsHeadersAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		b, _ := io.ReadAll(r.Body)
		_, _ = w.Write([]byte("echo:" + string(b)))
	}))
	defer srv.Close()

	h := http.Header{}
	h.Set("Authorization", "Bearer tok")
	data, _, err := Post(context.Background(), NewHTTPClient(5*time.Second), srv.URL, h, strings.NewReader("hi"), 0)
	require.NoError(t, err)
	assert.Equal(t, "echo:hi", string(data))
}

func TestPost_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error_summary":"path/not_found/"}`))
	}))
	defer srv.Close()

	_, _, err := Post(context.Background(), srv.Client(), srv.URL, nil, nil, 0)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusConflict, se.StatusCode)
	assert.Contains(t, string(se.Body), "path/not_found")
}

func TestPost_MaxSize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("0123456789"))
	}))
	defer srv.Close()

	_, _, err := Post(context.Background(), srv.Client(), srv.URL, nil, nil, 4)
	assert.Error(t, err)

	data, _, err := Post(context.Background(), srv.Client(), srv.URL, nil, nil, 10)
	require.NoError(t, err)
	assert.Len(t, data, 10)
}
