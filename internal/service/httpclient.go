// service/httpclient.go
package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type DefaultHTTPClient struct{ *http.Client }

func NewHTTPClient(timeout time.Duration) *DefaultHTTPClient {
	return &DefaultHTTPClient{Client: &http.Client{Timeout: timeout}}
}

// StatusError is returned for non-2xx responses. Body holds the start of the
// response so callers can decode API error payloads.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, string(e.Body))
}

const maxErrorBody = 64 << 10

// Post sends body to url and returns the response body. maxSize bounds the
// bytes read (0 = unbounded); a larger payload is an error, never a truncation.
func Post(ctx context.Context, c HTTPClient, url string, header http.Header, body io.Reader, maxSize int64) ([]byte, http.Header, error) {
	if body == nil {
		body = http.NoBody
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, nil, err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, resp.Header, &StatusError{StatusCode: resp.StatusCode, Body: b}
	}

	var src io.Reader = resp.Body
	if maxSize > 0 {
		src = io.LimitReader(resp.Body, maxSize+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, resp.Header, err
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, resp.Header, fmt.Errorf("response larger than %d bytes", maxSize)
	}
	return data, resp.Header, nil
}
