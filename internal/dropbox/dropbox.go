// Package dropbox reads the source list file through the Dropbox HTTP API.
package dropbox

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/MrSnakeDoc/listsite/internal/errs"
	"github.com/MrSnakeDoc/listsite/internal/service"
	"github.com/MrSnakeDoc/listsite/internal/storage"
)

const (
	DefaultAPIURL     = "https://api.dropboxapi.com/2"
	DefaultContentURL = "https://content.dropboxapi.com/2"

	// List files are small; anything bigger is not a list.
	DefaultMaxBytes = 8 << 20
)

// Client implements storage.Reader for files in one Dropbox account.
type Client struct {
	http       service.HTTPClient
	token      string
	apiURL     string
	contentURL string
	maxBytes   int64
}

type Option func(*Client)

// WithBaseURLs points the client at other endpoints (tests).
func WithBaseURLs(apiURL, contentURL string) Option {
	return func(c *Client) {
		c.apiURL = strings.TrimRight(apiURL, "/")
		c.contentURL = strings.TrimRight(contentURL, "/")
	}
}

func WithMaxBytes(n int64) Option {
	return func(c *Client) { c.maxBytes = n }
}

// New returns a Client authenticated with an access token.
func New(token string, client service.HTTPClient, opts ...Option) *Client {
	if client == nil {
		client = service.NewHTTPClient(30 * time.Second)
	}
	c := &Client{
		http:       client,
		token:      token,
		apiURL:     DefaultAPIURL,
		contentURL: DefaultContentURL,
		maxBytes:   DefaultMaxBytes,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

var _ storage.Reader = (*Client)(nil)

type fileMetadata struct {
	Tag            string    `json:".tag"`
	Name           string    `json:"name"`
	PathDisplay    string    `json:"path_display"`
	ServerModified time.Time `json:"server_modified"`
	ContentHash    string    `json:"content_hash"`
	Size           int64     `json:"size"`
}

type apiError struct {
	ErrorSummary string `json:"error_summary"`
}

func (c *Client) Describe(path string) string {
	return "dropbox:" + path
}

// GetMetadata returns the server modification time and the Dropbox content
// hash. The content hash uses Dropbox's own block algorithm, so it is only
// useful for logs; comparisons are made on the downloaded bytes.
func (c *Client) GetMetadata(ctx context.Context, path string) (storage.Metadata, error) {
	body, err := json.Marshal(map[string]string{"path": path})
	if err != nil {
		return storage.Metadata{}, err
	}

	h := c.authHeader()
	h.Set("Content-Type", "application/json")

	data, _, err := service.Post(ctx, c.http, c.apiURL+"/files/get_metadata", h, bytes.NewReader(body), 1<<20)
	if err != nil {
		if isPathNotFound(err) {
			return storage.Metadata{}, nil
		}
		return storage.Metadata{}, errs.Transport("get_metadata", c.Describe(path), err)
	}

	var md fileMetadata
	if err := json.Unmarshal(data, &md); err != nil {
		return storage.Metadata{}, errs.Transport("get_metadata", c.Describe(path), fmt.Errorf("decode response: %w", err))
	}
	if md.Tag != "file" {
		return storage.Metadata{}, errs.Transport("get_metadata", c.Describe(path), fmt.Errorf("expected a file, got %q", md.Tag))
	}

	return storage.Metadata{Hash: md.ContentHash, ModTime: md.ServerModified.UTC()}, nil
}

// ReadBytes downloads the file content.
func (c *Client) ReadBytes(ctx context.Context, path string) ([]byte, error) {
	arg, err := apiArg(map[string]string{"path": path})
	if err != nil {
		return nil, err
	}

	h := c.authHeader()
	h.Set("Dropbox-API-Arg", arg)

	data, _, err := service.Post(ctx, c.http, c.contentURL+"/files/download", h, nil, c.maxBytes)
	if err != nil {
		if isPathNotFound(err) {
			return nil, errs.NotFound("download", c.Describe(path))
		}
		return nil, errs.Transport("download", c.Describe(path), err)
	}
	return data, nil
}

func (c *Client) authHeader() http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+c.token)
	return h
}

func isPathNotFound(err error) bool {
	var se *service.StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusConflict {
		return false
	}
	var ae apiError
	if json.Unmarshal(se.Body, &ae) != nil {
		return false
	}
	return strings.HasPrefix(ae.ErrorSummary, "path/not_found")
}

// apiArg encodes v for the Dropbox-API-Arg header, which must be ASCII.
func apiArg(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, r := range string(b) {
		if r < 0x80 {
			sb.WriteRune(r)
			continue
		}
		for _, u := range utf16.Encode([]rune{r}) {
			fmt.Fprintf(&sb, `\u%04x`, u)
		}
	}
	return sb.String(), nil
}
