package fritzbox

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/fritz-profiles/internal/logging"
)

const (
	// DefaultURL is the router address used when none is configured
	DefaultURL = "http://fritz.box"

	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second
)

// Transport exchanges requests with the router web interface.
// Paths are relative to the router base URL (e.g. "/login_sid.lua").
type Transport interface {
	Get(ctx context.Context, path string, query url.Values) ([]byte, error)
	PostForm(ctx context.Context, path string, form url.Values) ([]byte, error)
}

// HTTPTransport is the net/http backed Transport.
// Redirects are followed by the underlying client.
type HTTPTransport struct {
	// BaseURL is the router base URL (e.g., "http://fritz.box")
	BaseURL string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client
}

// NewHTTPTransport creates a transport for the router at baseURL
func NewHTTPTransport(baseURL string) *HTTPTransport {
	return &HTTPTransport{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// SetTimeout sets the HTTP request timeout
func (t *HTTPTransport) SetTimeout(timeout time.Duration) {
	t.HTTPClient.Timeout = timeout
}

// Get performs a GET request with the given query parameters
func (t *HTTPTransport) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	target := t.BaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, NewNetworkError("failed to create GET request", t.BaseURL+path, err)
	}

	return t.do(req, t.BaseURL+path)
}

// PostForm performs a form-encoded POST request
func (t *HTTPTransport) PostForm(ctx context.Context, path string, form url.Values) ([]byte, error) {
	target := t.BaseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, NewNetworkError("failed to create POST request", target, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return t.do(req, target)
}

// do executes req and returns the body. target is the URL without query
// string so that login responses never end up in errors or logs.
func (t *HTTPTransport) do(req *http.Request, target string) ([]byte, error) {
	start := time.Now()

	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		return nil, NewNetworkError(fmt.Sprintf("%s request failed", req.Method), target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewNetworkError("failed to read response body", target, err)
	}

	logging.LogRouterExchange(req.Method, target, resp.StatusCode, len(body), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logging.Debug("Router returned error status", zap.ByteString("body", truncate(body, 256)))
		return nil, NewHTTPError(resp.StatusCode, target)
	}

	return body, nil
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
