package network

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

const userAgent = "collapse-loader"

// Transport performs streaming GET requests. Implementations must return a
// *StatusError for non-2xx responses so callers can tell them apart from
// connection failures. On success the caller owns resp.Body.
type Transport interface {
	Get(ctx context.Context, url string, header http.Header) (*http.Response, error)
}

// StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %s", e.URL, e.Status)
}

// HTTPTransport is the default Transport backed by go-retryablehttp.
type HTTPTransport struct {
	client *retryablehttp.Client
}

// TransportOption configures an HTTPTransport.
type TransportOption func(*retryablehttp.Client)

// WithRetries sets the retry budget and backoff bounds.
func WithRetries(max int, minWait, maxWait time.Duration) TransportOption {
	return func(c *retryablehttp.Client) {
		c.RetryMax = max
		c.RetryWaitMin = minWait
		c.RetryWaitMax = maxWait
	}
}

// WithTimeout sets the per-request timeout. Zero disables it, which suits
// large downloads.
func WithTimeout(d time.Duration) TransportOption {
	return func(c *retryablehttp.Client) {
		c.HTTPClient.Timeout = d
	}
}

// WithLogger routes retry diagnostics to logger.
func WithLogger(logger *zap.Logger) TransportOption {
	return func(c *retryablehttp.Client) {
		c.Logger = leveledLogger{logger.Sugar()}
	}
}

// WithHTTPClient replaces the underlying http.Client (useful for testing).
func WithHTTPClient(hc *http.Client) TransportOption {
	return func(c *retryablehttp.Client) {
		c.HTTPClient = hc
	}
}

// NewHTTPTransport creates a transport with three retries and no logging.
func NewHTTPTransport(opts ...TransportOption) *HTTPTransport {
	c := retryablehttp.NewClient()
	c.RetryMax = 3
	c.RetryWaitMin = 500 * time.Millisecond
	c.RetryWaitMax = 5 * time.Second
	c.Logger = nil
	// Hand the last response back instead of a generic "giving up" error so
	// the status code survives.
	c.ErrorHandler = retryablehttp.PassthroughErrorHandler
	for _, opt := range opts {
		opt(c)
	}
	return &HTTPTransport{client: c}
}

// Get issues a GET request with the given headers.
func (t *HTTPTransport) Get(ctx context.Context, url string, header http.Header) (*http.Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := t.client.Do(req)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return resp, nil
}

// leveledLogger adapts a zap SugaredLogger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	s *zap.SugaredLogger
}

func (l leveledLogger) Error(msg string, kv ...interface{}) { l.s.Errorw(msg, kv...) }
func (l leveledLogger) Info(msg string, kv ...interface{})  { l.s.Debugw(msg, kv...) }
func (l leveledLogger) Debug(msg string, kv ...interface{}) { l.s.Debugw(msg, kv...) }
func (l leveledLogger) Warn(msg string, kv ...interface{})  { l.s.Warnw(msg, kv...) }
