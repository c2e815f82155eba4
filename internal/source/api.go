package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/collapseloader/collapse/internal/manifest"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Kind selects which manifest list to fetch.
type Kind string

const (
	KindClients       Kind = "clients"
	KindFabricClients Kind = "fabric_clients"
)

// Kinds lists every manifest kind in the order they are concatenated.
var Kinds = []Kind{KindClients, KindFabricClients}

// ErrUnavailable is returned when no manifest server is configured.
var ErrUnavailable = errors.New("manifest source unavailable")

// Source is the remote manifest capability consumed by the catalog.
type Source interface {
	// Available reports whether the remote can currently be reached.
	Available(ctx context.Context) bool
	// Fetch returns the descriptors of one manifest kind.
	Fetch(ctx context.Context, kind Kind) ([]manifest.Descriptor, error)
}

// API fetches manifests from the web API with resty.
type API struct {
	baseURL string
	client  *resty.Client
	logger  *zap.Logger
}

// Option configures an API.
type Option func(*API)

// WithLogger sets the logger used to report rejected entries.
func WithLogger(l *zap.Logger) Option {
	return func(a *API) { a.logger = l }
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(a *API) { a.client.SetTimeout(d) }
}

// WithHTTPClient replaces the transport client (useful for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(a *API) {
		a.client = resty.NewWithClient(hc).SetBaseURL(a.baseURL)
	}
}

// NewAPI creates a manifest source for baseURL. An empty baseURL yields a
// source that is never available.
func NewAPI(baseURL string, opts ...Option) *API {
	a := &API{
		baseURL: baseURL,
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(5*time.Second).
			SetHeader("Accept", "application/json"),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Available reports whether the API answers 200 on its root.
func (a *API) Available(ctx context.Context) bool {
	if a.baseURL == "" {
		return false
	}
	resp, err := a.client.R().SetContext(ctx).Get("/")
	if err != nil {
		a.logger.Debug("manifest source unreachable", zap.String("url", a.baseURL), zap.Error(err))
		return false
	}
	return resp.StatusCode() == http.StatusOK
}

// Fetch downloads and parses one manifest kind. Malformed entries are
// logged and skipped.
func (a *API) Fetch(ctx context.Context, kind Kind) ([]manifest.Descriptor, error) {
	if a.baseURL == "" {
		return nil, ErrUnavailable
	}

	resp, err := a.client.R().SetContext(ctx).Get(string(kind))
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", kind, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", kind, resp.Status())
	}

	descriptors, issues, err := manifest.ParseDescriptors(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", kind, err)
	}
	for _, issue := range issues {
		a.logger.Warn("skipping malformed manifest entry",
			zap.String("kind", string(kind)),
			zap.Error(issue))
	}
	return descriptors, nil
}
