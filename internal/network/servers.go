package network

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Servers holds the ordered CDN and API host lists and remembers the first
// reachable host of each after Probe.
type Servers struct {
	cdn    []string
	web    []string
	client *resty.Client
	logger *zap.Logger

	cdnURL string
	webURL string
}

// NewServers creates a prober. Hosts may be bare ("cdn.example.org/path") or
// full URLs; bare hosts are probed over https.
func NewServers(cdn, web []string, timeout time.Duration, logger *zap.Logger) *Servers {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent)
	return &Servers{
		cdn:    cdn,
		web:    web,
		client: client,
		logger: logger,
	}
}

// Probe checks every list in order and keeps the first host answering 200.
func (s *Servers) Probe(ctx context.Context) {
	s.cdnURL = s.firstReachable(ctx, "CDN", s.cdn)
	s.webURL = s.firstReachable(ctx, "WEB", s.web)
}

// CDN returns the selected CDN base URL with a trailing slash, or "".
func (s *Servers) CDN() string { return s.cdnURL }

// Web returns the selected API base URL with a trailing slash, or "".
func (s *Servers) Web() string { return s.webURL }

func (s *Servers) firstReachable(ctx context.Context, kind string, hosts []string) string {
	for _, host := range hosts {
		base := BaseURL(host)
		if s.check(ctx, base) {
			s.logger.Debug("using server", zap.String("kind", kind), zap.String("url", base))
			return base
		}
		s.logger.Warn("server not accessible", zap.String("kind", kind), zap.String("url", base))
	}
	return ""
}

func (s *Servers) check(ctx context.Context, base string) bool {
	resp, err := s.client.R().SetContext(ctx).Get(base)
	if err != nil {
		return false
	}
	return resp.StatusCode() == http.StatusOK
}

// BaseURL normalizes a host entry into a URL with a trailing slash.
func BaseURL(host string) string {
	if host == "" {
		return ""
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "https://" + host
	}
	if !strings.HasSuffix(host, "/") {
		host += "/"
	}
	return host
}
