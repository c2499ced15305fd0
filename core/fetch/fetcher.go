// Package fetch implements the Fetcher interface.
// Two engines are available: a plain net/http client and a gocolly collector.
// Both perform a single GET per call, bounded by a timeout.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gaurav-prasanna/articlescore/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "articlescore/1.0 (+https://github.com/gaurav-prasanna/articlescore)"
)

// Engine names accepted by New.
const (
	EngineHTTP  = "http"
	EngineColly = "colly"
)

// Options configures a fetch engine.
type Options struct {
	Timeout   time.Duration
	UserAgent string
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUserAgent
	}
	return o
}

// New returns the Fetcher for the named engine.
func New(engine string, opts Options) (core.Fetcher, error) {
	switch strings.ToLower(engine) {
	case "", EngineHTTP:
		return NewHTTP(opts), nil
	case EngineColly:
		return NewColly(opts), nil
	default:
		return nil, fmt.Errorf("unknown fetch engine %q (want %q or %q)", engine, EngineHTTP, EngineColly)
	}
}

// HTTPFetcher fetches web pages via net/http.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTP creates an HTTPFetcher.
func NewHTTP(opts Options) *HTTPFetcher {
	opts = opts.withDefaults()
	return &HTTPFetcher{
		client:    &http.Client{Timeout: opts.Timeout},
		userAgent: opts.UserAgent,
	}
}

// Fetch retrieves the HTML content of the given URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode, url); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &core.FetchResult{
		URL:        resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		HTML:       string(body),
	}, nil
}

func checkStatus(code int, url string) error {
	if code < 200 || code >= 300 {
		return fmt.Errorf("unexpected status %d for %s", code, url)
	}
	return nil
}
