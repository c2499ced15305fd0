package fetch

import (
	"context"
	"fmt"

	"github.com/gocolly/colly/v2"

	"github.com/gaurav-prasanna/articlescore/core"
)

// CollyFetcher fetches web pages with a gocolly collector.
type CollyFetcher struct {
	base *colly.Collector
}

// NewColly creates a CollyFetcher.
func NewColly(opts Options) *CollyFetcher {
	opts = opts.withDefaults()
	c := colly.NewCollector(
		colly.Async(false),
		colly.AllowURLRevisit(),
		colly.UserAgent(opts.UserAgent),
	)
	c.SetRequestTimeout(opts.Timeout)
	return &CollyFetcher{base: c}
}

type visitOutcome struct {
	result *core.FetchResult
	err    error
}

// Fetch visits url once and returns the response body.
func (f *CollyFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	done := make(chan visitOutcome, 1)
	go func() {
		done <- f.visit(url)
	}()

	var out visitOutcome
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("fetching %s: %w", url, ctx.Err())
	case out = <-done:
	}
	if out.err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, out.err)
	}
	if out.result == nil {
		return nil, fmt.Errorf("fetching %s: no response", url)
	}
	if err := checkStatus(out.result.StatusCode, url); err != nil {
		return nil, err
	}
	return out.result, nil
}

// visit runs one synchronous visit on a fresh clone. Its callbacks only
// touch locals, so an abandoned visit shares nothing with the caller.
func (f *CollyFetcher) visit(url string) visitOutcome {
	var out visitOutcome
	collector := f.base.Clone()
	collector.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml")
	})
	collector.OnResponse(func(r *colly.Response) {
		out.result = &core.FetchResult{
			URL:        r.Request.URL.String(),
			StatusCode: r.StatusCode,
			HTML:       string(r.Body),
		}
	})
	collector.OnError(func(_ *colly.Response, err error) {
		out.err = err
	})

	if err := collector.Visit(url); err != nil && out.err == nil {
		out.err = err
	}
	return out
}
