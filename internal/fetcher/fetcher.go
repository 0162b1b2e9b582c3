// Package fetcher implements the crawl engine's HTTP collaborator on top
// of the Colly collector.
package fetcher

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gocolly/colly/v2"
)

// Config controls collector behavior.
type Config struct {
	UserAgent string
	Timeout   time.Duration
}

const defaultTimeout = 15 * time.Second

// Client issues probe and fetch requests through cloned Colly
// collectors. One Client is shared read-only by every worker goroutine.
type Client struct {
	cfg           Config
	baseCollector *colly.Collector
}

// New builds a Client. It fails only when the underlying web client
// cannot be initialized.
func New(cfg Config) (*Client, error) {
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("fetcher: negative timeout %v", cfg.Timeout)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	c := colly.NewCollector(colly.Async(false))
	c.IgnoreRobotsTxt = true
	// Revisit bookkeeping belongs to the crawl engine, not the
	// transport; a probe and a fetch of the same URL must both go out.
	c.AllowURLRevisit = true
	c.WithTransport(newHTTPTransport())

	return &Client{cfg: cfg, baseCollector: c}, nil
}

// Probe issues a headers-only HEAD request and returns the response
// headers.
func (f *Client) Probe(ctx context.Context, pageURL string) (http.Header, error) {
	var (
		header  http.Header
		respErr error
	)
	collector := f.buildCollector()
	collector.OnResponse(func(r *colly.Response) {
		header = r.Headers.Clone()
	})
	collector.OnError(func(_ *colly.Response, err error) {
		respErr = err
	})

	if err := f.runCollector(ctx, func() error { return collector.Head(pageURL) }); err != nil {
		return nil, err
	}
	if respErr != nil {
		return nil, fmt.Errorf("probe response failed: %w", respErr)
	}
	if header == nil {
		return nil, fmt.Errorf("probe %s: no response", pageURL)
	}
	return header, nil
}

// Fetch issues a GET and returns the body decoded as text.
func (f *Client) Fetch(ctx context.Context, pageURL string) (string, error) {
	var (
		body    []byte
		respErr error
	)
	collector := f.buildCollector()
	collector.OnResponse(func(r *colly.Response) {
		body = append([]byte(nil), r.Body...)
	})
	collector.OnError(func(_ *colly.Response, err error) {
		respErr = err
	})

	if err := f.runCollector(ctx, func() error { return collector.Visit(pageURL) }); err != nil {
		return "", err
	}
	if respErr != nil {
		return "", fmt.Errorf("fetch response failed: %w", respErr)
	}
	if !utf8.Valid(body) {
		return "", fmt.Errorf("fetch %s: body is not valid text", pageURL)
	}
	return string(body), nil
}

func (f *Client) buildCollector() *colly.Collector {
	collector := f.baseCollector.Clone()
	if f.cfg.UserAgent != "" {
		collector.UserAgent = f.cfg.UserAgent
	}
	collector.SetRequestTimeout(f.cfg.Timeout)
	return collector
}

// runCollector bridges Colly's synchronous visit to ctx cancellation.
func (f *Client) runCollector(ctx context.Context, visit func() error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("fetch canceled: %w", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- visit()
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("fetch canceled: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("visit failed: %w", err)
		}
		return nil
	}
}

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
	}
}
