package linkcheck

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const userAgent = "compwa-docsite-linkcheck/1.0"

// Options tunes the checker's HTTP behavior.
type Options struct {
	MaxConcurrent  int
	RequestTimeout time.Duration
	RateLimitDelay time.Duration
	MaxRedirects   int
}

func (o Options) withDefaults() Options {
	if o.MaxConcurrent <= 0 {
		o.MaxConcurrent = 10
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 10 * time.Second
	}
	if o.RateLimitDelay <= 0 {
		o.RateLimitDelay = 100 * time.Millisecond
	}
	if o.MaxRedirects <= 0 {
		o.MaxRedirects = 5
	}
	return o
}

// Result is the outcome of checking one URL.
type Result struct {
	URL     string
	Status  int
	Alive   bool
	Ignored bool
	Cached  bool
	Error   string
}

// Checker verifies external URLs.
type Checker struct {
	opts       Options
	ignore     *IgnoreList
	cache      *SQLiteCache
	httpClient *http.Client
	runID      string
}

// NewChecker builds a checker. cache may be nil (every URL is fetched).
func NewChecker(opts Options, ignore *IgnoreList, cache *SQLiteCache) *Checker {
	opts = opts.withDefaults()
	transport := http.DefaultTransport.(*http.Transport).Clone()
	return &Checker{
		opts:   opts,
		ignore: ignore,
		cache:  cache,
		httpClient: &http.Client{
			Timeout:   opts.RequestTimeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= opts.MaxRedirects {
					return fmt.Errorf("stopped after %d redirects", opts.MaxRedirects)
				}
				return nil
			},
		},
		runID: uuid.NewString(),
	}
}

// RunID identifies this checker run in the cache.
func (c *Checker) RunID() string { return c.runID }

// Check verifies the given URLs with bounded concurrency. Duplicates are
// collapsed; results come back sorted by URL. Fragments are stripped before
// checking since anchors are not verified.
func (c *Checker) Check(ctx context.Context, urls []string) ([]Result, error) {
	unique := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		if u = normalizeURL(u); u != "" {
			unique[u] = struct{}{}
		}
	}

	slog.Info("Checking links", "count", len(unique), "run_id", c.runID)

	sem := make(chan struct{}, c.opts.MaxConcurrent)
	results := make([]Result, 0, len(unique))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for u := range unique {
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		case sem <- struct{}{}:
		}
		// Rate limiting between request starts.
		time.Sleep(c.opts.RateLimitDelay)

		wg.Add(1)
		go func(u string) {
			defer wg.Done()
			defer func() { <-sem }()
			res := c.checkOne(ctx, u)
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
		}(u)
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].URL < results[j].URL })
	return results, nil
}

func (c *Checker) checkOne(ctx context.Context, url string) Result {
	if c.ignore.Ignored(url) {
		slog.Debug("Link ignored", "url", url)
		return Result{URL: url, Ignored: true, Alive: true}
	}

	if c.cache != nil {
		if entry, err := c.cache.Get(ctx, url); err != nil {
			slog.Debug("Cache lookup error", "url", url, "error", err)
		} else if c.cache.Valid(entry) {
			slog.Debug("Link result from cache", "url", url, "status", entry.Status)
			return Result{URL: url, Status: entry.Status, Alive: true, Cached: true}
		}
	}

	status, err := c.fetch(ctx, url)
	res := Result{URL: url, Status: status, Alive: err == nil}
	if err != nil {
		res.Error = err.Error()
		slog.Warn("Broken link", "url", url, "status", status, "error", err)
	}

	if c.cache != nil {
		entry := &CacheEntry{
			URL: url, Status: status, Alive: res.Alive,
			Error: res.Error, CheckedAt: time.Now(), RunID: c.runID,
		}
		if err := c.cache.Put(ctx, entry); err != nil {
			slog.Debug("Failed to cache link result", "url", url, "error", err)
		}
	}
	return res
}

// fetch issues a HEAD request, falling back to GET when the server rejects
// HEAD. Authentication errors and rate limiting indicate the URL exists.
func (c *Checker) fetch(ctx context.Context, url string) (int, error) {
	status, err := c.request(ctx, http.MethodHead, url)
	if err == nil {
		return status, nil
	}
	if status == http.StatusMethodNotAllowed || status == http.StatusNotFound {
		return c.request(ctx, http.MethodGet, url)
	}
	return status, err
}

func (c *Checker) request(ctx context.Context, method, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 400 || isAliveStatus(resp.StatusCode) {
		return resp.StatusCode, nil
	}
	return resp.StatusCode, fmt.Errorf("HTTP %d", resp.StatusCode)
}

// isAliveStatus reports status codes that mean the URL exists even though
// the request was refused: credential walls and rate limiting.
func isAliveStatus(status int) bool {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
		return true
	}
	return false
}

// normalizeURL strips fragments and keeps only checkable schemes.
func normalizeURL(u string) string {
	u = strings.TrimSpace(u)
	if idx := strings.Index(u, "#"); idx >= 0 {
		u = u[:idx]
	}
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return ""
	}
	return u
}
