package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ComPWA/compwa-org/internal/config"
	"github.com/ComPWA/compwa-org/internal/linkcheck"
)

// runLinkcheck extracts links from the rendered site and/or the Markdown
// sources and checks them. Returns the number of broken links.
func runLinkcheck(ctx context.Context, cfg *config.Config, siteDir, docsDir, cacheOverride string) (int, error) {
	if siteDir == "" && docsDir == "" {
		return 0, errors.New("nothing to check: pass --site and/or --docs")
	}

	var links []linkcheck.Link
	if siteDir != "" {
		found, err := collectLinks(siteDir, ".html", linkcheck.ExtractHTMLLinks)
		if err != nil {
			return 0, err
		}
		links = append(links, found...)
	}
	if docsDir != "" {
		found, err := collectLinks(docsDir, ".md", linkcheck.ExtractMarkdownLinks)
		if err != nil {
			return 0, err
		}
		links = append(links, found...)
	}
	slog.Info("Links extracted", "count", len(links))

	ignore, err := linkcheck.NewIgnoreList(cfg.Linkcheck.Ignore)
	if err != nil {
		return 0, err
	}

	cache, err := openCache(cfg, cacheOverride)
	if err != nil {
		return 0, err
	}
	if cache != nil {
		defer cache.Close()
	}

	checker := linkcheck.NewChecker(checkerOptions(cfg), ignore, cache)
	urls := make([]string, len(links))
	for i, l := range links {
		urls[i] = l.URL
	}
	results, err := checker.Check(ctx, urls)
	if err != nil {
		return 0, err
	}

	broken := 0
	for _, res := range results {
		if !res.Alive {
			broken++
			fmt.Fprintf(os.Stderr, "broken: %s (HTTP %d) %s\n", res.URL, res.Status, res.Error)
		}
	}
	slog.Info("Link check completed", "checked", len(results), "broken", broken)
	return broken, nil
}

func collectLinks(dir, ext string, extract func(string) ([]linkcheck.Link, error)) ([]linkcheck.Link, error) {
	var links []linkcheck.Link
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ext) {
			return nil
		}
		found, err := extract(path)
		if err != nil {
			slog.Warn("Failed to extract links", "file", path, "error", err)
			return nil
		}
		links = append(links, found...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return links, nil
}

func openCache(cfg *config.Config, override string) (*linkcheck.SQLiteCache, error) {
	path := cfg.Linkcheck.CachePath
	if override != "" {
		path = override
	}
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	ttl := parseDuration(cfg.Linkcheck.CacheTTL, 168*time.Hour)
	return linkcheck.NewSQLiteCache(path, ttl)
}

func checkerOptions(cfg *config.Config) linkcheck.Options {
	return linkcheck.Options{
		MaxConcurrent:  cfg.Linkcheck.MaxConcurrent,
		RequestTimeout: parseDuration(cfg.Linkcheck.RequestTimeout, 10*time.Second),
		RateLimitDelay: parseDuration(cfg.Linkcheck.RateLimitDelay, 100*time.Millisecond),
		MaxRedirects:   cfg.Linkcheck.MaxRedirects,
	}
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
