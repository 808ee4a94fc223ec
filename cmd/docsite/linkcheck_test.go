package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ComPWA/compwa-org/internal/linkcheck"
)

func TestCollectLinks_WalksMatchingFilesOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"),
		[]byte("[x](https://example.org/a)\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.md"),
		[]byte("[y](https://example.org/b)\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.html"),
		[]byte(`<a href="https://example.org/c">c</a>`), 0o644))

	links, err := collectLinks(dir, ".md", linkcheck.ExtractMarkdownLinks)
	require.NoError(t, err)
	require.Len(t, links, 2)

	links, err = collectLinks(dir, ".html", linkcheck.ExtractHTMLLinks)
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.Equal(t, "https://example.org/c", links[0].URL)
}

func TestParseDuration_Fallback(t *testing.T) {
	require.Equal(t, 10*time.Second, parseDuration("10s", time.Minute))
	require.Equal(t, time.Minute, parseDuration("not-a-duration", time.Minute))
	require.Equal(t, time.Minute, parseDuration("", time.Minute))
}
