package linkcheck

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractHTMLLinks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	content := `<html><head>
<link rel="stylesheet" href="https://cdn.example.org/all.min.css">
<script src="https://cdn.example.org/require.min.js"></script>
</head><body>
<a href="https://compwa.github.io/report/">reports</a>
<a href="/local/page.html">local</a>
<img src="logo.svg">
<a>no href</a>
</body></html>`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	links, err := ExtractHTMLLinks(path)
	require.NoError(t, err)

	urls := make([]string, 0, len(links))
	for _, l := range links {
		require.Equal(t, path, l.Source)
		urls = append(urls, l.URL)
	}
	require.ElementsMatch(t, []string{
		"https://cdn.example.org/all.min.css",
		"https://cdn.example.org/require.min.js",
		"https://compwa.github.io/report/",
		"/local/page.html",
		"logo.svg",
	}, urls)
}

func TestExtractMarkdownLinks(t *testing.T) {
	body := []byte(strings.Join([]string{
		"# Title",
		"",
		"An [inline link](https://example.org/a) and an image ![logo](./logo.svg).",
		"",
		"Autolink: <https://example.org/auto>",
		"",
		"A [reference][ref].",
		"",
		"[ref]: https://example.org/ref",
	}, "\n"))

	links := extractMarkdownLinks(body)
	urls := make([]string, 0, len(links))
	for _, l := range links {
		urls = append(urls, l.URL)
	}
	require.Contains(t, urls, "https://example.org/a")
	require.Contains(t, urls, "./logo.svg")
	require.Contains(t, urls, "https://example.org/auto")
	require.Contains(t, urls, "https://example.org/ref")
}

func TestIgnoreList(t *testing.T) {
	il, err := NewIgnoreList([]string{
		"http://127.0.0.1:8000",
		"https://mybinder.org",
		`https://github.com/orgs/ComPWA/projects/\d+`,
		"",
	})
	require.NoError(t, err)

	require.True(t, il.Ignored("http://127.0.0.1:8000"))
	require.True(t, il.Ignored("https://mybinder.org/v2/gh/ComPWA"))
	require.True(t, il.Ignored("https://github.com/orgs/ComPWA/projects/5"))
	require.False(t, il.Ignored("https://github.com/orgs/ComPWA/projects/"))
	require.False(t, il.Ignored("https://compwa.github.io"))

	var nilList *IgnoreList
	require.False(t, nilList.Ignored("https://example.org"))
}

func TestIgnoreList_InvalidPattern(t *testing.T) {
	_, err := NewIgnoreList([]string{"https://example.org/("})
	require.Error(t, err)
}
