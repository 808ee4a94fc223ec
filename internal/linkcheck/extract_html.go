package linkcheck

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/net/html"
)

// Link is a URL extracted from a documentation source.
type Link struct {
	URL    string
	Source string // file the link was found in
	Tag    string // originating construct: "a", "img", "md", ...
}

// ExtractHTMLLinks extracts link targets from a rendered HTML file.
func ExtractHTMLLinks(path string) ([]Link, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open HTML file: %w", err)
	}
	defer file.Close()

	links, err := extractHTMLLinks(file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for i := range links {
		links[i].Source = path
	}
	return links, nil
}

func extractHTMLLinks(r io.Reader) ([]Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var links []Link
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "a", "link":
				if href := attr(n, "href"); href != "" {
					links = append(links, Link{URL: href, Tag: n.Data})
				}
			case "img", "script", "iframe":
				if src := attr(n, "src"); src != "" {
					links = append(links, Link{URL: src, Tag: n.Data})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links, nil
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
