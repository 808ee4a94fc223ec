package linkcheck

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// ExtractMarkdownLinks extracts link destinations from a Markdown source
// file. Inline links, images, autolinks and reference definitions are all
// collected.
func ExtractMarkdownLinks(path string) ([]Link, error) {
	body, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read Markdown file: %w", err)
	}
	links := extractMarkdownLinks(body)
	for i := range links {
		links[i].Source = path
	}
	return links, nil
}

func extractMarkdownLinks(body []byte) []Link {
	md := goldmark.New()
	ctx := parser.NewContext()
	root := md.Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	links := make([]Link, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, Link{URL: string(node.URL(body)), Tag: "md"})
		case *gmast.Image:
			links = append(links, Link{URL: string(node.Destination), Tag: "md-img"})
		case *gmast.Link:
			links = append(links, Link{URL: string(node.Destination), Tag: "md"})
		}
		return gmast.WalkContinue, nil
	})

	// Reference definitions live in the parse context, not the AST.
	for _, ref := range ctx.References() {
		links = append(links, Link{URL: string(ref.Destination()), Tag: "md-ref"})
	}
	return links
}
