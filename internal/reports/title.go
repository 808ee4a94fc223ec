package reports

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// markdownTitle returns the text of the first level-1 heading in a Markdown
// body, or "" when the document has none.
func markdownTitle(body []byte) string {
	body = stripFrontMatter(body)
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	var title string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		heading, ok := n.(*gmast.Heading)
		if !ok || heading.Level != 1 {
			return gmast.WalkContinue, nil
		}
		title = headingText(heading, body)
		return gmast.WalkStop, nil
	})
	return strings.TrimSpace(title)
}

// headingText concatenates the literal text of a heading's children,
// skipping inline markup nodes.
func headingText(heading *gmast.Heading, body []byte) string {
	var b strings.Builder
	for c := heading.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *gmast.Text:
			b.Write(node.Segment.Value(body))
		case *gmast.CodeSpan, *gmast.Emphasis:
			b.Write(node.Text(body))
		}
	}
	return b.String()
}

// stripFrontMatter removes a leading YAML front matter block so its
// delimiter lines are not parsed as headings or breaks.
func stripFrontMatter(body []byte) []byte {
	s := string(body)
	if !strings.HasPrefix(s, "---\n") && !strings.HasPrefix(s, "---\r\n") {
		return body
	}
	rest := s[strings.Index(s, "\n")+1:]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return body
	}
	rest = rest[end+len("\n---"):]
	if idx := strings.Index(rest, "\n"); idx >= 0 {
		rest = rest[idx+1:]
	} else {
		rest = ""
	}
	return []byte(rest)
}
