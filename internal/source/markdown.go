package source

import (
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"tocsmith/internal/outline"
)

// MarkdownSource extracts headings from Markdown files using goldmark.
type MarkdownSource struct{}

func (s *MarkdownSource) Extract(r io.Reader, filename string) ([]outline.Heading, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var heads []outline.Heading
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		heading, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		heads = append(heads, outline.Heading{
			Level: heading.Level,
			Text:  string(heading.Text(src)),
		})
	}
	return heads, nil
}
