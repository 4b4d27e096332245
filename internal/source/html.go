package source

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"tocsmith/internal/outline"
)

// HTMLSource extracts headings from HTML documents.
type HTMLSource struct{}

func (s *HTMLSource) Extract(r io.Reader, filename string) ([]outline.Heading, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	scope := FindBody(doc)
	if scope == nil {
		scope = doc
	}
	return ScanHeadings(scope), nil
}

// ScanHeadings collects all h1..h6 elements under root in document order.
func ScanHeadings(root *html.Node) []outline.Heading {
	nodes := ScanHeadingNodes(root)
	heads := make([]outline.Heading, len(nodes))
	for i, n := range nodes {
		heads[i] = HeadingOf(n)
	}
	return heads
}

// ScanHeadingNodes collects the h1..h6 element nodes under root in document
// order, for callers that need to mutate the elements afterwards.
func ScanHeadingNodes(root *html.Node) []*html.Node {
	var nodes []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if HeadingLevel(n.Data) > 0 {
				nodes = append(nodes, n)
				return // heading children are text, nothing to descend into
			}
			switch n.Data {
			case "script", "style":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return nodes
}

// HeadingOf reads a heading record from an h1..h6 element node.
func HeadingOf(n *html.Node) outline.Heading {
	return outline.Heading{
		Level: HeadingLevel(n.Data),
		Text:  TextContent(n),
		ID:    Attr(n, "id"),
	}
}

// HeadingLevel maps an element tag to its heading level, 0 for non-headings.
func HeadingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

// TextContent returns the concatenated text content of a node, trimmed.
func TextContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

// Attr returns the value of the named attribute, or "".
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// FindBody locates the <body> element, nil if the tree has none.
func FindBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := FindBody(c); b != nil {
			return b
		}
	}
	return nil
}

// FindByID locates the element with the given id attribute, nil if absent.
func FindByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode && Attr(n, "id") == id {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if m := FindByID(c, id); m != nil {
			return m
		}
	}
	return nil
}
