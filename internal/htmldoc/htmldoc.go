// Package htmldoc applies a TOC build to an HTML document in place: heading
// text is rewritten with outline numbers and the TOC list is attached under a
// caller-named container element. The algorithmic core stays in internal/toc;
// this package only adapts it to the parsed tree.
package htmldoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html"

	"tocsmith/internal/outline"
	"tocsmith/internal/source"
	"tocsmith/internal/toc"
)

// ErrNoContainer reports that the configured TOC container id is absent from
// the document.
var ErrNoContainer = errors.New("toc container element not found")

// ErrNoContext reports that the configured scan context id is absent from the
// document.
var ErrNoContext = errors.New("context element not found")

// Rewrite parses an HTML document, numbers its headings in place, and attaches
// the TOC list under the element whose id is opts.Container. The rewritten
// document is returned serialized.
//
// Rewriting is applied exactly once per call over pristine input; feeding an
// already rewritten document back in double-prefixes the headings.
//
// If no headings survive filtering the document is returned unmodified and no
// container lookup happens.
func Rewrite(r io.Reader, opts toc.Options) ([]byte, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	scope := source.FindBody(doc)
	if scope == nil {
		scope = doc
	}
	if opts.Context != "" {
		scope = source.FindByID(doc, opts.Context)
		if scope == nil {
			return nil, fmt.Errorf("%w: %q", ErrNoContext, opts.Context)
		}
	}

	// Filter at scan time so entries stay index-aligned with their elements.
	var nodes []*html.Node
	var heads []outline.Heading
	for _, n := range source.ScanHeadingNodes(scope) {
		h := source.HeadingOf(n)
		if opts.Exclude[h.Level] {
			continue
		}
		nodes = append(nodes, n)
		heads = append(heads, h)
	}

	res, err := toc.Build(heads, opts)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return render(doc)
	}

	container := source.FindByID(doc, opts.Container)
	if container == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoContainer, opts.Container)
	}

	for i := range res.Entries {
		e := &res.Entries[i]
		el := nodes[i]
		if opts.Numerate {
			setText(el, e.Numbered)
		}
		if e.ID != "" && source.Attr(el, "id") == "" {
			el.Attr = append(el.Attr, html.Attribute{Key: "id", Val: e.ID})
		}
	}

	container.AppendChild(listOf(res.Tree))
	return render(doc)
}

// setText replaces all children of el with a single text node.
func setText(el *html.Node, text string) {
	for c := el.FirstChild; c != nil; {
		next := c.NextSibling
		el.RemoveChild(c)
		c = next
	}
	el.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// listOf renders TOC nodes as a nested <ul>. Entries with an id become links
// to "#id"; entries without one stay plain text; label-less holders carry only
// their nested list.
func listOf(entries []*outline.Node) *html.Node {
	ul := &html.Node{Type: html.ElementNode, Data: "ul"}
	for _, e := range entries {
		li := &html.Node{Type: html.ElementNode, Data: "li"}
		if e.Label != "" {
			if e.ID != "" {
				a := &html.Node{
					Type: html.ElementNode,
					Data: "a",
					Attr: []html.Attribute{{Key: "href", Val: "#" + e.ID}},
				}
				a.AppendChild(&html.Node{Type: html.TextNode, Data: e.Label})
				li.AppendChild(a)
			} else {
				li.AppendChild(&html.Node{Type: html.TextNode, Data: e.Label})
			}
		}
		if len(e.Children) > 0 {
			li.AppendChild(listOf(e.Children))
		}
		ul.AppendChild(li)
	}
	return ul
}

func render(doc *html.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}
