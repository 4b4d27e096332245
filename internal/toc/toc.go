package toc

import (
	"errors"
	"fmt"
	"strings"

	"tocsmith/internal/outline"
)

// ErrBadLevel reports a heading level outside 1..6. The whole build is rejected
// before any heading is processed.
var ErrBadLevel = errors.New("heading level outside 1..6")

// Options controls a single TOC build.
type Options struct {
	Exclude   map[int]bool // heading levels to skip; nil means exclude nothing
	Numerate  bool         // prepend outline numbers to heading text
	AutoID    bool         // derive anchor ids for headings that have none
	Context   string       // element id to scan within (HTML adapter; empty = whole body)
	Container string       // element id the TOC list is attached under (HTML adapter)
}

// DefaultOptions returns the standard configuration: numbering on, auto ids off,
// levels 1, 5 and 6 excluded, TOC attached under the element with id "toc".
func DefaultOptions() Options {
	return Options{
		Exclude:   map[int]bool{1: true, 5: true, 6: true},
		Numerate:  true,
		Container: "toc",
	}
}

// Build processes headings in document order and produces numbered entries plus
// the nested TOC tree. The input is never mutated; numbering is always computed
// from the pristine heading text, so repeated builds over the same headings give
// the same result.
//
// A nil Result with a nil error means no headings survived filtering: the build
// is a no-op and callers must attach nothing.
func Build(headings []outline.Heading, opts Options) (*outline.Result, error) {
	for _, h := range headings {
		if h.Level < 1 || h.Level > 6 {
			return nil, fmt.Errorf("%w: level %d (%q)", ErrBadLevel, h.Level, h.Text)
		}
	}

	kept := make([]outline.Heading, 0, len(headings))
	for _, h := range headings {
		if !opts.Exclude[h.Level] {
			kept = append(kept, h)
		}
	}
	if len(kept) == 0 {
		return nil, nil
	}

	depths := assignDepths(kept)

	// Outline counters: processing level L bumps c[L] and resets everything
	// deeper. Levels with a zero counter are skipped when the prefix is built,
	// so documents that never use h1 still number cleanly from their first
	// included level.
	var c [7]int
	entries := make([]outline.Entry, 0, len(kept))
	for _, h := range kept {
		c[h.Level]++
		for k := h.Level + 1; k <= 6; k++ {
			c[k] = 0
		}

		e := outline.Entry{Heading: h, Depth: depths[h.Level]}
		if opts.AutoID && e.ID == "" {
			e.ID = AnchorID(h.Text)
		}
		if opts.Numerate {
			var num strings.Builder
			for k := 1; k <= h.Level; k++ {
				if c[k] > 0 {
					fmt.Fprintf(&num, "%d.", c[k])
				}
			}
			e.Number = num.String()
			e.Numbered = e.Number + " " + h.Text
		} else {
			e.Numbered = h.Text
		}
		entries = append(entries, e)
	}

	return &outline.Result{Entries: entries, Tree: buildTree(entries)}, nil
}

// AnchorID derives a stable anchor id from heading text by replacing characters
// that are unsafe in fragment identifiers with underscores.
func AnchorID(text string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '<', '>', '#', '/', '\\', '?', '&', '\n':
			return '_'
		}
		return r
	}, text)
}
