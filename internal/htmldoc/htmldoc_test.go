package htmldoc

import (
	"errors"
	"strings"
	"testing"

	"tocsmith/internal/toc"
)

const sampleDoc = `<html><body>
<div id="toc"></div>
<h1>The Manual</h1>
<h2>Intro</h2>
<p>text</p>
<h3>Background</h3>
<h3>Scope</h3>
<h2 id="results">Results</h2>
</body></html>`

func TestRewrite_NumbersHeadingsAndAttachesList(t *testing.T) {
	out, err := Rewrite(strings.NewReader(sampleDoc), toc.DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := string(out)

	for _, want := range []string{
		"<h2>1. Intro</h2>",
		"<h3>1.1. Background</h3>",
		"<h3>1.2. Scope</h3>",
		`<h2 id="results">2. Results</h2>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q\noutput: %s", want, got)
		}
	}

	// h1 is excluded by default: untouched and absent from the TOC.
	if !strings.Contains(got, "<h1>The Manual</h1>") {
		t.Errorf("expected h1 to be left alone\noutput: %s", got)
	}
	if strings.Contains(got, "The Manual</a>") || strings.Contains(got, "<li>The Manual") {
		t.Errorf("excluded heading leaked into TOC\noutput: %s", got)
	}

	// TOC list nested under the container, with a link for the id-bearing entry.
	if !strings.Contains(got, `<div id="toc"><ul>`) {
		t.Errorf("expected list attached under container\noutput: %s", got)
	}
	if !strings.Contains(got, `<a href="#results">2. Results</a>`) {
		t.Errorf("expected link for heading with id\noutput: %s", got)
	}
	if !strings.Contains(got, "<li>1. Intro<ul><li>1.1. Background</li><li>1.2. Scope</li></ul></li>") {
		t.Errorf("expected nested sub-list under Intro\noutput: %s", got)
	}
}

func TestRewrite_AutoIDs(t *testing.T) {
	opts := toc.DefaultOptions()
	opts.AutoID = true

	input := `<html><body><div id="toc"></div><h2>Getting Started</h2></body></html>`
	out, err := Rewrite(strings.NewReader(input), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := string(out)

	// Id derived from pre-numbering text, heading still numbered.
	if !strings.Contains(got, `<h2 id="Getting_Started">1. Getting Started</h2>`) {
		t.Errorf("expected auto id on heading\noutput: %s", got)
	}
	if !strings.Contains(got, `<a href="#Getting_Started">1. Getting Started</a>`) {
		t.Errorf("expected TOC link to auto id\noutput: %s", got)
	}
}

func TestRewrite_NumerateDisabled(t *testing.T) {
	opts := toc.DefaultOptions()
	opts.Numerate = false

	out, err := Rewrite(strings.NewReader(sampleDoc), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := string(out)
	if !strings.Contains(got, "<h2>Intro</h2>") {
		t.Errorf("expected heading text untouched\noutput: %s", got)
	}
	if !strings.Contains(got, "<li>Intro<ul>") {
		t.Errorf("expected TOC still built\noutput: %s", got)
	}
}

func TestRewrite_ContextScoping(t *testing.T) {
	opts := toc.DefaultOptions()
	opts.Context = "main"

	input := `<html><body>
<div id="toc"></div>
<div id="sidebar"><h2>Ignore me</h2></div>
<div id="main"><h2>Keep me</h2></div>
</body></html>`

	out, err := Rewrite(strings.NewReader(input), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := string(out)
	if !strings.Contains(got, "<h2>Ignore me</h2>") {
		t.Errorf("heading outside context must stay untouched\noutput: %s", got)
	}
	if !strings.Contains(got, "<h2>1. Keep me</h2>") {
		t.Errorf("heading inside context must be numbered\noutput: %s", got)
	}
	if strings.Contains(got, "Ignore me</li>") || strings.Contains(got, "<li>Ignore me") {
		t.Errorf("out-of-context heading leaked into TOC\noutput: %s", got)
	}
}

func TestRewrite_MissingContextFails(t *testing.T) {
	opts := toc.DefaultOptions()
	opts.Context = "nope"

	_, err := Rewrite(strings.NewReader(sampleDoc), opts)
	if !errors.Is(err, ErrNoContext) {
		t.Errorf("expected ErrNoContext, got %v", err)
	}
}

func TestRewrite_MissingContainerFails(t *testing.T) {
	input := `<html><body><h2>Intro</h2></body></html>`
	_, err := Rewrite(strings.NewReader(input), toc.DefaultOptions())
	if !errors.Is(err, ErrNoContainer) {
		t.Errorf("expected ErrNoContainer, got %v", err)
	}
}

func TestRewrite_NoHeadingsIsNoOp(t *testing.T) {
	// No container in the document either: with zero headings that must not
	// matter, since nothing is attached.
	input := `<html><body><p>plain prose</p><h1>Excluded</h1></body></html>`
	out, err := Rewrite(strings.NewReader(input), toc.DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := string(out)
	if !strings.Contains(got, "<h1>Excluded</h1>") {
		t.Errorf("expected document unmodified\noutput: %s", got)
	}
	if strings.Contains(got, "<ul>") {
		t.Errorf("expected no TOC list\noutput: %s", got)
	}
}
