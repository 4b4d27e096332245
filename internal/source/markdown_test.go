package source

import (
	"strings"
	"testing"
)

func TestMarkdownSource_HeadingSequence(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Body text.

### Subsection A1

More text.

## Section B
`
	s := &MarkdownSource{}
	heads, err := s.Extract(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []struct {
		level int
		text  string
	}{
		{1, "Title"},
		{2, "Section A"},
		{3, "Subsection A1"},
		{2, "Section B"},
	}
	if len(heads) != len(want) {
		t.Fatalf("expected %d headings, got %d: %+v", len(want), len(heads), heads)
	}
	for i, w := range want {
		if heads[i].Level != w.level || heads[i].Text != w.text {
			t.Errorf("heading %d: expected (%d, %q), got (%d, %q)",
				i, w.level, w.text, heads[i].Level, heads[i].Text)
		}
	}
}

func TestMarkdownSource_NoHeadings(t *testing.T) {
	s := &MarkdownSource{}
	heads, err := s.Extract(strings.NewReader("Just some plain text.\n\nAnother paragraph."), "plain.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(heads) != 0 {
		t.Errorf("expected 0 headings, got %d", len(heads))
	}
}
