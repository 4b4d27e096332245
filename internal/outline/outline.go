package outline

// Heading is a single heading extracted from a source document, in document order.
type Heading struct {
	Level int    `json:"level"`        // 1..6 (h1..h6)
	Text  string `json:"text"`         // pristine text, before any numbering
	ID    string `json:"id,omitempty"` // anchor id, empty if the source had none
}

// Entry is a heading after outline processing: numbering and TOC depth attached.
type Entry struct {
	Heading
	Number   string `json:"number,omitempty"` // dotted prefix, e.g. "1.2."
	Numbered string `json:"numbered"`         // rendered text; equals Text when numbering is off
	Depth    int    `json:"depth"`            // 1-based compacted TOC depth
}

// Node is one entry in the nested TOC tree. A Node with an empty Label is a
// structural holder carrying only children (the document opened at a deeper
// level than any preceding heading).
type Node struct {
	Label    string  `json:"label"`
	ID       string  `json:"id,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// Result is the output of one TOC build over a document.
type Result struct {
	Entries []Entry `json:"entries"`
	Tree    []*Node `json:"toc"`
}
