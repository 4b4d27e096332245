package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"tocsmith/internal/outline"
)

// PDFSource extracts a page-level outline from PDF files: each non-empty page
// contributes one level-2 heading, so PDFs get a flat per-page TOC under the
// default exclusion set.
type PDFSource struct{}

const pdfPageLevel = 2

func (s *PDFSource) Extract(r io.Reader, filename string) ([]outline.Heading, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "tocsmith-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	f, reader, err := pdflib.Open(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var heads []outline.Heading
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		heads = append(heads, outline.Heading{
			Level: pdfPageLevel,
			Text:  fmt.Sprintf("Page %d", i),
		})
	}
	return heads, nil
}
