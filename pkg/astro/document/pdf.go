package document

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/ledongthuc/pdf"

	"jyotishkb/pkg/astro/model"
)

// extractPDF reads content page by page with github.com/ledongthuc/pdf,
// the teacher's primary PDF extraction library (API/pkg/processing/
// extractor/pdf.go). Scanned pages that yield no text are left empty in
// the result; the caller decides whether to route them through OCR.
func extractPDF(sourceTitle string, content []byte) (*RawDocument, error) {
	if len(content) < 4 {
		return nil, model.NewIngestError(sourceTitle, "file too small to be a valid PDF", nil)
	}
	if !bytes.HasPrefix(content, []byte("%PDF")) {
		content = trimToPDFHeader(content)
		if content == nil {
			return nil, model.NewIngestError(sourceTitle, "invalid PDF file format", nil)
		}
	}

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, model.NewIngestError(sourceTitle, "failed to open PDF", err)
	}

	pageCount := reader.NumPage()
	doc := &RawDocument{Method: MethodLedongthuc}
	for i := 1; i <= pageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			doc.Pages = append(doc.Pages, PageText{Number: i, Text: ""})
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("[DOCUMENT] page %d: extraction error: %v", i, err)
			text = ""
		}
		doc.Pages = append(doc.Pages, PageText{Number: i, Text: text})
	}
	return doc, nil
}

// trimToPDFHeader searches the first 1KB for a %PDF header and trims the
// prefix (some scanned collections prepend bytes before the marker), the
// way the teacher's pdfExtractor.Extract does.
func trimToPDFHeader(content []byte) []byte {
	limit := 1024
	if len(content) < limit {
		limit = len(content)
	}
	idx := bytes.Index(content[:limit], []byte("%PDF"))
	if idx < 0 {
		return nil
	}
	return content[idx:]
}

// ReadPDFFile loads a PDF from disk into memory. A bare path is the common
// case for §4.1's "a path to a PDF" input.
func ReadPDFFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("document: read %s: %w", path, err)
	}
	return content, nil
}
