// Package document implements the Document Processor (spec.md §4.1):
// PDF text extraction with per-page offsets, lexicon-driven cleaning,
// sentence segmentation, and the astrological relevance filter.
package document

// Sentence is one unit of output from the Document Processor: a cleaned,
// astrologically-relevant sentence plus the page it was extracted from.
type Sentence struct {
	Text string
	Page int
}

// PageText is one page's raw extracted text, keyed by 1-based page number.
type PageText struct {
	Number int
	Text   string
}

// ExtractionMethod records which underlying library produced a page's text,
// mirroring the teacher's extraction-method metadata tag.
type ExtractionMethod string

const (
	MethodLedongthuc ExtractionMethod = "ledongthuc_pdf"
	MethodOCR        ExtractionMethod = "ocr_tesseract"
)

// RawDocument is the result of stage-one PDF extraction: per-page text
// plus the one method that extracted the document. Method is not
// recorded per page; pages later filled in by OCR (fillScannedPages)
// keep the document's Method.
type RawDocument struct {
	Pages  []PageText
	Method ExtractionMethod
}
