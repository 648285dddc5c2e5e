package document

import (
	"context"
	"log"

	"jyotishkb/pkg/astro/lexicon"
)

// Report summarizes one document's processing run, the numbers the
// Rule Extractor and Knowledge Store need to build an IngestReport.
type Report struct {
	SentencesTotal int
	SentencesAstro int
}

// Service is the Document Processor (component A). It is the only
// component in the pipeline that touches the raw PDF bytes.
type Service struct {
	lex       *lexicon.Lexicon
	relevance *relevanceMatcher
}

// NewService builds a Document Processor using the given lexicon, or the
// built-in default when lex is nil.
func NewService(lex *lexicon.Lexicon) *Service {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Service{lex: lex, relevance: newRelevanceMatcher(lex)}
}

// ProcessBytes extracts, cleans, segments, and filters a PDF's content,
// returning the lazy-equivalent slice of relevant (sentence, page) pairs
// spec.md §4.1 calls for. Pages whose ledongthuc/pdf extraction yields
// near-zero text are OCR'd when the module is built with the "ocr" tag
// and Tesseract is available; otherwise they are logged and skipped
// (spec.md §4.1, Failure modes).
func (s *Service) ProcessBytes(ctx context.Context, sourceTitle string, content []byte) ([]Sentence, Report, error) {
	raw, err := extractPDF(sourceTitle, content)
	if err != nil {
		return nil, Report{}, err
	}

	raw.Pages = s.fillScannedPages(ctx, content, raw.Pages)
	cleaned := cleanPages(raw.Pages, s.lex)

	var sentences []Sentence
	var report Report
	for _, page := range cleaned {
		for _, sent := range segment(page.Text, s.lex) {
			report.SentencesTotal++
			if s.relevance.isAstrological(sent) {
				report.SentencesAstro++
				sentences = append(sentences, Sentence{Text: sent, Page: page.Number})
			}
		}
	}
	if len(raw.Pages) > 0 && report.SentencesTotal == 0 {
		log.Printf("[DOCUMENT] %q: no extractable text found across %d pages", sourceTitle, len(raw.Pages))
	}
	return sentences, report, nil
}

// fillScannedPages routes near-empty pages through OCR when available.
// A page counts as near-zero per spec.md §4.1 Failure modes when its
// extracted text, before cleaning, is shorter than 8 bytes.
func (s *Service) fillScannedPages(ctx context.Context, content []byte, pages []PageText) []PageText {
	if !isTesseractAvailable() {
		for _, p := range pages {
			if len(p.Text) < 8 {
				log.Printf("[DOCUMENT] page %d: near-zero extractable text, OCR unavailable, continuing", p.Number)
			}
		}
		return pages
	}
	out := make([]PageText, len(pages))
	for i, p := range pages {
		if len(p.Text) >= 8 {
			out[i] = p
			continue
		}
		text, err := ocrPage(ctx, content, p.Number-1)
		if err != nil {
			log.Printf("[DOCUMENT] page %d: OCR fallback failed: %v", p.Number, err)
			out[i] = p
			continue
		}
		out[i] = PageText{Number: p.Number, Text: text}
	}
	return out
}

// Lexicon returns the lexicon this service was configured with, so
// downstream stages (Rule Extractor) can share the same vocabulary.
func (s *Service) Lexicon() *lexicon.Lexicon { return s.lex }
