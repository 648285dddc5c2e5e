//go:build !ocr

package document

import (
	"context"
	"fmt"
)

// ocrPage is the no-CGO stub used when the module is built without the
// "ocr" tag (gosseract/go-fitz pull in Tesseract/MuPDF via cgo). Mirrors
// the teacher's graceful degradation in extractor/factory.go:
// NewAutoService falls back to text-only extraction when Tesseract isn't
// available; here the fallback is a build-time default rather than a
// runtime probe, since cgo bindings can't be dlopen'd conditionally.
func ocrPage(ctx context.Context, content []byte, pageIndex int) (string, error) {
	return "", fmt.Errorf("document: OCR support not compiled in (build with -tags ocr)")
}

func isTesseractAvailable() bool { return false }
