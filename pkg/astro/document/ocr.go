//go:build ocr

package document

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/gen2brain/go-fitz"
	"github.com/otiai10/gosseract/v2"
)

// ocrPage rasterizes a single PDF page (0-based, go-fitz convention) and
// runs Tesseract over it, the way the teacher's ocrExtractor.extractFromPDF
// does, but kept per-page so Document Processor can OCR only the pages
// ledongthuc/pdf failed to extract text from.
func ocrPage(ctx context.Context, content []byte, pageIndex int) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	doc, err := fitz.NewFromMemory(content)
	if err != nil {
		return "", fmt.Errorf("document: open for OCR: %w", err)
	}
	defer doc.Close()

	if pageIndex < 0 || pageIndex >= doc.NumPage() {
		return "", fmt.Errorf("document: OCR page %d out of range (%d pages)", pageIndex, doc.NumPage())
	}

	img, err := doc.Image(pageIndex)
	if err != nil {
		return "", fmt.Errorf("document: rasterize page %d: %w", pageIndex, err)
	}

	return recognize(img)
}

func recognize(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("document: encode rasterized page: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("document: set OCR image: %w", err)
	}
	return client.Text()
}

// isTesseractAvailable probes for a working Tesseract install, mirroring
// the teacher's ocrExtractor.isTesseractAvailable / factory.go checks.
func isTesseractAvailable() bool {
	client := gosseract.NewClient()
	defer client.Close()
	return client.Version() != ""
}
