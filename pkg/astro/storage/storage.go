// Package storage archives the raw PDF bytes a source book was ingested
// from, content-addressed by sha256, so a book can be re-ingested or
// audited later without the caller having to keep the original file
// around (SPEC_FULL.md §11, modeled on the teacher's pkg/storage.Service
// for uploaded documents).
//
// Archiving is outside the core ingest invariants: spec.md's Rule
// identity never depends on the archive, and a missing or unreachable
// archive backend never fails ingest_book — it only loses the ability
// to retrieve the original bytes later.
package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Archiver stores and retrieves a source book's original PDF bytes under
// a content-addressed key.
type Archiver interface {
	// Put archives content and returns the key it was stored under.
	Put(ctx context.Context, sourceTitle string, content []byte) (string, error)
	// Get retrieves previously archived content by key.
	Get(ctx context.Context, key string) ([]byte, error)
	// IsHealthy reports whether the backend is currently reachable,
	// mirroring the teacher's storage.Service.IsHealthy probe.
	IsHealthy(ctx context.Context) bool
}

// Key derives the content-addressed archive key for a source's raw
// bytes: sha256 of the content, namespaced under the source title so a
// listing of a single backend reads like a per-book archive.
func Key(sourceTitle string, content []byte) string {
	sum := sha256.Sum256(content)
	return fmt.Sprintf("sources/%s/%s.pdf", sanitize(sourceTitle), hex.EncodeToString(sum[:]))
}

func sanitize(title string) string {
	out := make([]rune, 0, len(title))
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		case r == ' ':
			out = append(out, '-')
		}
	}
	if len(out) == 0 {
		return "untitled"
	}
	return string(out)
}
