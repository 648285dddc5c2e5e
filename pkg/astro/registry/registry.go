// Package registry is the Source Registry (component E): a thin
// domain-validation layer in front of the Knowledge Store's source
// table, keeping authority-level rules in one place for every caller
// (ingest and the HTTP API alike).
package registry

import (
	"context"
	"fmt"

	"jyotishkb/pkg/astro/model"
	"jyotishkb/pkg/astro/store"
)

// Registry manages SourceBook registration and lookup.
type Registry struct {
	store *store.Store
}

// New wraps a Store with source-registration semantics.
func New(s *store.Store) *Registry {
	return &Registry{store: s}
}

// Register records a source, enforcing that its authority level is
// immutable once set (spec.md §4.4).
func (r *Registry) Register(ctx context.Context, title, author string, level model.AuthorityLevel) (model.SourceBook, error) {
	if title == "" {
		return model.SourceBook{}, fmt.Errorf("registry: title is required")
	}
	if !level.Valid() {
		return model.SourceBook{}, model.NewValidationError("authority_level", fmt.Sprintf("invalid authority level %d", level))
	}
	return r.store.RegisterSource(ctx, model.SourceBook{Title: title, Author: author, AuthorityLevel: level})
}

// Get looks up a registered source by title.
func (r *Registry) Get(ctx context.Context, title string) (model.SourceBook, error) {
	return r.store.GetSource(ctx, title)
}

// List returns every registered source.
func (r *Registry) List(ctx context.Context) ([]model.SourceBook, error) {
	return r.store.ListSources(ctx)
}
