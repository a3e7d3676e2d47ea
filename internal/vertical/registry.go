// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package vertical holds the immutable set of configured verticals and
// resolves slugs to their configuration.
package vertical

import (
	"fmt"

	"vertigo/internal/models"
	"vertigo/internal/slug"
)

// Registry is a read-only snapshot of the configured verticals. It is safe
// for concurrent use because nothing mutates it after New returns.
type Registry struct {
	ordered []models.Vertical
	bySlug  map[string]int
}

// New builds a registry from verticals in the order given. Non-canonical,
// reserved or duplicate slugs and unknown content types are rejected. A vertical that lists no
// content types publishes all of them.
func New(verticals []models.Vertical) (*Registry, error) {
	r := &Registry{
		ordered: make([]models.Vertical, 0, len(verticals)),
		bySlug:  make(map[string]int, len(verticals)),
	}
	for _, v := range verticals {
		if v.Slug == "" {
			return nil, fmt.Errorf("%w: vertical with empty slug", models.ErrInvalidInput)
		}
		if !slug.Valid(v.Slug) {
			return nil, fmt.Errorf("%w: vertical slug %q is not canonical", models.ErrInvalidInput, v.Slug)
		}
		if models.Reserved(v.Slug) {
			return nil, fmt.Errorf("%w: vertical slug %q is reserved", models.ErrInvalidInput, v.Slug)
		}
		if _, dup := r.bySlug[v.Slug]; dup {
			return nil, fmt.Errorf("%w: duplicate vertical slug %q", models.ErrInvalidInput, v.Slug)
		}
		if len(v.ContentTypes) == 0 {
			v.ContentTypes = append([]models.ContentType(nil), models.ContentTypes...)
		} else {
			v.ContentTypes = append([]models.ContentType(nil), v.ContentTypes...)
		}
		for _, ct := range v.ContentTypes {
			if !ct.Valid() {
				return nil, fmt.Errorf("%w: vertical %q lists unknown content type %q", models.ErrInvalidInput, v.Slug, ct)
			}
		}
		r.bySlug[v.Slug] = len(r.ordered)
		r.ordered = append(r.ordered, v)
	}
	return r, nil
}

// All returns every vertical in configuration order. The returned slice is
// a copy; callers may not mutate the registry through it.
func (r *Registry) All() []models.Vertical {
	out := make([]models.Vertical, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Find resolves a slug with an exact, case-sensitive match.
func (r *Registry) Find(slug string) (models.Vertical, bool) {
	i, ok := r.bySlug[slug]
	if !ok {
		return models.Vertical{}, false
	}
	return r.ordered[i], true
}

// Len returns the number of configured verticals.
func (r *Registry) Len() int {
	return len(r.ordered)
}
