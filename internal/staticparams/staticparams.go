// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package staticparams enumerates every (vertical, type, slug) triple that
// has a content page, so build tooling can pre-render all of them.
package staticparams

import (
	"context"
	"fmt"

	"vertigo/internal/models"
	"vertigo/internal/vertical"
	"vertigo/internal/walk"
)

// Lister is the part of the content store the enumerator needs.
type Lister interface {
	List(ctx context.Context, t models.ContentType, vertical string, limit int) ([]models.ContentItem, error)
}

// Param identifies one content page.
type Param struct {
	Vertical string             `json:"vertical"`
	Type     models.ContentType `json:"type"`
	Slug     string             `json:"slug"`
}

// Pair is a Param projected onto a single content type.
type Pair struct {
	Vertical string `json:"vertical"`
	Slug     string `json:"slug"`
}

// Result holds the enumerated params and the verticals that failed.
type Result struct {
	Params   []Param
	Failures []walk.Failure
}

// ForType returns the {vertical, slug} pairs of type t in enumeration order.
func (r Result) ForType(t models.ContentType) []Pair {
	pairs := make([]Pair, 0, len(r.Params))
	for _, p := range r.Params {
		if p.Type == t {
			pairs = append(pairs, Pair{Vertical: p.Vertical, Slug: p.Slug})
		}
	}
	return pairs
}

// Enumerate lists the pages of every vertical in the registry. A vertical
// whose listing fails is logged and reported in Result.Failures; the others
// are still returned. Output order follows the registry, then the vertical's
// content types, then the store's item order.
func Enumerate(ctx context.Context, verticals *vertical.Registry, content Lister) Result {
	res := walk.Verticals(ctx, "static param enumeration", verticals.All(), walk.DefaultParallelism,
		func(ctx context.Context, v models.Vertical) ([]Param, error) {
			var params []Param
			for _, t := range v.ContentTypes {
				items, err := content.List(ctx, t, v.Slug, 0)
				if err != nil {
					return nil, fmt.Errorf("list %s: %w", t, err)
				}
				for _, it := range items {
					params = append(params, Param{Vertical: v.Slug, Type: t, Slug: it.Slug})
				}
			}
			return params, nil
		})
	return Result{Params: res.Items, Failures: res.Failures}
}
