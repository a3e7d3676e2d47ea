// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package related ranks content items by relevance to a source item for
// "related content" widgets. Ranking is pure and deterministic: the same
// inputs always produce the same sequence.
//
// Related content never crosses verticals. Candidates from another vertical
// are dropped before scoring.
package related

import (
	"sort"
	"strings"

	"vertigo/internal/models"
)

// Score is the relevance of a candidate. Tag overlap always outranks term
// (category and keyword) overlap.
type Score struct {
	Tags  int
	Terms int
}

// Positive reports whether the candidate shares anything with the source.
func (s Score) Positive() bool {
	return s.Tags > 0 || s.Terms > 0
}

// Less reports whether s ranks below o.
func (s Score) Less(o Score) bool {
	if s.Tags != o.Tags {
		return s.Tags < o.Tags
	}
	return s.Terms < o.Terms
}

// Query describes a related-content lookup.
type Query struct {
	Source     models.ContentItem
	TargetType models.ContentType
	Limit      int
}

type scored struct {
	item  models.ContentItem
	score Score
}

// Rank returns up to q.Limit items of q.TargetType from candidates, most
// relevant first. The source item is never included. When fewer than
// q.Limit candidates score above zero the result is padded with the most
// recent remaining candidates.
func Rank(q Query, candidates []models.ContentItem) []models.ContentItem {
	if q.Limit <= 0 {
		return []models.ContentItem{}
	}

	sc := newScorer(q.Source)

	var pool []scored
	for _, c := range candidates {
		if c.Type != q.TargetType || c.Vertical != q.Source.Vertical {
			continue
		}
		if c.Type == q.Source.Type && c.Slug == q.Source.Slug {
			continue
		}
		pool = append(pool, scored{item: c, score: sc.score(c)})
	}

	// Zero scores sort after every positive score, so the recency padding
	// falls out of the same ordering.
	sort.SliceStable(pool, func(i, j int) bool {
		a, b := pool[i], pool[j]
		if a.score != b.score {
			return b.score.Less(a.score)
		}
		return recencyLess(&a.item, &b.item)
	})

	n := min(q.Limit, len(pool))
	out := make([]models.ContentItem, n)
	for i := range n {
		out[i] = pool[i].item
	}
	return out
}

// recencyLess orders items by date descending, undated last, then by slug.
func recencyLess(a, b *models.ContentItem) bool {
	if !models.SameDate(a, b) {
		return models.Newer(a, b)
	}
	return a.Slug < b.Slug
}

// ScoreOf returns the relevance of candidate to source.
func ScoreOf(source, candidate models.ContentItem) Score {
	return newScorer(source).score(candidate)
}

type scorer struct {
	tags  map[string]struct{}
	terms map[string]struct{}
}

func newScorer(src models.ContentItem) scorer {
	return scorer{
		tags:  termSet(src.Frontmatter.Tags),
		terms: termSet(itemTerms(src)),
	}
}

func (s scorer) score(c models.ContentItem) Score {
	return Score{
		Tags:  overlap(s.tags, c.Frontmatter.Tags),
		Terms: overlap(s.terms, itemTerms(c)),
	}
}

// itemTerms returns the category and keywords of an item.
func itemTerms(c models.ContentItem) []string {
	return append([]string{c.Frontmatter.Category}, c.Frontmatter.Keywords...)
}

func termSet(vals []string) map[string]struct{} {
	set := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		if t := normalize(v); t != "" {
			set[t] = struct{}{}
		}
	}
	return set
}

// overlap counts distinct values of vals present in set.
func overlap(set map[string]struct{}, vals []string) int {
	seen := make(map[string]struct{}, len(vals))
	n := 0
	for _, v := range vals {
		t := normalize(v)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := set[t]; ok {
			n++
		}
	}
	return n
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
