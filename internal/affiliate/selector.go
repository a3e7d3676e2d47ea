// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package affiliate selects the affiliate redirect URL for a booking
// request. Selection is a pure function of the partner table and the
// request; redirecting is left to the caller.
package affiliate

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"vertigo/internal/models"
)

// Selector picks the best partner link from an immutable partner table.
type Selector struct {
	ranked []models.AffiliatePartner // priority desc, then id asc
	byID   map[string]int
}

// New builds a selector over partners. Partners must have unique, non-empty
// IDs and only known categories.
func New(partners []models.AffiliatePartner) (*Selector, error) {
	s := &Selector{
		ranked: make([]models.AffiliatePartner, 0, len(partners)),
		byID:   make(map[string]int, len(partners)),
	}
	seen := make(map[string]struct{}, len(partners))
	for _, p := range partners {
		if p.ID == "" {
			return nil, fmt.Errorf("%w: affiliate partner with empty id", models.ErrInvalidInput)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate affiliate partner %q", models.ErrInvalidInput, p.ID)
		}
		seen[p.ID] = struct{}{}
		for _, c := range p.Categories {
			if _, err := models.ParseCategory(string(c)); err != nil {
				return nil, fmt.Errorf("partner %q: %w", p.ID, err)
			}
		}
		p.Categories = append([]models.Category(nil), p.Categories...)
		s.ranked = append(s.ranked, p)
	}
	sort.SliceStable(s.ranked, func(i, j int) bool {
		a, b := s.ranked[i], s.ranked[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return a.ID < b.ID
	})
	for i, p := range s.ranked {
		s.byID[p.ID] = i
	}
	return s, nil
}

// ParseRequest validates raw query values into a request. An empty
// category means any category; an unknown one is invalid input.
func ParseRequest(destination, category, vertical, partner string) (models.AffiliateLinkRequest, error) {
	req := models.AffiliateLinkRequest{
		Destination: strings.TrimSpace(destination),
		Vertical:    strings.TrimSpace(vertical),
		Partner:     strings.TrimSpace(partner),
	}
	if strings.TrimSpace(category) != "" {
		c, err := models.ParseCategory(category)
		if err != nil {
			return models.AffiliateLinkRequest{}, err
		}
		req.Category = c
	}
	return req, nil
}

// Best returns the redirect URL for req, or false when no partner can serve
// it. A pinned partner that does not support the requested category, or
// whose template cannot be rendered for the request, falls through to
// automatic selection.
func (s *Selector) Best(req models.AffiliateLinkRequest) (string, bool) {
	values := map[string]string{
		fieldDestination: req.Destination,
		fieldVertical:    req.Vertical,
		fieldCategory:    string(req.Category),
	}

	if req.Partner != "" {
		if i, ok := s.byID[req.Partner]; ok {
			p := s.ranked[i]
			if req.Category == "" || p.Supports(req.Category) {
				link, err := expand(p.URLTemplate, values)
				if err == nil {
					return link, true
				}
				slog.Debug("pinned affiliate partner skipped", "partner", p.ID, "error", err)
			}
		}
	}

	for _, p := range s.ranked {
		if req.Category != "" && !p.Supports(req.Category) {
			continue
		}
		link, err := expand(p.URLTemplate, values)
		if err != nil {
			slog.Debug("affiliate partner skipped", "partner", p.ID, "error", err)
			continue
		}
		return link, true
	}
	return "", false
}

// Partners returns the partner table in selection order.
func (s *Selector) Partners() []models.AffiliatePartner {
	out := make([]models.AffiliatePartner, len(s.ranked))
	copy(out, s.ranked)
	return out
}
