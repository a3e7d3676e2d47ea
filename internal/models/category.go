// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"strings"
)

// Category is a booking category an affiliate partner can serve.
type Category string

const (
	CategoryHotel    Category = "hotel"
	CategoryTour     Category = "tour"
	CategoryFlight   Category = "flight"
	CategoryActivity Category = "activity"
)

var categories = map[Category]struct{}{
	CategoryHotel:    {},
	CategoryTour:     {},
	CategoryFlight:   {},
	CategoryActivity: {},
}

// ParseCategory validates a category string. The empty string is not a
// category; callers treat an omitted category separately.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.TrimSpace(s))
	if _, ok := categories[c]; !ok {
		return "", fmt.Errorf("%w: unknown category %q", ErrInvalidInput, s)
	}
	return c, nil
}

// AffiliatePartner is a third-party booking provider. URLTemplate may use
// the {destination}, {vertical} and {category} placeholders.
type AffiliatePartner struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Categories  []Category `json:"categories"`
	URLTemplate string     `json:"url_template"`
	Priority    int        `json:"priority"`
}

// Supports reports whether the partner declares the given category.
func (p *AffiliatePartner) Supports(c Category) bool {
	for _, pc := range p.Categories {
		if pc == c {
			return true
		}
	}
	return false
}

// AffiliateLinkRequest carries the optional hints for affiliate selection.
// An empty Category means "any category".
type AffiliateLinkRequest struct {
	Destination string
	Category    Category
	Vertical    string
	Partner     string
}
