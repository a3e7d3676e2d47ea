// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "strings"

// Theme holds the branding a vertical renders with.
type Theme struct {
	PrimaryColor string `json:"primary_color,omitempty"`
	AccentColor  string `json:"accent_color,omitempty"`
	Logo         string `json:"logo,omitempty"`
}

// Vertical is a themed sub-site sharing the platform. Verticals are loaded
// once at start-up and never modified.
type Vertical struct {
	Slug         string        `json:"slug"`
	DisplayName  string        `json:"display_name"`
	Tagline      string        `json:"tagline,omitempty"`
	Theme        Theme         `json:"theme"`
	ContentTypes []ContentType `json:"content_types"`
	ChangeFreq   string        `json:"change_freq,omitempty"`
}

// Publishes reports whether the vertical has pages of the given type.
func (v *Vertical) Publishes(t ContentType) bool {
	for _, ct := range v.ContentTypes {
		if ct == t {
			return true
		}
	}
	return false
}

// ExcludedPrefixes are the path prefixes reserved for non-public routes.
// They are never listed in the sitemap and no vertical may claim one.
var ExcludedPrefixes = []string{"/admin/", "/api/"}

// Reserved reports whether a vertical slug would place its pages under one
// of the ExcludedPrefixes.
func Reserved(slug string) bool {
	for _, prefix := range ExcludedPrefixes {
		if strings.Trim(prefix, "/") == slug {
			return true
		}
	}
	return false
}
