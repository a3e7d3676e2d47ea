// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContentType distinguishes the kinds of content a vertical publishes.
type ContentType string

const (
	ContentTypeDestination ContentType = "destination"
	ContentTypeBlog        ContentType = "blog"
	ContentTypeGuide       ContentType = "guide"
)

// ContentTypes lists every content type in the order pages are enumerated.
var ContentTypes = []ContentType{ContentTypeDestination, ContentTypeBlog, ContentTypeGuide}

// contentTypeSegments maps each content type to the URL path segment used
// by public pages and by the ?type= query parameter.
var contentTypeSegments = map[ContentType]string{
	ContentTypeDestination: "destinations",
	ContentTypeBlog:        "blog",
	ContentTypeGuide:       "guides",
}

// Segment returns the URL path segment for the content type.
func (t ContentType) Segment() string {
	return contentTypeSegments[t]
}

// Valid reports whether t is one of the known content types.
func (t ContentType) Valid() bool {
	_, ok := contentTypeSegments[t]
	return ok
}

// ParseContentType accepts either the canonical type name ("destination")
// or its URL segment ("destinations"). Unknown values are rejected.
func ParseContentType(s string) (ContentType, error) {
	s = strings.TrimSpace(s)
	for t, seg := range contentTypeSegments {
		if s == string(t) || s == seg {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown content type %q", ErrInvalidInput, s)
}

// Frontmatter is the metadata block that accompanies every content item.
type Frontmatter struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	SEOTitle       string     `json:"seo_title,omitempty"`
	SEODescription string     `json:"seo_description,omitempty"`
	Keywords       []string   `json:"keywords"`
	Image          string     `json:"image,omitempty"`
	Date           *time.Time `json:"date,omitempty"`
	Author         string     `json:"author,omitempty"`
	Category       string     `json:"category,omitempty"`
	Tags           []string   `json:"tags"`
}

// ContentItem is a published destination, blog post, or guide. The triple
// (Type, Vertical, Slug) is unique; ID is derived from it.
type ContentItem struct {
	ID          uuid.UUID   `json:"id"`
	Type        ContentType `json:"type"`
	Vertical    string      `json:"vertical"`
	Slug        string      `json:"slug"`
	Frontmatter Frontmatter `json:"frontmatter"`
	Body        string      `json:"body"`
}

// itemNamespace seeds the name-based UUIDs of content items so every source
// produces the same ID for the same key.
var itemNamespace = uuid.MustParse("6f1c2a0e-3b7d-5e8f-9a41-0c2d7b9e4f13")

// ItemID returns the deterministic ID of the item keyed by type, vertical
// and slug.
func ItemID(t ContentType, vertical, slug string) uuid.UUID {
	return uuid.NewSHA1(itemNamespace, []byte(string(t)+"/"+vertical+"/"+slug))
}

// Key returns the "type/vertical/slug" form of the item's unique key.
func (c *ContentItem) Key() string {
	return string(c.Type) + "/" + c.Vertical + "/" + c.Slug
}

// Path returns the public URL path of the item, e.g. "/budget-travel/blog/paris/".
func (c *ContentItem) Path() string {
	return "/" + c.Vertical + "/" + c.Type.Segment() + "/" + c.Slug + "/"
}

// DateString formats the item date as YYYY-MM-DD, or "" when undated.
func (c *ContentItem) DateString() string {
	if c.Frontmatter.Date == nil {
		return ""
	}
	return c.Frontmatter.Date.Format(DateLayout)
}

// DateLayout is the calendar-date format used in frontmatter and sitemaps.
const DateLayout = "2006-01-02"

// ParseDate parses a frontmatter date. Empty input yields nil. Both
// YYYY-MM-DD and RFC 3339 timestamps are accepted.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{DateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, s)
}

// Newer reports whether a sorts before b in date-descending order.
// Undated items sort after dated ones. Equal dates report false.
func Newer(a, b *ContentItem) bool {
	da, db := a.Frontmatter.Date, b.Frontmatter.Date
	if da == nil {
		return false
	}
	if db == nil {
		return true
	}
	return da.After(*db)
}

// SameDate reports whether two items share the same date (or are both undated).
func SameDate(a, b *ContentItem) bool {
	da, db := a.Frontmatter.Date, b.Frontmatter.Date
	if da == nil || db == nil {
		return da == nil && db == nil
	}
	return da.Equal(*db)
}
