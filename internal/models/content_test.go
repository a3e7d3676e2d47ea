// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"errors"
	"testing"
	"time"
)

// TestParseContentType verifies that both canonical names and URL segments
// resolve, and that anything else is rejected as invalid input.
func TestParseContentType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ContentType
		wantErr bool
	}{
		{name: "destination", input: "destination", want: ContentTypeDestination},
		{name: "destinations segment", input: "destinations", want: ContentTypeDestination},
		{name: "blog", input: "blog", want: ContentTypeBlog},
		{name: "guide", input: "guide", want: ContentTypeGuide},
		{name: "guides segment", input: "guides", want: ContentTypeGuide},
		{name: "surrounding spaces", input: "  blog ", want: ContentTypeBlog},
		{name: "empty", input: "", wantErr: true},
		{name: "uppercase", input: "BLOG", wantErr: true},
		{name: "unknown", input: "podcasts", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseContentType(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("ParseContentType(%q) error = %v, want ErrInvalidInput", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseContentType(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseContentType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestContentTypeSegment verifies the explicit type → path segment table.
func TestContentTypeSegment(t *testing.T) {
	want := map[ContentType]string{
		ContentTypeDestination: "destinations",
		ContentTypeBlog:        "blog",
		ContentTypeGuide:       "guides",
	}
	for ct, seg := range want {
		if got := ct.Segment(); got != seg {
			t.Errorf("%s.Segment() = %q, want %q", ct, got, seg)
		}
	}
	if ContentType("video").Valid() {
		t.Error("unknown type should not be valid")
	}
}

func TestItemIDDeterministic(t *testing.T) {
	a := ItemID(ContentTypeBlog, "budget-travel", "paris-on-a-budget")
	b := ItemID(ContentTypeBlog, "budget-travel", "paris-on-a-budget")
	if a != b {
		t.Fatalf("ItemID not deterministic: %s != %s", a, b)
	}
	if c := ItemID(ContentTypeGuide, "budget-travel", "paris-on-a-budget"); c == a {
		t.Error("different types must produce different IDs")
	}
}

func TestContentItemPath(t *testing.T) {
	item := &ContentItem{Type: ContentTypeDestination, Vertical: "budget-travel", Slug: "lisbon"}
	if got, want := item.Path(), "/budget-travel/destinations/lisbon/"; got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
	if got, want := item.Key(), "destination/budget-travel/lisbon"; got != want {
		t.Errorf("Key() = %q, want %q", got, want)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-01")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Format(DateLayout) != "2024-03-01" {
		t.Errorf("got %s", d.Format(DateLayout))
	}

	d, err = ParseDate("")
	if err != nil || d != nil {
		t.Errorf("empty date: got %v, %v; want nil, nil", d, err)
	}

	if _, err := ParseDate("March 1st"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad date error = %v, want ErrInvalidInput", err)
	}
}

// TestNewer verifies date-descending ordering with undated items last.
func TestNewer(t *testing.T) {
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	a := &ContentItem{Frontmatter: Frontmatter{Date: &late}}
	b := &ContentItem{Frontmatter: Frontmatter{Date: &early}}
	undated := &ContentItem{}

	if !Newer(a, b) || Newer(b, a) {
		t.Error("later date should sort first")
	}
	if !Newer(b, undated) || Newer(undated, b) {
		t.Error("dated items should sort before undated ones")
	}
	if Newer(undated, undated) || !SameDate(undated, &ContentItem{}) {
		t.Error("two undated items should compare equal")
	}
}
