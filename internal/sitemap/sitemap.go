// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package sitemap builds the sitemap.xml and robots.txt surfaces from the
// vertical registry and the content store.
package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path"
	"strconv"
	"strings"

	"vertigo/internal/models"
	"vertigo/internal/vertical"
	"vertigo/internal/walk"
)

// Namespace is the sitemaps.org schema namespace.
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ExcludedPrefixes are never listed in the sitemap and are disallowed in
// robots.txt.
var ExcludedPrefixes = models.ExcludedPrefixes

// Change frequencies used when a vertical does not configure its own.
const (
	DefaultChangeFreq = "weekly"
	RootChangeFreq    = "daily"
)

// Lister is the part of the content store the builder needs.
type Lister interface {
	List(ctx context.Context, t models.ContentType, vertical string, limit int) ([]models.ContentItem, error)
}

// URL is one <url> entry.
type URL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"-"`
}

type xmlURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []xmlURL `xml:"url"`
}

// Result holds the sitemap entries and the verticals that failed.
type Result struct {
	URLs     []URL
	Failures []walk.Failure
}

// Builder produces sitemap entries for a site rooted at BaseURL.
type Builder struct {
	baseURL   string
	verticals *vertical.Registry
	content   Lister
}

// NewBuilder creates a Builder. baseURL is the public site origin, e.g.
// "https://example.com".
func NewBuilder(baseURL string, verticals *vertical.Registry, content Lister) *Builder {
	return &Builder{
		baseURL:   strings.TrimRight(baseURL, "/"),
		verticals: verticals,
		content:   content,
	}
}

// Build emits the site root followed by, for each vertical in registry
// order, its home page, its listing pages and every item page. Failing
// verticals are logged and reported without affecting the others.
func (b *Builder) Build(ctx context.Context) Result {
	res := walk.Verticals(ctx, "sitemap build", b.verticals.All(), walk.DefaultParallelism, b.walkVertical)
	urls := make([]URL, 0, len(res.Items)+1)
	urls = append(urls, URL{Loc: b.loc(), ChangeFreq: RootChangeFreq, Priority: 1.0})
	for _, u := range res.Items {
		if b.Excluded(u.Loc) {
			slog.Warn("sitemap entry under excluded prefix dropped", "loc", u.Loc)
			continue
		}
		urls = append(urls, u)
	}
	return Result{URLs: urls, Failures: res.Failures}
}

func (b *Builder) walkVertical(ctx context.Context, v models.Vertical) ([]URL, error) {
	freq := v.ChangeFreq
	if freq == "" {
		freq = DefaultChangeFreq
	}

	urls := []URL{{Loc: b.loc(v.Slug), ChangeFreq: freq, Priority: 0.9}}
	for _, t := range v.ContentTypes {
		items, err := b.content.List(ctx, t, v.Slug, 0)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", t, err)
		}
		urls = append(urls, URL{Loc: b.loc(v.Slug, t.Segment()), ChangeFreq: freq, Priority: 0.8})
		for _, it := range items {
			urls = append(urls, URL{
				Loc:        b.loc(v.Slug, t.Segment(), it.Slug),
				LastMod:    it.DateString(),
				ChangeFreq: freq,
				Priority:   itemPriority(t),
			})
		}
	}
	return urls, nil
}

func itemPriority(t models.ContentType) float64 {
	if t == models.ContentTypeDestination {
		return 0.7
	}
	return 0.6
}

// loc builds an absolute URL for a public route. Segments are path-escaped
// individually and the result always ends in a slash.
func (b *Builder) loc(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	p := "/" + path.Join(escaped...)
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return b.baseURL + p
}

// Excluded reports whether loc falls under an excluded prefix.
func (b *Builder) Excluded(loc string) bool {
	p := strings.TrimPrefix(loc, b.baseURL)
	for _, prefix := range ExcludedPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// WriteXML renders urls as a sitemaps.org urlset document.
func WriteXML(w io.Writer, urls []URL) error {
	set := urlSet{XMLNS: Namespace, URLs: make([]xmlURL, len(urls))}
	for i, u := range urls {
		set.URLs[i] = xmlURL{
			Loc:        u.Loc,
			LastMod:    u.LastMod,
			ChangeFreq: u.ChangeFreq,
			Priority:   strconv.FormatFloat(u.Priority, 'f', 1, 64),
		}
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write sitemap header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("encode sitemap: %w", err)
	}
	return nil
}

// Robots renders robots.txt for the site.
func (b *Builder) Robots() string {
	var sb strings.Builder
	sb.WriteString("User-agent: *\n")
	sb.WriteString("Allow: /\n")
	for _, prefix := range ExcludedPrefixes {
		sb.WriteString("Disallow: " + prefix + "\n")
	}
	sb.WriteString("\nSitemap: " + b.baseURL + "/sitemap.xml\n")
	return sb.String()
}
