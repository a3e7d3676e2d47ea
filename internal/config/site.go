// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"vertigo/internal/models"
)

// Site is the configuration snapshot of the verticals and affiliate
// partners. It is loaded once at startup and never mutated.
type Site struct {
	Verticals []models.Vertical
	Partners  []models.AffiliatePartner
}

type siteFile struct {
	Verticals []verticalEntry `yaml:"verticals"`
	Partners  []partnerEntry  `yaml:"partners"`
}

type verticalEntry struct {
	Slug         string   `yaml:"slug"`
	DisplayName  string   `yaml:"display_name"`
	Tagline      string   `yaml:"tagline"`
	Theme        theme    `yaml:"theme"`
	ContentTypes []string `yaml:"content_types"`
	ChangeFreq   string   `yaml:"change_freq"`
}

type theme struct {
	PrimaryColor string `yaml:"primary_color"`
	AccentColor  string `yaml:"accent_color"`
	Logo         string `yaml:"logo"`
}

type partnerEntry struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Categories  []string `yaml:"categories"`
	URLTemplate string   `yaml:"url_template"`
	Priority    int      `yaml:"priority"`
}

var changeFreqs = map[string]struct{}{
	"always": {}, "hourly": {}, "daily": {}, "weekly": {},
	"monthly": {}, "yearly": {}, "never": {},
}

// LoadSite reads and validates the site file at path.
func LoadSite(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read site file: %w", err)
	}
	site, err := ParseSite(data)
	if err != nil {
		return nil, fmt.Errorf("site file %s: %w", path, err)
	}
	return site, nil
}

// ParseSite decodes a site document. Unknown keys, content types, categories
// and change frequencies are rejected.
func ParseSite(data []byte) (*Site, error) {
	var raw siteFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: decode site: %w", models.ErrInvalidInput, err)
	}
	if len(raw.Verticals) == 0 {
		return nil, fmt.Errorf("%w: at least one vertical is required", models.ErrInvalidInput)
	}

	site := &Site{
		Verticals: make([]models.Vertical, 0, len(raw.Verticals)),
		Partners:  make([]models.AffiliatePartner, 0, len(raw.Partners)),
	}
	for _, v := range raw.Verticals {
		vert, err := v.toModel()
		if err != nil {
			return nil, err
		}
		site.Verticals = append(site.Verticals, vert)
	}
	for _, p := range raw.Partners {
		partner, err := p.toModel()
		if err != nil {
			return nil, err
		}
		site.Partners = append(site.Partners, partner)
	}
	return site, nil
}

func (v verticalEntry) toModel() (models.Vertical, error) {
	out := models.Vertical{
		Slug:        v.Slug,
		DisplayName: v.DisplayName,
		Tagline:     v.Tagline,
		Theme: models.Theme{
			PrimaryColor: v.Theme.PrimaryColor,
			AccentColor:  v.Theme.AccentColor,
			Logo:         v.Theme.Logo,
		},
		ChangeFreq: v.ChangeFreq,
	}
	if out.DisplayName == "" {
		out.DisplayName = v.Slug
	}
	for _, s := range v.ContentTypes {
		t, err := models.ParseContentType(s)
		if err != nil {
			return models.Vertical{}, fmt.Errorf("vertical %q: %w", v.Slug, err)
		}
		out.ContentTypes = append(out.ContentTypes, t)
	}
	if v.ChangeFreq != "" {
		if _, ok := changeFreqs[v.ChangeFreq]; !ok {
			return models.Vertical{}, fmt.Errorf("%w: vertical %q: unknown change_freq %q", models.ErrInvalidInput, v.Slug, v.ChangeFreq)
		}
	}
	return out, nil
}

func (p partnerEntry) toModel() (models.AffiliatePartner, error) {
	out := models.AffiliatePartner{
		ID:          p.ID,
		Name:        p.Name,
		URLTemplate: p.URLTemplate,
		Priority:    p.Priority,
	}
	for _, s := range p.Categories {
		c, err := models.ParseCategory(s)
		if err != nil {
			return models.AffiliatePartner{}, fmt.Errorf("partner %q: %w", p.ID, err)
		}
		out.Categories = append(out.Categories, c)
	}
	return out, nil
}
