// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package filesource reads content items from a directory tree of Markdown
// files with frontmatter, laid out as
//
//	<root>/<vertical>/<segment>/<slug>.md
//
// where segment is the content type's URL segment ("destinations", "blog",
// "guides") or its canonical name.
package filesource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"

	"vertigo/internal/models"
	"vertigo/internal/slug"
)

// Ext is the file extension of content files.
const Ext = ".md"

// Source serves content items from a directory tree. It keeps no state
// between calls; caching is the content store's job.
type Source struct {
	root string
}

// New creates a Source rooted at dir.
func New(dir string) *Source {
	return &Source{root: dir}
}

// Root returns the content directory.
func (s *Source) Root() string {
	return s.root
}

// meta is the frontmatter block of a content file. Dates are decoded as
// strings and parsed by models.ParseDate.
type meta struct {
	Title          string   `yaml:"title" toml:"title" json:"title"`
	Description    string   `yaml:"description" toml:"description" json:"description"`
	SEOTitle       string   `yaml:"seo_title" toml:"seo_title" json:"seo_title"`
	SEODescription string   `yaml:"seo_description" toml:"seo_description" json:"seo_description"`
	Keywords       []string `yaml:"keywords" toml:"keywords" json:"keywords"`
	Image          string   `yaml:"image" toml:"image" json:"image"`
	Date           string   `yaml:"date" toml:"date" json:"date"`
	Author         string   `yaml:"author" toml:"author" json:"author"`
	Category       string   `yaml:"category" toml:"category" json:"category"`
	Tags           []string `yaml:"tags" toml:"tags" json:"tags"`
}

// List returns every item of type t in the vertical's directory, sorted by
// slug. A missing directory is an empty scope. Files that fail to parse are
// logged and skipped.
func (s *Source) List(ctx context.Context, t models.ContentType, vertical string) ([]models.ContentItem, error) {
	dir, err := s.scopeDir(t, vertical)
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return []models.ContentItem{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read content dir: %w", err)
	}

	items := make([]models.ContentItem, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || filepath.Ext(e.Name()) != Ext {
			continue
		}
		item, err := readItem(filepath.Join(dir, e.Name()), t, vertical)
		if err != nil {
			slog.Warn("content file skipped", "path", filepath.Join(dir, e.Name()), "error", err)
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Slug < items[j].Slug })
	return items, nil
}

// Get reads a single item. A missing file is reported as nil, nil, and so
// is a file List would skip.
func (s *Source) Get(ctx context.Context, t models.ContentType, vertical, itemSlug string) (*models.ContentItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !slug.Valid(itemSlug) {
		return nil, nil
	}
	dir, err := s.scopeDir(t, vertical)
	if err != nil || dir == "" {
		return nil, err
	}

	path := filepath.Join(dir, itemSlug+Ext)
	item, err := readItem(path, t, vertical)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if errors.Is(err, models.ErrInvalidInput) {
		slog.Warn("content file skipped", "path", path, "error", err)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// scopeDir resolves the directory of a (type, vertical) scope, preferring
// the URL segment over the type name. It returns "" when neither exists.
func (s *Source) scopeDir(t models.ContentType, vertical string) (string, error) {
	if !slug.Valid(vertical) {
		return "", nil
	}
	for _, name := range []string{t.Segment(), string(t)} {
		dir := filepath.Join(s.root, vertical, name)
		info, err := os.Stat(dir)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("stat content dir: %w", err)
		}
		if info.IsDir() {
			return dir, nil
		}
	}
	return "", nil
}

// readItem parses one content file into an item of the given scope.
func readItem(path string, t models.ContentType, vertical string) (models.ContentItem, error) {
	itemSlug := strings.TrimSuffix(filepath.Base(path), Ext)
	if !slug.Valid(itemSlug) {
		return models.ContentItem{}, fmt.Errorf("%w: file name %q is not a valid slug (try %q)",
			models.ErrInvalidInput, filepath.Base(path), slug.Generate(itemSlug)+Ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.ContentItem{}, fmt.Errorf("read content file: %w", err)
	}
	return Parse(data, t, vertical, itemSlug)
}

// Parse decodes a content document (frontmatter plus Markdown body) into an
// item keyed by t, vertical and itemSlug.
func Parse(data []byte, t models.ContentType, vertical, itemSlug string) (models.ContentItem, error) {
	var m meta
	body, err := frontmatter.Parse(bytes.NewReader(data), &m)
	if err != nil {
		return models.ContentItem{}, fmt.Errorf("%w: parse frontmatter: %w", models.ErrInvalidInput, err)
	}
	date, err := models.ParseDate(m.Date)
	if err != nil {
		return models.ContentItem{}, err
	}
	if strings.TrimSpace(m.Title) == "" {
		return models.ContentItem{}, fmt.Errorf("%w: missing title", models.ErrInvalidInput)
	}

	return models.ContentItem{
		ID:       models.ItemID(t, vertical, itemSlug),
		Type:     t,
		Vertical: vertical,
		Slug:     itemSlug,
		Frontmatter: models.Frontmatter{
			Title:          m.Title,
			Description:    m.Description,
			SEOTitle:       m.SEOTitle,
			SEODescription: m.SEODescription,
			Keywords:       nonNil(m.Keywords),
			Image:          m.Image,
			Date:           date,
			Author:         m.Author,
			Category:       m.Category,
			Tags:           nonNil(m.Tags),
		},
		Body: strings.TrimLeft(string(body), "\n"),
	}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
