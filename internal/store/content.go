// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vertigo/internal/database"
	"vertigo/internal/models"
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// ContentStore serves content items from the content_items table. It
// implements the content package's Source interface.
type ContentStore struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewContentStore creates a new ContentStore with the given database connection.
func NewContentStore(db *sql.DB, dialect database.Dialect) *ContentStore {
	return &ContentStore{db: db, dialect: dialect}
}

const contentColumns = `id, type, vertical, slug, title, description, seo_title, seo_description,
	keywords, image, published_on, author, category, tags, body`

// List returns every item of type t in vertical, ordered by slug.
func (s *ContentStore) List(ctx context.Context, t models.ContentType, vertical string) ([]models.ContentItem, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT `+contentColumns+`
		FROM content_items
		WHERE type = $1 AND vertical = $2
		ORDER BY slug
	`), string(t), vertical)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	defer rows.Close()

	items := []models.ContentItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	return items, nil
}

// Get retrieves a single item by its key. Returns nil if not found.
func (s *ContentStore) Get(ctx context.Context, t models.ContentType, vertical, slug string) (*models.ContentItem, error) {
	row := s.db.QueryRowContext(ctx, s.q(`
		SELECT `+contentColumns+`
		FROM content_items
		WHERE type = $1 AND vertical = $2 AND slug = $3
	`), string(t), vertical, slug)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Upsert inserts item or replaces the stored item with the same key.
func (s *ContentStore) Upsert(ctx context.Context, item models.ContentItem) error {
	return s.upsert(ctx, s.db, item)
}

func (s *ContentStore) upsert(ctx context.Context, ex execer, item models.ContentItem) error {
	if !item.Type.Valid() || item.Vertical == "" || item.Slug == "" {
		return fmt.Errorf("%w: incomplete content key %q", models.ErrInvalidInput, item.Key())
	}
	keywords, err := json.Marshal(nonNil(item.Frontmatter.Keywords))
	if err != nil {
		return fmt.Errorf("encode keywords: %w", err)
	}
	tags, err := json.Marshal(nonNil(item.Frontmatter.Tags))
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	var published sql.NullString
	if d := item.Frontmatter.Date; d != nil {
		published = sql.NullString{String: d.UTC().Format(time.RFC3339), Valid: true}
	}

	fm := item.Frontmatter
	_, err = ex.ExecContext(ctx, s.q(`
		INSERT INTO content_items (id, type, vertical, slug, title, description, seo_title,
		                           seo_description, keywords, image, published_on, author,
		                           category, tags, body, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (type, vertical, slug) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			seo_title = excluded.seo_title,
			seo_description = excluded.seo_description,
			keywords = excluded.keywords,
			image = excluded.image,
			published_on = excluded.published_on,
			author = excluded.author,
			category = excluded.category,
			tags = excluded.tags,
			body = excluded.body,
			updated_at = excluded.updated_at
	`),
		models.ItemID(item.Type, item.Vertical, item.Slug).String(), string(item.Type), item.Vertical, item.Slug,
		fm.Title, fm.Description, fm.SEOTitle, fm.SEODescription, string(keywords), fm.Image,
		published, fm.Author, fm.Category, string(tags), item.Body, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert content %s: %w", item.Key(), err)
	}
	return nil
}

// Delete removes the item keyed by (t, vertical, slug). It reports whether
// a row was removed.
func (s *ContentStore) Delete(ctx context.Context, t models.ContentType, vertical, slug string) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.q(`
		DELETE FROM content_items WHERE type = $1 AND vertical = $2 AND slug = $3
	`), string(t), vertical, slug)
	if err != nil {
		return false, fmt.Errorf("delete content: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete content: %w", err)
	}
	return n > 0, nil
}

// Count returns the number of stored items.
func (s *ContentStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM content_items").Scan(&n); err != nil {
		return 0, fmt.Errorf("count content: %w", err)
	}
	return n, nil
}

func (s *ContentStore) q(query string) string {
	return database.Rebind(s.dialect, query)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(sc scanner) (models.ContentItem, error) {
	var (
		item           models.ContentItem
		id, typ        string
		keywords, tags string
		published      sql.NullString
	)
	fm := &item.Frontmatter
	if err := sc.Scan(
		&id, &typ, &item.Vertical, &item.Slug, &fm.Title, &fm.Description, &fm.SEOTitle,
		&fm.SEODescription, &keywords, &fm.Image, &published, &fm.Author, &fm.Category, &tags, &item.Body,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return item, err
		}
		return item, fmt.Errorf("scan content: %w", err)
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return item, fmt.Errorf("scan content id: %w", err)
	}
	item.ID = parsed
	item.Type = models.ContentType(typ)
	if err := json.Unmarshal([]byte(keywords), &fm.Keywords); err != nil {
		return item, fmt.Errorf("decode keywords of %s: %w", item.Slug, err)
	}
	if err := json.Unmarshal([]byte(tags), &fm.Tags); err != nil {
		return item, fmt.Errorf("decode tags of %s: %w", item.Slug, err)
	}
	if published.Valid {
		if fm.Date, err = models.ParseDate(published.String); err != nil {
			return item, fmt.Errorf("decode date of %s: %w", item.Slug, err)
		}
	}
	return item, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
