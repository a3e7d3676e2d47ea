// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"
	"log/slog"

	"vertigo/internal/models"
)

// ScopeLister lists the items of one (type, vertical) scope. The file
// content source satisfies it.
type ScopeLister interface {
	List(ctx context.Context, t models.ContentType, vertical string) ([]models.ContentItem, error)
}

// Import copies every item src lists for the given verticals into the
// store, in a single transaction. Existing items with the same key are
// replaced; items missing from src are left alone. Returns the number of
// items written.
func (s *ContentStore) Import(ctx context.Context, src ScopeLister, verticals []models.Vertical) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("import begin: %w", err)
	}
	defer tx.Rollback()

	var n int
	for _, v := range verticals {
		for _, t := range v.ContentTypes {
			items, err := src.List(ctx, t, v.Slug)
			if err != nil {
				return 0, fmt.Errorf("import list %s/%s: %w", t, v.Slug, err)
			}
			for _, it := range items {
				if err := s.upsert(ctx, tx, it); err != nil {
					return 0, fmt.Errorf("import: %w", err)
				}
			}
			n += len(items)
			slog.Debug("content scope imported", "type", t, "vertical", v.Slug, "items", len(items))
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("import commit: %w", err)
	}
	slog.Info("content imported", "items", n)
	return n, nil
}
