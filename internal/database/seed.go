package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"vertigo/internal/models"
)

// seedItem is a sample content row for development databases.
type seedItem struct {
	typ         models.ContentType
	slug        string
	title       string
	description string
	date        string
	category    string
	keywords    []string
	tags        []string
	body        string
}

// seedVertical is the vertical the sample content belongs to.
const seedVertical = "budget-travel"

var seedItems = []seedItem{
	{
		typ: models.ContentTypeDestination, slug: "paris", title: "Paris",
		description: "Museums, markets and metro passes without the sticker shock.",
		date:        "2024-03-01", category: "city",
		keywords: []string{"louvre", "metro"}, tags: []string{"france", "city"},
		body: "# Paris\n\nStay in the 11th, walk the canals, picnic by the Seine.\n",
	},
	{
		typ: models.ContentTypeDestination, slug: "rome", title: "Rome",
		description: "Ancient ruins and pizza al taglio on a tight budget.",
		date:        "2024-02-10", category: "city",
		keywords: []string{"colosseum"}, tags: []string{"italy", "city"},
		body: "# Rome\n\nBuy the Roma Pass and eat where the locals queue.\n",
	},
	{
		typ: models.ContentTypeBlog, slug: "paris-on-a-budget", title: "Paris on a Budget",
		description: "Seven days in Paris for under 600 euros.",
		date:        "2024-03-05", category: "itinerary",
		keywords: []string{"metro"}, tags: []string{"france", "budget"},
		body: "Day one starts with a free walking tour.\n",
	},
	{
		typ: models.ContentTypeBlog, slug: "rome-on-a-budget", title: "Rome on a Budget",
		description: "Free churches, cheap eats and the best gelato.",
		date:        "2024-02-20", category: "itinerary",
		tags: []string{"italy", "budget"},
		body: "Most of Rome's best sights cost nothing.\n",
	},
	{
		typ: models.ContentTypeGuide, slug: "hostel-basics", title: "Hostel Basics",
		description: "What to pack and how to pick a bed.",
		tags:        []string{"budget", "packing"},
		body:        "Bring a padlock and earplugs.\n",
	},
}

// Seed populates an empty content table with sample items for development.
// It does nothing when any content already exists.
func Seed(ctx context.Context, db *sql.DB, d Dialect) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM content_items").Scan(&count); err != nil {
		return fmt.Errorf("seed check content: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	query := Rebind(d, `
		INSERT INTO content_items (id, type, vertical, slug, title, description,
		                           keywords, published_on, category, tags, body, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`)
	for _, it := range seedItems {
		keywords, err := json.Marshal(nonNil(it.keywords))
		if err != nil {
			return fmt.Errorf("seed encode keywords: %w", err)
		}
		tags, err := json.Marshal(nonNil(it.tags))
		if err != nil {
			return fmt.Errorf("seed encode tags: %w", err)
		}
		var published sql.NullString
		if it.date != "" {
			published = sql.NullString{String: it.date + "T00:00:00Z", Valid: true}
		}
		if _, err := tx.ExecContext(ctx, query,
			models.ItemID(it.typ, seedVertical, it.slug).String(), string(it.typ), seedVertical, it.slug,
			it.title, it.description, string(keywords), published, it.category, string(tags), it.body, now,
		); err != nil {
			return fmt.Errorf("seed insert %s/%s: %w", it.typ, it.slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}
	slog.Info("database seeded with sample content", "vertical", seedVertical, "items", len(seedItems))
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
