package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"vertigo/internal/models"
)

// Query limits.
const (
	maxListLimit     = 500
	defaultRelated   = 3
	maxRelatedLimit  = 20
	maxQueryValueLen = 200
	pageRelatedLimit = 3
)

// parseLimit reads an optional non-negative integer. Empty yields def and
// values above max are clamped.
func parseLimit(raw string, def, max int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: limit must be a non-negative integer", models.ErrInvalidInput)
	}
	return min(n, max), nil
}

// requireType parses a required content type parameter.
func requireType(q url.Values, key string) (models.ContentType, error) {
	raw := q.Get(key)
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("%w: %s is required", models.ErrInvalidInput, key)
	}
	return models.ParseContentType(raw)
}

// queryValue returns a trimmed parameter, rejecting oversized values.
func queryValue(q url.Values, key string) (string, error) {
	v := strings.TrimSpace(q.Get(key))
	if len(v) > maxQueryValueLen {
		return "", fmt.Errorf("%w: %s is too long", models.ErrInvalidInput, key)
	}
	return v, nil
}
