package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAffiliateRedirect(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name     string
		target   string
		status   int
		location string
	}{
		{
			name:     "hotel",
			target:   "/api/affiliate?destination=paris&category=hotel",
			status:   http.StatusFound,
			location: "https://stayfinder.example/search?q=paris",
		},
		{
			name:     "no category picks highest priority",
			target:   "/api/affiliate?destination=rome",
			status:   http.StatusFound,
			location: "https://stayfinder.example/search?q=rome",
		},
		{
			name:     "pinned partner",
			target:   "/api/affiliate?destination=rome&vertical=budget-travel&partner=tourly",
			status:   http.StatusFound,
			location: "https://tourly.example/rome?ref=budget-travel",
		},
		{
			name:     "pinned partner without category falls through",
			target:   "/api/affiliate?destination=rome&category=hotel&partner=tourly",
			status:   http.StatusFound,
			location: "https://stayfinder.example/search?q=rome",
		},
		{
			name:   "no partner serves flights",
			target: "/api/affiliate?destination=rome&category=flight",
			status: http.StatusNotFound,
		},
		{
			name:   "unknown category",
			target: "/api/affiliate?destination=rome&category=cars",
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.get(t, tt.target)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, tt.location, rec.Header().Get("Location"))
			if tt.status != http.StatusBadRequest {
				assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
			}
		})
	}
}
