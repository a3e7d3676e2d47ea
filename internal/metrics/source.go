package metrics

import (
	"context"
	"time"

	"vertigo/internal/content"
	"vertigo/internal/models"
)

// instrumentedSource counts and times the calls of a content source.
type instrumentedSource struct {
	next content.Source
	m    *Metrics
}

// InstrumentSource wraps src so every List and Get is recorded.
func (m *Metrics) InstrumentSource(src content.Source) content.Source {
	return &instrumentedSource{next: src, m: m}
}

func (s *instrumentedSource) List(ctx context.Context, t models.ContentType, vertical string) ([]models.ContentItem, error) {
	start := time.Now()
	items, err := s.next.List(ctx, t, vertical)
	s.observe("list", start, err)
	return items, err
}

func (s *instrumentedSource) Get(ctx context.Context, t models.ContentType, vertical, slug string) (*models.ContentItem, error) {
	start := time.Now()
	item, err := s.next.Get(ctx, t, vertical, slug)
	s.observe("get", start, err)
	return item, err
}

func (s *instrumentedSource) observe(op string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	s.m.fetches.WithLabelValues(op, result).Inc()
	s.m.fetchDur.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
