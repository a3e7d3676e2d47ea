// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package walk

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"vertigo/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func verticals(slugs ...string) []models.Vertical {
	out := make([]models.Vertical, len(slugs))
	for i, s := range slugs {
		out[i] = models.Vertical{Slug: s}
	}
	return out
}

// TestVerticalsKeepsOrder verifies output follows vertical order even when
// later verticals finish first.
func TestVerticalsKeepsOrder(t *testing.T) {
	delays := map[string]time.Duration{"a": 30 * time.Millisecond, "b": 10 * time.Millisecond, "c": 0}

	res := Verticals(context.Background(), "test", verticals("a", "b", "c"), 3,
		func(_ context.Context, v models.Vertical) ([]string, error) {
			time.Sleep(delays[v.Slug])
			return []string{v.Slug + "1", v.Slug + "2"}, nil
		})

	if !res.OK() {
		t.Fatalf("unexpected failures: %v", res.Failures)
	}
	want := []string{"a1", "a2", "b1", "b2", "c1", "c2"}
	if diff := cmp.Diff(want, res.Items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

// TestVerticalsIsolatesFailures verifies a failing vertical is recorded and
// its siblings still complete.
func TestVerticalsIsolatesFailures(t *testing.T) {
	boom := errors.New("listing failed")
	var calls atomic.Int32

	res := Verticals(context.Background(), "test", verticals("ok-1", "broken", "panics", "ok-2"), 2,
		func(_ context.Context, v models.Vertical) ([]string, error) {
			calls.Add(1)
			switch v.Slug {
			case "broken":
				return []string{"partial"}, boom
			case "panics":
				panic("unexpected")
			}
			return []string{v.Slug}, nil
		})

	if calls.Load() != 4 {
		t.Errorf("fn called %d times, want 4", calls.Load())
	}
	if diff := cmp.Diff([]string{"ok-1", "ok-2"}, res.Items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	if len(res.Failures) != 2 {
		t.Fatalf("got %d failures, want 2", len(res.Failures))
	}
	if res.Failures[0].Vertical != "broken" || !errors.Is(res.Failures[0], boom) {
		t.Errorf("failure[0] = %v, want broken: %v", res.Failures[0], boom)
	}
	if res.Failures[1].Vertical != "panics" {
		t.Errorf("failure[1] vertical = %q, want panics", res.Failures[1].Vertical)
	}
}

func TestVerticalsEmpty(t *testing.T) {
	res := Verticals(context.Background(), "test", nil, 0,
		func(context.Context, models.Vertical) ([]int, error) { return []int{1}, nil })
	if len(res.Items) != 0 || !res.OK() {
		t.Errorf("empty walk = %+v", res)
	}
}
