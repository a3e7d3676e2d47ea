// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package walk runs a per-vertical function over every vertical and folds
// the outcomes into successes plus a side list of failures. One vertical
// failing never cancels or hides the others.
package walk

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"vertigo/internal/models"
)

// DefaultParallelism bounds how many verticals are walked at once.
const DefaultParallelism = 4

// Failure records one vertical whose walk failed.
type Failure struct {
	Vertical string
	Err      error
}

func (f Failure) Error() string {
	return fmt.Sprintf("vertical %s: %v", f.Vertical, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Outcome is the result of walking a single vertical.
type Outcome[T any] struct {
	Vertical string
	Items    []T
	Err      error
}

// Result folds the per-vertical outcomes in vertical order.
type Result[T any] struct {
	Items    []T
	Failures []Failure
}

// OK reports whether every vertical succeeded.
func (r Result[T]) OK() bool {
	return len(r.Failures) == 0
}

// Func produces the items for one vertical.
type Func[T any] func(ctx context.Context, v models.Vertical) ([]T, error)

// Verticals calls fn for each vertical with at most parallelism calls in
// flight. Items are concatenated in the order of verticals regardless of
// completion order. Failures are logged under op and returned alongside the
// successful items.
func Verticals[T any](ctx context.Context, op string, verticals []models.Vertical, parallelism int, fn Func[T]) Result[T] {
	if parallelism <= 0 {
		parallelism = DefaultParallelism
	}

	outcomes := make([]Outcome[T], len(verticals))
	var g errgroup.Group
	g.SetLimit(parallelism)
	for i, v := range verticals {
		g.Go(func() error {
			outcomes[i] = run(ctx, v, fn)
			return nil
		})
	}
	_ = g.Wait()

	var res Result[T]
	for _, o := range outcomes {
		if o.Err != nil {
			slog.Error(op+" failed for vertical", "vertical", o.Vertical, "error", o.Err)
			res.Failures = append(res.Failures, Failure{Vertical: o.Vertical, Err: o.Err})
			continue
		}
		res.Items = append(res.Items, o.Items...)
	}
	return res
}

// run isolates one vertical, turning a panic into a failed outcome.
func run[T any](ctx context.Context, v models.Vertical, fn Func[T]) (o Outcome[T]) {
	o.Vertical = v.Slug
	defer func() {
		if rec := recover(); rec != nil {
			o.Items = nil
			o.Err = fmt.Errorf("panic: %v", rec)
		}
	}()
	o.Items, o.Err = fn(ctx, v)
	return o
}
