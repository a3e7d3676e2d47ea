// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "errors"

var (
	// ErrNotFound marks an expected absence: unknown vertical, content item,
	// or no affiliate link available. It is never logged as an error.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput marks a malformed enum value or parameter supplied by
	// the caller.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSourceUnavailable marks a content source that could not be read.
	// It is never treated as an empty result.
	ErrSourceUnavailable = errors.New("content source unavailable")
)
