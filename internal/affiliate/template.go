// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package affiliate

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	errMalformedTemplate = errors.New("malformed url template")
	errMissingField      = errors.New("missing template field")
)

// Template placeholders a partner URL may reference.
const (
	fieldDestination = "destination"
	fieldVertical    = "vertical"
	fieldCategory    = "category"
)

var knownFields = map[string]struct{}{
	fieldDestination: {},
	fieldVertical:    {},
	fieldCategory:    {},
}

// expand substitutes {field} placeholders in tmpl with values. Values placed
// before the query string are path-escaped; values after it are
// query-escaped. A placeholder with no value, an unknown placeholder, or
// unbalanced braces fails the whole template.
func expand(tmpl string, values map[string]string) (string, error) {
	var b strings.Builder
	inQuery := false
	rest := tmpl
	for rest != "" {
		open := strings.IndexAny(rest, "{}")
		if open == -1 {
			inQuery = inQuery || strings.Contains(rest, "?")
			b.WriteString(rest)
			break
		}
		if rest[open] == '}' {
			return "", fmt.Errorf("%w: unexpected '}' in %q", errMalformedTemplate, tmpl)
		}
		literal := rest[:open]
		inQuery = inQuery || strings.Contains(literal, "?")
		b.WriteString(literal)

		end := strings.IndexAny(rest[open+1:], "{}")
		if end == -1 || rest[open+1+end] != '}' {
			return "", fmt.Errorf("%w: unclosed placeholder in %q", errMalformedTemplate, tmpl)
		}
		name := rest[open+1 : open+1+end]
		if _, ok := knownFields[name]; !ok {
			return "", fmt.Errorf("%w: unknown placeholder {%s}", errMalformedTemplate, name)
		}
		val := values[name]
		if val == "" {
			return "", fmt.Errorf("%w: {%s}", errMissingField, name)
		}
		if inQuery {
			b.WriteString(url.QueryEscape(val))
		} else {
			b.WriteString(url.PathEscape(val))
		}
		rest = rest[open+1+end+1:]
	}

	out := b.String()
	u, err := url.Parse(out)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errMalformedTemplate, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q is not an absolute http(s) url", errMalformedTemplate, out)
	}
	return out, nil
}
