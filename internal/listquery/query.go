// Package listquery is the filter and pagination state shared by every list
// screen. A Query is a value: each transition returns a new Query and leaves
// the receiver untouched.
package listquery

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

var ErrUnknownFilter = errors.New("unknown_filter")

type Query struct {
	Screen  Screen
	Page    int
	PerPage int
	Search  string
	Status  string
	Filters map[string]string
}

// New returns the initial query of a screen. Unknown screens get generic
// defaults and accept no extra filters.
func New(screen Screen) Query {
	perPage := DefaultPerPage
	if spec, ok := Lookup(screen); ok && spec.PerPage > 0 {
		perPage = spec.PerPage
	}
	return Query{Screen: screen, Page: 1, PerPage: perPage}
}

func (q Query) clone() Query {
	out := q
	if q.Filters != nil {
		out.Filters = make(map[string]string, len(q.Filters))
		for k, v := range q.Filters {
			out.Filters[k] = v
		}
	}
	return out
}

// WithSearch sets the search term and returns to the first page.
func (q Query) WithSearch(term string) Query {
	out := q.clone()
	out.Search = strings.TrimSpace(term)
	out.Page = 1
	return out
}

// WithStatus sets the status filter and returns to the first page.
func (q Query) WithStatus(status string) Query {
	out := q.clone()
	out.Status = strings.TrimSpace(status)
	out.Page = 1
	return out
}

// WithFilter sets (or, for an empty value, clears) a screen-specific filter
// and returns to the first page.
func (q Query) WithFilter(key, value string) (Query, error) {
	spec, _ := Lookup(q.Screen)
	if !spec.allows(key) {
		return q, fmt.Errorf("%w: %s does not filter by %q", ErrUnknownFilter, q.Screen, key)
	}
	out := q.clone()
	value = strings.TrimSpace(value)
	if value == "" {
		delete(out.Filters, key)
	} else {
		if out.Filters == nil {
			out.Filters = make(map[string]string)
		}
		out.Filters[key] = value
	}
	out.Page = 1
	return out, nil
}

// WithPerPage changes the page size. A different page size is a different
// result set, so the page goes back to 1.
func (q Query) WithPerPage(n int) Query {
	out := q.clone()
	switch {
	case n < 1:
		n = 1
	case n > MaxPerPage:
		n = MaxPerPage
	}
	out.PerPage = n
	out.Page = 1
	return out
}

// WithPage moves to another page of the same result set.
func (q Query) WithPage(page int) Query {
	out := q.clone()
	if page < 1 {
		page = 1
	}
	out.Page = page
	return out
}

// Reset restores the screen defaults.
func (q Query) Reset() Query {
	return New(q.Screen)
}

// Params builds the outbound query string. Empty values are left out.
func (q Query) Params() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(max(q.Page, 1)))
	if q.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(q.PerPage))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	keys := make([]string, 0, len(q.Filters))
	for k := range q.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if val := q.Filters[k]; val != "" {
			v.Set(k, val)
		}
	}
	return v
}

// Key identifies the result set this query asks for. Two queries with the
// same key are served by the same cache entry.
func (q Query) Key() string {
	return string(q.Screen) + "?" + q.Params().Encode()
}

// FromValues reads a query from an inbound request. Malformed numbers fall
// back to defaults; unknown parameters are ignored.
func FromValues(screen Screen, v url.Values) (Query, error) {
	spec, ok := Lookup(screen)
	if !ok {
		return Query{}, fmt.Errorf("%w: %s", ErrUnknownScreen, screen)
	}
	q := New(screen)
	if n, err := strconv.Atoi(v.Get("per_page")); err == nil {
		q = q.WithPerPage(n)
	}
	q = q.WithSearch(v.Get("search")).WithStatus(v.Get("status"))
	for _, key := range spec.Filters {
		if val := v.Get(key); val != "" {
			var err error
			if q, err = q.WithFilter(key, val); err != nil {
				return Query{}, err
			}
		}
	}
	// page last: every other setter resets it
	if n, err := strconv.Atoi(v.Get("page")); err == nil {
		q = q.WithPage(n)
	}
	return q, nil
}
