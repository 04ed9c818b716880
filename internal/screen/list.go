// Package screen holds the state of one open list screen: its query and the
// last page loaded for it.
package screen

import (
	"context"
	"errors"
	"sync"

	"github.com/Cheertaboi/maxreward-console/internal/listquery"
	"github.com/Cheertaboi/maxreward-console/internal/models"
	"github.com/Cheertaboi/maxreward-console/internal/normalize"
)

// ErrStale is returned by Load when the query changed while the request was
// in flight. The response is dropped.
var ErrStale = errors.New("stale_response")

type Fetcher interface {
	List(ctx context.Context, q listquery.Query) (models.Page, error)
}

// List is owned by a single screen instance. Every query mutation bumps a
// generation counter; a load only lands if no mutation happened since it was
// dispatched.
type List struct {
	mu     sync.Mutex
	fetch  Fetcher
	query  listquery.Query
	gen    uint64
	page   models.Page
	loaded bool
}

func NewList(screen listquery.Screen, f Fetcher) *List {
	return &List{
		fetch: f,
		query: listquery.New(screen),
		page:  models.EmptyPage(),
	}
}

func (l *List) Query() listquery.Query {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query
}

// Page returns the last page that landed and whether anything has loaded yet.
func (l *List) Page() (models.Page, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page, l.loaded
}

func (l *List) update(fn func(listquery.Query) listquery.Query) listquery.Query {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.query = fn(l.query)
	l.gen++
	return l.query
}

func (l *List) SetSearch(term string) listquery.Query {
	return l.update(func(q listquery.Query) listquery.Query { return q.WithSearch(term) })
}

func (l *List) SetStatus(status string) listquery.Query {
	return l.update(func(q listquery.Query) listquery.Query { return q.WithStatus(status) })
}

func (l *List) SetPage(page int) listquery.Query {
	return l.update(func(q listquery.Query) listquery.Query { return q.WithPage(page) })
}

func (l *List) SetPerPage(n int) listquery.Query {
	return l.update(func(q listquery.Query) listquery.Query { return q.WithPerPage(n) })
}

func (l *List) Reset() listquery.Query {
	return l.update(func(q listquery.Query) listquery.Query { return q.Reset() })
}

// SetFilter applies a screen filter. An unknown key leaves the state alone.
func (l *List) SetFilter(key, value string) (listquery.Query, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	q, err := l.query.WithFilter(key, value)
	if err != nil {
		return l.query, err
	}
	l.query = q
	l.gen++
	return q, nil
}

// Load fetches the page for the current query. A failed fetch leaves the
// stored page untouched so the screen can retry. A malformed response still
// lands as an empty page and its error is returned alongside.
func (l *List) Load(ctx context.Context) (models.Page, error) {
	l.mu.Lock()
	q, gen := l.query, l.gen
	l.mu.Unlock()

	page, err := l.fetch.List(ctx, q)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return page, ErrStale
	}
	if err != nil && !errors.Is(err, normalize.ErrMalformedResponse) {
		return page, err
	}
	l.page = page
	l.loaded = true
	return page, err
}
