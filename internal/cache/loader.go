package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/Cheertaboi/maxreward-console/internal/metrics"
)

// Loader reads through a QueryCache. Concurrent misses on one key share a
// single fetch.
type Loader struct {
	cache QueryCache
	ttl   time.Duration
	group singleflight.Group
	log   logrus.FieldLogger

	// mu orders stores against invalidations: a store holds it for reading,
	// Invalidate for writing.
	mu          sync.RWMutex
	epoch       uint64
	invalidated map[string]uint64 // prefix -> epoch of its last invalidation

	flightMu sync.Mutex
	inflight map[string]int
}

func NewLoader(c QueryCache, ttl time.Duration, log logrus.FieldLogger) *Loader {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Loader{
		cache:       c,
		ttl:         ttl,
		log:         log,
		invalidated: make(map[string]uint64),
		inflight:    make(map[string]int),
	}
}

// Invalidate drops every cached key starting with prefix. Fetches already
// running for such keys still answer their callers but no longer populate
// the cache, and later callers start a fresh fetch instead of joining them.
func (l *Loader) Invalidate(ctx context.Context, prefix string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.epoch++
	l.invalidated[prefix] = l.epoch

	l.flightMu.Lock()
	for key := range l.inflight {
		if strings.HasPrefix(key, prefix) {
			l.group.Forget(key)
		}
	}
	l.flightMu.Unlock()

	if err := l.cache.Invalidate(ctx, prefix); err != nil {
		l.log.WithError(err).WithField("prefix", prefix).Warn("cache invalidate failed")
	}
}

func (l *Loader) begin(key string) uint64 {
	l.flightMu.Lock()
	l.inflight[key]++
	l.flightMu.Unlock()

	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.epoch
}

func (l *Loader) finish(key string) {
	l.flightMu.Lock()
	defer l.flightMu.Unlock()
	if l.inflight[key]--; l.inflight[key] <= 0 {
		delete(l.inflight, key)
	}
}

// store writes b unless key was invalidated after the fetch began.
func (l *Loader) store(ctx context.Context, key string, b []byte, began uint64) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for prefix, at := range l.invalidated {
		if at > began && strings.HasPrefix(key, prefix) {
			l.log.WithField("key", key).Debug("skipping cache write for invalidated key")
			return
		}
	}
	if err := l.cache.Set(ctx, key, b, l.ttl); err != nil {
		l.log.WithError(err).WithField("key", key).Warn("cache write failed")
	}
}

// Fetch returns the cached value for key or calls fn. Results are stored only
// when fn succeeds; on error the value fn returned is passed through as is.
// Cache failures are logged and treated as misses.
//
// The shared fetch runs detached from any single caller's cancellation, so
// one caller going away does not fail the others waiting on the same key;
// each caller still stops waiting when its own ctx is done. fn must bound
// itself (the backend client carries its own timeout).
func Fetch[T any](ctx context.Context, l *Loader, key string, fn func(context.Context) (T, error)) (T, error) {
	if b, ok, err := l.cache.Get(ctx, key); err != nil {
		l.log.WithError(err).WithField("key", key).Warn("cache read failed")
	} else if ok {
		var v T
		if err := json.Unmarshal(b, &v); err == nil {
			metrics.CacheHit()
			return v, nil
		}
	}
	metrics.CacheMiss()

	detached := context.WithoutCancel(ctx)
	ch := l.group.DoChan(key, func() (interface{}, error) {
		began := l.begin(key)
		defer l.finish(key)

		v, err := fn(detached)
		if err != nil {
			return v, err
		}
		if b, mErr := json.Marshal(v); mErr == nil {
			l.store(detached, key, b, began)
		}
		return v, nil
	})

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case res := <-ch:
		v, _ := res.Val.(T)
		return v, res.Err
	}
}
