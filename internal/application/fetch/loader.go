// Package fetch loads a JSON collection and exposes it as loading/error/data
// state. Every view uses it instead of fetching by hand.
package fetch

import (
	"context"
	"log/slog"
	"sync"
)

// Getter reads a URL and returns the body of a successful response.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Normalizer turns a response body into collection items.
type Normalizer[T any] func(raw []byte) ([]T, error)

// State is what a view renders from.
// INVARIANT: Items is never nil; it keeps the last successful result when a later attempt fails
type State[T any] struct {
	URL     string
	Items   []T
	Loading bool
	Err     string
}

// Count returns the number of loaded items.
func (s State[T]) Count() int {
	return len(s.Items)
}

// Empty reports whether there is nothing to show. Never-fetched and loaded-empty look the same.
func (s State[T]) Empty() bool {
	return len(s.Items) == 0
}

// Loader owns one collection for one mounted view.
type Loader[T any] struct {
	getter    Getter
	normalize Normalizer[T]

	mu    sync.Mutex
	state State[T]
	gen   uint64
	alive bool
	done  chan struct{}
}

// New creates a loader in the Loading state.
func New[T any](getter Getter, normalize Normalizer[T]) *Loader[T] {
	return &Loader[T]{
		getter:    getter,
		normalize: normalize,
		state:     State[T]{Items: []T{}, Loading: true},
	}
}

// Mount activates the loader for url and starts a read unless one for the
// same url is already under way or finished while mounted.
// The returned channel is closed when that read settles.
func (l *Loader[T]) Mount(ctx context.Context, url string) <-chan struct{} {
	l.mu.Lock()
	if l.alive && l.done != nil && l.state.URL == url {
		done := l.done
		l.mu.Unlock()
		return done
	}
	l.alive = true
	l.state.URL = url
	return l.startLocked(ctx)
}

// Reload re-reads the current url without resetting Loading or Items.
// PRE: Mount was called
func (l *Loader[T]) Reload(ctx context.Context) <-chan struct{} {
	l.mu.Lock()
	if !l.alive || l.state.URL == "" {
		l.mu.Unlock()
		done := make(chan struct{})
		close(done)
		return done
	}
	return l.startLocked(ctx)
}

// Unmount marks the view as gone; reads that settle afterwards are dropped.
func (l *Loader[T]) Unmount() {
	l.mu.Lock()
	l.alive = false
	l.mu.Unlock()
}

// State returns a copy of the current state.
func (l *Loader[T]) State() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := l.state
	s.Items = append([]T{}, l.state.Items...)
	return s
}

// startLocked begins a read of the current url. It releases l.mu.
func (l *Loader[T]) startLocked(ctx context.Context) <-chan struct{} {
	l.gen++
	gen := l.gen
	url := l.state.URL
	done := make(chan struct{})
	l.done = done
	l.mu.Unlock()

	go l.run(ctx, gen, url, done)
	return done
}

func (l *Loader[T]) run(ctx context.Context, gen uint64, url string, done chan struct{}) {
	defer close(done)

	body, err := l.getter.Get(ctx, url)
	var items []T
	if err == nil {
		items, err = l.normalize(body)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.alive || gen != l.gen {
		slog.Debug("fetch_discarded", "url", url, "mounted", l.alive, "superseded", gen != l.gen)
		return
	}
	l.state.Loading = false
	if err != nil {
		l.state.Err = err.Error()
		slog.Warn("fetch_failed", "url", url, "error", err.Error())
		return
	}
	if items == nil {
		items = []T{}
	}
	l.state.Items = items
	l.state.Err = ""
}

// Await blocks until done is closed or ctx ends, reporting whether the read settled.
func Await(ctx context.Context, done <-chan struct{}) bool {
	select {
	case <-done:
		return true
	default:
	}
	select {
	case <-done:
		return true
	case <-ctx.Done():
		return false
	}
}
