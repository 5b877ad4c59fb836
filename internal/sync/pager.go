package sync

import (
	"context"
	stdsync "sync"

	"connectrealm/internal/store"
)

// State is a pager's position in its lifecycle. Loading the first page and
// loading a later page are distinct states so callers can render a full
// placeholder versus a tail spinner.
type State string

const (
	StateIdle         State = "idle"
	StateLoadingFirst State = "loading-first"
	StateReady        State = "ready"
	StateLoadingNext  State = "loading-next"
	StateError        State = "error"
)

// FetchFunc loads one page and reports the exact total across all pages.
type FetchFunc[T any] func(ctx context.Context, page store.Page) ([]T, int64, error)

// Pager accumulates pages of T in fetch order. Rows are de-duplicated by
// id, hasNext derives from the reported total, and a request epoch guards
// against a stale in-flight response overwriting newer state: any call that
// resolves after a Reset or a newer LoadFirst is discarded.
type Pager[T any] struct {
	fetch    FetchFunc[T]
	id       func(T) string
	pageSize int

	mu       stdsync.Mutex
	items    []T
	seen     map[string]struct{}
	nextPage int
	total    int64
	hasNext  bool
	state    State
	err      error
	epoch    uint64
}

func NewPager[T any](fetch FetchFunc[T], id func(T) string, pageSize int) *Pager[T] {
	if pageSize <= 0 {
		pageSize = store.DefaultPageSize
	}
	return &Pager[T]{
		fetch:    fetch,
		id:       id,
		pageSize: pageSize,
		seen:  make(map[string]struct{}),
		state: StateIdle,
	}
}

// LoadFirst fetches page zero, replacing anything accumulated. Starting a
// new first load invalidates every response still in flight.
func (p *Pager[T]) LoadFirst(ctx context.Context) error {
	p.mu.Lock()
	p.epoch++
	epoch := p.epoch
	p.state = StateLoadingFirst
	p.err = nil
	p.mu.Unlock()

	items, total, err := p.fetch(ctx, store.Page{Number: 0, Size: p.pageSize})

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.epoch != epoch {
		// A newer load superseded this one, drop the response.
		return nil
	}
	if err != nil {
		p.state = StateError
		p.err = err
		return err
	}

	p.items = nil
	p.seen = make(map[string]struct{})
	p.appendLocked(items)
	p.nextPage = 1
	p.total = total
	p.hasNext = int64(len(p.items)) < total
	p.state = StateReady
	return nil
}

// LoadNext fetches the next page and appends it. A no-op when exhausted or
// while another load is running.
func (p *Pager[T]) LoadNext(ctx context.Context) error {
	p.mu.Lock()
	if p.state == StateLoadingFirst || p.state == StateLoadingNext {
		p.mu.Unlock()
		return nil
	}
	if p.state == StateIdle || !p.hasNext {
		p.mu.Unlock()
		return nil
	}
	epoch := p.epoch
	page := p.nextPage
	p.state = StateLoadingNext
	p.mu.Unlock()

	items, total, err := p.fetch(ctx, store.Page{Number: page, Size: p.pageSize})

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.epoch != epoch {
		return nil
	}
	if err != nil {
		p.state = StateError
		p.err = err
		return err
	}

	p.appendLocked(items)
	p.nextPage = page + 1
	p.total = total
	p.hasNext = int64(len(p.items)) < total
	p.state = StateReady
	return nil
}

// Reset clears the pager and invalidates in-flight responses.
func (p *Pager[T]) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.epoch++
	p.items = nil
	p.seen = make(map[string]struct{})
	p.nextPage = 0
	p.total = 0
	p.hasNext = false
	p.state = StateIdle
	p.err = nil
}

// Items returns the accumulated rows, empty but never nil.
func (p *Pager[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]T, len(p.items))
	copy(out, p.items)
	return out
}

func (p *Pager[T]) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Pager[T]) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *Pager[T]) HasNext() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasNext
}

func (p *Pager[T]) Total() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

// MergeAppend adds a row that arrived outside pagination, typically from a
// realtime event. Duplicate delivery of the same id is a no-op.
func (p *Pager[T]) MergeAppend(item T) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.id(item)
	if _, ok := p.seen[id]; ok {
		return false
	}
	p.seen[id] = struct{}{}
	p.items = append(p.items, item)
	p.total++
	return true
}

// Update replaces the row with the same id in place. Unknown ids are
// ignored.
func (p *Pager[T]) Update(item T) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.id(item)
	for i := range p.items {
		if p.id(p.items[i]) == id {
			p.items[i] = item
			return true
		}
	}
	return false
}

// Mutate applies fn to the row with the given id under the pager lock.
func (p *Pager[T]) Mutate(id string, fn func(T) T) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.items {
		if p.id(p.items[i]) == id {
			p.items[i] = fn(p.items[i])
			return true
		}
	}
	return false
}

// Find returns the row with the given id.
func (p *Pager[T]) Find(id string) (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.items {
		if p.id(p.items[i]) == id {
			return p.items[i], true
		}
	}
	var zero T
	return zero, false
}

func (p *Pager[T]) appendLocked(items []T) {
	for _, item := range items {
		id := p.id(item)
		if _, ok := p.seen[id]; ok {
			continue
		}
		p.seen[id] = struct{}{}
		p.items = append(p.items, item)
	}
}
