package faidx

import (
	"container/list"
	"context"
	"errors"
	"sync"

	"github.com/hupe1980/refget/blobstore"
)

const (
	// DefaultMaxOpen is the default number of cached file handles.
	DefaultMaxOpen = 100
	// MaxOpenLimit caps the configurable number of cached file handles.
	MaxOpenLimit = 4096
)

// ErrPoolClosed is returned by Acquire after Close.
var ErrPoolClosed = errors.New("faidx: pool closed")

type handle struct {
	path  string
	ready chan struct{}
	blob  blobstore.Blob
	err   error

	refs    int
	evicted bool
}

// PoolStats reports handle pool activity.
type PoolStats struct {
	Open      int
	Opens     int64
	Hits      int64
	Evictions int64
}

// Pool is a bounded LRU of open blob handles keyed by path.
//
// Handles are shared by concurrent readers. An evicted handle is closed
// when its last reader releases it. The mutex guards bookkeeping only;
// blobs are opened outside of it.
type Pool struct {
	store   blobstore.BlobStore
	maxOpen int

	mu      sync.Mutex
	handles map[string]*list.Element
	lru     *list.List
	closed  bool
	stats   PoolStats
}

// NewPool creates a handle pool over store. maxOpen is clamped to
// [1, MaxOpenLimit]; zero selects DefaultMaxOpen.
func NewPool(store blobstore.BlobStore, maxOpen int) *Pool {
	switch {
	case maxOpen == 0:
		maxOpen = DefaultMaxOpen
	case maxOpen < 1:
		maxOpen = 1
	case maxOpen > MaxOpenLimit:
		maxOpen = MaxOpenLimit
	}

	return &Pool{
		store:   store,
		maxOpen: maxOpen,
		handles: make(map[string]*list.Element),
		lru:     list.New(),
	}
}

// MaxOpen returns the handle limit.
func (p *Pool) MaxOpen() int {
	return p.maxOpen
}

// Acquire returns the open blob for path and a release function that
// must be called exactly once when the caller is done with it.
func (p *Pool) Acquire(ctx context.Context, path string) (blobstore.Blob, func(), error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, nil, ErrPoolClosed
	}

	if el, ok := p.handles[path]; ok {
		h := el.Value.(*handle)
		h.refs++
		p.lru.MoveToFront(el)
		p.stats.Hits++
		p.mu.Unlock()

		select {
		case <-h.ready:
		case <-ctx.Done():
			p.release(h)
			return nil, nil, ctx.Err()
		}

		if h.err != nil {
			p.release(h)
			return nil, nil, h.err
		}
		return h.blob, p.releaser(h), nil
	}

	h := &handle{path: path, ready: make(chan struct{}), refs: 1}
	el := p.lru.PushFront(h)
	p.handles[path] = el
	p.stats.Opens++
	p.evictLocked()
	p.mu.Unlock()

	// Other requests may wait on this handle.
	blob, err := p.store.Open(context.WithoutCancel(ctx), path)

	p.mu.Lock()
	h.blob, h.err = blob, err
	if err != nil && !h.evicted {
		p.lru.Remove(el)
		delete(p.handles, path)
		h.evicted = true
	}
	p.mu.Unlock()
	close(h.ready)

	if err != nil {
		p.release(h)
		return nil, nil, err
	}
	return blob, p.releaser(h), nil
}

func (p *Pool) releaser(h *handle) func() {
	var once sync.Once
	return func() {
		once.Do(func() { p.release(h) })
	}
}

func (p *Pool) release(h *handle) {
	p.mu.Lock()
	h.refs--
	closeNow := h.refs == 0 && h.evicted && h.blob != nil
	p.mu.Unlock()

	if closeNow {
		_ = h.blob.Close()
	}
}

func (p *Pool) evictLocked() {
	for p.lru.Len() > p.maxOpen {
		el := p.lru.Back()
		h := el.Value.(*handle)
		p.lru.Remove(el)
		delete(p.handles, h.path)
		h.evicted = true
		p.stats.Evictions++

		// A handle still being opened is closed by its last release.
		if h.refs == 0 && h.blob != nil {
			_ = h.blob.Close()
		}
	}
}

// Stats returns a snapshot of pool counters.
func (p *Pool) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.stats
	s.Open = p.lru.Len()
	return s
}

// Close closes idle handles and marks busy ones for closing on release.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	var errs []error
	for el := p.lru.Front(); el != nil; el = el.Next() {
		h := el.Value.(*handle)
		h.evicted = true
		if h.refs == 0 && h.blob != nil {
			if err := h.blob.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	p.lru.Init()
	clear(p.handles)

	return errors.Join(errs...)
}
