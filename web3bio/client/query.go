package client

import (
	"context"
	"sync"

	"github.com/liuran001/Web3Bio-Go/web3bio"
	"github.com/liuran001/Web3Bio-Go/web3bio/request"
)

// Query tracks the latest result of a changing request.
//
// Every Set supersedes the previous request: its context is canceled and a
// late response is discarded, so the newest parameters always win.
type Query[T any] struct {
	fetch Fetcher[T]
	pool  web3bio.WorkerPool

	mu      sync.Mutex
	gen     uint64
	state   web3bio.Result[T]
	cancel  context.CancelFunc
	changed chan struct{}
	closed  bool
}

// NewQuery creates an idle query; call Set to start it.
func NewQuery[T any](c *Client, fetch Fetcher[T]) *Query[T] {
	return &Query[T]{
		fetch:   fetch,
		pool:    c.pool,
		changed: make(chan struct{}),
	}
}

func startQuery[T any](c *Client, fetch Fetcher[T], id request.Identity, opts []QueryOption) *Query[T] {
	q := NewQuery(c, fetch)
	q.Set(id, opts...)
	return q
}

// Set replaces the identity and options and starts a new request.
// A disabled query or an empty identity leaves the query idle.
func (q *Query[T]) Set(id request.Identity, opts ...QueryOption) {
	o := applyOptions(opts)

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.gen++
	gen := q.gen
	if q.cancel != nil {
		q.cancel()
		q.cancel = nil
	}
	if !o.Enabled || id.Empty() {
		q.publishLocked(web3bio.Result[T]{})
		q.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	q.cancel = cancel
	q.publishLocked(web3bio.Result[T]{IsLoading: true})
	q.mu.Unlock()

	task := func() {
		data, err := q.fetch(ctx, id, o)
		q.finish(gen, data, err)
	}
	if q.pool == nil {
		go task()
		return
	}
	if err := q.pool.Submit(task); err != nil {
		var zero T
		q.finish(gen, zero, err)
	}
}

func (q *Query[T]) finish(gen uint64, data T, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed || gen != q.gen {
		return
	}
	if q.cancel != nil {
		q.cancel()
		q.cancel = nil
	}
	// cancellation is teardown, not a failure
	if web3bio.IsCanceled(err) {
		q.publishLocked(web3bio.Result[T]{})
		return
	}
	if err != nil {
		q.publishLocked(web3bio.Result[T]{Err: err})
		return
	}
	q.publishLocked(web3bio.Result[T]{Data: data})
}

func (q *Query[T]) publishLocked(state web3bio.Result[T]) {
	q.state = state
	close(q.changed)
	q.changed = make(chan struct{})
}

// Result returns the current state.
func (q *Query[T]) Result() web3bio.Result[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

// Changed returns a channel closed on the next state change.
func (q *Query[T]) Changed() <-chan struct{} {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.changed
}

// Wait blocks until the current request settles or ctx is done.
func (q *Query[T]) Wait(ctx context.Context) (web3bio.Result[T], error) {
	for {
		q.mu.Lock()
		state, changed := q.state, q.changed
		q.mu.Unlock()
		if !state.IsLoading {
			return state, nil
		}
		select {
		case <-ctx.Done():
			return state, ctx.Err()
		case <-changed:
		}
	}
}

// Close cancels any in-flight request; later results are dropped.
func (q *Query[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	if q.cancel != nil {
		q.cancel()
		q.cancel = nil
	}
	q.state.IsLoading = false
	close(q.changed)
	q.changed = make(chan struct{})
}
