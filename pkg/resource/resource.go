// Package resource provides a stateful handle over a single user-scoped
// resource: the latest known value, a loading flag, and a serialized mutation
// entry point. It is the embedding-friendly counterpart of the per-call
// service layer; HTTP handlers stay stateless and do not use it.
package resource

import (
	"context"
	"sync"
)

// State is the handle's top-level lifecycle state.
type State int

const (
	Uninitialized State = iota
	Loading
	Ready
)

// Loader fetches the current value, returning the resource default when
// nothing is persisted yet.
type Loader[T any] func(ctx context.Context) (T, error)

// Mutator performs one best-effort mutation and returns the reconciled value.
type Mutator[T any] func(ctx context.Context, current T) (T, error)

// Handle owns a resource's in-memory copy.
//
// Mutations are single-flight: a second Mutate call blocks until the first
// settles, so back-to-back mutations reach the store in call order. This is
// deliberately stronger than the original client, which documented the
// unordered case instead of queuing.
type Handle[T any] struct {
	loader Loader[T]

	mu      sync.Mutex // guards state, loading, current
	gate    sync.Mutex // serializes mutations
	state   State
	loading bool
	current T
	lastErr error
}

// New builds a handle that starts Uninitialized holding the default value.
func New[T any](defaultValue T, loader Loader[T]) *Handle[T] {
	return &Handle[T]{loader: loader, current: defaultValue}
}

// Load fetches the value on first use. The loading flag is true from
// invocation until the fetch settles, regardless of outcome. A failed load
// leaves the default in place and still reaches Ready so the UI can render.
func (h *Handle[T]) Load(ctx context.Context) error {
	h.mu.Lock()
	if h.state == Ready {
		h.mu.Unlock()
		return nil
	}
	h.state = Loading
	h.loading = true
	h.mu.Unlock()

	value, err := h.loader(ctx)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.loading = false
	h.state = Ready
	h.lastErr = err
	if err == nil {
		h.current = value
	}
	return err
}

// Current returns the latest known value: the default before Load settles.
func (h *Handle[T]) Current() T {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// IsLoading reports whether the initial fetch is still in flight.
func (h *Handle[T]) IsLoading() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loading
}

// State returns the handle's lifecycle state.
func (h *Handle[T]) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// LastError returns the error from the most recent Load, if any.
func (h *Handle[T]) LastError() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastErr
}

// Mutate runs one best-effort mutation. On confirmed success the local copy
// is replaced with the reconciled value and true is returned; on failure the
// local copy is untouched and false is returned. No retries: retry policy
// belongs to the caller.
func (h *Handle[T]) Mutate(ctx context.Context, fn Mutator[T]) bool {
	h.gate.Lock()
	defer h.gate.Unlock()

	h.mu.Lock()
	current := h.current
	h.mu.Unlock()

	next, err := fn(ctx, current)
	if err != nil {
		return false
	}

	h.mu.Lock()
	h.current = next
	h.mu.Unlock()
	return true
}
