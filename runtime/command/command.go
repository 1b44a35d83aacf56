// Package command provides the relay-command runtime generated accessors
// build on. A relay wraps a method of the host type together with an
// optional can-execute predicate; the Host embed caches one relay per
// command name so repeated accessor calls return the same instance.
package command

import (
	"context"
	"sync"
	"sync/atomic"
)

// Host is the embeddable per-type relay cache. The zero value is ready.
type Host struct {
	mu    sync.Mutex
	cache map[string]any
}

// Cached returns the relay stored under name, building it on first use.
// Generated accessors are the only intended callers.
func Cached[T any](h *Host, name string, build func() T) T {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cache == nil {
		h.cache = make(map[string]any)
	}
	if v, ok := h.cache[name]; ok {
		return v.(T)
	}
	v := build()
	h.cache[name] = v
	return v
}

// Relay is a parameterless command.
type Relay struct {
	execute func() error
	can     func() bool
}

// NewRelay wraps an execute function into a relay.
func NewRelay(execute func() error) *Relay {
	return &Relay{execute: execute}
}

// WithCanExecute attaches the predicate and returns the relay.
func (r *Relay) WithCanExecute(can func() bool) *Relay {
	r.can = can
	return r
}

// CanExecute reports whether Execute may run; relays without a predicate
// can always execute.
func (r *Relay) CanExecute() bool {
	return r.can == nil || r.can()
}

// Execute runs the command if CanExecute allows it; a refused execution
// returns nil without running anything.
func (r *Relay) Execute() error {
	if !r.CanExecute() {
		return nil
	}
	return r.execute()
}

// Relay1 is a command taking one argument.
type Relay1[T any] struct {
	execute func(T) error
	can     func() bool
}

func NewRelay1[T any](execute func(T) error) *Relay1[T] {
	return &Relay1[T]{execute: execute}
}

func (r *Relay1[T]) WithCanExecute(can func() bool) *Relay1[T] {
	r.can = can
	return r
}

func (r *Relay1[T]) CanExecute() bool {
	return r.can == nil || r.can()
}

func (r *Relay1[T]) Execute(arg T) error {
	if !r.CanExecute() {
		return nil
	}
	return r.execute(arg)
}

// AsyncRelay is a context-aware command that refuses concurrent entry:
// while one Execute is in flight, further calls return immediately.
type AsyncRelay struct {
	execute func(context.Context) error
	can     func() bool
	running atomic.Bool
}

func NewAsyncRelay(execute func(context.Context) error) *AsyncRelay {
	return &AsyncRelay{execute: execute}
}

func (r *AsyncRelay) WithCanExecute(can func() bool) *AsyncRelay {
	r.can = can
	return r
}

// IsRunning reports whether an execution is currently in flight.
func (r *AsyncRelay) IsRunning() bool {
	return r.running.Load()
}

// CanExecute is false while running, and otherwise defers to the predicate.
func (r *AsyncRelay) CanExecute() bool {
	if r.running.Load() {
		return false
	}
	return r.can == nil || r.can()
}

// Execute runs the command on the calling goroutine, holding the running
// flag for the duration. Re-entrant or concurrent calls return nil.
func (r *AsyncRelay) Execute(ctx context.Context) error {
	if r.can != nil && !r.can() {
		return nil
	}
	if !r.running.CompareAndSwap(false, true) {
		return nil
	}
	defer r.running.Store(false)
	return r.execute(ctx)
}

// AsyncRelay1 is the one-argument form of AsyncRelay.
type AsyncRelay1[T any] struct {
	execute func(context.Context, T) error
	can     func() bool
	running atomic.Bool
}

func NewAsyncRelay1[T any](execute func(context.Context, T) error) *AsyncRelay1[T] {
	return &AsyncRelay1[T]{execute: execute}
}

func (r *AsyncRelay1[T]) WithCanExecute(can func() bool) *AsyncRelay1[T] {
	r.can = can
	return r
}

func (r *AsyncRelay1[T]) IsRunning() bool {
	return r.running.Load()
}

func (r *AsyncRelay1[T]) CanExecute() bool {
	if r.running.Load() {
		return false
	}
	return r.can == nil || r.can()
}

func (r *AsyncRelay1[T]) Execute(ctx context.Context, arg T) error {
	if r.can != nil && !r.can() {
		return nil
	}
	if !r.running.CompareAndSwap(false, true) {
		return nil
	}
	defer r.running.Store(false)
	return r.execute(ctx, arg)
}
