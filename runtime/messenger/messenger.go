// Package messenger is a small typed publish/subscribe bus generated
// recipient registrations wire into. Handlers are keyed by the concrete
// message type; publishing walks a snapshot of the matching handlers, so
// handlers may unregister themselves (or register others) while a message
// is being delivered.
package messenger

import (
	"reflect"
	"sync"
)

// Messenger routes published messages to registered typed handlers.
// The zero value is not usable; construct with New.
type Messenger struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[reflect.Type][]subscription
}

type subscription struct {
	id uint64
	fn func(any)
}

// New creates an empty messenger.
func New() *Messenger {
	return &Messenger{handlers: make(map[reflect.Type][]subscription)}
}

var defaultMessenger = New()

// Default returns the process-wide messenger generated code binds to when
// no explicit messenger is supplied.
func Default() *Messenger {
	return defaultMessenger
}

// Register subscribes a handler for messages of type T and returns its
// unregister function. Unregistering twice is a no-op.
func Register[T any](m *Messenger, handler func(T)) (unregister func()) {
	t := reflect.TypeOf((*T)(nil)).Elem()

	m.mu.Lock()
	m.nextID++
	id := m.nextID
	m.handlers[t] = append(m.handlers[t], subscription{
		id: id,
		fn: func(msg any) { handler(msg.(T)) },
	})
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { m.remove(t, id) })
	}
}

func (m *Messenger) remove(t reflect.Type, id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	subs := m.handlers[t]
	for i := range subs {
		if subs[i].id == id {
			m.handlers[t] = append(append([]subscription(nil), subs[:i]...), subs[i+1:]...)
			return
		}
	}
}

// Publish delivers msg synchronously to every handler registered for its
// dynamic type, in registration order.
func (m *Messenger) Publish(msg any) {
	if msg == nil {
		return
	}
	t := reflect.TypeOf(msg)

	m.mu.RLock()
	subs := m.handlers[t]
	snapshot := make([]subscription, len(subs))
	copy(snapshot, subs)
	m.mu.RUnlock()

	for _, s := range snapshot {
		s.fn(msg)
	}
}

// HandlerCount reports how many handlers are registered for the exact type
// of msg. Intended for tests and introspection.
func (m *Messenger) HandlerCount(msg any) int {
	if msg == nil {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.handlers[reflect.TypeOf(msg)])
}
