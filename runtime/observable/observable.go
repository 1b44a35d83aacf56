// Package observable provides the change-notification base generated
// observable types embed. The base carries the subscriber list and the
// optional messenger attachment used by broadcast properties; generated
// setters call RaisePropertyChanged and BroadcastPropertyChanged, hand
// written code subscribes through OnPropertyChanged.
package observable

import (
	"sync"

	"obsgen/runtime/messenger"
)

// Change describes one property change notification.
type Change struct {
	// Sender is the object whose property changed.
	Sender any
	// Property is the generated property name, not the backing field name.
	Property string
}

// PropertyChangedMessage is the broadcast form of a Change, published on a
// messenger when the property was annotated with broadcast.
type PropertyChangedMessage struct {
	Sender   any
	Property string
}

// Base is the embeddable notification core. The zero value is ready to use.
type Base struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscriber
	bus    *messenger.Messenger
}

type subscriber struct {
	id uint64
	fn func(Change)
}

// OnPropertyChanged subscribes to change notifications and returns the
// subscription's remove function. Handlers run synchronously on the
// goroutine that calls the setter.
func (b *Base) OnPropertyChanged(fn func(Change)) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Base) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.subs {
		if b.subs[i].id == id {
			b.subs = append(append([]subscriber(nil), b.subs[:i]...), b.subs[i+1:]...)
			return
		}
	}
}

// RaisePropertyChanged notifies every subscriber that the named property
// changed on sender. Generated setters call this after storing the value.
func (b *Base) RaisePropertyChanged(sender any, property string) {
	b.mu.Lock()
	snapshot := make([]subscriber, len(b.subs))
	copy(snapshot, b.subs)
	b.mu.Unlock()

	c := Change{Sender: sender, Property: property}
	for _, s := range snapshot {
		s.fn(c)
	}
}

// AttachMessenger binds the messenger broadcast properties publish to.
// Unattached bases drop broadcasts silently.
func (b *Base) AttachMessenger(m *messenger.Messenger) {
	b.mu.Lock()
	b.bus = m
	b.mu.Unlock()
}

// BroadcastPropertyChanged publishes a PropertyChangedMessage on the
// attached messenger. Generated setters for broadcast properties call this
// after RaisePropertyChanged.
func (b *Base) BroadcastPropertyChanged(sender any, property string) {
	b.mu.Lock()
	bus := b.bus
	b.mu.Unlock()
	if bus == nil {
		return
	}
	bus.Publish(PropertyChangedMessage{Sender: sender, Property: property})
}
