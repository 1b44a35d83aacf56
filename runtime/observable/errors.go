package observable

import "sync"

// ErrorsBase extends Base with per-property validation state. Generated
// setters for validating properties replace the property's error list on
// every write; views observe the aggregate through HasErrors and
// OnErrorsChanged.
type ErrorsBase struct {
	Base

	emu      sync.Mutex
	errs     map[string][]error
	enext    uint64
	errsSubs []errorsSubscriber
}

type errorsSubscriber struct {
	id uint64
	fn func(property string)
}

// SetErrors replaces the error list for a property. An empty or nil list
// clears it. Subscribers are notified only when presence actually changes
// or errors are replaced.
func (e *ErrorsBase) SetErrors(property string, errs []error) {
	e.emu.Lock()
	if e.errs == nil {
		e.errs = make(map[string][]error)
	}
	_, had := e.errs[property]
	if len(errs) == 0 {
		delete(e.errs, property)
	} else {
		e.errs[property] = append([]error(nil), errs...)
	}
	changed := had || len(errs) > 0
	snapshot := make([]errorsSubscriber, len(e.errsSubs))
	copy(snapshot, e.errsSubs)
	e.emu.Unlock()

	if !changed {
		return
	}
	for _, s := range snapshot {
		s.fn(property)
	}
}

// Errors returns a copy of the property's current error list.
func (e *ErrorsBase) Errors(property string) []error {
	e.emu.Lock()
	defer e.emu.Unlock()
	return append([]error(nil), e.errs[property]...)
}

// HasErrors reports whether any property currently has validation errors.
func (e *ErrorsBase) HasErrors() bool {
	e.emu.Lock()
	defer e.emu.Unlock()
	return len(e.errs) > 0
}

// OnErrorsChanged subscribes to validation-state changes.
func (e *ErrorsBase) OnErrorsChanged(fn func(property string)) (unsubscribe func()) {
	e.emu.Lock()
	e.enext++
	id := e.enext
	e.errsSubs = append(e.errsSubs, errorsSubscriber{id: id, fn: fn})
	e.emu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.emu.Lock()
			defer e.emu.Unlock()
			for i := range e.errsSubs {
				if e.errsSubs[i].id == id {
					e.errsSubs = append(append([]errorsSubscriber(nil), e.errsSubs[:i]...), e.errsSubs[i+1:]...)
					return
				}
			}
		})
	}
}
