// Package session holds UI state shared between dashboard components.
package session

import "sync"

// Window ids of the pipeline screen.
const (
	WindowView = iota
	WindowTests
	WindowArtifacts
)

// Window is an observable cell holding the active pipeline window id.
// Set is the only mutation; Get always observes the latest Set.
type Window struct {
	mu     sync.Mutex
	id     int
	nextID int
	subs   map[int]func(int)
}

// NewWindow returns a cell holding WindowView.
func NewWindow() *Window {
	return &Window{subs: map[int]func(int){}}
}

// Get returns the current window id.
func (w *Window) Get() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.id
}

// Set stores id and notifies subscribers synchronously, after the lock is
// released. Setting the current value is a no-op.
func (w *Window) Set(id int) {
	w.mu.Lock()
	if w.id == id {
		w.mu.Unlock()
		return
	}
	w.id = id
	fns := make([]func(int), 0, len(w.subs))
	for _, fn := range w.subs {
		fns = append(fns, fn)
	}
	w.mu.Unlock()

	for _, fn := range fns {
		fn(id)
	}
}

// Subscribe registers fn to be called with each new id. The returned
// function removes the subscription; calling it twice is safe.
func (w *Window) Subscribe(fn func(int)) (unsubscribe func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	key := w.nextID
	w.nextID++
	w.subs[key] = fn
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.subs, key)
	}
}

// Channel subscribes with a buffered channel that always holds the most
// recent id. Older undelivered ids are dropped.
func (w *Window) Channel() (<-chan int, func()) {
	ch := make(chan int, 1)
	unsubscribe := w.Subscribe(func(id int) {
		for {
			select {
			case ch <- id:
				return
			default:
			}
			select {
			case <-ch:
			default:
			}
		}
	})
	return ch, unsubscribe
}
