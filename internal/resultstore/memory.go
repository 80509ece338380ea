// internal/resultstore/memory.go
package resultstore

import (
	"context"
	"sync"
)

// MemorySlot is the in-process slot. Besides Get/Put/Clear it pushes every
// stored value to watchers, so in-process consumers get the result as a
// message instead of polling for it.
type MemorySlot struct {
	mu       sync.Mutex
	value    string
	present  bool
	watchers []chan string
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (s *MemorySlot) Put(_ context.Context, raw string) error {
	s.mu.Lock()
	s.value = raw
	s.present = true
	watchers := make([]chan string, len(s.watchers))
	copy(watchers, s.watchers)
	s.mu.Unlock()

	for _, ch := range watchers {
		// Non-blocking: a watcher that has not drained its previous
		// value only cares about the latest one anyway.
		select {
		case ch <- raw:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- raw:
			default:
			}
		}
	}
	return nil
}

func (s *MemorySlot) Get(_ context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.present, nil
}

func (s *MemorySlot) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = ""
	s.present = false
	return nil
}

// Watch registers a new watcher channel with a one-value buffer.
func (s *MemorySlot) Watch() <-chan string {
	ch := make(chan string, 1)
	s.mu.Lock()
	s.watchers = append(s.watchers, ch)
	s.mu.Unlock()
	return ch
}
