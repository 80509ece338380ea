// internal/resultstore/store.go
package resultstore

import "context"

// ResultKey is the single slot name shared between the submission side and
// the results consumer.
const ResultKey = "creditScoreResult"

// Slot is a single shared key-value cell with last-writer-wins semantics.
// The orchestrator clears it at submission start and writes the raw
// (possibly double-encoded) scoring response body on success; consumers
// read it until a value appears.
type Slot interface {
	// Put stores raw, replacing any previous value.
	Put(ctx context.Context, raw string) error
	// Get returns the stored value and whether one is present.
	Get(ctx context.Context) (string, bool, error)
	// Clear removes the stored value, if any.
	Clear(ctx context.Context) error
}

// Watchable is implemented by slots that can push new values to
// consumers, removing the need to poll.
type Watchable interface {
	// Watch returns a channel receiving each value subsequently Put.
	// The channel is never closed; callers drop it when done.
	Watch() <-chan string
}
