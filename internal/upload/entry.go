// internal/upload/entry.go
package upload

import (
	"sync"
)

// State is an upload entry's lifecycle state. Transitions are strictly
// pending -> uploading -> {uploaded | failed}; terminal states never
// transition again. Re-uploading a file requires a new entry.
type State string

const (
	StatePending   State = "pending"
	StateUploading State = "uploading"
	StateUploaded  State = "uploaded"
	StateFailed    State = "failed"
)

// Entry tracks one selected file through its upload lifecycle. Entries are
// created and owned by the Manager; callers observe them through the
// accessor methods.
type Entry struct {
	ID          string
	Filename    string
	ContentType string

	mu    sync.Mutex
	state State
	s3Key string
	uuid  string
	err   string
	done  chan struct{}
}

// State returns the entry's current lifecycle state.
func (e *Entry) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// S3Key returns the storage key assigned on successful upload, or "".
func (e *Entry) S3Key() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.s3Key
}

// UUID returns the credential UUID assigned on successful upload, or "".
func (e *Entry) UUID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.uuid
}

// Err returns the human-readable failure message, or "" while the entry
// has not failed.
func (e *Entry) Err() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// Done returns a channel closed when the entry reaches a terminal state.
func (e *Entry) Done() <-chan struct{} {
	return e.done
}

// markUploading moves a pending entry to uploading. Returns false when
// the entry was already terminal.
func (e *Entry) markUploading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateUploaded || e.state == StateFailed {
		return false
	}
	e.state = StateUploading
	return true
}

// complete moves the entry to uploaded with its storage identity. Returns
// false when the entry was already terminal.
func (e *Entry) complete(s3Key, uuid string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateUploaded || e.state == StateFailed {
		return false
	}
	e.state = StateUploaded
	e.s3Key = s3Key
	e.uuid = uuid
	close(e.done)
	return true
}

// fail moves the entry to failed with a human-readable message. Returns
// false when the entry was already terminal.
func (e *Entry) fail(msg string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateUploaded || e.state == StateFailed {
		return false
	}
	e.state = StateFailed
	e.err = msg
	close(e.done)
	return true
}
