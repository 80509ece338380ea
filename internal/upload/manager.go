// internal/upload/manager.go
package upload

import (
	"context"
	"sync"
	"time"

	"credit-intake/internal/common/errors"
	"credit-intake/internal/common/logger"
	"credit-intake/internal/common/metrics"
	"credit-intake/internal/form"
	"credit-intake/internal/models"
	"credit-intake/internal/storage"

	"github.com/google/uuid"
)

// Manager owns the per-file upload lifecycle. Each enqueued file gets its
// own goroutine: request a write credential, transfer the bytes, then
// promote the file into the form store's manifest. Uploads are independent
// and may finish out of order; the manifest append is the only shared
// mutation.
type Manager struct {
	issuer   storage.CredentialIssuer
	transfer *storage.Transfer
	store    *form.Store
	logger   logger.Logger

	mu      sync.Mutex
	entries []*Entry
}

func NewManager(issuer storage.CredentialIssuer, transfer *storage.Transfer, store *form.Store, log logger.Logger) *Manager {
	return &Manager{
		issuer:   issuer,
		transfer: transfer,
		store:    store,
		logger:   log.WithFields(map[string]interface{}{"component": "upload-manager"}),
	}
}

// Enqueue registers content for upload under the given filename and starts
// the transfer asynchronously. The returned entry is already in the
// visible list; watch Done() for the terminal state.
func (m *Manager) Enqueue(ctx context.Context, filename string, content []byte) *Entry {
	entry := &Entry{
		ID:          uuid.NewString(),
		Filename:    filename,
		ContentType: storage.ContentTypeForFilename(filename),
		state:       StatePending,
		done:        make(chan struct{}),
	}

	m.mu.Lock()
	m.entries = append(m.entries, entry)
	m.mu.Unlock()

	metrics.UploadsStarted.Inc()
	go m.run(ctx, entry, content)

	return entry
}

func (m *Manager) run(ctx context.Context, entry *Entry, content []byte) {
	start := time.Now()
	log := m.logger.WithFields(map[string]interface{}{
		"entryId":  entry.ID,
		"filename": entry.Filename,
	})

	entry.markUploading()

	cred, err := m.issuer.IssueWrite(ctx, entry.Filename, entry.ContentType)
	if err != nil {
		stdErr := errors.NewUploadCredentialError(entry.Filename, err)
		log.WithError(stdErr).Error("upload credential request failed", nil)
		entry.fail(stdErr.Message)
		metrics.UploadsFinished.WithLabelValues(string(StateFailed)).Inc()
		metrics.UploadDuration.Observe(time.Since(start).Seconds())
		return
	}

	if err := m.transfer.Put(ctx, cred.PresignedURL, entry.ContentType, content); err != nil {
		stdErr := errors.NewUploadTransferError(entry.Filename, err)
		log.WithError(stdErr).Error("upload transfer failed", nil)
		entry.fail(stdErr.Message)
		metrics.UploadsFinished.WithLabelValues(string(StateFailed)).Inc()
		metrics.UploadDuration.Observe(time.Since(start).Seconds())
		return
	}

	entry.complete(cred.S3Key, cred.UUID)

	// Promotion happens under the manager lock so a concurrent Remove or
	// Reset either sees the manifest row and deletes it, or drops the
	// entry first and the row is never appended.
	m.mu.Lock()
	if m.containsLocked(entry.ID) {
		m.store.AppendFile(models.FileUpload{
			Filename:    entry.Filename,
			S3Key:       cred.S3Key,
			ContentType: entry.ContentType,
		})
	} else {
		log.Info("upload finished after removal, skipping manifest", nil)
	}
	m.mu.Unlock()

	log.Info("upload finished", map[string]interface{}{
		"s3Key":      cred.S3Key,
		"durationMs": time.Since(start).Milliseconds(),
	})
	metrics.UploadsFinished.WithLabelValues(string(StateUploaded)).Inc()
	metrics.UploadDuration.Observe(time.Since(start).Seconds())
}

// Remove drops the entry from the visible list. If it had been uploaded,
// the matching manifest row is removed as well; an upload still in flight
// never appends its row afterwards.
func (m *Manager) Remove(entry *Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.entries[:0]
	for _, e := range m.entries {
		if e.ID == entry.ID {
			continue
		}
		kept = append(kept, e)
	}
	m.entries = kept

	if entry.State() == StateUploaded {
		m.store.RemoveFile(entry.S3Key())
	}
}

// Reset clears the visible entry list. Used together with the form
// store's reset when the applicant restarts the flow; in-flight uploads
// keep running to completion but are no longer promoted to the manifest.
func (m *Manager) Reset() {
	m.mu.Lock()
	m.entries = nil
	m.mu.Unlock()
}

// containsLocked reports whether the entry is still in the visible list.
// Callers hold m.mu.
func (m *Manager) containsLocked(id string) bool {
	for _, e := range m.entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

// Entries returns the current visible list in enqueue order.
func (m *Manager) Entries() []*Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// RegisterUploaded records a document that already lives in object storage
// (the sample-data shortcut): the entry starts terminal and the manifest
// row is appended immediately, with no transfer.
func (m *Manager) RegisterUploaded(filename, s3Key, contentType string) *Entry {
	entry := &Entry{
		ID:          uuid.NewString(),
		Filename:    filename,
		ContentType: contentType,
		state:       StateUploaded,
		s3Key:       s3Key,
		done:        make(chan struct{}),
	}
	close(entry.done)

	m.mu.Lock()
	m.entries = append(m.entries, entry)
	m.mu.Unlock()

	m.store.AppendFile(models.FileUpload{
		Filename:    filename,
		S3Key:       s3Key,
		ContentType: contentType,
	})
	return entry
}

// DownloadURL returns a presigned GET URL for an uploaded document.
func (m *Manager) DownloadURL(ctx context.Context, s3Key string) (string, error) {
	url, err := m.issuer.IssueDownload(ctx, s3Key)
	if err != nil {
		return "", errors.NewDownloadURLError(s3Key, err)
	}
	return url, nil
}
