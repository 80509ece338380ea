// internal/upload/manager_test.go
package upload

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credit-intake/internal/common/logger"
	"credit-intake/internal/form"
	"credit-intake/internal/storage"
)

// ==========================
// Test Helper Functions
// ==========================

// fakeIssuer is a scripted CredentialIssuer. The presigned URL it hands
// out points at the given base (an httptest server for transfer tests).
type fakeIssuer struct {
	mu         sync.Mutex
	base       string
	key        string
	uuid       string
	writeErr   error
	writeCalls int
}

func (f *fakeIssuer) IssueWrite(_ context.Context, _, _ string) (*storage.WriteCredential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeCalls++
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	return &storage.WriteCredential{
		PresignedURL: f.base + "/" + f.key,
		S3Key:        f.key,
		UUID:         f.uuid,
	}, nil
}

func (f *fakeIssuer) IssueDownload(_ context.Context, s3Key string) (string, error) {
	return "https://storage.example.com/get/" + s3Key, nil
}

func newPutServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		w.WriteHeader(status)
	}))
}

func createTestManager(t *testing.T, issuer storage.CredentialIssuer) (*Manager, *form.Store) {
	store := form.NewStore(logger.NewTestLogger(t))
	return NewManager(issuer, storage.NewTransfer(0), store, logger.NewTestLogger(t)), store
}

func awaitDone(t *testing.T, entry *Entry) {
	t.Helper()
	select {
	case <-entry.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("upload never reached a terminal state")
	}
}

// ==========================
// Lifecycle Tests
// ==========================

func TestManager_Enqueue_Success(t *testing.T) {
	server := newPutServer(t, http.StatusOK)
	defer server.Close()

	issuer := &fakeIssuer{base: server.URL, key: "u-1.pdf", uuid: "u-1"}
	manager, store := createTestManager(t, issuer)

	entry := manager.Enqueue(context.Background(), "statement.pdf", []byte("content"))
	assert.Equal(t, "application/pdf", entry.ContentType)

	awaitDone(t, entry)

	require.Equal(t, StateUploaded, entry.State())
	assert.Equal(t, "u-1.pdf", entry.S3Key())
	assert.Equal(t, "u-1", entry.UUID())
	assert.Empty(t, entry.Err())

	rec := store.Snapshot()
	require.Len(t, rec.FileUploads, 1)
	assert.Equal(t, "statement.pdf", rec.FileUploads[0].Filename)
	assert.Equal(t, "u-1.pdf", rec.FileUploads[0].S3Key)
	assert.Equal(t, "application/pdf", rec.FileUploads[0].ContentType)
}

func TestManager_Enqueue_CredentialFailure(t *testing.T) {
	issuer := &fakeIssuer{writeErr: errors.New("gateway down")}
	manager, store := createTestManager(t, issuer)

	entry := manager.Enqueue(context.Background(), "statement.pdf", []byte("content"))
	awaitDone(t, entry)

	assert.Equal(t, StateFailed, entry.State())
	assert.NotEmpty(t, entry.Err())
	assert.Empty(t, store.Snapshot().FileUploads, "failed upload never reaches the manifest")
}

func TestManager_Enqueue_TransferFailure(t *testing.T) {
	server := newPutServer(t, http.StatusForbidden)
	defer server.Close()

	issuer := &fakeIssuer{base: server.URL, key: "k.txt", uuid: "u-2"}
	manager, store := createTestManager(t, issuer)

	entry := manager.Enqueue(context.Background(), "notes.txt", []byte("content"))
	awaitDone(t, entry)

	assert.Equal(t, StateFailed, entry.State())
	assert.Empty(t, entry.S3Key(), "failed entry carries no storage identity")
	assert.Empty(t, store.Snapshot().FileUploads)
}

func TestEntry_TerminalStatesAreSticky(t *testing.T) {
	entry := &Entry{state: StatePending, done: make(chan struct{})}

	require.True(t, entry.markUploading())
	require.True(t, entry.complete("k", "u"))

	assert.False(t, entry.fail("late failure"), "uploaded entry cannot fail afterwards")
	assert.False(t, entry.complete("k2", "u2"))
	assert.Equal(t, StateUploaded, entry.State())
	assert.Equal(t, "k", entry.S3Key())
	assert.Empty(t, entry.Err())
}

// ==========================
// Removal Tests
// ==========================

func TestManager_Remove_UploadedEntryDropsManifestRow(t *testing.T) {
	manager, store := createTestManager(t, &fakeIssuer{})

	entry := manager.RegisterUploaded("test_document.txt", "sample.txt", "text/plain")
	require.Len(t, store.Snapshot().FileUploads, 1)

	manager.Remove(entry)

	assert.Empty(t, manager.Entries())
	assert.Empty(t, store.Snapshot().FileUploads)
}

func TestManager_Remove_FailedEntryLeavesManifestAlone(t *testing.T) {
	issuer := &fakeIssuer{writeErr: errors.New("gateway down")}
	manager, store := createTestManager(t, issuer)
	manager.RegisterUploaded("keep.txt", "keep-key.txt", "text/plain")

	entry := manager.Enqueue(context.Background(), "doomed.pdf", []byte("x"))
	awaitDone(t, entry)

	manager.Remove(entry)

	require.Len(t, manager.Entries(), 1)
	require.Len(t, store.Snapshot().FileUploads, 1)
	assert.Equal(t, "keep-key.txt", store.Snapshot().FileUploads[0].S3Key)
}

func TestManager_Remove_DuringTransferSkipsManifest(t *testing.T) {
	arrived := make(chan struct{})
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(arrived)
		<-release
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	issuer := &fakeIssuer{base: server.URL, key: "late.pdf", uuid: "u-late"}
	manager, store := createTestManager(t, issuer)

	entry := manager.Enqueue(context.Background(), "statement.pdf", []byte("content"))

	// Drop the entry while the transfer is still on the wire, then let
	// the transfer succeed.
	<-arrived
	manager.Remove(entry)
	close(release)
	awaitDone(t, entry)

	assert.Equal(t, StateUploaded, entry.State())
	assert.Empty(t, manager.Entries())
	assert.Empty(t, store.Snapshot().FileUploads, "removed upload must not land in the manifest")
}

// ==========================
// Sample Shortcut Tests
// ==========================

func TestManager_RegisterUploaded(t *testing.T) {
	manager, store := createTestManager(t, &fakeIssuer{})

	entry := manager.RegisterUploaded("test_document.txt", "a9c713a3-c695-4239-9f52-e46ab7ad5bff.txt", "text/plain")

	assert.Equal(t, StateUploaded, entry.State())
	select {
	case <-entry.Done():
	default:
		t.Fatal("registered entry must already be terminal")
	}

	rec := store.Snapshot()
	require.Len(t, rec.FileUploads, 1)
	assert.Equal(t, "a9c713a3-c695-4239-9f52-e46ab7ad5bff.txt", rec.FileUploads[0].S3Key)

	// Registering the same key twice keeps the manifest unique.
	manager.RegisterUploaded("test_document.txt", "a9c713a3-c695-4239-9f52-e46ab7ad5bff.txt", "text/plain")
	assert.Len(t, store.Snapshot().FileUploads, 1)
	assert.Len(t, manager.Entries(), 2, "entries list still shows both selections")
}

func TestManager_Reset_ClearsEntryList(t *testing.T) {
	manager, _ := createTestManager(t, &fakeIssuer{})
	manager.RegisterUploaded("a.txt", "ka.txt", "text/plain")
	manager.RegisterUploaded("b.txt", "kb.txt", "text/plain")

	manager.Reset()

	assert.Empty(t, manager.Entries())
}

func TestManager_DownloadURL(t *testing.T) {
	manager, _ := createTestManager(t, &fakeIssuer{})

	url, err := manager.DownloadURL(context.Background(), "k.txt")
	require.NoError(t, err)
	assert.Equal(t, "https://storage.example.com/get/k.txt", url)
}
