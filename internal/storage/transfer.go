// internal/storage/transfer.go
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	commonhttp "credit-intake/internal/common/http"
)

// Transfer performs the direct byte PUT against a presigned URL.
type Transfer struct {
	httpClient *commonhttp.Client
}

func NewTransfer(timeout time.Duration) *Transfer {
	return &Transfer{
		httpClient: commonhttp.NewClient(timeout),
	}
}

// Put uploads content to the presigned URL with the matching Content-Type.
func (t *Transfer) Put(ctx context.Context, presignedURL, contentType string, content []byte) error {
	req, err := http.NewRequest("PUT", presignedURL, bytes.NewReader(content))
	if err != nil {
		return fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = int64(len(content))

	resp, err := t.httpClient.DoWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if !commonhttp.IsSuccess(resp) {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("upload returned status %d: %s", resp.StatusCode, string(raw))
	}
	return nil
}
