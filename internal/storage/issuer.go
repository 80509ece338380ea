// internal/storage/issuer.go
package storage

import (
	"context"
	"path/filepath"
	"strings"
)

// WriteCredential is a one-shot permission to PUT a document into object
// storage.
type WriteCredential struct {
	PresignedURL string `json:"presignedUrl"`
	S3Key        string `json:"s3Key"`
	UUID         string `json:"uuid"`
}

// CredentialIssuer hands out presigned object-storage credentials. Two
// implementations exist: the HTTP gateway (production path, the endpoint
// the original clients call) and a direct S3 presigner for deployments
// that hold AWS credentials themselves.
type CredentialIssuer interface {
	// IssueWrite returns a credential for uploading the named file.
	IssueWrite(ctx context.Context, filename, contentType string) (*WriteCredential, error)
	// IssueDownload returns a presigned GET URL for the stored object.
	IssueDownload(ctx context.Context, s3Key string) (string, error)
}

var contentTypeByExtension = map[string]string{
	".pdf":  "application/pdf",
	".txt":  "text/plain",
	".csv":  "text/csv",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".json": "application/json",
	".xml":  "application/xml",
	".md":   "text/markdown",
	".rtf":  "application/rtf",
}

// ContentTypeForFilename maps a filename extension to its MIME type,
// falling back to application/octet-stream.
func ContentTypeForFilename(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ct, ok := contentTypeByExtension[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}
