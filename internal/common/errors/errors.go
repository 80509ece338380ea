// Package errors provides standardized error handling for the intake session.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeAuthTokenMissing ErrorCode = "AUTH_TOKEN_MISSING"
	ErrCodeAuthTokenFetch   ErrorCode = "AUTH_TOKEN_FETCH_FAILED"

	ErrCodeUploadCredentialFailed ErrorCode = "UPLOAD_CREDENTIAL_FAILED"
	ErrCodeUploadTransferFailed   ErrorCode = "UPLOAD_TRANSFER_FAILED"
	ErrCodeDownloadURLFailed      ErrorCode = "DOWNLOAD_URL_FAILED"

	ErrCodeScoreRequestFailed ErrorCode = "SCORE_REQUEST_FAILED"
	ErrCodeResponseMalformed  ErrorCode = "RESPONSE_MALFORMED"
	ErrCodeResultParseFailed  ErrorCode = "RESULT_PARSE_FAILED"
	ErrCodeResultStoreFailed  ErrorCode = "RESULT_STORE_FAILED"

	ErrCodeStepValidationFailed ErrorCode = "STEP_VALIDATION_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewAuthTokenMissingError creates a non-retryable authentication error.
// Operations that require a bearer credential fail fast with this error
// before any network call is made.
func NewAuthTokenMissingError() *StandardError {
	return &StandardError{
		Code:      ErrCodeAuthTokenMissing,
		Message:   "not authenticated",
		Details:   "no bearer credential available for this session",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuthTokenFetchError creates a retryable token endpoint error.
func NewAuthTokenFetchError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuthTokenFetch,
		Message:   "failed to obtain bearer credential",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewUploadCredentialError creates a retryable upload credential error.
func NewUploadCredentialError(filename string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUploadCredentialFailed,
		Message:   "failed to obtain write credential for upload",
		Details:   fmt.Sprintf("filename: %s, error: %s", filename, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewUploadTransferError creates a retryable byte transfer error.
func NewUploadTransferError(filename string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUploadTransferFailed,
		Message:   "failed to transfer file to object storage",
		Details:   fmt.Sprintf("filename: %s, error: %s", filename, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDownloadURLError creates a retryable download credential error.
func NewDownloadURLError(s3Key string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDownloadURLFailed,
		Message:   "failed to obtain download URL",
		Details:   fmt.Sprintf("s3Key: %s, error: %s", s3Key, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewScoreRequestError creates a retryable scoring endpoint error.
func NewScoreRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeScoreRequestFailed,
		Message:   "scoring request failed",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewResponseMalformedError creates a non-retryable parse error for a
// response whose body could not be decoded.
func NewResponseMalformedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeResponseMalformed,
		Message:   "malformed scoring response",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewResultParseError creates a non-retryable error for a corrupted value
// read back from the shared result slot.
func NewResultParseError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeResultParseFailed,
		Message:   "stored score result is not valid JSON",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewResultStoreError creates a retryable result slot I/O error.
func NewResultStoreError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeResultStoreFailed,
		Message:   "result slot operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStepValidationError creates a non-retryable step validation error.
func NewStepValidationError(step int, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeStepValidationFailed,
		Message:   "step data validation failed",
		Details:   fmt.Sprintf("step: %d, %s", step, details),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// IsRetryable reports whether err is a StandardError marked retryable.
func IsRetryable(err error) bool {
	if se, ok := err.(*StandardError); ok {
		return se.Retryable
	}
	return false
}

// HasCode reports whether err is a StandardError with the given code.
func HasCode(err error, code ErrorCode) bool {
	if se, ok := err.(*StandardError); ok {
		return se.Code == code
	}
	return false
}
