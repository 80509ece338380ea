// internal/scoring/envelope.go
package scoring

import (
	"encoding/json"
	"errors"

	commonerrors "credit-intake/internal/common/errors"
	"credit-intake/internal/models"
)

// Unwrap normalizes a scoring response body. The endpoint sits behind a
// gateway that sometimes wraps the real payload in an envelope under a
// "body" key, and sometimes double-encodes that body as a JSON string.
// Unwrap peels both layers and returns the innermost JSON object bytes.
func Unwrap(raw []byte) ([]byte, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, commonerrors.NewResponseMalformedError(err)
	}

	body, ok := envelope["body"]
	if !ok {
		return raw, nil
	}

	// Double-encoded: "body" holds a JSON string containing JSON.
	var inner string
	if err := json.Unmarshal(body, &inner); err == nil {
		if !json.Valid([]byte(inner)) {
			return nil, commonerrors.NewResponseMalformedError(errors.New("body string is not valid JSON"))
		}
		return []byte(inner), nil
	}
	return body, nil
}

// DecodeResult parses normalized result bytes into a ScoreResult.
func DecodeResult(raw []byte) (*models.ScoreResult, error) {
	var result models.ScoreResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, commonerrors.NewResultParseError(err)
	}
	return &result, nil
}
