// internal/scoring/payload.go
package scoring

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"credit-intake/internal/models"
)

// Payload is the outbound scoring request body.
type Payload struct {
	FormData    map[string]interface{} `json:"form_data"`
	FileUploads []models.FileUpload    `json:"file_uploads,omitempty"`
}

// BuildPayload assembles the outbound request from an applicant record:
// the canonical machine-readable subset is every field whose JSON key is
// fully upper-snake-case, with null fields omitted. The file manifest
// rides alongside, omitted when empty. Submission timing
// (WEEKDAY_APPR_PROCESS_START, HOUR_APPR_PROCESS_START) is stamped from
// the given time.
func BuildPayload(rec *models.ApplicantRecord, now time.Time) (*Payload, error) {
	stamped := rec.Clone()
	weekday := strings.ToUpper(now.Weekday().String())
	hour := now.Hour()
	stamped.WeekdayApprProcessStart = &weekday
	stamped.HourApprProcessStart = &hour

	raw, err := json.Marshal(stamped)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}

	formData := make(map[string]interface{})
	for key, value := range fields {
		if value == nil {
			continue
		}
		if key == strings.ToUpper(key) {
			formData[key] = value
		}
	}

	payload := &Payload{FormData: formData}
	if len(rec.FileUploads) > 0 {
		payload.FileUploads = make([]models.FileUpload, len(rec.FileUploads))
		copy(payload.FileUploads, rec.FileUploads)
	}
	return payload, nil
}
