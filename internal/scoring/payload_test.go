// internal/scoring/payload_test.go
package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credit-intake/internal/models"
)

func strp(v string) *string   { return &v }
func intp(v int) *int         { return &v }
func fltp(v float64) *float64 { return &v }

// Wednesday 2026-08-26 14:05 local.
var submitTime = time.Date(2026, 8, 26, 14, 5, 0, 0, time.Local)

func TestBuildPayload_CanonicalFieldsOnly(t *testing.T) {
	rec := &models.ApplicantRecord{
		FullName:       strp("Nguyễn Thị Mai"),
		CodeGender:     strp("F"),
		Email:          strp("mai@example.com"),
		FlagEmail:      intp(1),
		AmtIncomeTotal: fltp(96000000),
		IncomeMonthly:  fltp(8000000),
	}

	payload, err := BuildPayload(rec, submitTime)
	require.NoError(t, err)

	assert.Equal(t, "F", payload.FormData["CODE_GENDER"])
	assert.Equal(t, float64(1), payload.FormData["FLAG_EMAIL"])
	assert.Equal(t, float64(96000000), payload.FormData["AMT_INCOME_TOTAL"])

	// Display-oriented keys never leave the session.
	assert.NotContains(t, payload.FormData, "fullName")
	assert.NotContains(t, payload.FormData, "email")
	assert.NotContains(t, payload.FormData, "incomeMonthly")
	assert.NotContains(t, payload.FormData, "file_uploads")
}

func TestBuildPayload_OmitsUnsetFields(t *testing.T) {
	rec := &models.ApplicantRecord{CodeGender: strp("M")}

	payload, err := BuildPayload(rec, submitTime)
	require.NoError(t, err)

	assert.NotContains(t, payload.FormData, "AMT_CREDIT")
	assert.NotContains(t, payload.FormData, "DAYS_BIRTH")
	assert.Contains(t, payload.FormData, "CODE_GENDER")
}

func TestBuildPayload_StampsSubmissionTiming(t *testing.T) {
	rec := &models.ApplicantRecord{}

	payload, err := BuildPayload(rec, submitTime)
	require.NoError(t, err)

	assert.Equal(t, "WEDNESDAY", payload.FormData["WEEKDAY_APPR_PROCESS_START"])
	assert.Equal(t, float64(14), payload.FormData["HOUR_APPR_PROCESS_START"])

	// Stamping happens on a copy; the caller's record stays untouched.
	assert.Nil(t, rec.WeekdayApprProcessStart)
	assert.Nil(t, rec.HourApprProcessStart)
}

func TestBuildPayload_FileManifest(t *testing.T) {
	rec := &models.ApplicantRecord{
		FileUploads: []models.FileUpload{
			{Filename: "doc.pdf", S3Key: "k.pdf", ContentType: "application/pdf"},
		},
	}

	payload, err := BuildPayload(rec, submitTime)
	require.NoError(t, err)
	require.Len(t, payload.FileUploads, 1)
	assert.Equal(t, "k.pdf", payload.FileUploads[0].S3Key)

	empty, err := BuildPayload(&models.ApplicantRecord{}, submitTime)
	require.NoError(t, err)
	assert.Nil(t, empty.FileUploads)
}
