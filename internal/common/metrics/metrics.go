// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UploadsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_uploads_started_total",
			Help: "Total number of document uploads enqueued",
		},
	)

	UploadsFinished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_uploads_finished_total",
			Help: "Total number of document uploads reaching a terminal state",
		},
		[]string{"state"},
	)

	UploadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "intake_upload_duration_seconds",
			Help: "Duration of document uploads from enqueue to terminal state",
		},
	)

	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_submissions_total",
			Help: "Total number of scoring submissions by outcome",
		},
		[]string{"outcome"},
	)

	SubmissionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "intake_submission_duration_seconds",
			Help: "Duration of scoring submissions in seconds",
		},
	)

	ResultPolls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_result_polls_total",
			Help: "Total number of result slot polls by outcome",
		},
		[]string{"outcome"},
	)
)
