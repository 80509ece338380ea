// internal/scoring/orchestrator.go
package scoring

import (
	"context"
	"errors"
	"sync"
	"time"

	commonerrors "credit-intake/internal/common/errors"
	"credit-intake/internal/common/logger"
	"credit-intake/internal/common/metrics"
	"credit-intake/internal/common/observability"
	"credit-intake/internal/form"
	"credit-intake/internal/models"
	"credit-intake/internal/resultstore"
)

// Status is the lifecycle of the most recent submission.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

// SubmissionState is a snapshot of the orchestrator's current state.
// Result is set only while Status is StatusSucceeded.
type SubmissionState struct {
	Status Status
	Err    string
	Result *models.ScoreResult
}

// TokenProvider yields the bearer credential for outbound calls.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Orchestrator runs the submission flow: clear the shared result slot,
// build the payload, call the scoring endpoint exactly once, unwrap the
// response and publish it to the slot. A newer submission supersedes an
// in-flight one; the superseded submission never writes the slot or the
// state.
type Orchestrator struct {
	store  *form.Store
	slot   resultstore.Slot
	tokens TokenProvider
	client *Client
	obs    *observability.Observability
	logger logger.Logger

	mu         sync.Mutex
	state      SubmissionState
	generation uint64
}

func NewOrchestrator(store *form.Store, slot resultstore.Slot, tokens TokenProvider, client *Client, obs *observability.Observability, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		store:  store,
		slot:   slot,
		tokens: tokens,
		client: client,
		obs:    obs,
		logger: log,
		state:  SubmissionState{Status: StatusIdle},
	}
}

// State returns the current submission state.
func (o *Orchestrator) State() SubmissionState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Submit runs one submission end to end and returns the parsed result.
// The bearer credential is checked before any call to the scoring
// endpoint; without one the submission fails with zero endpoint calls.
func (o *Orchestrator) Submit(ctx context.Context) (*models.ScoreResult, error) {
	start := time.Now()

	o.mu.Lock()
	o.generation++
	gen := o.generation
	o.state = SubmissionState{Status: StatusSubmitting}
	o.mu.Unlock()

	// Stale results from an earlier submission must not surface as this
	// one's outcome.
	if err := o.slot.Clear(ctx); err != nil {
		o.logger.Warn("Failed to clear result slot before submission", map[string]interface{}{
			"error": err.Error(),
		})
	}

	token, err := o.tokens.Token(ctx)
	if err != nil {
		return nil, o.fail(ctx, gen, start, commonerrors.NewAuthTokenMissingError())
	}

	payload, err := BuildPayload(o.store.Snapshot(), time.Now())
	if err != nil {
		return nil, o.fail(ctx, gen, start, commonerrors.NewScoreRequestError(err.Error()))
	}

	raw, err := o.client.GetScore(ctx, payload, token)
	if err != nil {
		return nil, o.fail(ctx, gen, start, err)
	}

	normalized, err := Unwrap(raw)
	if err != nil {
		return nil, o.fail(ctx, gen, start, err)
	}

	result, err := DecodeResult(normalized)
	if err != nil {
		return nil, o.fail(ctx, gen, start, err)
	}

	// The generation re-check and the slot write stay under one critical
	// section so a superseded submission can never publish after the newer
	// one has. A later Submit blocks on the same mutex until the write lands.
	o.mu.Lock()
	if gen != o.generation {
		o.mu.Unlock()
		o.logger.Info("Discarding superseded submission", map[string]interface{}{
			"generation": gen,
		})
		return result, nil
	}
	o.state = SubmissionState{Status: StatusSucceeded, Result: result}
	if err := o.slot.Put(ctx, string(normalized)); err != nil {
		o.logger.Error("Failed to publish result", map[string]interface{}{
			"error": err.Error(),
		})
	}
	o.mu.Unlock()

	metrics.SubmissionsTotal.WithLabelValues("succeeded").Inc()
	metrics.SubmissionDuration.Observe(time.Since(start).Seconds())
	if o.obs != nil {
		o.obs.RecordSubmission(ctx, "succeeded")
		o.obs.RecordSubmissionDuration(ctx, time.Since(start), "succeeded")
	}
	o.logger.Info("Submission succeeded", map[string]interface{}{
		"overall_score": result.OverallScore,
	})
	return result, nil
}

// fail records a failed outcome unless a newer submission has taken over.
func (o *Orchestrator) fail(ctx context.Context, gen uint64, start time.Time, cause error) error {
	var err *commonerrors.StandardError
	if !errors.As(cause, &err) {
		err = commonerrors.NewScoreRequestError(cause.Error())
	}

	o.mu.Lock()
	if gen == o.generation {
		o.state = SubmissionState{Status: StatusFailed, Err: err.Message}
	}
	o.mu.Unlock()

	metrics.SubmissionsTotal.WithLabelValues("failed").Inc()
	metrics.SubmissionDuration.Observe(time.Since(start).Seconds())
	if o.obs != nil {
		o.obs.RecordSubmission(ctx, "failed")
		o.obs.RecordSubmissionDuration(ctx, time.Since(start), "failed")
	}
	o.logger.Error("Submission failed", map[string]interface{}{
		"code":  err.Code,
		"error": err.Message,
	})
	return err
}
