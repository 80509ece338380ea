// internal/wizard/wizard.go
package wizard

import (
	"sync"

	"credit-intake/internal/common/logger"
)

// Step identifiers, in wizard order.
const (
	StepPersonalInfo = iota + 1
	StepPersonalProperty
	StepLoanInfo
	StepProfessionalProfile
	StepDocuments

	TotalSteps = StepDocuments
)

var stepNames = map[int]string{
	StepPersonalInfo:        "personal-information",
	StepPersonalProperty:    "personal-property",
	StepLoanInfo:            "loan-information",
	StepProfessionalProfile: "professional-profile",
	StepDocuments:           "financial-documents",
}

// StepName returns the configured name for a step, or "" if out of range.
func StepName(step int) string {
	return stepNames[step]
}

// Wizard tracks the current position in the linear step sequence. Every
// step is reachable at any time; step validity is advisory unless strict
// mode is enabled (see validate.go). Navigation never mutates the
// applicant record.
type Wizard struct {
	mu      sync.Mutex
	current int
	exit    func()
	logger  logger.Logger
}

// New creates a wizard positioned at step 1. exit is invoked when Prev is
// called at step 1, handing control back to whatever precedes the wizard
// (e.g. an introduction screen).
func New(exit func(), log logger.Logger) *Wizard {
	return &Wizard{
		current: StepPersonalInfo,
		exit:    exit,
		logger:  log.WithFields(map[string]interface{}{"component": "wizard"}),
	}
}

// Current returns the current step index in [1, TotalSteps].
func (w *Wizard) Current() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// AtLastStep reports whether the wizard is at the final step; submission
// is only offered there.
func (w *Wizard) AtLastStep() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current == TotalSteps
}

// Next advances one step, saturating at the last step.
func (w *Wizard) Next() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current < TotalSteps {
		w.current++
		w.logger.Debug("advanced step", map[string]interface{}{"step": w.current})
	}
	return w.current
}

// Prev moves back one step. At step 1 it delegates to the exit callback
// instead of moving.
func (w *Wizard) Prev() int {
	w.mu.Lock()
	if w.current > StepPersonalInfo {
		w.current--
		step := w.current
		w.mu.Unlock()
		return step
	}
	w.mu.Unlock()

	if w.exit != nil {
		w.exit()
	}
	return StepPersonalInfo
}

// GoTo jumps directly to a step. Out-of-range targets are ignored and the
// current step is returned unchanged.
func (w *Wizard) GoTo(step int) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if step >= StepPersonalInfo && step <= TotalSteps {
		w.current = step
	}
	return w.current
}
