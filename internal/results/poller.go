// internal/results/poller.go
package results

import (
	"context"
	"time"

	"credit-intake/internal/common/logger"
	"credit-intake/internal/common/metrics"
	"credit-intake/internal/models"
	"credit-intake/internal/resultstore"
	"credit-intake/internal/scoring"
)

// Poller waits for a score result to appear in the shared slot. The slot
// is checked immediately and then on a fixed interval; slots that support
// watching additionally deliver values as soon as they are published.
type Poller struct {
	slot     resultstore.Slot
	interval time.Duration
	logger   logger.Logger
}

func NewPoller(slot resultstore.Slot, interval time.Duration, log logger.Logger) *Poller {
	if interval <= 0 {
		interval = time.Second
	}
	return &Poller{
		slot:     slot,
		interval: interval,
		logger:   log,
	}
}

// Await blocks until a parseable result is present or ctx is done. A
// corrupted slot value is logged and treated as absent; polling
// continues.
func (p *Poller) Await(ctx context.Context) (*models.ScoreResult, error) {
	if result, ok := p.check(ctx); ok {
		return result, nil
	}

	var watch <-chan string
	if w, ok := p.slot.(resultstore.Watchable); ok {
		watch = w.Watch()
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case raw := <-watch:
			if result, ok := p.parse(raw); ok {
				return result, nil
			}
		case <-ticker.C:
			if result, ok := p.check(ctx); ok {
				return result, nil
			}
		}
	}
}

// check reads the slot once and reports whether a usable result was found.
func (p *Poller) check(ctx context.Context) (*models.ScoreResult, bool) {
	raw, present, err := p.slot.Get(ctx)
	if err != nil {
		metrics.ResultPolls.WithLabelValues("error").Inc()
		p.logger.Warn("Result slot read failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, false
	}
	if !present {
		metrics.ResultPolls.WithLabelValues("miss").Inc()
		return nil, false
	}
	return p.parse(raw)
}

// parse unwraps the stored value (which may still carry the gateway
// envelope when another process wrote it) and decodes the result.
func (p *Poller) parse(raw string) (*models.ScoreResult, bool) {
	normalized, err := scoring.Unwrap([]byte(raw))
	if err != nil {
		metrics.ResultPolls.WithLabelValues("corrupt").Inc()
		p.logger.Warn("Discarding corrupted result payload", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, false
	}
	result, err := scoring.DecodeResult(normalized)
	if err != nil {
		metrics.ResultPolls.WithLabelValues("corrupt").Inc()
		p.logger.Warn("Discarding corrupted result payload", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, false
	}
	metrics.ResultPolls.WithLabelValues("hit").Inc()
	return result, true
}
