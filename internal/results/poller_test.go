// internal/results/poller_test.go
package results

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credit-intake/internal/common/logger"
	"credit-intake/internal/resultstore"
	"credit-intake/internal/scoring"
)

func createTestPoller(t *testing.T, slot resultstore.Slot, interval time.Duration) *Poller {
	return NewPoller(slot, interval, logger.NewTestLogger(t))
}

func TestPoller_Await_ValueAlreadyPresent(t *testing.T) {
	slot := resultstore.NewMemorySlot()
	require.NoError(t, slot.Put(context.Background(), `{"overall_score": 0.82}`))

	poller := createTestPoller(t, slot, time.Hour) // interval never fires
	result, err := poller.Await(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0.82, result.OverallScore)
}

func TestPoller_Await_ValueArrivesLater(t *testing.T) {
	slot := resultstore.NewMemorySlot()
	poller := createTestPoller(t, slot, 10*time.Millisecond)

	go func() {
		time.Sleep(50 * time.Millisecond)
		slot.Put(context.Background(), `{"overall_score": 0.41}`)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := poller.Await(ctx)

	require.NoError(t, err)
	assert.Equal(t, 0.41, result.OverallScore)
}

func TestPoller_Await_CorruptedValueKeepsPolling(t *testing.T) {
	slot := resultstore.NewMemorySlot()
	require.NoError(t, slot.Put(context.Background(), `not json at all`))

	poller := createTestPoller(t, slot, 10*time.Millisecond)

	go func() {
		time.Sleep(50 * time.Millisecond)
		slot.Put(context.Background(), `{"overall_score": 0.6}`)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := poller.Await(ctx)

	require.NoError(t, err)
	assert.Equal(t, 0.6, result.OverallScore)
}

func TestPoller_Await_UnwrapsDoubleEncodedValue(t *testing.T) {
	slot := resultstore.NewMemorySlot()
	require.NoError(t, slot.Put(context.Background(), `{"body": "{\"overall_score\": 0.5}"}`))

	poller := createTestPoller(t, slot, time.Hour)
	result, err := poller.Await(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0.5, result.OverallScore)
}

func TestPoller_Await_ContextCancelled(t *testing.T) {
	slot := resultstore.NewMemorySlot()
	poller := createTestPoller(t, slot, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := poller.Await(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRenderer_Render(t *testing.T) {
	var buf strings.Builder
	result, err := scoring.DecodeResult([]byte(`{
		"overall_score": 0.82,
		"individual_scores": {"income_stability": 0.9},
		"llm_details": [{
			"filename": "test_document.txt",
			"classification": "social_media_export",
			"scores": {"sentiment": {"score": 0.7, "confidence": 0.9}},
			"key_findings": ["stable posting history"],
			"data_quality": "good"
		}]
	}`))
	require.NoError(t, err)

	NewRenderer(&buf).Render(result)
	out := buf.String()

	assert.Contains(t, out, "Credit Score: 82/100 (Low Risk)")
	assert.Contains(t, out, "Income Stability")
	assert.Contains(t, out, "90/100")
	assert.Contains(t, out, "test_document.txt")
	assert.Contains(t, out, "stable posting history")
}
