// internal/results/band_test.go
package results

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayScore(t *testing.T) {
	tests := []struct {
		overall float64
		want    int
	}{
		{overall: 0.82, want: 82},
		{overall: 0.825, want: 83}, // rounds, not truncates
		{overall: 0.004, want: 0},
		{overall: 0.005, want: 1},
		{overall: 1.0, want: 100},
		{overall: 0, want: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DisplayScore(tt.overall), "overall %v", tt.overall)
	}
}

func TestClassifyScore(t *testing.T) {
	tests := []struct {
		name    string
		display int
		want    Band
	}{
		{name: "top of range", display: 100, want: BandLowRisk},
		{name: "low boundary inclusive", display: 75, want: BandLowRisk},
		{name: "just under low", display: 74, want: BandMediumLowRisk},
		{name: "medium-low boundary inclusive", display: 50, want: BandMediumLowRisk},
		{name: "just under medium-low", display: 49, want: BandMediumRisk},
		{name: "medium boundary inclusive", display: 25, want: BandMediumRisk},
		{name: "just under medium", display: 24, want: BandHighRisk},
		{name: "bottom of range", display: 0, want: BandHighRisk},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyScore(tt.display))
		})
	}
}
