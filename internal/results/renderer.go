// internal/results/renderer.go
package results

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"credit-intake/internal/models"
)

const gaugeWidth = 40

// Renderer writes a human-readable view of a score result.
type Renderer struct {
	out io.Writer
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Render prints the overall gauge, the per-trait breakdown and any
// per-document findings.
func (r *Renderer) Render(result *models.ScoreResult) {
	display := DisplayScore(result.OverallScore)
	band := ClassifyScore(display)

	fmt.Fprintf(r.out, "Credit Score: %d/100 (%s)\n", display, band.Label)
	fmt.Fprintf(r.out, "[%s]\n", gauge(display))

	if len(result.IndividualScores) > 0 {
		fmt.Fprintln(r.out, "\nScore Breakdown:")
		for _, trait := range sortedKeys(result.IndividualScores) {
			traitDisplay := DisplayScore(result.IndividualScores[trait])
			fmt.Fprintf(r.out, "  %-28s %3d/100 [%s]\n", traitLabel(trait), traitDisplay, gauge(traitDisplay))
		}
	}

	for _, detail := range result.LLMDetails {
		fmt.Fprintf(r.out, "\nDocument: %s (%s, quality: %s)\n", detail.Filename, detail.Classification, detail.DataQuality)
		for _, trait := range sortedTraitKeys(detail.Scores) {
			ts := detail.Scores[trait]
			fmt.Fprintf(r.out, "  %-28s %3d/100 (confidence %.0f%%)\n", traitLabel(trait), DisplayScore(ts.Score), ts.Confidence*100)
			if evidence, ok := detail.Evidence[trait]; ok && evidence != "" {
				fmt.Fprintf(r.out, "    %s\n", evidence)
			}
		}
		for _, finding := range detail.KeyFindings {
			fmt.Fprintf(r.out, "  - %s\n", finding)
		}
	}
}

// gauge renders a fixed-width bar for a 0..100 score.
func gauge(display int) string {
	if display < 0 {
		display = 0
	}
	if display > 100 {
		display = 100
	}
	filled := display * gaugeWidth / 100
	return strings.Repeat("#", filled) + strings.Repeat("-", gaugeWidth-filled)
}

// traitLabel turns a snake_case trait key into a readable title.
func traitLabel(key string) string {
	words := strings.Split(key, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedTraitKeys(m map[string]models.TraitScore) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
