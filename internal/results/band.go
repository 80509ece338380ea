// internal/results/band.go
package results

import "math"

// Band is a risk classification derived from the display score.
type Band struct {
	Label string
	Level string
}

var (
	BandLowRisk       = Band{Label: "Low Risk", Level: "low"}
	BandMediumLowRisk = Band{Label: "Medium-Low Risk", Level: "medium-low"}
	BandMediumRisk    = Band{Label: "Medium Risk", Level: "medium"}
	BandHighRisk      = Band{Label: "High Risk", Level: "high"}
)

// DisplayScore converts the endpoint's 0..1 overall score to the 0..100
// integer shown to the applicant.
func DisplayScore(overall float64) int {
	return int(math.Round(overall * 100))
}

// ClassifyScore maps a display score to its risk band. Lower bounds are
// inclusive: 75 is low risk, 50 is medium-low, 25 is medium.
func ClassifyScore(display int) Band {
	switch {
	case display >= 75:
		return BandLowRisk
	case display >= 50:
		return BandMediumLowRisk
	case display >= 25:
		return BandMediumRisk
	default:
		return BandHighRisk
	}
}
