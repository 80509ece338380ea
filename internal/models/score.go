// internal/models/score.go
package models

// ScoreResult is the unwrapped payload returned by the scoring service.
type ScoreResult struct {
	OverallScore     float64            `json:"overall_score"`
	IndividualScores map[string]float64 `json:"individual_scores,omitempty"`
	LLMDetails       []LLMDetail        `json:"llm_details,omitempty"`
}

// LLMDetail carries per-document analysis attached to a score result.
type LLMDetail struct {
	Filename       string                `json:"filename"`
	Classification string                `json:"classification"`
	Scores         map[string]TraitScore `json:"scores,omitempty"`
	Evidence       map[string]string     `json:"evidence,omitempty"`
	KeyFindings    []string              `json:"key_findings,omitempty"`
	DataQuality    string                `json:"data_quality"`
}

// TraitScore is one trait's score with the model's confidence in it.
type TraitScore struct {
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
}
