package schema

// ReportAnalysis is the structured AI summary of a single report.
type ReportAnalysis struct {
	Summary             string         `json:"summary"`
	Strengths           []string       `json:"strengths"`
	AreasForImprovement []string       `json:"areasForImprovement"`
	KeyMetrics          map[string]any `json:"keyMetrics"`
	OverallScore        float64        `json:"overallScore"`
	Recommendations     []string       `json:"recommendations"`
}

// AnalysisResult holds either a parsed analysis or the raw model output with an error note.
type AnalysisResult struct {
	Analysis *ReportAnalysis `json:"analysis,omitempty"`
	Raw      string          `json:"raw,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// Parsed reports whether the model output was valid structured JSON.
func (a AnalysisResult) Parsed() bool {
	return a.Analysis != nil
}
