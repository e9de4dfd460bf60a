package models

// AnalysisResult is the validated reply of the completion model.
type AnalysisResult struct {
	MatchScore    float64  `json:"match_score" yaml:"match_score"`
	Strengths     []string `json:"strengths" yaml:"strengths"`
	MissingSkills []string `json:"missing_skills" yaml:"missing_skills"`
	Suggestions   []string `json:"suggestions" yaml:"suggestions"`
}

type AnalyzeTextRequest struct {
	Resume         string `json:"resume"`
	JobDescription string `json:"job_description"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// AnalysisMeta describes where a resume came from. It is only used for history.
type AnalysisMeta struct {
	Source       AnalysisSource
	OriginalName string
}

// AnalysisOutcome is what the analyzer hands back to its callers.
type AnalysisOutcome struct {
	Result AnalysisResult
	// RecordID is empty when no history record was written.
	RecordID string
	Cached   bool
}
