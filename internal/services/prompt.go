package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildAnalysisPrompt places the resume text and job description into the
// recruiter instructions verbatim. Nothing is escaped or truncated.
func (pb *PromptBuilder) BuildAnalysisPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`
You are an experienced technical recruiter and ATS expert.

Analyze the resume against the job description.

You MUST respond with ONLY valid JSON.
Do NOT include markdown, code fences, or explanations.

The JSON must contain exactly these fields:
- match_score (number from 0 to 100)
- strengths (array of strings)
- missing_skills (array of strings)
- suggestions (array of strings)

Resume:
%s

Job Description:
%s
`, resumeText, jobDescription)
}
