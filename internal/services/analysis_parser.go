package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// ParseAnalysis decodes a model reply into an AnalysisResult. Only
// surrounding whitespace is removed, so fenced or prose-wrapped JSON is
// rejected with ErrInvalidJSON. Well-formed JSON of the wrong shape is
// rejected with ErrUnexpectedSchema. Keys beyond the four result fields
// are dropped.
func ParseAnalysis(raw string) (*models.AnalysisResult, error) {
	data := []byte(strings.TrimSpace(raw))
	if !json.Valid(data) {
		return nil, ErrInvalidJSON
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return nil, fmt.Errorf("%w: top-level value is not an object", ErrUnexpectedSchema)
	}

	score, err := parseScore(fields["match_score"])
	if err != nil {
		return nil, err
	}

	result := &models.AnalysisResult{MatchScore: score}
	for _, f := range []struct {
		key string
		dst *[]string
	}{
		{"strengths", &result.Strengths},
		{"missing_skills", &result.MissingSkills},
		{"suggestions", &result.Suggestions},
	} {
		list, err := parseStringList(f.key, fields[f.key])
		if err != nil {
			return nil, err
		}
		*f.dst = list
	}

	return result, nil
}

func parseScore(raw json.RawMessage) (float64, error) {
	if raw == nil {
		return 0, fmt.Errorf("%w: match_score is missing", ErrUnexpectedSchema)
	}

	var score float64
	if err := json.Unmarshal(raw, &score); err != nil || isJSONNull(raw) {
		return 0, fmt.Errorf("%w: match_score is not a number", ErrUnexpectedSchema)
	}
	if math.IsNaN(score) || math.IsInf(score, 0) || score < 0 || score > 100 {
		return 0, fmt.Errorf("%w: match_score %v is outside 0-100", ErrUnexpectedSchema, score)
	}

	return score, nil
}

func parseStringList(key string, raw json.RawMessage) ([]string, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: %s is missing", ErrUnexpectedSchema, key)
	}
	if isJSONNull(raw) {
		return nil, fmt.Errorf("%w: %s is null", ErrUnexpectedSchema, key)
	}

	var items []*string
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %s is not an array of strings", ErrUnexpectedSchema, key)
	}

	list := make([]string, 0, len(items))
	for i, item := range items {
		if item == nil {
			return nil, fmt.Errorf("%w: %s[%d] is null", ErrUnexpectedSchema, key, i)
		}
		list = append(list, *item)
	}

	return list, nil
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
