package models

import (
	"time"

	"github.com/google/uuid"
)

type AnalysisSource string

const (
	SourcePDF  AnalysisSource = "pdf"
	SourceText AnalysisSource = "text"
)

// Analysis is one completed analysis kept in the history table.
type Analysis struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Source           AnalysisSource `gorm:"type:varchar(10);not null" json:"source"`
	OriginalName     string         `gorm:"type:varchar(255)" json:"original_name,omitempty"`
	JobDescription   string         `gorm:"type:text;not null" json:"job_description"`
	ResumeCharacters int            `gorm:"not null" json:"resume_characters"`
	Provider         string         `gorm:"type:varchar(50);not null" json:"provider"`
	Model            string         `gorm:"type:varchar(100);not null" json:"model"`
	MatchScore       float64        `gorm:"type:decimal(5,2);not null" json:"match_score"`
	Strengths        []string       `gorm:"type:jsonb;serializer:json" json:"strengths"`
	MissingSkills    []string       `gorm:"type:jsonb;serializer:json" json:"missing_skills"`
	Suggestions      []string       `gorm:"type:jsonb;serializer:json" json:"suggestions"`
	CreatedAt        time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Analysis) TableName() string {
	return "analyses"
}
