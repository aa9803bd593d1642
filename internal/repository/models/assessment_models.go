package models

import "time"

// AssessmentRecord is one persisted assessment row. Section scores and answers
// are stored as JSON documents.
type AssessmentRecord struct {
	ID            string
	BusinessID    string
	TotalScore    float64
	Percentage    int
	HealthStatus  string
	SectionScores []byte
	Answers       []byte
	ComputedAt    time.Time
}

type SwotItem struct {
	ID         string
	BusinessID string
	Quarter    string
	Category   string
	Text       string
	CreatedAt  time.Time
}
