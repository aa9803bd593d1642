package service

import (
	"time"

	"github.com/bizcoach/assessment-server/internal/scoring"
	"github.com/bizcoach/assessment-server/internal/swot"
)

// AssessmentResult is a scored questionnaire owned by a business. It is never
// modified after creation; a retake produces a new result.
type AssessmentResult struct {
	ID            string                 `json:"id"`
	BusinessID    string                 `json:"businessId"`
	TotalScore    float64                `json:"totalScore"`
	Percentage    int                    `json:"percentage"`
	HealthStatus  scoring.HealthStatus   `json:"healthStatus"`
	SectionScores []scoring.SectionScore `json:"sectionScores"`
	ComputedAt    time.Time              `json:"computedAt"`
	Answers       map[string]any         `json:"answers,omitempty"`
}

type ScoreChange struct {
	CurrentPercentage  int     `json:"currentPercentage"`
	PreviousPercentage int     `json:"previousPercentage"`
	ChangePoints       int     `json:"changePoints"`
	CurrentTotal       float64 `json:"currentTotal"`
	PreviousTotal      float64 `json:"previousTotal"`
	HasPrevious        bool    `json:"hasPrevious"`
}

type SwotComparison struct {
	BusinessID  string      `json:"businessId"`
	FromQuarter string      `json:"fromQuarter"`
	ToQuarter   string      `json:"toQuarter"`
	Category    string      `json:"category,omitempty"`
	Diff        swot.Result `json:"diff"`
}
