package http

import (
	"context"

	"github.com/bizcoach/assessment-server/internal/scoring"
	"github.com/bizcoach/assessment-server/internal/service"
)

// AssessmentService is the subset of the service layer the REST surface uses.
type AssessmentService interface {
	Submit(ctx context.Context, businessID string, answers map[string]any) (service.AssessmentResult, error)
	SaveAssessment(ctx context.Context, result service.AssessmentResult) (service.AssessmentResult, error)
	Latest(ctx context.Context, businessID string) (service.AssessmentResult, error)
	ScoreChange(ctx context.Context, businessID string) (service.ScoreChange, error)
	Recommendations(ctx context.Context, businessID string) ([]scoring.Recommendation, error)
	CompareQuarters(ctx context.Context, businessID, from, to, category string) (service.SwotComparison, error)
}

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error
