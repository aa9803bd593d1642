package grpc

import (
	"context"
	"time"

	"github.com/bizcoach/assessment-server/internal/scoring"
	"github.com/bizcoach/assessment-server/internal/service"
)

// Cacher defines the interface for cache operations.
type Cacher interface {
	Close() error
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type AssessmentService interface {
	Submit(ctx context.Context, businessID string, answers map[string]any) (service.AssessmentResult, error)
	SaveAssessment(ctx context.Context, result service.AssessmentResult) (service.AssessmentResult, error)
	Latest(ctx context.Context, businessID string) (service.AssessmentResult, error)
	ScoreChange(ctx context.Context, businessID string) (service.ScoreChange, error)
	Recommendations(ctx context.Context, businessID string) ([]scoring.Recommendation, error)
	CompareQuarters(ctx context.Context, businessID, from, to, category string) (service.SwotComparison, error)
}
