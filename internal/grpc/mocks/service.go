package mocks

import (
	"context"
	"errors"

	"github.com/bizcoach/assessment-server/internal/scoring"
	"github.com/bizcoach/assessment-server/internal/service"
)

// MockAssessmentService is a mock implementation of the AssessmentService interface
// for testing the handler layer. It uses function-based mocking for flexibility.
type MockAssessmentService struct {
	SubmitFunc          func(ctx context.Context, businessID string, answers map[string]any) (service.AssessmentResult, error)
	SaveAssessmentFunc  func(ctx context.Context, result service.AssessmentResult) (service.AssessmentResult, error)
	LatestFunc          func(ctx context.Context, businessID string) (service.AssessmentResult, error)
	ScoreChangeFunc     func(ctx context.Context, businessID string) (service.ScoreChange, error)
	RecommendationsFunc func(ctx context.Context, businessID string) ([]scoring.Recommendation, error)
	CompareQuartersFunc func(ctx context.Context, businessID, from, to, category string) (service.SwotComparison, error)
}

// Submit implements the AssessmentService interface
func (m *MockAssessmentService) Submit(ctx context.Context, businessID string, answers map[string]any) (service.AssessmentResult, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, businessID, answers)
	}
	return service.AssessmentResult{}, errors.New("SubmitFunc not implemented")
}

// SaveAssessment implements the AssessmentService interface
func (m *MockAssessmentService) SaveAssessment(ctx context.Context, result service.AssessmentResult) (service.AssessmentResult, error) {
	if m.SaveAssessmentFunc != nil {
		return m.SaveAssessmentFunc(ctx, result)
	}
	return service.AssessmentResult{}, errors.New("SaveAssessmentFunc not implemented")
}

// Latest implements the AssessmentService interface
func (m *MockAssessmentService) Latest(ctx context.Context, businessID string) (service.AssessmentResult, error) {
	if m.LatestFunc != nil {
		return m.LatestFunc(ctx, businessID)
	}
	return service.AssessmentResult{}, errors.New("LatestFunc not implemented")
}

// ScoreChange implements the AssessmentService interface
func (m *MockAssessmentService) ScoreChange(ctx context.Context, businessID string) (service.ScoreChange, error) {
	if m.ScoreChangeFunc != nil {
		return m.ScoreChangeFunc(ctx, businessID)
	}
	return service.ScoreChange{}, errors.New("ScoreChangeFunc not implemented")
}

// Recommendations implements the AssessmentService interface
func (m *MockAssessmentService) Recommendations(ctx context.Context, businessID string) ([]scoring.Recommendation, error) {
	if m.RecommendationsFunc != nil {
		return m.RecommendationsFunc(ctx, businessID)
	}
	return nil, errors.New("RecommendationsFunc not implemented")
}

// CompareQuarters implements the AssessmentService interface
func (m *MockAssessmentService) CompareQuarters(ctx context.Context, businessID, from, to, category string) (service.SwotComparison, error) {
	if m.CompareQuartersFunc != nil {
		return m.CompareQuartersFunc(ctx, businessID, from, to, category)
	}
	return service.SwotComparison{}, errors.New("CompareQuartersFunc not implemented")
}
