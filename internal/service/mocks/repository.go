package mocks

import (
	"context"
	"errors"

	"github.com/bizcoach/assessment-server/internal/repository/models"
)

// MockAssessmentRepository is a mock implementation of the AssessmentRepository interface
// for testing the service layer.
type MockAssessmentRepository struct {
	SaveFunc       func(ctx context.Context, rec models.AssessmentRecord) error
	LoadLatestFunc func(ctx context.Context, businessID string) (models.AssessmentRecord, error)
	ListRecentFunc func(ctx context.Context, businessID string, limit int) ([]models.AssessmentRecord, error)
}

// Save implements the AssessmentRepository interface
func (m *MockAssessmentRepository) Save(ctx context.Context, rec models.AssessmentRecord) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, rec)
	}
	return errors.New("SaveFunc not implemented")
}

// LoadLatest implements the AssessmentRepository interface
func (m *MockAssessmentRepository) LoadLatest(ctx context.Context, businessID string) (models.AssessmentRecord, error) {
	if m.LoadLatestFunc != nil {
		return m.LoadLatestFunc(ctx, businessID)
	}
	return models.AssessmentRecord{}, errors.New("LoadLatestFunc not implemented")
}

// ListRecent implements the AssessmentRepository interface
func (m *MockAssessmentRepository) ListRecent(ctx context.Context, businessID string, limit int) ([]models.AssessmentRecord, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, businessID, limit)
	}
	return nil, errors.New("ListRecentFunc not implemented")
}

// MockSwotRepository is a mock implementation of the SwotRepository interface.
type MockSwotRepository struct {
	ListItemsFunc func(ctx context.Context, businessID, quarter string) ([]models.SwotItem, error)
}

// ListItems implements the SwotRepository interface
func (m *MockSwotRepository) ListItems(ctx context.Context, businessID, quarter string) ([]models.SwotItem, error) {
	if m.ListItemsFunc != nil {
		return m.ListItemsFunc(ctx, businessID, quarter)
	}
	return nil, errors.New("ListItemsFunc not implemented")
}
