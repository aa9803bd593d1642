package service

import (
	"context"

	"github.com/bizcoach/assessment-server/internal/repository/models"
)

// AssessmentRepository defines the storage operations the service needs for assessments.
type AssessmentRepository interface {
	Save(ctx context.Context, rec models.AssessmentRecord) error
	LoadLatest(ctx context.Context, businessID string) (models.AssessmentRecord, error)
	ListRecent(ctx context.Context, businessID string, limit int) ([]models.AssessmentRecord, error)
}

// SwotRepository defines read access to SWOT boards.
type SwotRepository interface {
	ListItems(ctx context.Context, businessID, quarter string) ([]models.SwotItem, error)
}
