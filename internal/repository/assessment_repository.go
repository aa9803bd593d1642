package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bizcoach/assessment-server/internal/repository/models"
)

// ErrNoRows is returned when a lookup matches nothing.
var ErrNoRows = errors.New("no rows")

type AssessmentRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewAssessmentRepository(db *sql.DB, dialect Dialect) *AssessmentRepository {
	return &AssessmentRepository{db: db, dialect: dialect}
}

// Save inserts an assessment. Saving the same ID twice is a no-op, so a failed
// save can be retried safely.
func (r *AssessmentRepository) Save(ctx context.Context, rec models.AssessmentRecord) error {
	const query = `
		INSERT INTO assessments
			(id, business_id, total_score, percentage, health_status, section_scores, answers, computed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, r.dialect.rebind(query),
		rec.ID,
		rec.BusinessID,
		rec.TotalScore,
		rec.Percentage,
		rec.HealthStatus,
		string(rec.SectionScores),
		string(rec.Answers),
		rec.ComputedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("exec Save: %w", err)
	}
	return nil
}

// LoadLatest returns the most recent assessment for a business.
func (r *AssessmentRepository) LoadLatest(ctx context.Context, businessID string) (models.AssessmentRecord, error) {
	recs, err := r.ListRecent(ctx, businessID, 1)
	if err != nil {
		return models.AssessmentRecord{}, err
	}
	if len(recs) == 0 {
		return models.AssessmentRecord{}, ErrNoRows
	}
	return recs[0], nil
}

// ListRecent returns up to limit assessments for a business, newest first.
func (r *AssessmentRepository) ListRecent(ctx context.Context, businessID string, limit int) ([]models.AssessmentRecord, error) {
	const query = `
		SELECT id, business_id, total_score, percentage, health_status, section_scores, answers, computed_at
		FROM assessments
		WHERE business_id = ?
		ORDER BY computed_at DESC, id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, r.dialect.rebind(query), businessID, limit)
	if err != nil {
		return nil, fmt.Errorf("query ListRecent: %w", err)
	}
	defer rows.Close()

	var results []models.AssessmentRecord
	for rows.Next() {
		var (
			rec      models.AssessmentRecord
			sections string
			answers  string
		)
		if err := rows.Scan(&rec.ID, &rec.BusinessID, &rec.TotalScore, &rec.Percentage,
			&rec.HealthStatus, &sections, &answers, &rec.ComputedAt); err != nil {
			return nil, fmt.Errorf("scan ListRecent row: %w", err)
		}
		rec.SectionScores = []byte(sections)
		rec.Answers = []byte(answers)
		results = append(results, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ListRecent: %w", err)
	}
	return results, nil
}
