package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizcoach/assessment-server/internal/repository/models"
)

func TestRebind(t *testing.T) {
	q := "SELECT * FROM t WHERE a = ? AND b = ? LIMIT ?"
	assert.Equal(t, q, DialectSQLite.rebind(q))
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b = $2 LIMIT $3", DialectPostgres.rebind(q))
}

func TestDialectForDriver(t *testing.T) {
	assert.Equal(t, DialectPostgres, DialectForDriver("pgx"))
	assert.Equal(t, DialectPostgres, DialectForDriver("postgres"))
	assert.Equal(t, DialectSQLite, DialectForDriver("sqlite3"))
	assert.Equal(t, DialectSQLite, DialectForDriver(""))
}

func TestAssessmentRepository_Postgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewAssessmentRepository(db, DialectPostgres)
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Save uses numbered placeholders", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("VALUES ($1, $2, $3, $4, $5, $6, $7, $8)")).
			WithArgs("id-1", "biz-1", 145.0, 50, "STRUGGLING", `[]`, `{}`, at).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.Save(context.Background(), models.AssessmentRecord{
			ID: "id-1", BusinessID: "biz-1", TotalScore: 145, Percentage: 50, HealthStatus: "STRUGGLING",
			SectionScores: []byte(`[]`), Answers: []byte(`{}`), ComputedAt: at,
		})
		require.NoError(t, err)
	})

	t.Run("Save failure is wrapped", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO assessments").WillReturnError(errors.New("connection reset"))

		err := repo.Save(context.Background(), models.AssessmentRecord{ID: "id-2", ComputedAt: at})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
	})

	t.Run("LoadLatest scans a row", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "business_id", "total_score", "percentage", "health_status", "section_scores", "answers", "computed_at"}).
			AddRow("id-1", "biz-1", 145.0, 50, "STRUGGLING", "[]", "{}", at)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE business_id = $1")).
			WithArgs("biz-1", 1).
			WillReturnRows(rows)

		rec, err := repo.LoadLatest(context.Background(), "biz-1")
		require.NoError(t, err)
		assert.Equal(t, "id-1", rec.ID)
		assert.Equal(t, 50, rec.Percentage)
		assert.Equal(t, at, rec.ComputedAt)
	})

	t.Run("query failure", func(t *testing.T) {
		mock.ExpectQuery("FROM assessments").WillReturnError(errors.New("timeout"))

		_, err := repo.LoadLatest(context.Background(), "biz-1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoRows)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSwotRepository_QueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectQuery("FROM swot_items").WillReturnError(errors.New("boom"))

	repo := NewSwotRepository(db, DialectSQLite)
	_, err = repo.ListItems(context.Background(), "biz-1", "2025-Q1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query ListItems")
	require.NoError(t, mock.ExpectationsWereMet())
}
