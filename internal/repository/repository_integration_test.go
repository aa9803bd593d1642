package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bizcoach/assessment-server/internal/repository"
	"github.com/bizcoach/assessment-server/internal/repository/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, repository.Migrate(context.Background(), db, repository.DialectSQLite, zaptest.NewLogger(t)))
	return db
}

func record(id, business string, pct int, at time.Time) models.AssessmentRecord {
	return models.AssessmentRecord{
		ID:            id,
		BusinessID:    business,
		TotalScore:    float64(pct) * 2.9,
		Percentage:    pct,
		HealthStatus:  "STABLE",
		SectionScores: []byte(`[{"category":"foundation","rawScore":20,"maxScore":40}]`),
		Answers:       []byte(`{"q1":"10m_plus"}`),
		ComputedAt:    at,
	}
}

func TestMigrate_LogsThroughZap(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	core, logs := observer.New(zapcore.InfoLevel)
	require.NoError(t, repository.Migrate(context.Background(), db, repository.DialectSQLite, zap.New(core)))

	applied := logs.FilterMessageSnippet("00001_create_assessments.sql").All()
	require.Len(t, applied, 1)
	require.Equal(t, "migrate", applied[0].LoggerName)
	require.NotContains(t, applied[0].Message, "\n")
}

func TestAssessmentRepository_Integration(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := repository.NewAssessmentRepository(db, repository.DialectSQLite)

	base := time.Date(2025, 10, 18, 10, 0, 0, 0, time.UTC)

	t.Run("LoadLatest on empty table", func(t *testing.T) {
		_, err := repo.LoadLatest(ctx, "biz-1")
		require.ErrorIs(t, err, repository.ErrNoRows)
	})

	require.NoError(t, repo.Save(ctx, record("a1", "biz-1", 40, base)))
	require.NoError(t, repo.Save(ctx, record("a2", "biz-1", 72, base.Add(24*time.Hour))))
	require.NoError(t, repo.Save(ctx, record("b1", "biz-2", 90, base.Add(48*time.Hour))))

	t.Run("Save is idempotent", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, record("a1", "biz-1", 99, base)))

		var count int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM assessments WHERE id = 'a1'`).Scan(&count))
		require.Equal(t, 1, count)
	})

	t.Run("LoadLatest", func(t *testing.T) {
		rec, err := repo.LoadLatest(ctx, "biz-1")
		require.NoError(t, err)
		require.Equal(t, "a2", rec.ID)
		require.Equal(t, 72, rec.Percentage)
		require.JSONEq(t, `{"q1":"10m_plus"}`, string(rec.Answers))
		require.True(t, rec.ComputedAt.Equal(base.Add(24*time.Hour)))
	})

	t.Run("ListRecent", func(t *testing.T) {
		recs, err := repo.ListRecent(ctx, "biz-1", 2)
		require.NoError(t, err)
		require.Len(t, recs, 2)
		require.Equal(t, "a2", recs[0].ID)
		require.Equal(t, "a1", recs[1].ID)
		require.Equal(t, 40, recs[1].Percentage)
	})
}

func TestSwotRepository_Integration(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := repository.NewSwotRepository(db, repository.DialectSQLite)

	base := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	items := []models.SwotItem{
		{ID: "s1", BusinessID: "biz-1", Quarter: "2025-Q1", Category: "strengths", Text: "Strong brand", CreatedAt: base},
		{ID: "s2", BusinessID: "biz-1", Quarter: "2025-Q1", Category: "weaknesses", Text: "Low cash reserves", CreatedAt: base.Add(time.Minute)},
		{ID: "s3", BusinessID: "biz-1", Quarter: "2025-Q2", Category: "strengths", Text: "Strong brand", CreatedAt: base.Add(time.Hour)},
		{ID: "s4", BusinessID: "biz-2", Quarter: "2025-Q1", Category: "threats", Text: "Other business", CreatedAt: base},
	}
	for _, it := range items {
		_, err := db.Exec(`INSERT INTO swot_items (id, business_id, quarter, category, text, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			it.ID, it.BusinessID, it.Quarter, it.Category, it.Text, it.CreatedAt)
		require.NoError(t, err)
	}

	got, err := repo.ListItems(ctx, "biz-1", "2025-Q1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Strong brand", got[0].Text)
	require.Equal(t, "weaknesses", got[1].Category)

	got, err = repo.ListItems(ctx, "biz-1", "2024-Q4")
	require.NoError(t, err)
	require.Empty(t, got)
}
