package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bizcoach/assessment-server/internal/repository/models"
)

// SwotRepository reads SWOT board items. Items are written by the board
// editor, not by this service.
type SwotRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewSwotRepository(db *sql.DB, dialect Dialect) *SwotRepository {
	return &SwotRepository{db: db, dialect: dialect}
}

// ListItems returns every item on a business's board for one quarter in
// insertion order.
func (r *SwotRepository) ListItems(ctx context.Context, businessID, quarter string) ([]models.SwotItem, error) {
	const query = `
		SELECT id, business_id, quarter, category, text, created_at
		FROM swot_items
		WHERE business_id = ? AND quarter = ?
		ORDER BY created_at, id
	`

	rows, err := r.db.QueryContext(ctx, r.dialect.rebind(query), businessID, quarter)
	if err != nil {
		return nil, fmt.Errorf("query ListItems: %w", err)
	}
	defer rows.Close()

	var items []models.SwotItem
	for rows.Next() {
		var it models.SwotItem
		if err := rows.Scan(&it.ID, &it.BusinessID, &it.Quarter, &it.Category, &it.Text, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ListItems row: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ListItems: %w", err)
	}
	return items, nil
}
