package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// CategoryRepository handles read access to asset category assignments
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetCategoryPaths resolves the category path for each of the given group
// names in one round trip. Names without an assignment are absent from the
// result map.
func (r *CategoryRepository) GetCategoryPaths(ctx context.Context, project string, groupNames []string) (map[string]string, error) {
	paths := make(map[string]string, len(groupNames))
	if len(groupNames) == 0 {
		return paths, nil
	}

	query := `
		SELECT group_name, category_path
		  FROM asset_categories
		 WHERE project = $1 AND group_name = ANY($2)
	`

	rows, err := r.db.QueryContext(ctx, query, project, pq.Array(groupNames))
	if err != nil {
		return nil, fmt.Errorf("failed to get category paths: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var groupName, categoryPath string
		if err := rows.Scan(&groupName, &categoryPath); err != nil {
			return nil, fmt.Errorf("failed to scan category path: %w", err)
		}
		paths[groupName] = categoryPath
	}

	return paths, rows.Err()
}
