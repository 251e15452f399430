package testutil

import (
	"database/sql"
	"testing"
	"time"

	"assetboard/internal/models"
)

// CreateProject registers a project and returns its name
func CreateProject(t *testing.T, db *sql.DB, name string) string {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO projects (name, display_name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
		name, name,
	)
	if err != nil {
		t.Fatalf("Failed to create project %s: %v", name, err)
	}
	return name
}

// InsertEvent writes one review event and returns its id
func InsertEvent(t *testing.T, db *sql.DB, event models.ReviewEvent) int64 {
	t.Helper()

	if event.Root == "" {
		event.Root = "assets"
	}
	if event.UpdatedAt.IsZero() {
		event.UpdatedAt = time.Now()
	}

	var id int64
	err := db.QueryRow(
		`INSERT INTO review_events (project, root, asset_name, relation, phase, work_status, approval_status, submitted_at, updated_at, deleted)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		event.Project, event.Root, event.AssetName, event.Relation, string(event.Phase),
		event.WorkStatus, event.ApprovalStatus, event.SubmittedAt, event.UpdatedAt, event.Deleted,
	).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to insert review event for %s: %v", event.AssetName, err)
	}
	return id
}

// AssignCategory maps a group name to a category path within a project
func AssignCategory(t *testing.T, db *sql.DB, project, groupName, categoryPath string) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO asset_categories (project, group_name, category_path)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (project, group_name) DO UPDATE SET category_path = EXCLUDED.category_path`,
		project, groupName, categoryPath,
	)
	if err != nil {
		t.Fatalf("Failed to assign category for %s: %v", groupName, err)
	}
}

// TimePtr returns a pointer to the given time, for optional timestamps
func TimePtr(value time.Time) *time.Time {
	return &value
}
