package repository_test

import (
	"context"
	"testing"

	"assetboard/internal/repository"
	"assetboard/internal/testutil"

	"github.com/google/go-cmp/cmp"
)

func TestCategoryRepository(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	testutil.CreateProject(t, containers.DB, "demo")
	testutil.CreateProject(t, containers.DB, "other")
	testutil.AssignCategory(t, containers.DB, "demo", "hero01", "character/hero")
	testutil.AssignCategory(t, containers.DB, "demo", "rock01", "prop")
	testutil.AssignCategory(t, containers.DB, "other", "hero01", "environment")

	repo := repository.NewCategoryRepository(containers.DB)
	ctx := context.Background()

	t.Run("bulk lookup resolves only assigned names", func(t *testing.T) {
		paths, err := repo.GetCategoryPaths(ctx, "demo", []string{"hero01", "rock01", "stray01"})
		if err != nil {
			t.Fatalf("GetCategoryPaths failed: %v", err)
		}
		want := map[string]string{
			"hero01": "character/hero",
			"rock01": "prop",
		}
		if diff := cmp.Diff(want, paths); diff != "" {
			t.Errorf("paths mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("assignments are scoped per project", func(t *testing.T) {
		paths, err := repo.GetCategoryPaths(ctx, "other", []string{"hero01", "rock01"})
		if err != nil {
			t.Fatalf("GetCategoryPaths failed: %v", err)
		}
		want := map[string]string{"hero01": "environment"}
		if diff := cmp.Diff(want, paths); diff != "" {
			t.Errorf("paths mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty input avoids the database", func(t *testing.T) {
		paths, err := repo.GetCategoryPaths(ctx, "demo", nil)
		if err != nil {
			t.Fatalf("GetCategoryPaths failed: %v", err)
		}
		if len(paths) != 0 {
			t.Errorf("expected empty result, got %v", paths)
		}
	})
}

func TestProjectRepository(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	testutil.CreateProject(t, containers.DB, "beta")
	testutil.CreateProject(t, containers.DB, "alpha")

	repo := repository.NewProjectRepository(containers.DB)
	ctx := context.Background()

	t.Run("projects listed in name order", func(t *testing.T) {
		projects, err := repo.GetAll(ctx)
		if err != nil {
			t.Fatalf("GetAll failed: %v", err)
		}
		var names []string
		for _, project := range projects {
			names = append(names, project.Name)
		}
		if diff := cmp.Diff([]string{"alpha", "beta"}, names); diff != "" {
			t.Errorf("project order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("existence check", func(t *testing.T) {
		exists, err := repo.Exists(ctx, "alpha")
		if err != nil {
			t.Fatalf("Exists failed: %v", err)
		}
		if !exists {
			t.Error("alpha should exist")
		}

		exists, err = repo.Exists(ctx, "missing")
		if err != nil {
			t.Fatalf("Exists failed: %v", err)
		}
		if exists {
			t.Error("missing should not exist")
		}
	})
}
