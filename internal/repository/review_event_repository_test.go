package repository_test

import (
	"context"
	"testing"
	"time"

	"assetboard/internal/models"
	"assetboard/internal/repository"
	"assetboard/internal/testutil"

	"github.com/google/go-cmp/cmp"
)

// seedPivotData loads a small production snapshot:
//
//	alpha01/main  mdl: wip/pending
//	Alpha02/main  mdl: done/approved
//	hero01/main   mdl: done/approved (supersedes an older wip event), rig: wip/pending
//	prop01/main   bld: wip/pending, never submitted
//	ghost01/main  only a deleted event
//	shot01/main   lives under a different root
func seedPivotData(t *testing.T, tc *testutil.TestContainers) {
	t.Helper()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	testutil.CreateProject(t, tc.DB, "demo")

	testutil.InsertEvent(t, tc.DB, models.ReviewEvent{
		Project: "demo", AssetName: "alpha01", Relation: "main", Phase: models.PhaseModeling,
		WorkStatus: "wip", ApprovalStatus: "pending",
		SubmittedAt: testutil.TimePtr(base.Add(2 * time.Hour)), UpdatedAt: base.Add(2 * time.Hour),
	})
	testutil.InsertEvent(t, tc.DB, models.ReviewEvent{
		Project: "demo", AssetName: "Alpha02", Relation: "main", Phase: models.PhaseModeling,
		WorkStatus: "done", ApprovalStatus: "approved",
		SubmittedAt: testutil.TimePtr(base.Add(time.Hour)), UpdatedAt: base.Add(time.Hour),
	})

	// Superseded event carries a status that must never surface.
	testutil.InsertEvent(t, tc.DB, models.ReviewEvent{
		Project: "demo", AssetName: "hero01", Relation: "main", Phase: models.PhaseModeling,
		WorkStatus: "retired_status", ApprovalStatus: "retired_status",
		SubmittedAt: testutil.TimePtr(base), UpdatedAt: base,
	})
	testutil.InsertEvent(t, tc.DB, models.ReviewEvent{
		Project: "demo", AssetName: "hero01", Relation: "main", Phase: models.PhaseModeling,
		WorkStatus: "done", ApprovalStatus: "approved",
		SubmittedAt: testutil.TimePtr(base.Add(time.Hour)), UpdatedAt: base.Add(3 * time.Hour),
	})
	testutil.InsertEvent(t, tc.DB, models.ReviewEvent{
		Project: "demo", AssetName: "hero01", Relation: "main", Phase: models.PhaseRigging,
		WorkStatus: "wip", ApprovalStatus: "pending",
		SubmittedAt: testutil.TimePtr(base.Add(2 * time.Hour)), UpdatedAt: base.Add(2 * time.Hour),
	})

	testutil.InsertEvent(t, tc.DB, models.ReviewEvent{
		Project: "demo", AssetName: "prop01", Relation: "main", Phase: models.PhaseBuild,
		WorkStatus: "wip", ApprovalStatus: "pending", UpdatedAt: base.Add(time.Hour),
	})

	testutil.InsertEvent(t, tc.DB, models.ReviewEvent{
		Project: "demo", AssetName: "ghost01", Relation: "main", Phase: models.PhaseModeling,
		WorkStatus: "done", ApprovalStatus: "approved", UpdatedAt: base, Deleted: true,
	})

	testutil.InsertEvent(t, tc.DB, models.ReviewEvent{
		Project: "demo", Root: "shots", AssetName: "shot01", Relation: "main", Phase: models.PhaseModeling,
		WorkStatus: "wip", ApprovalStatus: "pending", UpdatedAt: base,
	})
}

func identityNames(identities []models.AssetIdentity) []string {
	names := make([]string, len(identities))
	for i, identity := range identities {
		names[i] = identity.AssetName
	}
	return names
}

func TestReviewEventRepository(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	seedPivotData(t, containers)

	repo := repository.NewReviewEventRepository(containers.DB)
	ctx := context.Background()
	baseFilters := repository.ReviewFilters{Project: "demo", Root: "assets"}
	nameAsc := repository.SortSpec{Target: repository.SortByName}

	t.Run("default sort is case-insensitive name ascending", func(t *testing.T) {
		identities, err := repo.SelectIdentityPage(ctx, baseFilters, nameAsc, "", 10, 0)
		if err != nil {
			t.Fatalf("SelectIdentityPage failed: %v", err)
		}
		want := []string{"alpha01", "Alpha02", "hero01", "prop01"}
		if diff := cmp.Diff(want, identityNames(identities)); diff != "" {
			t.Errorf("identity order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("deleted events and foreign roots are invisible", func(t *testing.T) {
		identities, err := repo.SelectIdentityPage(ctx, baseFilters, nameAsc, "", 10, 0)
		if err != nil {
			t.Fatalf("SelectIdentityPage failed: %v", err)
		}
		for _, name := range identityNames(identities) {
			if name == "ghost01" || name == "shot01" {
				t.Errorf("identity %s should not be visible", name)
			}
		}
	})

	t.Run("latest event supersedes older ones", func(t *testing.T) {
		summaries, err := repo.GetPhaseSummaries(ctx, "demo", "assets", []models.AssetIdentity{{AssetName: "hero01", Relation: "main"}})
		if err != nil {
			t.Fatalf("GetPhaseSummaries failed: %v", err)
		}
		phases := summaries[models.AssetIdentity{AssetName: "hero01", Relation: "main"}]
		if len(phases) != 2 {
			t.Fatalf("expected 2 phases for hero01, got %d", len(phases))
		}
		for _, phase := range phases {
			if phase.Phase == models.PhaseModeling && phase.WorkStatus != "done" {
				t.Errorf("mdl work status = %q, want done", phase.WorkStatus)
			}
		}
	})

	t.Run("approval filter matches any phase", func(t *testing.T) {
		filters := baseFilters
		filters.ApprovalStatuses = []string{"approved"}
		identities, err := repo.SelectIdentityPage(ctx, filters, nameAsc, "", 10, 0)
		if err != nil {
			t.Fatalf("SelectIdentityPage failed: %v", err)
		}
		// hero01 qualifies through its mdl event even though rig is pending.
		want := []string{"Alpha02", "hero01"}
		if diff := cmp.Diff(want, identityNames(identities)); diff != "" {
			t.Errorf("filtered identities mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("work filter matches any phase", func(t *testing.T) {
		filters := baseFilters
		filters.WorkStatuses = []string{"wip"}
		identities, err := repo.SelectIdentityPage(ctx, filters, nameAsc, "", 10, 0)
		if err != nil {
			t.Fatalf("SelectIdentityPage failed: %v", err)
		}
		want := []string{"alpha01", "hero01", "prop01"}
		if diff := cmp.Diff(want, identityNames(identities)); diff != "" {
			t.Errorf("filtered identities mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("superseded statuses never match filters", func(t *testing.T) {
		filters := baseFilters
		filters.WorkStatuses = []string{"retired_status"}
		identities, err := repo.SelectIdentityPage(ctx, filters, nameAsc, "", 10, 0)
		if err != nil {
			t.Fatalf("SelectIdentityPage failed: %v", err)
		}
		if len(identities) != 0 {
			t.Errorf("expected no matches, got %v", identityNames(identities))
		}
	})

	t.Run("name prefix filter is case-insensitive", func(t *testing.T) {
		filters := baseFilters
		filters.NamePrefix = "ALPHA"
		identities, err := repo.SelectIdentityPage(ctx, filters, nameAsc, "", 10, 0)
		if err != nil {
			t.Fatalf("SelectIdentityPage failed: %v", err)
		}
		want := []string{"alpha01", "Alpha02"}
		if diff := cmp.Diff(want, identityNames(identities)); diff != "" {
			t.Errorf("prefix matches mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("priority phase surfaces its assets without excluding others", func(t *testing.T) {
		identities, err := repo.SelectIdentityPage(ctx, baseFilters, nameAsc, models.PhaseRigging, 10, 0)
		if err != nil {
			t.Fatalf("SelectIdentityPage failed: %v", err)
		}
		want := []string{"hero01", "alpha01", "Alpha02", "prop01"}
		if diff := cmp.Diff(want, identityNames(identities)); diff != "" {
			t.Errorf("priority order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("phase work sort puts assets without the phase last", func(t *testing.T) {
		sort := repository.SortSpec{Target: repository.SortByPhaseWork, Phase: models.PhaseModeling}
		identities, err := repo.SelectIdentityPage(ctx, baseFilters, sort, "", 10, 0)
		if err != nil {
			t.Fatalf("SelectIdentityPage failed: %v", err)
		}
		// done < wip; prop01 has no mdl events and sorts last.
		want := []string{"Alpha02", "hero01", "alpha01", "prop01"}
		if diff := cmp.Diff(want, identityNames(identities)); diff != "" {
			t.Errorf("phase sort mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("pages are disjoint and cover everything", func(t *testing.T) {
		seen := make(map[string]int)
		total := 0
		for offset := 0; offset < 4; offset += 3 {
			identities, err := repo.SelectIdentityPage(ctx, baseFilters, nameAsc, "", 3, offset)
			if err != nil {
				t.Fatalf("SelectIdentityPage failed: %v", err)
			}
			for _, name := range identityNames(identities) {
				seen[name]++
				total++
			}
		}
		if total != 4 {
			t.Errorf("total identities across pages = %d, want 4", total)
		}
		for name, count := range seen {
			if count != 1 {
				t.Errorf("identity %s appeared %d times", name, count)
			}
		}
	})

	t.Run("count matches filters independent of paging", func(t *testing.T) {
		count, err := repo.CountIdentities(ctx, baseFilters)
		if err != nil {
			t.Fatalf("CountIdentities failed: %v", err)
		}
		if count != 4 {
			t.Errorf("count = %d, want 4", count)
		}

		filters := baseFilters
		filters.ApprovalStatuses = []string{"approved"}
		count, err = repo.CountIdentities(ctx, filters)
		if err != nil {
			t.Fatalf("CountIdentities failed: %v", err)
		}
		if count != 2 {
			t.Errorf("filtered count = %d, want 2", count)
		}
	})

	t.Run("status vocabulary only reflects current events", func(t *testing.T) {
		work, approval, err := repo.GetStatusVocabulary(ctx, "demo", "assets")
		if err != nil {
			t.Fatalf("GetStatusVocabulary failed: %v", err)
		}
		if diff := cmp.Diff([]string{"done", "wip"}, work); diff != "" {
			t.Errorf("work statuses mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"approved", "pending"}, approval); diff != "" {
			t.Errorf("approval statuses mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("events by asset span relations", func(t *testing.T) {
		base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		testutil.InsertEvent(t, containers.DB, models.ReviewEvent{
			Project: "demo", AssetName: "hero01", Relation: "proxy", Phase: models.PhaseModeling,
			WorkStatus: "wip", ApprovalStatus: "pending", UpdatedAt: base,
		})

		summaries, err := repo.GetEventsByAsset(ctx, "demo", "assets", "hero01")
		if err != nil {
			t.Fatalf("GetEventsByAsset failed: %v", err)
		}
		if len(summaries) != 2 {
			t.Fatalf("expected 2 relations for hero01, got %d", len(summaries))
		}
		if _, ok := summaries[models.AssetIdentity{AssetName: "hero01", Relation: "proxy"}]; !ok {
			t.Errorf("proxy relation missing from %v", summaries)
		}
	})

	t.Run("root existence follows the event stream", func(t *testing.T) {
		cases := []struct {
			root string
			want bool
		}{
			{"assets", true},
			{"shots", true},
			{"nosuchroot", false},
		}
		for _, tc := range cases {
			got, err := repo.RootExists(ctx, "demo", tc.root)
			if err != nil {
				t.Fatalf("RootExists(%q) failed: %v", tc.root, err)
			}
			if got != tc.want {
				t.Errorf("RootExists(%q) = %v, want %v", tc.root, got, tc.want)
			}
		}
	})
}
