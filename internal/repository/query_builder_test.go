package repository

import (
	"strings"
	"testing"

	"assetboard/internal/models"
)

func TestBuildIdentityFilter(t *testing.T) {
	t.Run("base filters only bind project and root", func(t *testing.T) {
		where, having, args := buildIdentityFilter(ReviewFilters{Project: "demo", Root: "assets"})
		if where != "" || having != "" {
			t.Errorf("fragments = %q / %q, want empty", where, having)
		}
		if len(args) != 2 || args[0] != "demo" || args[1] != "assets" {
			t.Errorf("args = %v, want [demo assets]", args)
		}
	})

	t.Run("name prefix becomes an escaped ILIKE", func(t *testing.T) {
		where, _, args := buildIdentityFilter(ReviewFilters{Project: "demo", Root: "assets", NamePrefix: "hero_0%"})
		if !strings.Contains(where, "asset_name ILIKE $3") {
			t.Errorf("where = %q, want ILIKE on $3", where)
		}
		if args[2] != `hero\_0\%%` {
			t.Errorf("prefix arg = %q, want escaped prefix with trailing wildcard", args[2])
		}
	})

	t.Run("status sets become BOOL_OR having clauses", func(t *testing.T) {
		_, having, args := buildIdentityFilter(ReviewFilters{
			Project:          "demo",
			Root:             "assets",
			ApprovalStatuses: []string{"approved"},
			WorkStatuses:     []string{"wip", "done"},
		})
		if !strings.Contains(having, "BOOL_OR(approval_status = ANY($3))") {
			t.Errorf("having = %q, missing approval clause", having)
		}
		if !strings.Contains(having, "BOOL_OR(work_status = ANY($4))") {
			t.Errorf("having = %q, missing work clause", having)
		}
		if len(args) != 4 {
			t.Errorf("args length = %d, want 4", len(args))
		}
	})

	t.Run("placeholders stay numbered after the prefix", func(t *testing.T) {
		where, having, _ := buildIdentityFilter(ReviewFilters{
			Project:          "demo",
			Root:             "assets",
			NamePrefix:       "hero",
			ApprovalStatuses: []string{"approved"},
		})
		if !strings.Contains(where, "$3") || !strings.Contains(having, "$4") {
			t.Errorf("placeholders misnumbered: %q / %q", where, having)
		}
	})
}

func TestOrderClause(t *testing.T) {
	t.Run("name sort is case-insensitive with deterministic tail", func(t *testing.T) {
		clause := orderClause(SortSpec{Target: SortByName}, "")
		for _, want := range []string{"LOWER(asset_name) ASC", "LOWER(relation) ASC", "last_submitted_at ASC NULLS LAST", "asset_name ASC, relation ASC"} {
			if !strings.Contains(clause, want) {
				t.Errorf("clause %q missing %q", clause, want)
			}
		}
	})

	t.Run("descending phase sort keeps nulls last", func(t *testing.T) {
		clause := orderClause(SortSpec{Target: SortByPhaseSubmitted, Phase: models.PhaseModeling, Descending: true}, "")
		if !strings.Contains(clause, "phase_submitted_at DESC NULLS LAST") {
			t.Errorf("clause %q should order the phase column descending with nulls last", clause)
		}
	})

	t.Run("priority phase leads every other key", func(t *testing.T) {
		clause := orderClause(SortSpec{Target: SortByRelation}, models.PhaseRigging)
		priority := strings.Index(clause, "in_priority_phase DESC")
		relation := strings.Index(clause, "LOWER(relation)")
		if priority < 0 || relation < 0 || priority > relation {
			t.Errorf("clause %q should bucket the priority phase before the sort", clause)
		}
	})
}

func TestIdentitySelectList(t *testing.T) {
	t.Run("phase sort adds an aggregate column and arg", func(t *testing.T) {
		selects, args := identitySelectList(SortSpec{Target: SortByPhaseWork, Phase: models.PhaseModeling}, "", []interface{}{"demo", "assets"})
		if !strings.Contains(selects, "MAX(CASE WHEN phase = $3 THEN work_status END) AS phase_work_status") {
			t.Errorf("select list %q missing phase work aggregate", selects)
		}
		if len(args) != 3 || args[2] != "mdl" {
			t.Errorf("args = %v, want phase code appended", args)
		}
	})

	t.Run("priority phase adds a BOOL_OR flag", func(t *testing.T) {
		selects, args := identitySelectList(SortSpec{Target: SortByName}, models.PhaseRigging, []interface{}{"demo", "assets"})
		if !strings.Contains(selects, "BOOL_OR(phase = $3) AS in_priority_phase") {
			t.Errorf("select list %q missing priority flag", selects)
		}
		if len(args) != 3 || args[2] != "rig" {
			t.Errorf("args = %v, want priority phase appended", args)
		}
	})
}

func TestEscapeLikePrefix(t *testing.T) {
	tests := []struct{ in, want string }{
		{"hero", "hero"},
		{"hero_01", `hero\_01`},
		{"100%", `100\%`},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		if got := escapeLikePrefix(tt.in); got != tt.want {
			t.Errorf("escapeLikePrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
