package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"assetboard/internal/models"

	"github.com/lib/pq"
)

// SortTarget identifies which field the identity ordering keys on.
type SortTarget int

const (
	SortByName SortTarget = iota
	SortByRelation
	SortByPhaseWork
	SortByPhaseApproval
	SortByPhaseSubmitted
)

// SortSpec is a canonical, already-validated sort instruction. Phase is only
// meaningful for the three phase-qualified targets.
type SortSpec struct {
	Target     SortTarget
	Phase      models.Phase
	Descending bool
}

// ReviewFilters holds filter parameters for identity queries. Project and
// Root are required; the remaining axes are optional. Status sets use OR
// semantics across an asset's current events in any phase.
type ReviewFilters struct {
	Project          string
	Root             string
	NamePrefix       string
	ApprovalStatuses []string
	WorkStatuses     []string
}

// ReviewEventRepository handles read access to the review event stream
type ReviewEventRepository struct {
	db *sql.DB
}

// NewReviewEventRepository creates a new review event repository
func NewReviewEventRepository(db *sql.DB) *ReviewEventRepository {
	return &ReviewEventRepository{db: db}
}

// currentEventsCTE restricts the event stream to the current event per
// (asset, phase): the most recently modified non-deleted row, ties broken by
// highest id. Placeholders $1/$2 are project and root.
const currentEventsCTE = `
	WITH current_events AS (
		SELECT DISTINCT ON (asset_name, relation, phase)
		       asset_name, relation, phase, work_status, approval_status, submitted_at
		  FROM review_events
		 WHERE project = $1 AND root = $2 AND deleted = FALSE
		 ORDER BY asset_name, relation, phase, updated_at DESC, id DESC
	)
`

// buildIdentityFilter renders the optional filter axes into WHERE/HAVING
// fragments over current_events. The WHERE part holds per-event predicates
// that are constant per identity (name prefix); the HAVING part holds the
// any-phase status matches, which must see every current event of the
// identity before deciding membership.
func buildIdentityFilter(filters ReviewFilters) (where, having string, args []interface{}) {
	args = []interface{}{filters.Project, filters.Root}
	argPos := 3

	if filters.NamePrefix != "" {
		where = fmt.Sprintf(` WHERE asset_name ILIKE $%d`, argPos)
		args = append(args, escapeLikePrefix(filters.NamePrefix)+"%")
		argPos++
	}

	var havingClauses []string
	if len(filters.ApprovalStatuses) > 0 {
		havingClauses = append(havingClauses, fmt.Sprintf(`BOOL_OR(approval_status = ANY($%d))`, argPos))
		args = append(args, pq.Array(filters.ApprovalStatuses))
		argPos++
	}
	if len(filters.WorkStatuses) > 0 {
		havingClauses = append(havingClauses, fmt.Sprintf(`BOOL_OR(work_status = ANY($%d))`, argPos))
		args = append(args, pq.Array(filters.WorkStatuses))
		argPos++
	}
	if len(havingClauses) > 0 {
		having = ` HAVING ` + strings.Join(havingClauses, " AND ")
	}

	return where, having, args
}

// escapeLikePrefix neutralizes LIKE metacharacters in a caller-supplied
// name prefix so it matches literally.
func escapeLikePrefix(prefix string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(prefix)
}

// orderClause renders the deterministic ORDER BY for a sort spec. Aliases
// refer to the aggregate select list built by identitySelectList. Every
// branch ends in an unambiguous tie-break so identical queries return
// identical ordering.
func orderClause(sort SortSpec, priorityPhase models.Phase) string {
	dir := "ASC"
	if sort.Descending {
		dir = "DESC"
	}

	var keys []string
	if priorityPhase != "" {
		// Assets active in the priority phase surface first; everything
		// else follows under the same sort.
		keys = append(keys, `in_priority_phase DESC`)
	}

	switch sort.Target {
	case SortByRelation:
		keys = append(keys,
			fmt.Sprintf(`LOWER(relation) %s`, dir),
			`LOWER(asset_name) ASC`,
			fmt.Sprintf(`last_submitted_at %s NULLS LAST`, dir),
		)
	case SortByPhaseWork:
		keys = append(keys,
			fmt.Sprintf(`phase_work_status %s NULLS LAST`, dir),
			`LOWER(asset_name) ASC`,
			`LOWER(relation) ASC`,
		)
	case SortByPhaseApproval:
		keys = append(keys,
			fmt.Sprintf(`phase_approval_status %s NULLS LAST`, dir),
			`LOWER(asset_name) ASC`,
			`LOWER(relation) ASC`,
		)
	case SortByPhaseSubmitted:
		keys = append(keys,
			fmt.Sprintf(`phase_submitted_at %s NULLS LAST`, dir),
			`LOWER(asset_name) ASC`,
			`LOWER(relation) ASC`,
		)
	default: // SortByName and anything unrecognized
		keys = append(keys,
			fmt.Sprintf(`LOWER(asset_name) %s`, dir),
			`LOWER(relation) ASC`,
			fmt.Sprintf(`last_submitted_at %s NULLS LAST`, dir),
		)
	}

	keys = append(keys, `asset_name ASC`, `relation ASC`)
	return ` ORDER BY ` + strings.Join(keys, ", ")
}

// identitySelectList builds the aggregate select list feeding orderClause.
// Sort-phase and priority-phase values are appended to args as needed.
func identitySelectList(sort SortSpec, priorityPhase models.Phase, args []interface{}) (string, []interface{}) {
	selects := []string{
		`asset_name`,
		`relation`,
		`MAX(submitted_at) AS last_submitted_at`,
	}

	switch sort.Target {
	case SortByPhaseWork:
		selects = append(selects, fmt.Sprintf(`MAX(CASE WHEN phase = $%d THEN work_status END) AS phase_work_status`, len(args)+1))
		args = append(args, string(sort.Phase))
	case SortByPhaseApproval:
		selects = append(selects, fmt.Sprintf(`MAX(CASE WHEN phase = $%d THEN approval_status END) AS phase_approval_status`, len(args)+1))
		args = append(args, string(sort.Phase))
	case SortByPhaseSubmitted:
		selects = append(selects, fmt.Sprintf(`MAX(CASE WHEN phase = $%d THEN submitted_at END) AS phase_submitted_at`, len(args)+1))
		args = append(args, string(sort.Phase))
	}

	if priorityPhase != "" {
		selects = append(selects, fmt.Sprintf(`BOOL_OR(phase = $%d) AS in_priority_phase`, len(args)+1))
		args = append(args, string(priorityPhase))
	}

	return strings.Join(selects, ",\n	       "), args
}

// SelectIdentityPage returns one ordered, deduplicated page of asset
// identities matching the filters. A non-empty priorityPhase buckets assets
// with a current event in that phase ahead of all others without excluding
// anything.
func (r *ReviewEventRepository) SelectIdentityPage(ctx context.Context, filters ReviewFilters, sort SortSpec, priorityPhase models.Phase, limit, offset int) ([]models.AssetIdentity, error) {
	where, having, args := buildIdentityFilter(filters)
	selectList, args := identitySelectList(sort, priorityPhase, args)

	query := currentEventsCTE + `
	SELECT ` + selectList + `
	  FROM current_events` + where + `
	 GROUP BY asset_name, relation` + having +
		orderClause(sort, priorityPhase) +
		fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select asset identities: %w", err)
	}
	defer rows.Close()

	// The aggregate sort columns ride along in the select list; scan and
	// discard them so the row shape matches.
	scanExtra := 1 // last_submitted_at
	switch sort.Target {
	case SortByPhaseWork, SortByPhaseApproval, SortByPhaseSubmitted:
		scanExtra++
	}
	if priorityPhase != "" {
		scanExtra++
	}

	var identities []models.AssetIdentity
	for rows.Next() {
		var identity models.AssetIdentity
		dest := []interface{}{&identity.AssetName, &identity.Relation}
		for i := 0; i < scanExtra; i++ {
			dest = append(dest, new(interface{}))
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan asset identity: %w", err)
		}
		identities = append(identities, identity)
	}

	return identities, rows.Err()
}

// CountIdentities returns the number of distinct asset identities matching
// the filters, independent of paging.
func (r *ReviewEventRepository) CountIdentities(ctx context.Context, filters ReviewFilters) (int, error) {
	where, having, args := buildIdentityFilter(filters)

	query := currentEventsCTE + `
	SELECT COUNT(*) FROM (
		SELECT asset_name, relation
		  FROM current_events` + where + `
		 GROUP BY asset_name, relation` + having + `
	) identities`

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count asset identities: %w", err)
	}
	return count, nil
}

// GetPhaseSummaries fetches the current per-phase state for exactly the
// given identities. Combinations with no events are absent from the result.
func (r *ReviewEventRepository) GetPhaseSummaries(ctx context.Context, project, root string, identities []models.AssetIdentity) (map[models.AssetIdentity][]models.PhaseSummary, error) {
	summaries := make(map[models.AssetIdentity][]models.PhaseSummary, len(identities))
	if len(identities) == 0 {
		return summaries, nil
	}

	args := []interface{}{project, root}
	pairs := make([]string, 0, len(identities))
	for _, identity := range identities {
		pairs = append(pairs, fmt.Sprintf(`(asset_name = $%d AND relation = $%d)`, len(args)+1, len(args)+2))
		args = append(args, identity.AssetName, identity.Relation)
	}

	query := `
		SELECT DISTINCT ON (asset_name, relation, phase)
		       asset_name, relation, phase, work_status, approval_status, submitted_at
		  FROM review_events
		 WHERE project = $1 AND root = $2 AND deleted = FALSE
		   AND (` + strings.Join(pairs, " OR ") + `)
		 ORDER BY asset_name, relation, phase, updated_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get phase summaries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var identity models.AssetIdentity
		var summary models.PhaseSummary
		var phase string
		if err := rows.Scan(
			&identity.AssetName,
			&identity.Relation,
			&phase,
			&summary.WorkStatus,
			&summary.ApprovalStatus,
			&summary.SubmittedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan phase summary: %w", err)
		}
		summary.Phase = models.Phase(phase)
		summaries[identity] = append(summaries[identity], summary)
	}

	return summaries, rows.Err()
}

// GetEventsByAsset returns the current per-phase events for one asset name
// across all of its relations.
func (r *ReviewEventRepository) GetEventsByAsset(ctx context.Context, project, root, assetName string) (map[models.AssetIdentity][]models.PhaseSummary, error) {
	query := `
		SELECT DISTINCT ON (asset_name, relation, phase)
		       asset_name, relation, phase, work_status, approval_status, submitted_at
		  FROM review_events
		 WHERE project = $1 AND root = $2 AND deleted = FALSE AND asset_name = $3
		 ORDER BY asset_name, relation, phase, updated_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, project, root, assetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get asset events: %w", err)
	}
	defer rows.Close()

	summaries := make(map[models.AssetIdentity][]models.PhaseSummary)
	for rows.Next() {
		var identity models.AssetIdentity
		var summary models.PhaseSummary
		var phase string
		if err := rows.Scan(
			&identity.AssetName,
			&identity.Relation,
			&phase,
			&summary.WorkStatus,
			&summary.ApprovalStatus,
			&summary.SubmittedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan asset event: %w", err)
		}
		summary.Phase = models.Phase(phase)
		summaries[identity] = append(summaries[identity], summary)
	}

	return summaries, rows.Err()
}

// RootExists reports whether any review event references the (project, root)
// pair. Deleted events still count; a root stays known after its last event
// is retracted.
func (r *ReviewEventRepository) RootExists(ctx context.Context, project, root string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM review_events WHERE project = $1 AND root = $2)`
	if err := r.db.QueryRowContext(ctx, query, project, root).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check root existence: %w", err)
	}
	return exists, nil
}

// GetStatusVocabulary returns the distinct non-empty work and approval
// status values observed in a project's current events.
func (r *ReviewEventRepository) GetStatusVocabulary(ctx context.Context, project, root string) (workStatuses, approvalStatuses []string, err error) {
	query := currentEventsCTE + `
	SELECT DISTINCT work_status, approval_status FROM current_events`

	rows, err := r.db.QueryContext(ctx, query, project, root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get status vocabulary: %w", err)
	}
	defer rows.Close()

	workSeen := make(map[string]bool)
	approvalSeen := make(map[string]bool)
	for rows.Next() {
		var work, approval string
		if err := rows.Scan(&work, &approval); err != nil {
			return nil, nil, fmt.Errorf("failed to scan status vocabulary: %w", err)
		}
		if work != "" && !workSeen[work] {
			workSeen[work] = true
			workStatuses = append(workStatuses, work)
		}
		if approval != "" && !approvalSeen[approval] {
			approvalSeen[approval] = true
			approvalStatuses = append(approvalStatuses, approval)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	sort.Strings(workStatuses)
	sort.Strings(approvalStatuses)
	return workStatuses, approvalStatuses, nil
}
