package service

import (
	"context"
	"sort"

	"assetboard/internal/apperr"
	"assetboard/internal/config"
	"assetboard/internal/models"
	"assetboard/internal/repository"

	"golang.org/x/sync/errgroup"
)

// ReviewPivotService turns the sparse per-phase review event stream into
// dense per-asset rows: one row per (asset name, relation), carrying the
// current state of every phase, filtered, ordered and paged.
type ReviewPivotService struct {
	events     *repository.ReviewEventRepository
	categories *repository.CategoryRepository
	projects   *repository.ProjectRepository
	cfg        config.EngineConfig
}

// NewReviewPivotService creates a new review pivot service
func NewReviewPivotService(
	events *repository.ReviewEventRepository,
	categories *repository.CategoryRepository,
	projects *repository.ProjectRepository,
	cfg config.EngineConfig,
) *ReviewPivotService {
	return &ReviewPivotService{
		events:     events,
		categories: categories,
		projects:   projects,
		cfg:        cfg,
	}
}

// PageInfo describes one result page and echoes the effective sort
type PageInfo struct {
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PerPage  int    `json:"per_page"`
	PageLast int    `json:"page_last"`
	HasNext  bool   `json:"has_next"`
	HasPrev  bool   `json:"has_prev"`
	SortKey  string `json:"sort"`
	SortDir  string `json:"dir"`
}

// FlatResult is one page of the ungrouped pivot
type FlatResult struct {
	Items []models.AssetPivotRecord `json:"assets"`
	PageInfo
}

// GroupedResult is one page of the pivot partitioned into top-level groups
type GroupedResult struct {
	Groups []models.GroupBucket `json:"groups"`
	PageInfo
}

// Query returns one flat page of pivot records for a project.
func (s *ReviewPivotService) Query(ctx context.Context, query ReviewQuery) (*FlatResult, error) {
	resolved, err := s.resolve(query)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	if err := s.requireScope(ctx, resolved.filters.Project, resolved.filters.Root); err != nil {
		return nil, err
	}

	var (
		identities []models.AssetIdentity
		total      int
	)
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		// Deep pages force the database to walk and discard the whole
		// prefix; past the ceiling we only report counts.
		if resolved.offset >= s.cfg.OffsetCeiling {
			return nil
		}
		var err error
		identities, err = s.events.SelectIdentityPage(grpCtx, resolved.filters, resolved.sort, resolved.priorityPhase, resolved.perPage, resolved.offset)
		return err
	})
	grp.Go(func() error {
		var err error
		total, err = s.events.CountIdentities(grpCtx, resolved.filters)
		return err
	})
	if err := grp.Wait(); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "pivot query failed")
	}

	records, err := s.assembleRecords(ctx, resolved.filters.Project, resolved.filters.Root, identities)
	if err != nil {
		return nil, err
	}

	return &FlatResult{
		Items:    records,
		PageInfo: s.pageInfo(resolved, total),
	}, nil
}

// QueryGrouped returns one page of the pivot partitioned into top-level
// category groups. The page window is cut out of the group-ordered full
// sequence, so flat and grouped views of the same query contain the same
// records per page only when the sort already clusters groups; the group
// totals are always cross-page.
func (s *ReviewPivotService) QueryGrouped(ctx context.Context, query ReviewQuery) (*GroupedResult, error) {
	resolved, err := s.resolve(query)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	if err := s.requireScope(ctx, resolved.filters.Project, resolved.filters.Root); err != nil {
		return nil, err
	}

	var (
		identities []models.AssetIdentity
		total      int
	)
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		var err error
		identities, err = s.events.SelectIdentityPage(grpCtx, resolved.filters, resolved.sort, resolved.priorityPhase, s.cfg.GroupedFetchMax+1, 0)
		return err
	})
	grp.Go(func() error {
		var err error
		total, err = s.events.CountIdentities(grpCtx, resolved.filters)
		return err
	})
	if err := grp.Wait(); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "grouped pivot query failed")
	}

	if len(identities) > s.cfg.GroupedFetchMax {
		return nil, apperr.Newf(apperr.KindInvalidArgument, "result set exceeds %d assets; narrow the filters or use the flat view", s.cfg.GroupedFetchMax)
	}

	// Grouping needs the category of every matching asset, but phase data
	// only for the page window.
	skeletons := make([]models.AssetPivotRecord, len(identities))
	for i, identity := range identities {
		skeletons[i] = models.AssetPivotRecord{AssetIdentity: identity, GroupName: identity.AssetName}
	}
	if err := s.annotateCategories(ctx, resolved.filters.Project, skeletons); err != nil {
		return nil, err
	}

	groups := groupRecords(skeletons)
	window := windowGroups(groups, resolved.offset, resolved.perPage)
	if resolved.offset >= s.cfg.OffsetCeiling {
		window = nil
	}

	if err := s.fillPhases(ctx, resolved.filters.Project, resolved.filters.Root, window); err != nil {
		return nil, err
	}

	return &GroupedResult{
		Groups:   window,
		PageInfo: s.pageInfo(resolved, total),
	}, nil
}

// GetAsset returns the pivot records of a single asset name, one per
// relation, ordered by relation.
func (s *ReviewPivotService) GetAsset(ctx context.Context, project, root, assetName string) ([]models.AssetPivotRecord, error) {
	if project == "" {
		return nil, apperr.New(apperr.KindInvalidArgument, "project is required")
	}
	if assetName == "" {
		return nil, apperr.New(apperr.KindInvalidArgument, "asset name is required")
	}
	if root == "" {
		root = defaultRoot
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	if err := s.requireScope(ctx, project, root); err != nil {
		return nil, err
	}

	summaries, err := s.events.GetEventsByAsset(ctx, project, root, assetName)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "asset lookup failed")
	}
	if len(summaries) == 0 {
		return nil, apperr.Newf(apperr.KindNotFound, "asset %q not found", assetName)
	}

	records := make([]models.AssetPivotRecord, 0, len(summaries))
	for identity, phases := range summaries {
		record := models.AssetPivotRecord{
			AssetIdentity: identity,
			GroupName:     identity.AssetName,
			Phases:        make(map[models.Phase]models.PhaseSummary, len(phases)),
		}
		for _, phase := range phases {
			record.Phases[phase.Phase] = phase
		}
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Relation < records[j].Relation })

	if err := s.annotateCategories(ctx, project, records); err != nil {
		return nil, err
	}

	return records, nil
}

// StatusVocabulary lists the work and approval status values currently in
// use within a project.
func (s *ReviewPivotService) StatusVocabulary(ctx context.Context, project, root string) (workStatuses, approvalStatuses []string, err error) {
	if project == "" {
		return nil, nil, apperr.New(apperr.KindInvalidArgument, "project is required")
	}
	if root == "" {
		root = defaultRoot
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	if err := s.requireScope(ctx, project, root); err != nil {
		return nil, nil, err
	}

	workStatuses, approvalStatuses, err = s.events.GetStatusVocabulary(ctx, project, root)
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.KindInternal, err, "status vocabulary lookup failed")
	}
	return workStatuses, approvalStatuses, nil
}

// requireScope validates the project against the registry and the root
// against the event stream. The default root is always addressable so a
// freshly registered project serves empty pages instead of 404s.
func (s *ReviewPivotService) requireScope(ctx context.Context, project, root string) error {
	exists, err := s.projects.Exists(ctx, project)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, err, "project lookup failed")
	}
	if !exists {
		return apperr.Newf(apperr.KindNotFound, "project %q not found", project)
	}

	if root != defaultRoot {
		known, err := s.events.RootExists(ctx, project, root)
		if err != nil {
			return apperr.Wrap(apperr.KindInternal, err, "root lookup failed")
		}
		if !known {
			return apperr.Newf(apperr.KindNotFound, "root %q not found in project %q", root, project)
		}
	}
	return nil
}

// assembleRecords builds full pivot records for a page of identities,
// preserving the given order.
func (s *ReviewPivotService) assembleRecords(ctx context.Context, project, root string, identities []models.AssetIdentity) ([]models.AssetPivotRecord, error) {
	records := make([]models.AssetPivotRecord, len(identities))
	for i, identity := range identities {
		records[i] = models.AssetPivotRecord{
			AssetIdentity: identity,
			GroupName:     identity.AssetName,
			Phases:        make(map[models.Phase]models.PhaseSummary),
		}
	}

	if len(records) == 0 {
		return records, nil
	}

	summaries, err := s.events.GetPhaseSummaries(ctx, project, root, identities)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "phase summary fetch failed")
	}
	for i := range records {
		for _, phase := range summaries[records[i].AssetIdentity] {
			records[i].Phases[phase.Phase] = phase
		}
	}

	if err := s.annotateCategories(ctx, project, records); err != nil {
		return nil, err
	}

	return records, nil
}

// annotateCategories resolves the category path and top group for each
// record in place. Records without an assignment land in the unassigned
// bucket.
func (s *ReviewPivotService) annotateCategories(ctx context.Context, project string, records []models.AssetPivotRecord) error {
	if len(records) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(records))
	names := make([]string, 0, len(records))
	for _, record := range records {
		if !seen[record.GroupName] {
			seen[record.GroupName] = true
			names = append(names, record.GroupName)
		}
	}

	paths, err := s.categories.GetCategoryPaths(ctx, project, names)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, err, "category lookup failed")
	}

	for i := range records {
		records[i].CategoryPath = paths[records[i].GroupName]
		records[i].TopGroup = models.TopGroupOf(records[i].CategoryPath)
	}
	return nil
}

// fillPhases fetches phase summaries for the identities inside a group
// window and attaches them to the records in place.
func (s *ReviewPivotService) fillPhases(ctx context.Context, project, root string, window []models.GroupBucket) error {
	identities := pageIdentities(window)
	if len(identities) == 0 {
		return nil
	}

	summaries, err := s.events.GetPhaseSummaries(ctx, project, root, identities)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, err, "phase summary fetch failed")
	}

	for g := range window {
		for i := range window[g].Items {
			record := &window[g].Items[i]
			record.Phases = make(map[models.Phase]models.PhaseSummary)
			for _, phase := range summaries[record.AssetIdentity] {
				record.Phases[phase.Phase] = phase
			}
		}
	}
	return nil
}

func (s *ReviewPivotService) pageInfo(resolved resolvedQuery, total int) PageInfo {
	pageLast := (total + resolved.perPage - 1) / resolved.perPage
	if pageLast < 1 {
		pageLast = 1
	}
	return PageInfo{
		Total:    total,
		Page:     resolved.page,
		PerPage:  resolved.perPage,
		PageLast: pageLast,
		HasNext:  resolved.page < pageLast,
		HasPrev:  resolved.page > 1,
		SortKey:  resolved.sortKey,
		SortDir:  resolved.sortDir,
	}
}
