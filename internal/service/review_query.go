package service

import (
	"strings"

	"assetboard/internal/apperr"
	"assetboard/internal/models"
	"assetboard/internal/repository"
)

// ReviewQuery carries the raw, caller-supplied parameters of a pivot query.
// The service resolves it into canonical filter and sort specs before any
// database work happens.
type ReviewQuery struct {
	Project          string
	Root             string
	NamePrefix       string
	ApprovalStatuses []string
	WorkStatuses     []string
	SortKey          string
	SortDir          string
	PriorityPhase    string
	Page             int
	PerPage          int
}

const defaultRoot = "assets"

// resolvedQuery is the validated form of a ReviewQuery
type resolvedQuery struct {
	filters       repository.ReviewFilters
	sort          repository.SortSpec
	sortKey       string
	sortDir       string
	priorityPhase models.Phase
	page          int
	perPage       int
	offset        int
}

// resolveSortKey maps a raw sort key to a canonical spec. Recognized keys
// are "name", "relation" and "<phase>_work" / "<phase>_appr" /
// "<phase>_submitted" for each known phase. Anything else, including keys
// from retired dashboard versions, falls back to name ascending.
func resolveSortKey(rawKey, rawDir string) (repository.SortSpec, string, string) {
	descending := strings.EqualFold(rawDir, "desc")

	key := strings.ToLower(strings.TrimSpace(rawKey))
	switch key {
	case "", "name":
		return sortSpec(repository.SortByName, "", descending), "name", direction(descending)
	case "relation":
		return sortSpec(repository.SortByRelation, "", descending), "relation", direction(descending)
	}

	if phaseRaw, suffix, ok := strings.Cut(key, "_"); ok {
		if phase, valid := models.ParsePhase(phaseRaw); valid {
			switch suffix {
			case "work":
				return sortSpec(repository.SortByPhaseWork, phase, descending), key, direction(descending)
			case "appr":
				return sortSpec(repository.SortByPhaseApproval, phase, descending), key, direction(descending)
			case "submitted":
				return sortSpec(repository.SortByPhaseSubmitted, phase, descending), key, direction(descending)
			}
		}
	}

	// Unrecognized keys must not fail the query; the dashboard persists
	// sort preferences across releases.
	return sortSpec(repository.SortByName, "", false), "name", "asc"
}

func sortSpec(target repository.SortTarget, phase models.Phase, descending bool) repository.SortSpec {
	return repository.SortSpec{Target: target, Phase: phase, Descending: descending}
}

func direction(descending bool) string {
	if descending {
		return "desc"
	}
	return "asc"
}

// resolve validates and canonicalizes a raw query
func (s *ReviewPivotService) resolve(query ReviewQuery) (resolvedQuery, error) {
	var resolved resolvedQuery

	project := strings.TrimSpace(query.Project)
	if project == "" {
		return resolved, apperr.New(apperr.KindInvalidArgument, "project is required")
	}

	root := strings.TrimSpace(query.Root)
	if root == "" {
		root = defaultRoot
	}

	var priorityPhase models.Phase
	if raw := strings.TrimSpace(query.PriorityPhase); raw != "" && !strings.EqualFold(raw, "none") {
		phase, ok := models.ParsePhase(raw)
		if !ok {
			return resolved, apperr.Newf(apperr.KindInvalidArgument, "unknown phase %q", raw)
		}
		priorityPhase = phase
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	perPage := query.PerPage
	if perPage < 1 {
		perPage = s.cfg.DefaultPerPage
	}
	if perPage > s.cfg.MaxPerPage {
		perPage = s.cfg.MaxPerPage
	}

	resolved.filters = repository.ReviewFilters{
		Project:          project,
		Root:             root,
		NamePrefix:       strings.TrimSpace(query.NamePrefix),
		ApprovalStatuses: compactStatuses(query.ApprovalStatuses),
		WorkStatuses:     compactStatuses(query.WorkStatuses),
	}
	resolved.sort, resolved.sortKey, resolved.sortDir = resolveSortKey(query.SortKey, query.SortDir)
	resolved.priorityPhase = priorityPhase
	resolved.page = page
	resolved.perPage = perPage
	resolved.offset = (page - 1) * perPage

	return resolved, nil
}

// compactStatuses drops empty entries so blank query parameters do not
// filter everything out.
func compactStatuses(values []string) []string {
	var compacted []string
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			compacted = append(compacted, trimmed)
		}
	}
	return compacted
}
