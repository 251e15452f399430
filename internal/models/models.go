package models

import (
	"strings"
	"time"
)

// Phase is a production phase an asset moves through.
type Phase string

const (
	PhaseModeling Phase = "mdl"
	PhaseRigging  Phase = "rig"
	PhaseBuild    Phase = "bld"
	PhaseDesign   Phase = "dsn"
	PhaseLookDev  Phase = "ldv"
)

// AllPhases returns the phases in pipeline order.
func AllPhases() []Phase {
	return []Phase{PhaseModeling, PhaseRigging, PhaseBuild, PhaseDesign, PhaseLookDev}
}

// ParsePhase normalizes a raw phase code. The second return value is false
// for anything that is not a known phase.
func ParsePhase(raw string) (Phase, bool) {
	switch Phase(strings.ToLower(strings.TrimSpace(raw))) {
	case PhaseModeling:
		return PhaseModeling, true
	case PhaseRigging:
		return PhaseRigging, true
	case PhaseBuild:
		return PhaseBuild, true
	case PhaseDesign:
		return PhaseDesign, true
	case PhaseLookDev:
		return PhaseLookDev, true
	}
	return "", false
}

// Label returns the human-readable phase name shown in the dashboard.
func (p Phase) Label() string {
	switch p {
	case PhaseModeling:
		return "Modeling"
	case PhaseRigging:
		return "Rigging"
	case PhaseBuild:
		return "Build"
	case PhaseDesign:
		return "Design"
	case PhaseLookDev:
		return "Lighting/Dev"
	}
	return string(p)
}

// UnassignedGroup is the bucket for assets without a category mapping.
// It always sorts after every real group.
const UnassignedGroup = "Unassigned"

// Project represents a tracked production.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// ReviewEvent is one submission/status update for an asset within one phase.
// Events are append-only; for each (asset, phase) only the most recently
// modified non-deleted event is current.
type ReviewEvent struct {
	ID             int64      `json:"id"`
	Project        string     `json:"project"`
	Root           string     `json:"root"`
	AssetName      string     `json:"asset_name"`
	Relation       string     `json:"relation"`
	Phase          Phase      `json:"phase"`
	WorkStatus     string     `json:"work_status"`
	ApprovalStatus string     `json:"approval_status"`
	SubmittedAt    *time.Time `json:"submitted_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Deleted        bool       `json:"-"`
}

// AssetIdentity is the composite key of one asset row in the pivot. Project
// and root are carried by the query, not the identity.
type AssetIdentity struct {
	AssetName string `json:"name"`
	Relation  string `json:"relation"`
}

// PhaseSummary is the current review state of one asset in one phase.
type PhaseSummary struct {
	Phase          Phase      `json:"phase"`
	WorkStatus     string     `json:"work_status"`
	ApprovalStatus string     `json:"approval_status"`
	SubmittedAt    *time.Time `json:"submitted_at"`
}

// AssetPivotRecord is one dense row of the pivot: an asset identity, its
// current state per phase, and its category annotations. Phases with no
// events are simply absent from the map; the HTTP layer exposes the fixed
// five-slot shape.
type AssetPivotRecord struct {
	AssetIdentity
	Phases       map[Phase]PhaseSummary `json:"phases"`
	GroupName    string                 `json:"group_name"`
	CategoryPath string                 `json:"category_path"`
	TopGroup     string                 `json:"top_group"`
}

// GroupBucket is a run of pivot records sharing a top group node on the
// current page. TotalInGroup counts the group's members across all pages.
type GroupBucket struct {
	GroupName    string             `json:"group_name"`
	Items        []AssetPivotRecord `json:"items"`
	TotalInGroup int                `json:"total_count_in_group"`
}

// TopGroupOf extracts the grouping key from a category path, the first
// segment of e.g. "character/hero", or UnassignedGroup when blank.
func TopGroupOf(categoryPath string) string {
	path := strings.Trim(strings.TrimSpace(categoryPath), "/")
	if path == "" {
		return UnassignedGroup
	}
	if idx := strings.IndexByte(path, '/'); idx >= 0 {
		return path[:idx]
	}
	return path
}
