package handlers

import (
	"net/http"
	"time"

	"assetboard/internal/models"
	"assetboard/internal/service"
)

// AssetReviewHandler serves the pivoted asset review views
type AssetReviewHandler struct {
	service *service.ReviewPivotService
}

// NewAssetReviewHandler creates a new asset review handler
func NewAssetReviewHandler(s *service.ReviewPivotService) *AssetReviewHandler {
	return &AssetReviewHandler{service: s}
}

// PhaseStateDTO is the current review state of one phase. A null slot means
// the asset has no events in that phase.
type PhaseStateDTO struct {
	Label          string     `json:"label"`
	WorkStatus     string     `json:"work_status"`
	ApprovalStatus string     `json:"approval_status"`
	SubmittedAt    *time.Time `json:"submitted_at"`
}

// PhasesDTO always exposes all five pipeline phases so dashboard columns
// never shift between rows.
type PhasesDTO struct {
	Modeling *PhaseStateDTO `json:"mdl"`
	Rigging  *PhaseStateDTO `json:"rig"`
	Build    *PhaseStateDTO `json:"bld"`
	Design   *PhaseStateDTO `json:"dsn"`
	LookDev  *PhaseStateDTO `json:"ldv"`
}

// AssetReviewDTO is one dense pivot row
type AssetReviewDTO struct {
	Name         string    `json:"name"`
	Relation     string    `json:"relation"`
	Phases       PhasesDTO `json:"phases"`
	GroupName    string    `json:"group_name"`
	CategoryPath string    `json:"category_path"`
	TopGroup     string    `json:"top_group"`
}

// GroupDTO is a run of pivot rows sharing a top group on the current page.
// Count is page-local; TotalInGroup counts the group across all pages.
type GroupDTO struct {
	GroupName    string           `json:"group_name"`
	Items        []AssetReviewDTO `json:"items"`
	Count        int              `json:"count"`
	TotalInGroup int              `json:"total_count_in_group"`
}

// AssetReviewListResponse is the flat paginated view
type AssetReviewListResponse struct {
	Items []AssetReviewDTO `json:"assets"`
	service.PageInfo
}

// AssetReviewGroupedResponse is the grouped paginated view
type AssetReviewGroupedResponse struct {
	Groups []GroupDTO `json:"groups"`
	service.PageInfo
}

// AssetReviewDetailResponse holds every relation of one asset name
type AssetReviewDetailResponse struct {
	Items []AssetReviewDTO `json:"items"`
}

// GetAssetReviews godoc
// @Summary List asset reviews
// @Description Returns one page of per-asset review rows pivoted from the phase event stream, with filtering, sorting and optional grouping
// @Tags asset-reviews
// @Produce json
// @Param project path string true "Project name"
// @Param root query string false "Asset root" default(assets)
// @Param name query string false "Case-insensitive asset name prefix"
// @Param approval_status query []string false "Approval status filter, any phase may match" collectionFormat(multi)
// @Param work_status query []string false "Work status filter, any phase may match" collectionFormat(multi)
// @Param sort query string false "Sort key: name, relation or <phase>_work|appr|submitted" default(name)
// @Param dir query string false "Sort direction" Enums(asc, desc) default(asc)
// @Param phase query string false "Phase whose assets surface first, or none"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Page size" default(15)
// @Param view query string false "View shape" Enums(list, grouped) default(list)
// @Success 200 {object} AssetReviewListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /projects/{project}/asset-reviews [get]
func (h *AssetReviewHandler) GetAssetReviews(w http.ResponseWriter, r *http.Request) {
	query := service.ReviewQuery{
		Project:          r.PathValue("project"),
		Root:             r.URL.Query().Get("root"),
		NamePrefix:       r.URL.Query().Get("name"),
		ApprovalStatuses: parseListParam(r, "approval_status"),
		WorkStatuses:     parseListParam(r, "work_status"),
		SortKey:          r.URL.Query().Get("sort"),
		SortDir:          r.URL.Query().Get("dir"),
		PriorityPhase:    r.URL.Query().Get("phase"),
		Page:             parseIntParam(r, "page", 1),
		PerPage:          parseIntParam(r, "per_page", 0),
	}

	if r.URL.Query().Get("view") == "grouped" {
		result, err := h.service.QueryGrouped(r.Context(), query)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, AssetReviewGroupedResponse{
			Groups:   toGroupDTOs(result.Groups),
			PageInfo: result.PageInfo,
		})
		return
	}

	result, err := h.service.Query(r.Context(), query)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, AssetReviewListResponse{
		Items:    toAssetReviewDTOs(result.Items),
		PageInfo: result.PageInfo,
	})
}

// GetAssetReview godoc
// @Summary Get one asset's reviews
// @Description Returns the pivot rows of a single asset name, one per relation
// @Tags asset-reviews
// @Produce json
// @Param project path string true "Project name"
// @Param name path string true "Asset name"
// @Param root query string false "Asset root" default(assets)
// @Success 200 {object} AssetReviewDetailResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /projects/{project}/asset-reviews/{name} [get]
func (h *AssetReviewHandler) GetAssetReview(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.GetAsset(r.Context(), r.PathValue("project"), r.URL.Query().Get("root"), r.PathValue("name"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, AssetReviewDetailResponse{Items: toAssetReviewDTOs(records)})
}

func toAssetReviewDTOs(records []models.AssetPivotRecord) []AssetReviewDTO {
	dtos := make([]AssetReviewDTO, len(records))
	for i, record := range records {
		dtos[i] = AssetReviewDTO{
			Name:         record.AssetName,
			Relation:     record.Relation,
			Phases:       toPhasesDTO(record.Phases),
			GroupName:    record.GroupName,
			CategoryPath: record.CategoryPath,
			TopGroup:     record.TopGroup,
		}
	}
	return dtos
}

func toGroupDTOs(groups []models.GroupBucket) []GroupDTO {
	dtos := make([]GroupDTO, len(groups))
	for i, group := range groups {
		dtos[i] = GroupDTO{
			GroupName:    group.GroupName,
			Items:        toAssetReviewDTOs(group.Items),
			Count:        len(group.Items),
			TotalInGroup: group.TotalInGroup,
		}
	}
	return dtos
}

func toPhasesDTO(phases map[models.Phase]models.PhaseSummary) PhasesDTO {
	return PhasesDTO{
		Modeling: toPhaseStateDTO(phases, models.PhaseModeling),
		Rigging:  toPhaseStateDTO(phases, models.PhaseRigging),
		Build:    toPhaseStateDTO(phases, models.PhaseBuild),
		Design:   toPhaseStateDTO(phases, models.PhaseDesign),
		LookDev:  toPhaseStateDTO(phases, models.PhaseLookDev),
	}
}

func toPhaseStateDTO(phases map[models.Phase]models.PhaseSummary, phase models.Phase) *PhaseStateDTO {
	summary, ok := phases[phase]
	if !ok {
		return nil
	}
	return &PhaseStateDTO{
		Label:          phase.Label(),
		WorkStatus:     summary.WorkStatus,
		ApprovalStatus: summary.ApprovalStatus,
		SubmittedAt:    summary.SubmittedAt,
	}
}
