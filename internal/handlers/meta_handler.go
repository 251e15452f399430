package handlers

import (
	"net/http"

	"assetboard/internal/models"
	"assetboard/internal/service"
)

// MetaHandler serves the vocabulary endpoints the dashboard uses to build
// its filter controls.
type MetaHandler struct {
	service *service.ReviewPivotService
}

// NewMetaHandler creates a new meta handler
func NewMetaHandler(s *service.ReviewPivotService) *MetaHandler {
	return &MetaHandler{service: s}
}

// PhaseDTO is one pipeline phase
type PhaseDTO struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// PhaseListResponse lists the pipeline phases in order
type PhaseListResponse struct {
	Phases []PhaseDTO `json:"phases"`
}

// StatusListResponse lists the status values in use within a project
type StatusListResponse struct {
	WorkStatuses     []string `json:"work_statuses"`
	ApprovalStatuses []string `json:"approval_statuses"`
}

// GetPhases godoc
// @Summary List pipeline phases
// @Description Returns the known production phases in pipeline order
// @Tags meta
// @Produce json
// @Success 200 {object} PhaseListResponse
// @Router /meta/phases [get]
func (h *MetaHandler) GetPhases(w http.ResponseWriter, r *http.Request) {
	phases := make([]PhaseDTO, 0, len(models.AllPhases()))
	for _, phase := range models.AllPhases() {
		phases = append(phases, PhaseDTO{Code: string(phase), Label: phase.Label()})
	}
	respondWithJSON(w, http.StatusOK, PhaseListResponse{Phases: phases})
}

// GetStatuses godoc
// @Summary List status values
// @Description Returns the distinct work and approval status values observed in a project's current events
// @Tags meta
// @Produce json
// @Param project query string true "Project name"
// @Param root query string false "Asset root" default(assets)
// @Success 200 {object} StatusListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /meta/statuses [get]
func (h *MetaHandler) GetStatuses(w http.ResponseWriter, r *http.Request) {
	work, approval, err := h.service.StatusVocabulary(r.Context(), r.URL.Query().Get("project"), r.URL.Query().Get("root"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if work == nil {
		work = []string{}
	}
	if approval == nil {
		approval = []string{}
	}
	respondWithJSON(w, http.StatusOK, StatusListResponse{WorkStatuses: work, ApprovalStatuses: approval})
}
