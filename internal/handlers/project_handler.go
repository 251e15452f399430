package handlers

import (
	"net/http"

	"assetboard/internal/models"
	"assetboard/internal/service"
)

// ProjectHandler serves the project registry
type ProjectHandler struct {
	service *service.ProjectService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(s *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: s}
}

// ProjectListResponse holds all registered projects
type ProjectListResponse struct {
	Projects []models.Project `json:"projects"`
}

// GetProjects godoc
// @Summary List projects
// @Description Returns all registered projects ordered by name
// @Tags projects
// @Produce json
// @Success 200 {object} ProjectListResponse
// @Failure 500 {object} ErrorResponse
// @Router /projects [get]
func (h *ProjectHandler) GetProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.GetAll(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	respondWithJSON(w, http.StatusOK, ProjectListResponse{Projects: projects})
}
