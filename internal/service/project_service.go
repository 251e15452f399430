package service

import (
	"context"

	"assetboard/internal/apperr"
	"assetboard/internal/models"
	"assetboard/internal/repository"
)

// ProjectService handles project listing
type ProjectService struct {
	projects *repository.ProjectRepository
}

// NewProjectService creates a new project service
func NewProjectService(projects *repository.ProjectRepository) *ProjectService {
	return &ProjectService{projects: projects}
}

// GetAll returns all registered projects
func (s *ProjectService) GetAll(ctx context.Context) ([]models.Project, error) {
	projects, err := s.projects.GetAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "project listing failed")
	}
	return projects, nil
}
