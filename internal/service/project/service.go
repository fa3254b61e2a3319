package project

import (
	"context"
	"errors"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/paulita842/uptaskgraphql/internal/authz"
	"github.com/paulita842/uptaskgraphql/internal/domain"
	"github.com/paulita842/uptaskgraphql/internal/repository"
)

// DeleteMessage is the fixed signal returned when a project is removed.
const DeleteMessage = "Proyecto Eliminado"

// Input carries client-supplied project attributes. There is no creator
// field: the acting identity is always stamped server-side.
type Input struct {
	Name string `json:"nombre"`
}

// Service orchestrates ownership-scoped project CRUD.
type Service struct {
	projects repository.ProjectRepository
	logger   *slog.Logger
}

// New returns a project service.
func New(projects repository.ProjectRepository, logger *slog.Logger) Service {
	return Service{projects: projects, logger: logger}
}

// List returns the projects created by the authenticated identity.
func (s Service) List(ctx context.Context, identity *domain.Identity) ([]domain.Project, error) {
	id, err := authz.RequireAuthenticated(identity)
	if err != nil {
		return nil, err
	}
	return s.projects.ListProjectsByCreator(ctx, id.ID)
}

// Create persists a new project owned by the authenticated identity.
func (s Service) Create(ctx context.Context, identity *domain.Identity, input Input) (*domain.Project, error) {
	id, err := authz.RequireAuthenticated(identity)
	if err != nil {
		return nil, err
	}
	project := &domain.Project{
		ID:        uuid.NewString(),
		Name:      input.Name,
		CreatorID: id.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.projects.CreateProject(ctx, project); err != nil {
		return nil, err
	}
	s.logger.Info("project created", "project_id", project.ID, "creator_id", project.CreatorID)
	return project, nil
}

// Update merges input fields into an existing project after the
// existence and ownership checks. The creator is not alterable.
func (s Service) Update(ctx context.Context, identity *domain.Identity, projectID string, input Input) (*domain.Project, error) {
	id, err := authz.RequireAuthenticated(identity)
	if err != nil {
		return nil, err
	}
	project, err := s.lookup(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwner(id, *project); err != nil {
		return nil, err
	}
	if input.Name != "" {
		project.Name = input.Name
	}
	if err := s.projects.UpdateProject(ctx, project); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

// Delete removes a project after the existence and ownership checks.
func (s Service) Delete(ctx context.Context, identity *domain.Identity, projectID string) (string, error) {
	id, err := authz.RequireAuthenticated(identity)
	if err != nil {
		return "", err
	}
	project, err := s.lookup(ctx, projectID)
	if err != nil {
		return "", err
	}
	if err := authz.RequireOwner(id, *project); err != nil {
		return "", err
	}
	if err := s.projects.DeleteProject(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", domain.ErrProjectNotFound
		}
		return "", err
	}
	s.logger.Info("project deleted", "project_id", projectID, "creator_id", id.ID)
	return DeleteMessage, nil
}

func (s Service) lookup(ctx context.Context, projectID string) (*domain.Project, error) {
	project, err := s.projects.GetProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}
