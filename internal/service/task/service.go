package task

import (
	"context"
	"errors"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/paulita842/uptaskgraphql/internal/authz"
	"github.com/paulita842/uptaskgraphql/internal/domain"
	"github.com/paulita842/uptaskgraphql/internal/repository"
	"github.com/paulita842/uptaskgraphql/pkg/config"
)

// DeleteMessage is the fixed signal returned when a task is removed.
const DeleteMessage = "Tarea Eliminada"

// Input carries client-supplied task attributes. Estado is deliberately
// absent: on update the stored flag always comes from the explicit
// argument, and on create it starts false.
type Input struct {
	Name      string `json:"nombre"`
	ProjectID string `json:"proyecto"`
}

// Service orchestrates ownership-scoped task CRUD.
type Service struct {
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
	logger   *slog.Logger
	cfg      config.APIConfig
}

// New returns a task service.
func New(tasks repository.TaskRepository, projects repository.ProjectRepository, logger *slog.Logger, cfg config.APIConfig) Service {
	return Service{tasks: tasks, projects: projects, logger: logger, cfg: cfg}
}

// List returns tasks created by the identity within the given project.
// Both filters apply together.
func (s Service) List(ctx context.Context, identity *domain.Identity, projectID string) ([]domain.Task, error) {
	id, err := authz.RequireAuthenticated(identity)
	if err != nil {
		return nil, err
	}
	return s.tasks.ListTasksByCreatorAndProject(ctx, id.ID, projectID)
}

// Create persists a new task owned by the authenticated identity. The
// project reference is taken as given; historically it was never checked
// against the project's own creator, so a task may point at a project the
// caller does not own. EnforceProjectOwnership closes that gap when set.
func (s Service) Create(ctx context.Context, identity *domain.Identity, input Input) (*domain.Task, error) {
	id, err := authz.RequireAuthenticated(identity)
	if err != nil {
		return nil, err
	}
	if s.cfg.EnforceProjectOwnership {
		if err := s.checkProjectOwner(ctx, id, input.ProjectID); err != nil {
			return nil, err
		}
	}
	task := &domain.Task{
		ID:        uuid.NewString(),
		Name:      input.Name,
		ProjectID: input.ProjectID,
		CreatorID: id.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.tasks.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	s.logger.Info("task created", "task_id", task.ID, "project_id", task.ProjectID, "creator_id", task.CreatorID)
	return task, nil
}

// Update merges input fields into an existing task after the existence
// and ownership checks. The stored estado is always overwritten from the
// explicit argument, never from the input payload.
func (s Service) Update(ctx context.Context, identity *domain.Identity, taskID string, input Input, estado bool) (*domain.Task, error) {
	id, err := authz.RequireAuthenticated(identity)
	if err != nil {
		return nil, err
	}
	task, err := s.lookup(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwner(id, *task); err != nil {
		return nil, err
	}
	if input.Name != "" {
		task.Name = input.Name
	}
	if input.ProjectID != "" {
		if s.cfg.EnforceProjectOwnership {
			if err := s.checkProjectOwner(ctx, id, input.ProjectID); err != nil {
				return nil, err
			}
		}
		task.ProjectID = input.ProjectID
	}
	task.Estado = estado
	if err := s.tasks.UpdateTask(ctx, task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// Delete removes a task after the existence and ownership checks.
func (s Service) Delete(ctx context.Context, identity *domain.Identity, taskID string) (string, error) {
	id, err := authz.RequireAuthenticated(identity)
	if err != nil {
		return "", err
	}
	task, err := s.lookup(ctx, taskID)
	if err != nil {
		return "", err
	}
	if err := authz.RequireOwner(id, *task); err != nil {
		return "", err
	}
	if err := s.tasks.DeleteTask(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", domain.ErrTaskNotFound
		}
		return "", err
	}
	s.logger.Info("task deleted", "task_id", taskID, "creator_id", id.ID)
	return DeleteMessage, nil
}

func (s Service) lookup(ctx context.Context, taskID string) (*domain.Task, error) {
	task, err := s.tasks.GetTaskByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s Service) checkProjectOwner(ctx context.Context, id domain.Identity, projectID string) error {
	project, err := s.projects.GetProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrProjectNotFound
		}
		return err
	}
	return authz.RequireOwner(id, *project)
}
