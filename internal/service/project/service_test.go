package project

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/paulita842/uptaskgraphql/internal/domain"
	"github.com/paulita842/uptaskgraphql/internal/repository"
)

type stubProjectRepository struct {
	projects map[string]domain.Project
}

func newStubProjectRepository() *stubProjectRepository {
	return &stubProjectRepository{projects: make(map[string]domain.Project)}
}

func (s *stubProjectRepository) CreateProject(ctx context.Context, project *domain.Project) error {
	s.projects[project.ID] = *project
	return nil
}

func (s *stubProjectRepository) GetProjectByID(ctx context.Context, id string) (*domain.Project, error) {
	if project, ok := s.projects[id]; ok {
		return &project, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubProjectRepository) ListProjectsByCreator(ctx context.Context, creatorID string) ([]domain.Project, error) {
	var out []domain.Project
	for _, project := range s.projects {
		if project.CreatorID == creatorID {
			out = append(out, project)
		}
	}
	return out, nil
}

func (s *stubProjectRepository) UpdateProject(ctx context.Context, project *domain.Project) error {
	if _, ok := s.projects[project.ID]; !ok {
		return repository.ErrNotFound
	}
	s.projects[project.ID] = *project
	return nil
}

func (s *stubProjectRepository) DeleteProject(ctx context.Context, id string) error {
	if _, ok := s.projects[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.projects, id)
	return nil
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var (
	identityA = &domain.Identity{ID: "user-a", Email: "a@x.com"}
	identityB = &domain.Identity{ID: "user-b", Email: "b@x.com"}
)

func TestCreateStampsActingIdentity(t *testing.T) {
	repo := newStubProjectRepository()
	svc := New(repo, newLogger())

	created, err := svc.Create(context.Background(), identityA, Input{Name: "P1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.CreatorID != identityA.ID {
		t.Fatalf("creator not stamped: %+v", created)
	}
	stored := repo.projects[created.ID]
	if stored.CreatorID != identityA.ID {
		t.Fatalf("stored creator mismatch: %+v", stored)
	}
}

func TestListIsScopedToIdentity(t *testing.T) {
	repo := newStubProjectRepository()
	svc := New(repo, newLogger())

	if _, err := svc.Create(context.Background(), identityA, Input{Name: "PA"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(context.Background(), identityB, Input{Name: "PB"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	projects, err := svc.List(context.Background(), identityA)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}
	if projects[0].Name != "PA" || projects[0].CreatorID != identityA.ID {
		t.Fatalf("unexpected project: %+v", projects[0])
	}
}

func TestListRequiresIdentity(t *testing.T) {
	svc := New(newStubProjectRepository(), newLogger())
	if _, err := svc.List(context.Background(), nil); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestUpdateRejectsNonOwner(t *testing.T) {
	repo := newStubProjectRepository()
	svc := New(repo, newLogger())

	created, err := svc.Create(context.Background(), identityA, Input{Name: "P1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(context.Background(), identityB, created.ID, Input{Name: "robado"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if repo.projects[created.ID].Name != "P1" {
		t.Fatal("project was mutated by a non-owner")
	}
}

func TestUpdateMergesFieldsAndKeepsCreator(t *testing.T) {
	repo := newStubProjectRepository()
	svc := New(repo, newLogger())

	created, err := svc.Create(context.Background(), identityA, Input{Name: "P1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), identityA, created.ID, Input{Name: "P1 renovado"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "P1 renovado" {
		t.Fatalf("name not merged: %+v", updated)
	}
	if updated.CreatorID != identityA.ID {
		t.Fatalf("creator changed: %+v", updated)
	}
}

func TestUpdateMissingProject(t *testing.T) {
	svc := New(newStubProjectRepository(), newLogger())
	if _, err := svc.Update(context.Background(), identityA, "missing", Input{Name: "x"}); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestDeleteReturnsFixedMessage(t *testing.T) {
	repo := newStubProjectRepository()
	svc := New(repo, newLogger())

	created, err := svc.Create(context.Background(), identityA, Input{Name: "P1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	msg, err := svc.Delete(context.Background(), identityA, created.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if msg != "Proyecto Eliminado" {
		t.Fatalf("unexpected message: %q", msg)
	}
	if _, err := repo.GetProjectByID(context.Background(), created.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatal("project still present after delete")
	}
}

func TestDeleteRejectsNonOwner(t *testing.T) {
	repo := newStubProjectRepository()
	svc := New(repo, newLogger())

	created, err := svc.Create(context.Background(), identityA, Input{Name: "P1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Delete(context.Background(), identityB, created.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
