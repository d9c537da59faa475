package task

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/taskhub/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
	"github.com/amirhosseinghanipour/taskhub/internal/listing"
)

type fakeRepo struct {
	tasks      map[uuid.UUID]*domain.Task
	lastParams listing.Params
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{tasks: make(map[uuid.UUID]*domain.Task)}
}

func (r *fakeRepo) Create(_ context.Context, t *domain.Task) error {
	cp := *t
	r.tasks[t.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeRepo) List(_ context.Context, params listing.Params) ([]*domain.Task, int, error) {
	r.lastParams = params
	return nil, 0, nil
}

func (r *fakeRepo) Update(_ context.Context, t *domain.Task) error {
	cp := *t
	r.tasks[t.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.tasks[id]; !ok {
		return false, nil
	}
	delete(r.tasks, id)
	return true, nil
}

func TestCreateDefaultsStatus(t *testing.T) {
	svc := NewService(newFakeRepo())
	created, err := svc.Create(context.Background(), CreateInput{
		Title:      "ship it",
		ProjectID:  uuid.New(),
		AssigneeID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != domain.TaskStatusTodo {
		t.Errorf("status = %s, want todo", created.Status)
	}
}

func TestUpdateMerge(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{
		Title:       "write docs",
		Description: "user guide",
		Status:      domain.TaskStatusTodo,
		ProjectID:   uuid.New(),
		AssigneeID:  uuid.New(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	done := domain.TaskStatusDone
	updated, err := svc.Update(ctx, created.ID, Patch{Status: &done})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != domain.TaskStatusDone {
		t.Errorf("status = %s, want done", updated.Status)
	}
	if updated.Title != "write docs" || updated.Description != "user guide" {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}

func TestDeleteTwice(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{Title: "t", ProjectID: uuid.New(), AssigneeID: uuid.New()})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != domerrors.ErrTaskNotFound {
		t.Errorf("second delete err = %v, want ErrTaskNotFound", err)
	}
}

func TestListBuildsFiltersAndRange(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	after := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.List(context.Background(), ListQuery{
		Status:       "todo",
		ProjectID:    "p1",
		DueDateAfter: &after,
		Search:       "deploy",
		SortBy:       "dueDate",
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	p := repo.lastParams
	if len(p.Filters) != 2 {
		t.Fatalf("filters = %+v, want 2", p.Filters)
	}
	if p.Filters[0].Column != "status" || p.Filters[1].Column != "project_id" {
		t.Errorf("unexpected filter columns: %+v", p.Filters)
	}
	if len(p.Ranges) != 1 || p.Ranges[0].Column != "due_date" || p.Ranges[0].After == nil || p.Ranges[0].Before != nil {
		t.Errorf("unexpected ranges: %+v", p.Ranges)
	}
	if p.Search != "deploy" || p.SortBy != "dueDate" {
		t.Errorf("params not forwarded: %+v", p)
	}
}
