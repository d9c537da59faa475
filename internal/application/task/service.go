// Package task implements CRUD over tasks.
package task

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	"github.com/amirhosseinghanipour/taskhub/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
	"github.com/amirhosseinghanipour/taskhub/internal/listing"
)

type Service struct {
	repo ports.TaskRepository
}

func NewService(repo ports.TaskRepository) *Service {
	return &Service{repo: repo}
}

type View struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      domain.TaskStatus `json:"status"`
	ProjectID   uuid.UUID         `json:"projectId"`
	AssigneeID  uuid.UUID         `json:"assigneeId"`
	DueDate     time.Time         `json:"dueDate"`
	StartDate   time.Time         `json:"startDate"`
	IsActive    bool              `json:"isActive"`
	CreatedBy   string            `json:"createdBy"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func viewOf(t *domain.Task) *View {
	return &View{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		ProjectID:   t.ProjectID,
		AssigneeID:  t.AssigneeID,
		DueDate:     t.DueDate,
		StartDate:   t.StartDate,
		IsActive:    t.IsActive,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

type CreateInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	ProjectID   uuid.UUID
	AssigneeID  uuid.UUID
	DueDate     time.Time
	StartDate   time.Time
	CreatedBy   string
}

// Create persists the task. A projectId or assigneeId that does not resolve
// to an existing row fails on the foreign key constraint, not here.
func (s *Service) Create(ctx context.Context, input CreateInput) (*View, error) {
	status := input.Status
	if status == "" {
		status = domain.TaskStatusTodo
	}
	now := time.Now()
	t := &domain.Task{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		ProjectID:   input.ProjectID,
		AssigneeID:  input.AssigneeID,
		DueDate:     input.DueDate,
		StartDate:   input.StartDate,
		IsActive:    true,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return viewOf(t), nil
}

type ListQuery struct {
	Page          int
	PageSize      int
	Status        string
	ProjectID     string
	AssigneeID    string
	CreatedBy     string
	DueDateAfter  *time.Time
	DueDateBefore *time.Time
	Search        string
	SortBy        string
	SortOrder     string
}

func (s *Service) List(ctx context.Context, q ListQuery) (listing.Page[*View], error) {
	params := listing.Params{
		Page:      q.Page,
		PageSize:  q.PageSize,
		Search:    q.Search,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	}
	if q.Status != "" {
		params.Filters = append(params.Filters, listing.Filter{Column: "status", Value: q.Status})
	}
	if q.ProjectID != "" {
		params.Filters = append(params.Filters, listing.Filter{Column: "project_id", Value: q.ProjectID})
	}
	if q.AssigneeID != "" {
		params.Filters = append(params.Filters, listing.Filter{Column: "assignee_id", Value: q.AssigneeID})
	}
	if q.CreatedBy != "" {
		params.Filters = append(params.Filters, listing.Filter{Column: "created_by", Value: q.CreatedBy})
	}
	if q.DueDateAfter != nil || q.DueDateBefore != nil {
		params.Ranges = append(params.Ranges, listing.Range{
			Column: "due_date",
			After:  q.DueDateAfter,
			Before: q.DueDateBefore,
		})
	}
	tasks, total, err := s.repo.List(ctx, params)
	if err != nil {
		return listing.Page[*View]{}, err
	}
	views := make([]*View, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, viewOf(t))
	}
	return listing.NewPage(views, total, params), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*View, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domerrors.ErrTaskNotFound
	}
	return viewOf(t), nil
}

// Patch lists the mutable task fields.
type Patch struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	ProjectID   *uuid.UUID
	AssigneeID  *uuid.UUID
	DueDate     *time.Time
	StartDate   *time.Time
	IsActive    *bool
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, patch Patch) (*View, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domerrors.ErrTaskNotFound
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.ProjectID != nil {
		t.ProjectID = *patch.ProjectID
	}
	if patch.AssigneeID != nil {
		t.AssigneeID = *patch.AssigneeID
	}
	if patch.DueDate != nil {
		t.DueDate = *patch.DueDate
	}
	if patch.StartDate != nil {
		t.StartDate = *patch.StartDate
	}
	if patch.IsActive != nil {
		t.IsActive = *patch.IsActive
	}
	t.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return viewOf(t), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domerrors.ErrTaskNotFound
	}
	return nil
}
