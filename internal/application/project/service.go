// Package project implements CRUD over projects and their membership.
package project

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
	repo ports.ProjectRepository
}

func NewService(repo ports.ProjectRepository) *Service {
	return &Service{repo: repo}
}

type View struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	StartDate   time.Time   `json:"startDate"`
	EndDate     time.Time   `json:"endDate"`
	OwnerID     uuid.UUID   `json:"ownerId"`
	MemberIDs   []uuid.UUID `json:"memberIds"`
	IsActive    bool        `json:"isActive"`
	CreatedBy   string      `json:"createdBy"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func viewOf(p *domain.Project) *View {
	members := p.MemberIDs
	if members == nil {
		members = []uuid.UUID{}
	}
	return &View{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		OwnerID:     p.OwnerID,
		MemberIDs:   members,
		IsActive:    p.IsActive,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type CreateInput struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	OwnerID     uuid.UUID
	MemberIDs   []uuid.UUID
	CreatedBy   string
}

// Create persists the project and its membership rows. Referential checks
// on ownerId and memberIds are left to the database constraints.
func (s *Service) Create(ctx context.Context, input CreateInput) (*View, error) {
	now := time.Now()
	p := &domain.Project{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		OwnerID:     input.OwnerID,
		MemberIDs:   input.MemberIDs,
		IsActive:    true,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return viewOf(p), nil
}

type ListQuery struct {
	Page      int
	PageSize  int
	OwnerID   string
	MemberID  string
	TaskID    string
	Search    string
	SortBy    string
	SortOrder string
}

func (s *Service) List(ctx context.Context, q ListQuery) (listing.Page[*View], error) {
	params := listing.Params{
		Page:      q.Page,
		PageSize:  q.PageSize,
		Search:    q.Search,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	}
	if q.OwnerID != "" {
		params.Filters = append(params.Filters, listing.Filter{Column: "owner_id", Value: q.OwnerID})
	}
	if q.MemberID != "" {
		params.Filters = append(params.Filters, listing.Filter{
			Column:    "member_id",
			Value:     q.MemberID,
			Predicate: "id IN (SELECT project_id FROM project_members WHERE user_id = %s)",
		})
	}
	if q.TaskID != "" {
		params.Filters = append(params.Filters, listing.Filter{
			Column:    "task_id",
			Value:     q.TaskID,
			Predicate: "id IN (SELECT project_id FROM tasks WHERE id = %s)",
		})
	}
	projects, total, err := s.repo.List(ctx, params)
	if err != nil {
		return listing.Page[*View]{}, err
	}
	views := make([]*View, 0, len(projects))
	for _, p := range projects {
		views = append(views, viewOf(p))
	}
	return listing.NewPage(views, total, params), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*View, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domerrors.ErrProjectNotFound
	}
	return viewOf(p), nil
}

// Patch lists the mutable project fields. MemberIDs replaces the whole
// membership set when present.
type Patch struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	OwnerID     *uuid.UUID
	MemberIDs   *[]uuid.UUID
	IsActive    *bool
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, patch Patch) (*View, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domerrors.ErrProjectNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.StartDate != nil {
		p.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		p.EndDate = *patch.EndDate
	}
	if patch.OwnerID != nil {
		p.OwnerID = *patch.OwnerID
	}
	if patch.MemberIDs != nil {
		p.MemberIDs = *patch.MemberIDs
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
	p.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return viewOf(p), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domerrors.ErrProjectNotFound
	}
	return nil
}
