// Package user implements CRUD over user accounts. Views returned from
// this package never include the password hash.
package user

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	"github.com/amirhosseinghanipour/taskhub/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
	"github.com/amirhosseinghanipour/taskhub/internal/listing"
)

type Service struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
}

func NewService(repo ports.UserRepository, hasher ports.PasswordHasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

// View is the sanitized user representation returned by every operation.
type View struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	LastName  string      `json:"lastName"`
	FullName  string      `json:"fullName"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	IsActive  bool        `json:"isActive"`
	CreatedBy string      `json:"createdBy"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func viewOf(u *domain.User) *View {
	return &View{
		ID:        u.ID,
		Name:      u.Name,
		LastName:  u.LastName,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedBy: u.CreatedBy,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type CreateInput struct {
	Name      string
	LastName  string
	FullName  string
	Email     string
	Password  string
	Role      domain.Role
	CreatedBy string
}

// Create persists a new user. The email is case-folded before the duplicate
// check and storage; a second user with the same email in any casing is a
// conflict.
func (s *Service) Create(ctx context.Context, input CreateInput) (*View, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrEmailTaken
	}
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	fullName := input.FullName
	if fullName == "" {
		fullName = strings.TrimSpace(input.Name + " " + input.LastName)
	}
	now := time.Now()
	u := &domain.User{
		ID:           uuid.New(),
		Name:         input.Name,
		LastName:     input.LastName,
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		Role:         input.Role,
		IsActive:     true,
		CreatedBy:    input.CreatedBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return viewOf(u), nil
}

// ListQuery is the user list request before translation to listing.Params.
type ListQuery struct {
	Page      int
	PageSize  int
	Role      string
	IsActive  *bool
	CreatedBy string
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
	if q.Role != "" {
		params.Filters = append(params.Filters, listing.Filter{Column: "role", Value: q.Role})
	}
	if q.IsActive != nil {
		params.Filters = append(params.Filters, listing.Filter{Column: "is_active", Value: *q.IsActive})
	}
	if q.CreatedBy != "" {
		params.Filters = append(params.Filters, listing.Filter{Column: "created_by", Value: q.CreatedBy})
	}
	users, total, err := s.repo.List(ctx, params)
	if err != nil {
		return listing.Page[*View]{}, err
	}
	views := make([]*View, 0, len(users))
	for _, u := range users {
		views = append(views, viewOf(u))
	}
	return listing.NewPage(views, total, params), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*View, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domerrors.ErrUserNotFound
	}
	return viewOf(u), nil
}

// Patch lists the mutable user fields. Nil means "leave unchanged"; id,
// createdBy, and createdAt are immutable post-creation.
type Patch struct {
	Name     *string
	LastName *string
	FullName *string
	Email    *string
	Password *string
	Role     *domain.Role
	IsActive *bool
}

// Update shallow-merges the patch over the stored row and persists it.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch Patch) (*View, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domerrors.ErrUserNotFound
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.FullName != nil {
		u.FullName = *patch.FullName
	}
	if patch.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*patch.Email))
	}
	if patch.Password != nil {
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.IsActive != nil {
		u.IsActive = *patch.IsActive
	}
	u.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return viewOf(u), nil
}

// Delete removes the row. A second delete of the same id reports not found.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domerrors.ErrUserNotFound
	}
	return nil
}
