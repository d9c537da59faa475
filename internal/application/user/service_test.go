package user

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/amirhosseinghanipour/taskhub/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/security"
	"github.com/amirhosseinghanipour/taskhub/internal/listing"
)

type fakeRepo struct {
	users      map[uuid.UUID]*domain.User
	lastParams listing.Params
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *fakeRepo) Create(_ context.Context, u *domain.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) List(_ context.Context, params listing.Params) ([]*domain.User, int, error) {
	r.lastParams = params
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(_ context.Context, u *domain.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

func newService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, security.NewBcryptHasher(bcrypt.MinCost)), repo
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{
		Name:      "Alan",
		LastName:  "Turing",
		Email:     "Alan@Example.com",
		Password:  "pw",
		Role:      domain.RoleMember,
		CreatedBy: "seed",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Email != "alan@example.com" {
		t.Errorf("email not case-folded: %q", created.Email)
	}
	if created.FullName != "Alan Turing" {
		t.Errorf("fullName = %q, want derived", created.FullName)
	}
	if !created.IsActive {
		t.Error("new user should be active")
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if *got != *created {
		t.Errorf("round trip mismatch: %+v vs %+v", got, created)
	}

	// The stored hash must not be the plain password and must verify.
	stored := repo.users[created.ID]
	if stored.PasswordHash == "pw" {
		t.Error("password stored in plain text")
	}
	if !security.NewBcryptHasher(bcrypt.MinCost).Verify("pw", stored.PasswordHash) {
		t.Error("stored hash does not verify against original password")
	}
}

func TestCreateDuplicateEmailConflict(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateInput{Name: "A", LastName: "B", Email: "a@b.com", Password: "pw", Role: domain.RoleMember}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(ctx, CreateInput{Name: "C", LastName: "D", Email: "A@B.com", Password: "pw", Role: domain.RoleMember})
	if err != domerrors.ErrEmailTaken {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestGetMissing(t *testing.T) {
	svc, _ := newService()
	if _, err := svc.Get(context.Background(), uuid.New()); err != domerrors.ErrUserNotFound {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{Name: "Ada", LastName: "Lovelace", Email: "ada@b.com", Password: "pw", Role: domain.RoleMember, CreatedBy: "seed"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	role := domain.RoleLeader
	name := "Augusta"
	updated, err := svc.Update(ctx, created.ID, Patch{Name: &name, Role: &role})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Augusta" || updated.Role != domain.RoleLeader {
		t.Errorf("patched fields not applied: %+v", updated)
	}
	if updated.LastName != "Lovelace" || updated.Email != "ada@b.com" {
		t.Errorf("untouched fields changed: %+v", updated)
	}
	if updated.CreatedBy != "seed" || !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("immutable fields changed: %+v", updated)
	}

	// Password patch rehashes.
	pw := "newpw"
	if _, err := svc.Update(ctx, created.ID, Patch{Password: &pw}); err != nil {
		t.Fatalf("update password: %v", err)
	}
	stored := repo.users[created.ID]
	if !security.NewBcryptHasher(bcrypt.MinCost).Verify("newpw", stored.PasswordHash) {
		t.Error("new password does not verify")
	}
}

func TestUpdateMissing(t *testing.T) {
	svc, _ := newService()
	name := "x"
	if _, err := svc.Update(context.Background(), uuid.New(), Patch{Name: &name}); err != domerrors.ErrUserNotFound {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestDeleteTwice(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{Name: "A", LastName: "B", Email: "a@b.com", Password: "pw", Role: domain.RoleMember})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != domerrors.ErrUserNotFound {
		t.Errorf("second delete err = %v, want ErrUserNotFound", err)
	}
}

func TestListBuildsFilters(t *testing.T) {
	svc, repo := newService()
	active := true

	_, err := svc.List(context.Background(), ListQuery{
		Page:      2,
		PageSize:  5,
		Role:      "admin",
		IsActive:  &active,
		CreatedBy: "seed",
		Search:    "ada",
		SortBy:    "email",
		SortOrder: "ASC",
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	p := repo.lastParams
	if p.Page != 2 || p.PageSize != 5 || p.Search != "ada" || p.SortBy != "email" || p.SortOrder != "ASC" {
		t.Errorf("params not forwarded: %+v", p)
	}
	if len(p.Filters) != 3 {
		t.Fatalf("filters = %+v, want 3", p.Filters)
	}
	if p.Filters[0].Column != "role" || p.Filters[1].Column != "is_active" || p.Filters[2].Column != "created_by" {
		t.Errorf("unexpected filter columns: %+v", p.Filters)
	}
}
