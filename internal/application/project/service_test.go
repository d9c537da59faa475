package project

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/taskhub/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
	"github.com/amirhosseinghanipour/taskhub/internal/listing"
)

type fakeRepo struct {
	projects   map[uuid.UUID]*domain.Project
	lastParams listing.Params
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{projects: make(map[uuid.UUID]*domain.Project)}
}

func (r *fakeRepo) Create(_ context.Context, p *domain.Project) error {
	cp := *p
	r.projects[p.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) List(_ context.Context, params listing.Params) ([]*domain.Project, int, error) {
	r.lastParams = params
	out := make([]*domain.Project, 0, len(r.projects))
	for _, p := range r.projects {
		cp := *p
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(_ context.Context, p *domain.Project) error {
	cp := *p
	r.projects[p.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.projects[id]; !ok {
		return false, nil
	}
	delete(r.projects, id)
	return true, nil
}

func TestCreateAndGet(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	owner := uuid.New()
	members := []uuid.UUID{uuid.New(), uuid.New()}
	created, err := svc.Create(ctx, CreateInput{
		Name:      "Apollo",
		StartDate: time.Now(),
		EndDate:   time.Now().Add(30 * 24 * time.Hour),
		OwnerID:   owner,
		MemberIDs: members,
		CreatedBy: "admin@example.com",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !created.IsActive {
		t.Error("new project should be active")
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.OwnerID != owner {
		t.Errorf("OwnerID = %v, want %v", got.OwnerID, owner)
	}
	if len(got.MemberIDs) != 2 {
		t.Errorf("MemberIDs length = %d, want 2", len(got.MemberIDs))
	}
}

func TestGetMissing(t *testing.T) {
	svc := NewService(newFakeRepo())
	if _, err := svc.Get(context.Background(), uuid.New()); !errors.Is(err, domerrors.ErrProjectNotFound) {
		t.Errorf("err = %v, want ErrProjectNotFound", err)
	}
}

func TestUpdateReplacesMembership(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{
		Name:      "Apollo",
		OwnerID:   uuid.New(),
		MemberIDs: []uuid.UUID{uuid.New(), uuid.New(), uuid.New()},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	replacement := []uuid.UUID{uuid.New()}
	name := "Artemis"
	updated, err := svc.Update(ctx, created.ID, Patch{
		Name:      &name,
		MemberIDs: &replacement,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Artemis" {
		t.Errorf("Name = %q, want Artemis", updated.Name)
	}
	if len(updated.MemberIDs) != 1 || updated.MemberIDs[0] != replacement[0] {
		t.Errorf("MemberIDs = %v, want %v", updated.MemberIDs, replacement)
	}
	if updated.OwnerID != created.OwnerID {
		t.Error("OwnerID changed without a patch field")
	}
}

func TestDeleteTwice(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{Name: "Apollo", OwnerID: uuid.New()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("first Delete: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, domerrors.ErrProjectNotFound) {
		t.Errorf("second Delete err = %v, want ErrProjectNotFound", err)
	}
}

func TestListBuildsMembershipFilters(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	memberID := uuid.NewString()
	taskID := uuid.NewString()
	_, err := svc.List(context.Background(), ListQuery{
		OwnerID:  uuid.NewString(),
		MemberID: memberID,
		TaskID:   taskID,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(repo.lastParams.Filters) != 3 {
		t.Fatalf("filters = %d, want 3", len(repo.lastParams.Filters))
	}
	byColumn := make(map[string]listing.Filter, 3)
	for _, f := range repo.lastParams.Filters {
		byColumn[f.Column] = f
	}
	if f, ok := byColumn["member_id"]; !ok || f.Predicate == "" || f.Value != memberID {
		t.Errorf("member_id filter = %+v", f)
	}
	if f, ok := byColumn["task_id"]; !ok || f.Predicate == "" || f.Value != taskID {
		t.Errorf("task_id filter = %+v", f)
	}
	if f, ok := byColumn["owner_id"]; !ok || f.Predicate != "" {
		t.Errorf("owner_id filter = %+v", f)
	}
}
