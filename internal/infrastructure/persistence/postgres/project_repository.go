package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	"github.com/amirhosseinghanipour/taskhub/internal/domain"
	"github.com/amirhosseinghanipour/taskhub/internal/listing"
)

const projectColumns = `id, name, description, start_date, end_date, owner_id, is_active, created_by, created_at, updated_at`

const (
	insertProjectSQL = `INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	getProjectByIDSQL = `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	updateProjectSQL  = `UPDATE projects SET name = $2, description = $3, start_date = $4, end_date = $5,
		owner_id = $6, is_active = $7, updated_at = $8 WHERE id = $1`
	deleteProjectSQL  = `DELETE FROM projects WHERE id = $1`
	listProjectsSQL   = `SELECT ` + projectColumns + ` FROM projects`
	countProjectsSQL  = `SELECT count(*) FROM projects`
	insertMemberSQL   = `INSERT INTO project_members (project_id, user_id) VALUES ($1, $2)`
	deleteMembersSQL  = `DELETE FROM project_members WHERE project_id = $1`
	getMembersSQL     = `SELECT user_id FROM project_members WHERE project_id = $1`
	membersForSetSQL  = `SELECT project_id, user_id FROM project_members WHERE project_id = ANY($1)`
)

// projectListSchema includes two virtual columns, member_id and task_id,
// bound through subquery predicates rather than project columns.
var projectListSchema = listing.Schema{
	Equality:   []string{"owner_id", "member_id", "task_id"},
	Searchable: []string{"name", "description"},
	Sortable: map[string]string{
		"id":          "id",
		"name":        "name",
		"description": "description",
		"startDate":   "start_date",
		"endDate":     "end_date",
		"ownerId":     "owner_id",
		"createdAt":   "created_at",
		"updatedAt":   "updated_at",
	},
	DefaultSort: "created_at",
}

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

// Create inserts the project row and its membership rows in one
// transaction so a bad member id rolls back the whole create.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, insertProjectSQL,
		p.ID, p.Name, p.Description, p.StartDate, p.EndDate, p.OwnerID,
		p.IsActive, p.CreatedBy, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return translateConstraint(err)
	}
	for _, memberID := range p.MemberIDs {
		if _, err := tx.Exec(ctx, insertMemberSQL, p.ID, memberID); err != nil {
			return translateConstraint(err)
		}
	}
	return tx.Commit(ctx)
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var p domain.Project
	err := r.pool.QueryRow(ctx, getProjectByIDSQL, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.StartDate, &p.EndDate, &p.OwnerID,
		&p.IsActive, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	rows, err := r.pool.Query(ctx, getMembersSQL, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var memberID uuid.UUID
		if err := rows.Scan(&memberID); err != nil {
			return nil, err
		}
		p.MemberIDs = append(p.MemberIDs, memberID)
	}
	return &p, rows.Err()
}

func (r *ProjectRepository) List(ctx context.Context, params listing.Params) ([]*domain.Project, int, error) {
	q := projectListSchema.Build(params)

	var total int
	if err := r.pool.QueryRow(ctx, countProjectsSQL+q.Where, q.Args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, listProjectsSQL+q.Tail(), q.Args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var projects []*domain.Project
	byID := make(map[uuid.UUID]*domain.Project)
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.StartDate, &p.EndDate, &p.OwnerID,
			&p.IsActive, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		projects = append(projects, &p)
		byID[p.ID] = &p
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(projects) == 0 {
		return projects, total, nil
	}

	// One membership query for the whole page instead of one per project.
	ids := make([]uuid.UUID, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	memberRows, err := r.pool.Query(ctx, membersForSetSQL, ids)
	if err != nil {
		return nil, 0, err
	}
	defer memberRows.Close()
	for memberRows.Next() {
		var projectID, userID uuid.UUID
		if err := memberRows.Scan(&projectID, &userID); err != nil {
			return nil, 0, err
		}
		if p, ok := byID[projectID]; ok {
			p.MemberIDs = append(p.MemberIDs, userID)
		}
	}
	return projects, total, memberRows.Err()
}

// Update writes the project row and replaces the membership set.
func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, updateProjectSQL,
		p.ID, p.Name, p.Description, p.StartDate, p.EndDate, p.OwnerID,
		p.IsActive, p.UpdatedAt)
	if err != nil {
		return translateConstraint(err)
	}
	if _, err := tx.Exec(ctx, deleteMembersSQL, p.ID); err != nil {
		return err
	}
	for _, memberID := range p.MemberIDs {
		if _, err := tx.Exec(ctx, insertMemberSQL, p.ID, memberID); err != nil {
			return translateConstraint(err)
		}
	}
	return tx.Commit(ctx)
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	ct, err := r.pool.Exec(ctx, deleteProjectSQL, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

var _ ports.ProjectRepository = (*ProjectRepository)(nil)
