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

const taskColumns = `id, title, description, status, project_id, assignee_id, due_date, start_date, is_active, created_by, created_at, updated_at`

const (
	insertTaskSQL = `INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	getTaskByIDSQL = `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	updateTaskSQL  = `UPDATE tasks SET title = $2, description = $3, status = $4, project_id = $5,
		assignee_id = $6, due_date = $7, start_date = $8, is_active = $9, updated_at = $10 WHERE id = $1`
	deleteTaskSQL = `DELETE FROM tasks WHERE id = $1`
	listTasksSQL  = `SELECT ` + taskColumns + ` FROM tasks`
	countTasksSQL = `SELECT count(*) FROM tasks`
)

var taskListSchema = listing.Schema{
	Equality:   []string{"status", "project_id", "assignee_id", "created_by"},
	Range:      []string{"due_date"},
	Searchable: []string{"title", "description"},
	Sortable: map[string]string{
		"id":        "id",
		"title":     "title",
		"status":    "status",
		"dueDate":   "due_date",
		"startDate": "start_date",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	},
	DefaultSort: "created_at",
}

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	_, err := r.pool.Exec(ctx, insertTaskSQL,
		t.ID, t.Title, t.Description, t.Status, t.ProjectID, t.AssigneeID,
		t.DueDate, t.StartDate, t.IsActive, t.CreatedBy, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return translateConstraint(err)
	}
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var t domain.Task
	err := r.pool.QueryRow(ctx, getTaskByIDSQL, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.ProjectID, &t.AssigneeID,
		&t.DueDate, &t.StartDate, &t.IsActive, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) List(ctx context.Context, params listing.Params) ([]*domain.Task, int, error) {
	q := taskListSchema.Build(params)

	var total int
	if err := r.pool.QueryRow(ctx, countTasksSQL+q.Where, q.Args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, listTasksSQL+q.Tail(), q.Args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.Status, &t.ProjectID, &t.AssigneeID,
			&t.DueDate, &t.StartDate, &t.IsActive, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, &t)
	}
	return tasks, total, rows.Err()
}

func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	_, err := r.pool.Exec(ctx, updateTaskSQL,
		t.ID, t.Title, t.Description, t.Status, t.ProjectID, t.AssigneeID,
		t.DueDate, t.StartDate, t.IsActive, t.UpdatedAt)
	if err != nil {
		return translateConstraint(err)
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	ct, err := r.pool.Exec(ctx, deleteTaskSQL, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

var _ ports.TaskRepository = (*TaskRepository)(nil)
