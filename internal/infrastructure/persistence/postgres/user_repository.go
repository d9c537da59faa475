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

const userColumns = `id, name, last_name, full_name, email, password_hash, role, is_active, created_by, created_at, updated_at`

const (
	insertUserSQL = `INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	getUserByIDSQL    = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	getUserByEmailSQL = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	updateUserSQL     = `UPDATE users SET name = $2, last_name = $3, full_name = $4, email = $5,
		password_hash = $6, role = $7, is_active = $8, updated_at = $9 WHERE id = $1`
	deleteUserSQL = `DELETE FROM users WHERE id = $1`
	listUsersSQL  = `SELECT ` + userColumns + ` FROM users`
	countUsersSQL = `SELECT count(*) FROM users`
)

// userListSchema is the allow-list behind GET /user. Sort keys are the API
// field names; columns are what the SQL sees.
var userListSchema = listing.Schema{
	Equality:   []string{"role", "is_active", "created_by"},
	Searchable: []string{"name", "last_name", "full_name", "email"},
	Sortable: map[string]string{
		"id":        "id",
		"name":      "name",
		"lastName":  "last_name",
		"fullName":  "full_name",
		"email":     "email",
		"role":      "role",
		"isActive":  "is_active",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	},
	DefaultSort: "created_at",
}

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	_, err := r.pool.Exec(ctx, insertUserSQL,
		u.ID, u.Name, u.LastName, u.FullName, u.Email, u.PasswordHash,
		u.Role, u.IsActive, u.CreatedBy, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return translateConstraint(err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, getUserByIDSQL, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, getUserByEmailSQL, email)
}

func (r *UserRepository) getOne(ctx context.Context, sql string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, sql, arg).Scan(
		&u.ID, &u.Name, &u.LastName, &u.FullName, &u.Email, &u.PasswordHash,
		&u.Role, &u.IsActive, &u.CreatedBy, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context, params listing.Params) ([]*domain.User, int, error) {
	q := userListSchema.Build(params)

	var total int
	if err := r.pool.QueryRow(ctx, countUsersSQL+q.Where, q.Args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, listUsersSQL+q.Tail(), q.Args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(
			&u.ID, &u.Name, &u.LastName, &u.FullName, &u.Email, &u.PasswordHash,
			&u.Role, &u.IsActive, &u.CreatedBy, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, err
		}
		users = append(users, &u)
	}
	return users, total, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	_, err := r.pool.Exec(ctx, updateUserSQL,
		u.ID, u.Name, u.LastName, u.FullName, u.Email, u.PasswordHash,
		u.Role, u.IsActive, u.UpdatedAt)
	if err != nil {
		return translateConstraint(err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	ct, err := r.pool.Exec(ctx, deleteUserSQL, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

var _ ports.UserRepository = (*UserRepository)(nil)
