package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmathtech/jamilcleaningapp-sub000/internal/model"
)

type AdminRepo struct{ DB *sql.DB }

func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{DB: db} }

// Create inserts an admin and returns its ID.
func (r *AdminRepo) Create(ctx context.Context, a model.Admin) (uint64, error) {
	email := strings.ToLower(strings.TrimSpace(a.Email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO admins (first_name,last_name,email,phone,role) VALUES (?,?,?,?,?)",
		a.FirstName, a.LastName, email, a.Phone, "admin")
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches an admin by normalized email.
func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (model.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var a model.Admin
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,first_name,last_name,email,phone,role,created_at FROM admins WHERE email=? LIMIT 1",
		email).Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.Phone, &a.Role, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return a, ErrNotFound
	}
	return a, err
}

// GetByID fetches an admin by id.
func (r *AdminRepo) GetByID(ctx context.Context, id uint64) (model.Admin, error) {
	var a model.Admin
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,first_name,last_name,email,phone,role,created_at FROM admins WHERE id=? LIMIT 1",
		id).Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.Phone, &a.Role, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return a, ErrNotFound
	}
	return a, err
}
