package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmathtech/jamilcleaningapp-sub000/internal/model"
	"github.com/jmathtech/jamilcleaningapp-sub000/internal/utils"
)

type CustomerRepo struct{ DB *sql.DB }

func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{DB: db} }

const customerCols = "id,first_name,last_name,email,phone,address,password_hash,role,created_at,updated_at"

func scanCustomer(row *sql.Row) (model.Customer, error) {
	var c model.Customer
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.Address, &c.PasswordHash, &c.Role, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return c, ErrNotFound
	}
	return c, err
}

// Create inserts a customer and returns its ID. The password is hashed
// with bcrypt before it touches the database.
func (r *CustomerRepo) Create(ctx context.Context, c model.Customer, password string, cost int) (uint64, error) {
	email := strings.ToLower(strings.TrimSpace(c.Email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO customers (first_name,last_name,email,phone,address,password_hash,role) VALUES (?,?,?,?,?,?,?)",
		c.FirstName, c.LastName, email, c.Phone, c.Address, hash, "customer")
	if err != nil {
		// MySQL duplicate key error for the unique email index
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

// GetByEmail fetches a customer by normalized email.
func (r *CustomerRepo) GetByEmail(ctx context.Context, email string) (model.Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanCustomer(r.DB.QueryRowContext(ctx,
		"SELECT "+customerCols+" FROM customers WHERE email=? LIMIT 1", email))
}

// GetByID fetches a customer by id.
func (r *CustomerRepo) GetByID(ctx context.Context, id uint64) (model.Customer, error) {
	return scanCustomer(r.DB.QueryRowContext(ctx,
		"SELECT "+customerCols+" FROM customers WHERE id=? LIMIT 1", id))
}

// UpdateProfile saves the mutable profile fields for a customer.
func (r *CustomerRepo) UpdateProfile(ctx context.Context, id uint64, firstName, lastName, phone, address string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE customers SET first_name=?, last_name=?, phone=?, address=? WHERE id=?",
		firstName, lastName, phone, address, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// RowsAffected is 0 both for a missing row and a no-op update;
		// distinguish by probing for the row.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// UpsertOAuth finds a customer by email or creates one without a password,
// used by the Google OAuth callback. It returns the customer row.
func (r *CustomerRepo) UpsertOAuth(ctx context.Context, email, firstName, lastName string) (model.Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	c, err := r.GetByEmail(ctx, email)
	if err == nil {
		return c, nil
	}
	if err != ErrNotFound {
		return model.Customer{}, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO customers (first_name,last_name,email,phone,address,password_hash,role) VALUES (?,?,?,'','','','customer')",
		firstName, lastName, email)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			// Lost a race with a concurrent signup; the row exists now.
			return r.GetByEmail(ctx, email)
		}
		return model.Customer{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Customer{}, err
	}
	return r.GetByID(ctx, uint64(id))
}
