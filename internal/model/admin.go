package model

import "time"

// Admin mirrors the 'admins' table. Admins have no password; login works
// by emailing a signed verification link.
type Admin struct {
	ID        uint64    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
